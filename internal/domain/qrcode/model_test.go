package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyle_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		in      Style
		want    Style
		wantErr bool
	}{
		{name: "defaults", in: Style{}, want: Style{ForegroundColor: "#000000", BackgroundColor: "#ffffff"}},
		{name: "shorthand", in: Style{ForegroundColor: "#ABC", BackgroundColor: "fff"}, want: Style{ForegroundColor: "#aabbcc", BackgroundColor: "#ffffff"}},
		{name: "full", in: Style{ForegroundColor: "#123456", BackgroundColor: "#FEDCBA"}, want: Style{ForegroundColor: "#123456", BackgroundColor: "#fedcba"}},
		{name: "bad length", in: Style{ForegroundColor: "#1234"}, wantErr: true},
		{name: "bad digit", in: Style{BackgroundColor: "#12345g"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRGB(t *testing.T) {
	r, g, b, err := RGB("#0a80ff")
	require.NoError(t, err)
	assert.Equal(t, []uint8{0x0a, 0x80, 0xff}, []uint8{r, g, b})

	_, _, _, err = RGB("")
	assert.Error(t, err)
}

func TestContentType_Table(t *testing.T) {
	for _, ct := range ContentTypes() {
		assert.NoError(t, ct.Validate(), ct)
		assert.NotEmpty(t, ct.Placeholder(), ct)
		assert.NotEqual(t, "Desconhecido", ct.DisplayName(), ct)
	}
	assert.Len(t, ContentTypes(), 11)
	assert.Equal(t, "https://exemplo.com", ContentLink.Placeholder())
	assert.Error(t, ContentType("fax").Validate())
	assert.Empty(t, ContentType("fax").Placeholder())
}

func TestKind_Validate(t *testing.T) {
	assert.NoError(t, KindStatic.Validate())
	assert.NoError(t, KindDynamic.Validate())
	assert.Error(t, Kind("").Validate())
}

func TestRecord_Destination(t *testing.T) {
	assert.Equal(t, "https://d", Record{Kind: KindDynamic, RawValue: "https://r", DestinationURL: "https://d"}.Destination())
	assert.Equal(t, "hello", Record{Kind: KindStatic, RawValue: "hello"}.Destination())
}

func TestLink(t *testing.T) {
	assert.Equal(t, "https://qrcode-7bd9a.web.app/abc123", Link("https://qrcode-7bd9a.web.app", "abc123"))
	assert.Equal(t, "https://h/abc", Link("https://h/", "abc"))
}

func TestError_Is(t *testing.T) {
	cause := assert.AnError
	err := newError("op", ErrPersistence, cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "op: persistence failed: "+cause.Error(), err.Error())
}
