package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"qrkeeper/internal/domain/qrcode"
)

const base = "https://qrcode-7bd9a.web.app"

func fixtures() []qrcode.ListItem {
	created := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	return []qrcode.ListItem{
		{
			Record: qrcode.Record{
				ID: "dyn1", Kind: qrcode.KindDynamic, ContentType: qrcode.ContentLink,
				RawValue: "https://old.example", EncodedValue: base + "/dyn1",
				DestinationURL: "https://old.example", OwnerID: 7, CreatedAt: created,
			},
			Link: base + "/dyn1",
		},
		{
			Record: qrcode.Record{
				ID: "st1", Kind: qrcode.KindStatic, ContentType: qrcode.ContentText,
				RawValue: "hello", EncodedValue: "hello", OwnerID: 7, CreatedAt: created.Add(-time.Hour),
			},
			Link: base + "/st1",
		},
	}
}

func loadedEditor(t *testing.T) (*Editor, *MockAPI, *MemoryStorage) {
	t.Helper()
	api := new(MockAPI)
	cache := NewMemoryStorage()
	e := NewEditor(api, cache, slog.Default())

	api.On("ListQRCodes", mock.Anything).Return(fixtures(), nil).Once()
	_, err := e.Load(context.Background())
	require.NoError(t, err)
	return e, api, cache
}

func TestEditor_Load(t *testing.T) {
	e, _, cache := loadedEditor(t)

	assert.Equal(t, fixtures(), e.Records())
	cached, err := cache.List()
	require.NoError(t, err)
	assert.Equal(t, fixtures(), cached)

	state, _, _ := e.State()
	assert.Equal(t, EditorClosed, state)
}

func TestEditor_Load_Error(t *testing.T) {
	api := new(MockAPI)
	e := NewEditor(api, nil, slog.Default())
	api.On("ListQRCodes", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := e.Load(context.Background())

	assert.Error(t, err)
	assert.Empty(t, e.Records())
}

func TestEditor_Open(t *testing.T) {
	t.Run("dynamic draft is destination", func(t *testing.T) {
		e, _, _ := loadedEditor(t)

		rec, err := e.Open("dyn1")

		require.NoError(t, err)
		assert.Equal(t, "dyn1", rec.ID)
		state, cur, draft := e.State()
		assert.Equal(t, EditorOpen, state)
		assert.Equal(t, "dyn1", cur.ID)
		assert.Equal(t, "https://old.example", draft)
	})

	t.Run("static draft is raw value", func(t *testing.T) {
		e, _, _ := loadedEditor(t)

		_, err := e.Open("st1")

		require.NoError(t, err)
		_, _, draft := e.State()
		assert.Equal(t, "hello", draft)
	})

	t.Run("unknown id", func(t *testing.T) {
		e, _, _ := loadedEditor(t)

		_, err := e.Open("nope")

		assert.ErrorIs(t, err, qrcode.ErrNotFound)
		state, _, _ := e.State()
		assert.Equal(t, EditorClosed, state)
	})
}

func TestEditor_SetDraftAndCancel(t *testing.T) {
	e, _, _ := loadedEditor(t)

	e.SetDraft("ignored while closed")
	_, _, draft := e.State()
	assert.Empty(t, draft)

	_, err := e.Open("dyn1")
	require.NoError(t, err)
	e.SetDraft("https://draft.example")
	_, _, draft = e.State()
	assert.Equal(t, "https://draft.example", draft)

	e.Cancel()
	state, _, draft := e.State()
	assert.Equal(t, EditorClosed, state)
	assert.Empty(t, draft)
}

func TestEditor_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success replaces entry and closes", func(t *testing.T) {
		e, api, cache := loadedEditor(t)
		_, err := e.Open("dyn1")
		require.NoError(t, err)

		updatedAt := time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC)
		updated := fixtures()[0]
		updated.DestinationURL = "https://new.example"
		updated.UpdatedAt = &updatedAt
		api.On("UpdateDestination", ctx, "dyn1", "https://new.example").Return(updated, nil)

		got, err := e.Update(ctx, "dyn1", "https://new.example")

		require.NoError(t, err)
		assert.Equal(t, updated, got)
		records := e.Records()
		require.Len(t, records, 2)
		assert.Equal(t, "https://new.example", records[0].DestinationURL)
		assert.Equal(t, fixtures()[1], records[1])

		cached, _ := cache.List()
		assert.Equal(t, "https://new.example", cached[0].DestinationURL)

		state, _, _ := e.State()
		assert.Equal(t, EditorClosed, state)
	})

	t.Run("blank keeps editor open", func(t *testing.T) {
		e, api, _ := loadedEditor(t)
		_, err := e.Open("dyn1")
		require.NoError(t, err)
		e.SetDraft("https://typed.example")

		_, err = e.Update(ctx, "dyn1", "   ")

		assert.ErrorIs(t, err, qrcode.ErrEmptyInput)
		state, _, draft := e.State()
		assert.Equal(t, EditorOpen, state)
		assert.Equal(t, "https://typed.example", draft)
		api.AssertNotCalled(t, "UpdateDestination", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not open", func(t *testing.T) {
		e, api, _ := loadedEditor(t)

		_, err := e.Update(ctx, "dyn1", "https://new.example")

		assert.ErrorIs(t, err, qrcode.ErrNotFound)
		api.AssertNotCalled(t, "UpdateDestination", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("different id", func(t *testing.T) {
		e, api, _ := loadedEditor(t)
		_, err := e.Open("dyn1")
		require.NoError(t, err)

		_, err = e.Update(ctx, "st1", "https://new.example")

		assert.ErrorIs(t, err, qrcode.ErrNotFound)
		api.AssertNotCalled(t, "UpdateDestination", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failure keeps editor open with new draft", func(t *testing.T) {
		e, api, _ := loadedEditor(t)
		_, err := e.Open("dyn1")
		require.NoError(t, err)
		apiErr := &qrcode.Error{Op: "api", Kind: qrcode.ErrPersistence, Err: &APIError{Status: 500}}
		api.On("UpdateDestination", ctx, "dyn1", "https://new.example").Return(qrcode.ListItem{}, apiErr)

		_, err = e.Update(ctx, "dyn1", "https://new.example")

		assert.ErrorIs(t, err, qrcode.ErrPersistence)
		state, cur, draft := e.State()
		assert.Equal(t, EditorOpen, state)
		assert.Equal(t, "dyn1", cur.ID)
		assert.Equal(t, "https://new.example", draft)
		assert.Equal(t, fixtures(), e.Records())
	})
}
