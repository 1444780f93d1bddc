package qrcode

import (
	"fmt"
	"path"
	"strings"
	"time"
)

const (
	DefaultForeground = "#000000"
	DefaultBackground = "#ffffff"

	MinLogoSize     = 20
	MaxLogoSize     = 100
	DefaultLogoSize = 50

	MaxLogoBytes = 2 << 20

	DefaultHostingBaseURL = "https://qrcode-7bd9a.web.app"
)

// Record - сохраненное описание одного QR-кода.
type Record struct {
	ID             string      `json:"id"`
	Kind           Kind        `json:"kind"`
	ContentType    ContentType `json:"content_type"`
	RawValue       string      `json:"raw_value"`
	EncodedValue   string      `json:"encoded_value"`
	DestinationURL string      `json:"destination_url,omitempty"`
	Style          Style       `json:"style"`
	Logo           *Logo       `json:"logo,omitempty"`
	OwnerID        int         `json:"owner_id"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      *time.Time  `json:"updated_at,omitempty"`
}

// Destination возвращает текущее значение, которое видит пользователь в редакторе.
func (r Record) Destination() string {
	if r.Kind == KindDynamic {
		return r.DestinationURL
	}
	return r.RawValue
}

type Style struct {
	ForegroundColor string `json:"foreground_color,omitempty" example:"#000000" doc:"По умолчанию #000000"`
	BackgroundColor string `json:"background_color,omitempty" example:"#ffffff" doc:"По умолчанию #ffffff"`
}

// Normalize fills defaults and expands #rgb shorthand.
func (s Style) Normalize() (Style, error) {
	fg, err := normalizeColor(s.ForegroundColor, DefaultForeground)
	if err != nil {
		return Style{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := normalizeColor(s.BackgroundColor, DefaultBackground)
	if err != nil {
		return Style{}, fmt.Errorf("background: %w", err)
	}
	return Style{ForegroundColor: fg, BackgroundColor: bg}, nil
}

// RGB разбирает нормализованный цвет #rrggbb.
func RGB(color string) (r, g, b uint8, err error) {
	c, err := normalizeColor(color, "")
	if err != nil {
		return 0, 0, 0, err
	}
	var v uint32
	if _, err := fmt.Sscanf(c[1:], "%06x", &v); err != nil {
		return 0, 0, 0, fmt.Errorf("parse color %q: %w", color, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

func normalizeColor(c, def string) (string, error) {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		if def == "" {
			return "", fmt.Errorf("empty color")
		}
		return def, nil
	}
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	hex := c[1:]
	for _, r := range hex {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return "", fmt.Errorf("invalid color %q", c)
		}
	}
	switch len(hex) {
	case 3:
		return "#" + string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}), nil
	case 6:
		return c, nil
	}
	return "", fmt.Errorf("invalid color %q", c)
}

// Logo - изображение в центре символа.
// SizePx 0 означает DefaultLogoSize, диапазон проверяет сервис.
type Logo struct {
	ImageRef string `json:"image_ref,omitempty"`
	SizePx   int    `json:"size_px,omitempty" maximum:"100" example:"50" doc:"20..100, по умолчанию 50"`
}

// LogoUpload - только что выбранный локальный файл, который нужно загрузить до записи.
type LogoUpload struct {
	FileName    string `json:"file_name" example:"logo.png"`
	ContentType string `json:"content_type" example:"image/png"`
	Data        []byte `json:"data" doc:"Содержимое файла (base64)"`
}

var logoExtensions = map[string]string{
	"image/png":     "png",
	"image/svg+xml": "svg",
}

func (u LogoUpload) validate() error {
	if len(u.Data) == 0 {
		return fmt.Errorf("logo file is empty")
	}
	if len(u.Data) > MaxLogoBytes {
		return fmt.Errorf("logo file exceeds %d bytes", MaxLogoBytes)
	}
	if _, ok := logoExtensions[u.mediaType()]; !ok {
		return fmt.Errorf("unsupported logo type %q", u.ContentType)
	}
	return nil
}

// mediaType falls back to the file extension when the caller sent no content type.
func (u LogoUpload) mediaType() string {
	ct := strings.ToLower(strings.TrimSpace(u.ContentType))
	if ct != "" {
		return ct
	}
	switch strings.ToLower(path.Ext(u.FileName)) {
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	}
	return ""
}

// ListItem - запись в списке профиля со ссылкой для отображения.
type ListItem struct {
	Record
	Link string `json:"link"`
}

type GenerateRequest struct {
	RawValue    string      `json:"raw_value" doc:"Содержимое, введенное пользователем"`
	Kind        Kind        `json:"kind,omitempty" doc:"По умолчанию static"`
	ContentType ContentType `json:"content_type,omitempty" doc:"По умолчанию text"`
	Style       Style       `json:"style,omitempty"`
	Logo        *Logo       `json:"logo,omitempty"`
	LogoUpload  *LogoUpload `json:"logo_upload,omitempty"`
}

// GenerateResult - то, что передается рендереру.
type GenerateResult struct {
	ID           string `json:"id"`
	EncodedValue string `json:"encoded_value"`
	Style        Style  `json:"style"`
	Logo         *Logo  `json:"logo,omitempty"`
}

// Link builds the redirect URL for a record id.
func Link(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/" + id
}
