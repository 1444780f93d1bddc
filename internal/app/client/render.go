package client

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	xdraw "golang.org/x/image/draw"

	"qrkeeper/internal/domain/qrcode"
)

// DefaultRenderSize - размер, к которому привязан размер логотипа.
const DefaultRenderSize = 150

// Render кодирует value в QR-символ sizePx x sizePx в цветах style.
// С логотипом используется уровень коррекции H, чтобы символ читался
// несмотря на закрытый центр.
func Render(value string, sizePx int, style qrcode.Style, logo image.Image, logoSizePx int) (image.Image, error) {
	if sizePx <= 0 {
		sizePx = DefaultRenderSize
	}
	style, err := style.Normalize()
	if err != nil {
		return nil, fmt.Errorf("ошибка стиля: %w", err)
	}
	fg, err := toColor(style.ForegroundColor)
	if err != nil {
		return nil, err
	}
	bg, err := toColor(style.BackgroundColor)
	if err != nil {
		return nil, err
	}

	level := qr.M
	if logo != nil {
		level = qr.H
	}

	code, err := qr.Encode(value, level, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования: %w", err)
	}
	scaled, err := barcode.Scale(code, sizePx, sizePx)
	if err != nil {
		return nil, fmt.Errorf("размер %d меньше символа %d: %w", sizePx, code.Bounds().Dx(), err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, sizePx, sizePx))
	b := scaled.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isDark(scaled.At(x, y)) {
				img.SetNRGBA(x-b.Min.X, y-b.Min.Y, fg)
			} else {
				img.SetNRGBA(x-b.Min.X, y-b.Min.Y, bg)
			}
		}
	}

	if logo != nil {
		drawLogo(img, logo, logoSize(logoSizePx, sizePx), bg)
	}

	return img, nil
}

// ExportPNG пишет изображение в PNG.
func ExportPNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("ошибка записи PNG: %w", err)
	}
	return nil
}

// DecodeLogo разбирает PNG. Для остальных форматов возвращает nil без ошибки.
func DecodeLogo(data []byte, contentType string) (image.Image, error) {
	if contentType != "" && contentType != "image/png" {
		return nil, nil
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения логотипа: %w", err)
	}
	return img, nil
}

func logoSize(logoSizePx, sizePx int) int {
	if logoSizePx <= 0 {
		logoSizePx = qrcode.DefaultLogoSize
	}
	return logoSizePx * sizePx / DefaultRenderSize
}

// drawLogo вырезает квадрат цвета фона по центру и вписывает в него логотип.
func drawLogo(dst *image.NRGBA, logo image.Image, side int, bg color.NRGBA) {
	if side <= 0 {
		return
	}
	size := dst.Bounds().Dx()
	off := (size - side) / 2
	square := image.Rect(off, off, off+side, off+side)
	xdraw.Draw(dst, square, &image.Uniform{C: bg}, image.Point{}, xdraw.Src)

	lb := logo.Bounds()
	if lb.Empty() {
		return
	}
	w, h := side, side
	if lb.Dx() > lb.Dy() {
		h = side * lb.Dy() / lb.Dx()
	} else if lb.Dy() > lb.Dx() {
		w = side * lb.Dx() / lb.Dy()
	}
	x0 := off + (side-w)/2
	y0 := off + (side-h)/2
	xdraw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), logo, lb, xdraw.Over, nil)
}

func toColor(hex string) (color.NRGBA, error) {
	r, g, b, err := qrcode.RGB(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return (r+g+b)/3 < 0x8000
}
