// Package titlecard rasterizes text into images the compositor overlays
// on clips (caption blocks) or shows full-frame (intro/outro cards).
// Rendering uses the bundled Go Regular face unless a style names a
// TTF/OTF file on disk.
package titlecard

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Style describes how a text block is drawn.
type Style struct {
	FontPath  string // empty means the bundled default face
	Fontsize  int
	TextColor string
	BgColor   string
}

const captionPadding = 16

// Caption renders a left-aligned text block over the style's background
// color. The image spans the given width; its height grows with the
// number of lines. Used as a bottom-left overlay on clips.
func Caption(text string, width int, style Style) (*image.RGBA, error) {
	face, err := loadFace(style.FontPath, float64(style.Fontsize))
	if err != nil {
		return nil, err
	}
	defer face.Close()

	textCol, err := ParseColor(style.TextColor)
	if err != nil {
		return nil, err
	}
	bgCol, err := ParseColor(style.BgColor)
	if err != nil {
		return nil, err
	}

	lines := splitLines(text)
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	height := len(lines)*lineHeight + 2*captionPadding

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bgCol), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textCol),
		Face: face,
	}
	y := captionPadding + metrics.Ascent.Ceil()
	for _, line := range lines {
		d.Dot = fixed.P(captionPadding, y)
		d.DrawString(line)
		y += lineHeight
	}
	return img, nil
}

const qrSize = 160

// Card renders a full-frame card with centered text, for intro and outro
// segments. When link is non-empty a QR code for it is placed in the
// bottom-right corner.
func Card(text string, width, height int, style Style, link string) (*image.RGBA, error) {
	face, err := loadFace(style.FontPath, float64(style.Fontsize))
	if err != nil {
		return nil, err
	}
	defer face.Close()

	textCol, err := ParseColor(style.TextColor)
	if err != nil {
		return nil, err
	}
	bgCol, err := ParseColor(style.BgColor)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bgCol), image.Point{}, draw.Src)

	lines := splitLines(text)
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	blockHeight := len(lines) * lineHeight

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textCol),
		Face: face,
	}
	y := (height-blockHeight)/2 + metrics.Ascent.Ceil()
	for _, line := range lines {
		lineWidth := font.MeasureString(face, line).Ceil()
		d.Dot = fixed.P((width-lineWidth)/2, y)
		d.DrawString(line)
		y += lineHeight
	}

	if link != "" {
		qr, err := qrcode.New(link, qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("build QR for %q: %w", link, err)
		}
		qrImg := qr.Image(qrSize)
		pos := image.Pt(width-qrSize-captionPadding*2, height-qrSize-captionPadding*2)
		draw.Draw(img, image.Rectangle{Min: pos, Max: pos.Add(image.Pt(qrSize, qrSize))},
			qrImg, qrImg.Bounds().Min, draw.Over)
	}
	return img, nil
}

// WritePNG saves an image as a PNG file.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func loadFace(path string, size float64) (font.Face, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		data = b
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	return face, nil
}

func splitLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
