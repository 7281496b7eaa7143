package titlecard

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"white", color.NRGBA{255, 255, 255, 255}},
		{"Black", color.NRGBA{0, 0, 0, 255}},
		{"#ff8000", color.NRGBA{255, 128, 0, 255}},
		{"#ff800080", color.NRGBA{255, 128, 0, 128}},
		{"rgba(0,0,0,0.5)", color.NRGBA{0, 0, 0, 128}},
		{"rgba(10, 20, 30, 1)", color.NRGBA{10, 20, 30, 255}},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseColor(%q): got %+v want %+v", c.in, got, c.want)
		}
	}

	for _, bad := range []string{"", "mauve-ish", "#ff80", "rgba(1,2,3)", "rgba(0,0,0,2)"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q): expected error", bad)
		}
	}
}

func TestCaptionSizesToText(t *testing.T) {
	style := Style{Fontsize: 30, TextColor: "white", BgColor: "rgba(0,0,0,0.5)"}

	one, err := Caption("Demo", 1920, style)
	if err != nil {
		t.Fatalf("Caption: %v", err)
	}
	if one.Bounds().Dx() != 1920 {
		t.Errorf("width: got %d want 1920", one.Bounds().Dx())
	}

	three, err := Caption("Demo\nSound Designer\nClient: Acme", 1920, style)
	if err != nil {
		t.Fatalf("Caption: %v", err)
	}
	if three.Bounds().Dy() <= one.Bounds().Dy() {
		t.Errorf("three-line caption (%dpx) should be taller than one-line (%dpx)",
			three.Bounds().Dy(), one.Bounds().Dy())
	}
}

func TestCardDimensionsAndQR(t *testing.T) {
	style := Style{Fontsize: 50, TextColor: "white", BgColor: "black"}

	plain, err := Card("Thanks for watching", 1920, 1080, style, "")
	if err != nil {
		t.Fatalf("Card: %v", err)
	}
	if plain.Bounds().Dx() != 1920 || plain.Bounds().Dy() != 1080 {
		t.Errorf("card size: got %dx%d", plain.Bounds().Dx(), plain.Bounds().Dy())
	}

	linked, err := Card("Thanks for watching", 1920, 1080, style, "https://example.com/portfolio")
	if err != nil {
		t.Fatalf("Card with link: %v", err)
	}

	// The QR region sits in the bottom-right corner; with a link at least
	// one pixel there must differ from the plain black card.
	minX := 1920 - qrSize - captionPadding*2
	minY := 1080 - qrSize - captionPadding*2
	changed := false
	for y := minY; y < minY+qrSize && !changed; y += 4 {
		for x := minX; x < minX+qrSize; x += 4 {
			if plain.At(x, y) != linked.At(x, y) {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("QR code did not change the bottom-right corner")
	}
}

func TestCardRejectsBadColors(t *testing.T) {
	if _, err := Card("X", 100, 100, Style{Fontsize: 20, TextColor: "nope", BgColor: "black"}, ""); err == nil {
		t.Error("bad text color should error")
	}
	if _, err := Caption("X", 100, Style{Fontsize: 20, TextColor: "white", BgColor: "nope"}); err == nil {
		t.Error("bad background color should error")
	}
}

func TestWritePNG(t *testing.T) {
	img, err := Caption("Demo", 320, Style{Fontsize: 20, TextColor: "white", BgColor: "black"})
	if err != nil {
		t.Fatalf("Caption: %v", err)
	}
	path := filepath.Join(t.TempDir(), "caption.png")
	if err := WritePNG(img, path); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty PNG, got %v / %v", info, err)
	}
}
