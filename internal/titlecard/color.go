package titlecard

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.NRGBA{
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"black":  {A: 255},
	"red":    {R: 255, A: 255},
	"green":  {G: 128, A: 255},
	"blue":   {B: 255, A: 255},
	"yellow": {R: 255, G: 255, A: 255},
	"gray":   {R: 128, G: 128, B: 128, A: 255},
	"grey":   {R: 128, G: 128, B: 128, A: 255},
}

// ParseColor accepts the color spellings bucket configs use: a small set
// of names, #rrggbb / #rrggbbaa hex, and rgba(r,g,b,a) with byte channels
// and a 0..1 alpha (the form the default caption background uses).
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return color.NRGBA{}, fmt.Errorf("empty color")
	}

	if c, ok := namedColors[v]; ok {
		return c, nil
	}

	if strings.HasPrefix(v, "#") {
		return parseHex(v)
	}
	if strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")") {
		return parseRGBA(v)
	}
	return color.NRGBA{}, fmt.Errorf("unsupported color %q", s)
}

func parseHex(v string) (color.NRGBA, error) {
	hex := v[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("hex color %q must have 6 or 8 digits", v)
	}
	parsed, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("hex color %q: %w", v, err)
	}
	c := color.NRGBA{A: 255}
	if len(hex) == 8 {
		c.A = uint8(parsed & 0xff)
		parsed >>= 8
	}
	c.B = uint8(parsed & 0xff)
	c.G = uint8(parsed >> 8 & 0xff)
	c.R = uint8(parsed >> 16 & 0xff)
	return c, nil
}

func parseRGBA(v string) (color.NRGBA, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(v, "rgba("), ")")
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("rgba color %q must have 4 components", v)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return color.NRGBA{}, fmt.Errorf("rgba color %q: bad channel %q", v, parts[i])
		}
		channels[i] = uint8(n)
	}
	alpha, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || alpha < 0 || alpha > 1 {
		return color.NRGBA{}, fmt.Errorf("rgba color %q: alpha must be in [0,1]", v)
	}

	return color.NRGBA{
		R: channels[0],
		G: channels[1],
		B: channels[2],
		A: uint8(alpha*255 + 0.5),
	}, nil
}
