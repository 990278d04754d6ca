// Package colorspace converts between RGB and HSV.
package colorspace

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Unit returns the channels scaled to [0, 1].
func (c RGB) Unit() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// ParseHex parses #rgb or #rrggbb.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("colorspace: parse %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// FromUnit truncates [0, 1] channels to 8 bits, clamping out-of-range input.
func FromUnit(r, g, b float64) RGB {
	return RGB{R: Channel(r * 255), G: Channel(g * 255), B: Channel(b * 255)}
}

// Channel truncates x to an 8-bit channel clamped to [0, 255]. NaN maps to 0.
func Channel(x float64) uint8 {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}

// ToHSV converts [0, 1] channels to hue in degrees [0, 360) and saturation
// and value in [0, 1]. Grey and black inputs yield zero hue and saturation.
func ToHSV(r, g, b float64) (h, s, v float64) {
	c := colorful.Color{R: clamp01(r), G: clamp01(g), B: clamp01(b)}
	return c.Hsv()
}

// FromHSV converts back to [0, 1] channels. Hue wraps into [0, 360).
func FromHSV(h, s, v float64) (r, g, b float64) {
	c := colorful.Hsv(WrapHue(h), clamp01(s), clamp01(v)).Clamped()
	return c.R, c.G, c.B
}

// WrapHue maps any finite hue onto [0, 360).
func WrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
