package colorspace

import (
	"math"
	"testing"
)

func TestToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		h, s, v float64
	}{
		{"red", 1, 0, 0, 0, 1, 1},
		{"green", 0, 1, 0, 120, 1, 1},
		{"blue", 0, 0, 1, 240, 1, 1},
		{"black", 0, 0, 0, 0, 0, 0},
		{"grey", 0.5, 0.5, 0.5, 0, 0, 0.5},
		{"white", 1, 1, 1, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := ToHSV(tt.r, tt.g, tt.b)
			if math.Abs(h-tt.h) > 1e-9 || math.Abs(s-tt.s) > 1e-9 || math.Abs(v-tt.v) > 1e-9 {
				t.Errorf("ToHSV(%v, %v, %v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.r, tt.g, tt.b, h, s, v, tt.h, tt.s, tt.v)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	colors := [][3]float64{
		{1, 0.3, 0.1},
		{0.2, 0.4, 0.9},
		{0.7, 0.7, 0.2},
		{0, 0, 0},
	}
	for _, c := range colors {
		h, s, v := ToHSV(c[0], c[1], c[2])
		r, g, b := FromHSV(h, s, v)
		if math.Abs(r-c[0]) > 1e-9 || math.Abs(g-c[1]) > 1e-9 || math.Abs(b-c[2]) > 1e-9 {
			t.Errorf("round trip of %v gave (%v, %v, %v)", c, r, g, b)
		}
	}
}

func TestFromHSV_NegativeHue(t *testing.T) {
	r1, g1, b1 := FromHSV(-60, 1, 1)
	r2, g2, b2 := FromHSV(300, 1, 1)
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Errorf("hue -60 and 300 differ: (%v %v %v) vs (%v %v %v)", r1, g1, b1, r2, g2, b2)
	}
}

func TestWrapHue(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-30, 330},
		{725, 5},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := WrapHue(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapHue(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{12.9, 12},
		{254.99, 254},
		{300, 255},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Channel(tt.in); got != tt.want {
			t.Errorf("Channel(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff5014")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if c != (RGB{255, 80, 20}) {
		t.Errorf("ParseHex = %+v", c)
	}
	if c.Hex() != "#ff5014" {
		t.Errorf("Hex() = %s", c.Hex())
	}

	if _, err := ParseHex("not-a-colour"); err == nil {
		t.Error("expected error for invalid hex")
	}
}
