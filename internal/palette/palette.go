// Package palette turns field values into cell colours.
package palette

import (
	"math"

	"github.com/san-kum/lavalamp/internal/colorspace"
	"github.com/san-kum/lavalamp/internal/field"
	"github.com/san-kum/lavalamp/internal/sim"
)

// Color is a cell colour. The zero value is the terminal-default sentinel.
type Color struct {
	RGB colorspace.RGB
	Set bool
}

// Default leaves the cell to the renderer's default colour.
var Default = Color{}

func RGB(r, g, b uint8) Color {
	return Color{RGB: colorspace.RGB{R: r, G: g, B: b}, Set: true}
}

// Mapper applies one set of parameters to every cell of a frame.
type Mapper struct {
	p sim.Params
}

func New(p sim.Params) *Mapper {
	return &Mapper{p: p}
}

// Color maps a clamped field value at a row (0 = bottom) of an h-row grid.
func (m *Mapper) Color(value float64, row, h int) Color {
	if math.IsNaN(value) || value < 0 {
		value = 0
	}
	value = math.Min(value, 1)

	if value >= m.p.Threshold {
		return Color{RGB: m.shifted(value, row, h), Set: true}
	}
	if !m.p.Background {
		return Default
	}
	c := m.shifted(value, row, h)
	k := m.p.BackgroundScale
	return RGB(
		colorspace.Channel(k*float64(255-int(c.R))),
		colorspace.Channel(k*float64(255-int(c.G))),
		colorspace.Channel(k*float64(255-int(c.B))),
	)
}

// shifted scales the base colour by value and rotates its hue down by
// HueShift scaled to how close the row is to the bottom.
func (m *Mapper) shifted(value float64, row, h int) colorspace.RGB {
	r, g, b := m.p.BaseColor.Unit()
	hue, s, v := colorspace.ToHSV(r*value, g*value, b*value)
	hue -= m.p.HueShift * (1 - heightFraction(row, h))
	r, g, b = colorspace.FromHSV(hue, s, v)
	return colorspace.FromUnit(r, g, b)
}

func heightFraction(row, h int) float64 {
	if h <= 0 {
		return 0
	}
	f := float64(row) / float64(h)
	return math.Max(0, math.Min(f, 1))
}

// Frame colours every cell of g. The result is indexed [row][col] with row 0
// at the bottom, matching the grid.
func (m *Mapper) Frame(g *field.Grid) [][]Color {
	out := make([][]Color, g.H)
	for i := range out {
		out[i] = make([]Color, g.W)
		for j := range out[i] {
			out[i][j] = m.Color(g.Clamped(i, j), i, g.H)
		}
	}
	return out
}

// Run is a horizontal stretch of cells sharing one colour.
type Run struct {
	Start, Len int
	Color      Color
}

// Runs splits a row into maximal runs of equal colour, left to right.
func Runs(row []Color) []Run {
	var out []Run
	for start := 0; start < len(row); {
		end := start + 1
		for end < len(row) && row[end] == row[start] {
			end++
		}
		out = append(out, Run{Start: start, Len: end - start, Color: row[start]})
		start = end
	}
	return out
}
