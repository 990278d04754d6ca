// Package field evaluates the inverse-distance metaball field over a grid.
package field

import (
	"math"

	"github.com/san-kum/lavalamp/internal/sim"
)

// MinDistance floors the cell-to-blob distance so a cell sitting on a blob
// gets a large finite influence instead of +Inf.
const MinDistance = 1e-3

// Grid is an H x W matrix of raw influence values. Row i holds cells at
// y = i, column j cells at x = j.
type Grid struct {
	W, H   int
	Values []float64
}

func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{W: w, H: h, Values: make([]float64, w*h)}
}

func (g *Grid) At(i, j int) float64 { return g.Values[i*g.W+j] }

// Clamped returns the value capped at 1, the range the colour mapper uses.
func (g *Grid) Clamped(i, j int) float64 {
	return math.Min(g.At(i, j), 1)
}

// Inside reports whether the cell reaches threshold.
func (g *Grid) Inside(i, j int, threshold float64) bool {
	return g.At(i, j) >= threshold
}

// Mask returns the thresholded grid as [row][col].
func (g *Grid) Mask(threshold float64) [][]bool {
	mask := make([][]bool, g.H)
	for i := range mask {
		mask[i] = make([]bool, g.W)
		for j := range mask[i] {
			mask[i][j] = g.Inside(i, j, threshold)
		}
	}
	return mask
}

// Count returns how many cells reach threshold.
func (g *Grid) Count(threshold float64) int {
	n := 0
	for _, v := range g.Values {
		if v >= threshold {
			n++
		}
	}
	return n
}

// Peak returns the largest raw value, or 0 for an empty grid.
func (g *Grid) Peak() float64 {
	peak := 0.0
	for _, v := range g.Values {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Influence is the summed 1/distance contribution of every blob at (x, y).
func Influence(blobs sim.BlobSet, x, y float64) float64 {
	sum := 0.0
	for _, b := range blobs {
		d := math.Hypot(x-b.Pos.X, y-b.Pos.Y)
		if math.IsNaN(d) {
			continue
		}
		if d < MinDistance {
			d = MinDistance
		}
		sum += 1 / d
	}
	return sum
}

// Evaluate computes a fresh w x h grid for blobs. An empty set gives zeros.
func Evaluate(blobs sim.BlobSet, w, h int) *Grid {
	return EvaluateInto(nil, blobs, w, h)
}

// EvaluateInto reuses dst when it has the right capacity.
func EvaluateInto(dst *Grid, blobs sim.BlobSet, w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if dst == nil || cap(dst.Values) < w*h {
		dst = NewGrid(w, h)
	}
	dst.W, dst.H = w, h
	dst.Values = dst.Values[:w*h]

	for i := 0; i < h; i++ {
		row := dst.Values[i*w : (i+1)*w]
		for j := range row {
			row[j] = Influence(blobs, float64(j), float64(i))
		}
	}
	return dst
}
