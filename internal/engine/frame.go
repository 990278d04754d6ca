package engine

import "github.com/san-kum/lavalamp/internal/palette"

// Frame is one tick ready for painting. Rows[0] is the top screen row.
type Frame struct {
	Tick uint64
	W, H int
	Rows [][]palette.Color

	Blobs   int
	Falling int
	Inside  int // cells at or above the threshold
}

// Coverage is the fraction of cells inside a blob, or 0 for an empty frame.
func (f Frame) Coverage() float64 {
	if f.W <= 0 || f.H <= 0 {
		return 0
	}
	return float64(f.Inside) / float64(f.W*f.H)
}

// Cell returns the colour at a screen position, row 0 at the top.
func (f Frame) Cell(row, col int) palette.Color {
	if row < 0 || row >= len(f.Rows) || col < 0 || col >= len(f.Rows[row]) {
		return palette.Default
	}
	return f.Rows[row][col]
}
