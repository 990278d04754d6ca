// Package gui paints frames into a raylib window. Each cell is a rectangle
// twice as tall as it is wide so the lamp keeps its terminal proportions.
package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/lavalamp/internal/engine"
	"github.com/san-kum/lavalamp/internal/palette"
)

var (
	ColBg   = rl.NewColor(10, 10, 10, 255)
	ColMono = rl.NewColor(180, 180, 180, 255)
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultCell   = 8
)

// Window is an engine.Surface backed by a resizable raylib window. raylib
// must be driven from the goroutine that opened the window.
type Window struct {
	cell int
	mono bool
	in   input
}

// input is the slice of raylib Poll depends on.
type input struct {
	keyPressed  func(key int32) bool
	shouldClose func() bool
	wait        func(seconds float64)
}

var raylibInput = input{
	keyPressed:  rl.IsKeyPressed,
	shouldClose: rl.WindowShouldClose,
	wait:        rl.WaitTime,
}

// Open creates the window. Call Close when done.
func Open(width, height, cell int, title string, mono bool) *Window {
	if cell <= 0 {
		cell = DefaultCell
	}
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetExitKey(0)
	return &Window{cell: cell, mono: mono, in: raylibInput}
}

func (w *Window) Extent() (int, int, error) {
	if !rl.IsWindowReady() {
		return 0, 0, engine.ErrNoViewport
	}
	cols, rows := Grid(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()), w.cell)
	return cols, rows, nil
}

func (w *Window) Render(f engine.Frame) error {
	if rl.WindowShouldClose() {
		return engine.ErrSurfaceClosed
	}
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	for row, cells := range f.Rows {
		for _, run := range palette.Runs(cells) {
			c, ok := cellColor(run.Color, w.mono)
			if !ok {
				continue
			}
			x, y, rw, rh := RunRect(row, run, w.cell)
			rl.DrawRectangle(x, y, rw, rh, c)
		}
	}
	rl.EndDrawing()
	return nil
}

// Poll reads the key state EndDrawing captured, then sleeps for timeout.
// A q pressed during the sleep is seen after the next frame. Closing the
// window ends the run.
func (w *Window) Poll(timeout time.Duration) (engine.Signal, error) {
	if w.in.shouldClose() {
		return engine.SignalNone, engine.ErrSurfaceClosed
	}
	if w.in.keyPressed(rl.KeyQ) {
		return engine.SignalQuit, nil
	}
	w.in.wait(timeout.Seconds())
	return engine.SignalNone, nil
}

func (w *Window) Close() {
	rl.CloseWindow()
}

// Grid converts a window size in pixels to whole cells.
func Grid(width, height, cell int) (cols, rows int) {
	if cell <= 0 {
		return 0, 0
	}
	return max(width/cell, 0), max(height/(2*cell), 0)
}

// RunRect is the pixel rectangle covered by a run on screen row row.
func RunRect(row int, run palette.Run, cell int) (x, y, w, h int32) {
	return int32(run.Start * cell), int32(row * 2 * cell), int32(run.Len * cell), int32(2 * cell)
}

// cellColor reports false for cells left to the background.
func cellColor(c palette.Color, mono bool) (rl.Color, bool) {
	switch {
	case !c.Set:
		return rl.Color{}, false
	case mono:
		return ColMono, true
	default:
		return rl.NewColor(c.RGB.R, c.RGB.G, c.RGB.B, 255), true
	}
}
