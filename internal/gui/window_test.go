package gui

import (
	"errors"
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/lavalamp/internal/engine"
	"github.com/san-kum/lavalamp/internal/palette"
)

func TestGrid(t *testing.T) {
	tests := []struct {
		w, h, cell int
		cols, rows int
	}{
		{1280, 720, 8, 160, 45},
		{1283, 725, 8, 160, 45},
		{10, 10, 8, 1, 0},
		{100, 100, 0, 0, 0},
	}
	for _, tt := range tests {
		cols, rows := Grid(tt.w, tt.h, tt.cell)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("Grid(%d, %d, %d) = %d, %d; want %d, %d", tt.w, tt.h, tt.cell, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestRunRect(t *testing.T) {
	x, y, w, h := RunRect(3, palette.Run{Start: 5, Len: 4}, 8)
	if x != 40 || y != 48 || w != 32 || h != 16 {
		t.Errorf("RunRect = %d, %d, %d, %d", x, y, w, h)
	}
}

func TestCellColor(t *testing.T) {
	if _, ok := cellColor(palette.Default, false); ok {
		t.Error("default cells should not be drawn")
	}
	c, ok := cellColor(palette.RGB(255, 80, 20), false)
	if !ok || c != rl.NewColor(255, 80, 20, 255) {
		t.Errorf("colour cell = %v, %v", c, ok)
	}
	if c, _ := cellColor(palette.RGB(1, 2, 3), true); c != ColMono {
		t.Errorf("mono cell = %v", c)
	}
}

// fakeInput holds q pressed only until the first wait, like raylib key
// state that a later input poll would clear.
type fakeInput struct {
	qDown   bool
	closing bool
	waited  []float64
}

func (f *fakeInput) input() input {
	return input{
		keyPressed:  func(key int32) bool { return key == rl.KeyQ && f.qDown },
		shouldClose: func() bool { return f.closing },
		wait: func(s float64) {
			f.waited = append(f.waited, s)
			f.qDown = false
		},
	}
}

func TestPoll(t *testing.T) {
	tests := []struct {
		name    string
		fake    fakeInput
		want    engine.Signal
		wantErr error
		waits   int
	}{
		{"idle", fakeInput{}, engine.SignalNone, nil, 1},
		{"q from the last frame", fakeInput{qDown: true}, engine.SignalQuit, nil, 0},
		{"window closed", fakeInput{closing: true}, engine.SignalNone, engine.ErrSurfaceClosed, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.fake
			w := &Window{cell: DefaultCell, in: f.input()}
			sig, err := w.Poll(16 * time.Millisecond)
			if sig != tt.want || !errors.Is(err, tt.wantErr) {
				t.Fatalf("Poll = %v, %v; want %v, %v", sig, err, tt.want, tt.wantErr)
			}
			if len(f.waited) != tt.waits {
				t.Errorf("waited %d times, want %d", len(f.waited), tt.waits)
			}
			if tt.waits == 1 && f.waited[0] != 0.016 {
				t.Errorf("wait = %vs", f.waited[0])
			}
		})
	}
}
