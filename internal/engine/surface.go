package engine

import "time"

// Signal is what a surface reports back after waiting for input.
type Signal int

const (
	SignalNone Signal = iota
	SignalQuit
)

func (s Signal) String() string {
	switch s {
	case SignalQuit:
		return "quit"
	default:
		return "none"
	}
}

// Surface is a display the engine can paint on.
type Surface interface {
	// Extent returns the current viewport in cells.
	Extent() (w, h int, err error)
	// Render paints one frame.
	Render(f Frame) error
	// Poll waits up to timeout for input and reports whether to quit.
	Poll(timeout time.Duration) (Signal, error)
}

// Headless is an in-memory surface of fixed size that asks to quit after
// Ticks frames. It keeps the last frame for inspection.
type Headless struct {
	W, H  int
	Ticks int

	Last     Frame
	Rendered int
}

func NewHeadless(w, h, ticks int) *Headless {
	return &Headless{W: w, H: h, Ticks: ticks}
}

func (s *Headless) Extent() (int, int, error) {
	return s.W, s.H, nil
}

func (s *Headless) Render(f Frame) error {
	s.Last = f
	s.Rendered++
	return nil
}

// Poll never sleeps.
func (s *Headless) Poll(time.Duration) (Signal, error) {
	if s.Rendered >= s.Ticks {
		return SignalQuit, nil
	}
	return SignalNone, nil
}
