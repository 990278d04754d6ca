// Package screen paints frames on a terminal through tcell.
package screen

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/lavalamp/internal/engine"
)

// FillGlyph marks an inside cell when colour is off.
const FillGlyph = '■'

// Screen is an engine.Surface backed by a tcell screen. A goroutine pumps
// tcell events into a channel; Poll is the only consumer.
type Screen struct {
	scr    tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
	mono   bool
}

// New initialises the terminal. Call Close to restore it.
func New(mono bool) (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := scr.Init(); err != nil {
		return nil, err
	}
	return Wrap(scr, mono), nil
}

// Wrap uses an already initialised screen.
func Wrap(scr tcell.Screen, mono bool) *Screen {
	scr.HideCursor()
	scr.Clear()

	s := &Screen{
		scr:    scr,
		events: make(chan tcell.Event, 100),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		mono:   mono,
	}
	go s.pump()
	return s
}

// pump stops when the screen is finalised or Close is called, even with
// nobody reading events.
func (s *Screen) pump() {
	defer close(s.exited)
	defer close(s.events)
	for {
		ev := s.scr.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

func (s *Screen) Extent() (int, int, error) {
	w, h := s.scr.Size()
	return w, h, nil
}

func (s *Screen) Render(f engine.Frame) error {
	for y, row := range f.Rows {
		for x, c := range row {
			switch {
			case s.mono && c.Set:
				s.scr.SetContent(x, y, FillGlyph, nil, tcell.StyleDefault)
			case s.mono || !c.Set:
				s.scr.SetContent(x, y, ' ', nil, tcell.StyleDefault)
			default:
				bg := tcell.NewRGBColor(int32(c.RGB.R), int32(c.RGB.G), int32(c.RGB.B))
				s.scr.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(bg))
			}
		}
	}
	s.scr.Show()
	return nil
}

// Poll waits out timeout unless q or Ctrl+C arrives first. A resize
// resyncs the screen so the next frame repaints everything.
func (s *Screen) Poll(timeout time.Duration) (engine.Signal, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return engine.SignalNone, engine.ErrSurfaceClosed
			}
			if sig := s.handle(ev); sig == engine.SignalQuit {
				return sig, nil
			}
		case <-timer.C:
			return engine.SignalNone, nil
		}
	}
}

func (s *Screen) handle(ev tcell.Event) engine.Signal {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return engine.SignalQuit
		}
	case *tcell.EventResize:
		s.scr.Sync()
	}
	return engine.SignalNone
}

// Close restores the terminal and stops the event pump. It is safe to call
// more than once.
func (s *Screen) Close() {
	s.once.Do(func() {
		close(s.done)
		s.scr.Fini()
	})
}
