package screen

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/lavalamp/internal/engine"
	"github.com/san-kum/lavalamp/internal/palette"
)

func newSim(t *testing.T, mono bool) (tcell.SimulationScreen, *Screen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(4, 2)
	s := Wrap(sim, mono)
	t.Cleanup(s.Close)
	return sim, s
}

func frame() engine.Frame {
	return engine.Frame{
		W: 4,
		H: 2,
		Rows: [][]palette.Color{
			{palette.RGB(255, 80, 20), palette.Default, palette.Default, palette.Default},
			{palette.Default, palette.Default, palette.Default, palette.RGB(0, 0, 255)},
		},
	}
}

func TestExtent(t *testing.T) {
	_, s := newSim(t, false)
	w, h, err := s.Extent()
	if err != nil || w != 4 || h != 2 {
		t.Errorf("Extent = %d, %d, %v", w, h, err)
	}
}

func TestRender_Colour(t *testing.T) {
	sim, s := newSim(t, false)
	if err := s.Render(frame()); err != nil {
		t.Fatal(err)
	}

	_, _, style, _ := sim.GetContent(0, 0)
	_, bg, _ := style.Decompose()
	if bg != tcell.NewRGBColor(255, 80, 20) {
		t.Errorf("top-left background = %v", bg)
	}

	_, _, style, _ = sim.GetContent(3, 1)
	_, bg, _ = style.Decompose()
	if bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("bottom-right background = %v", bg)
	}

	_, _, style, _ = sim.GetContent(1, 0)
	if style != tcell.StyleDefault {
		t.Errorf("default cell style = %v", style)
	}
}

func TestRender_Mono(t *testing.T) {
	sim, s := newSim(t, true)
	if err := s.Render(frame()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, FillGlyph},
		{1, 0, ' '},
		{3, 1, FillGlyph},
		{0, 1, ' '},
	}
	for _, tt := range tests {
		if r, _, _, _ := sim.GetContent(tt.x, tt.y); r != tt.want {
			t.Errorf("cell (%d,%d) = %q, want %q", tt.x, tt.y, r, tt.want)
		}
	}
}

func TestPoll(t *testing.T) {
	sim, s := newSim(t, false)

	sig, err := s.Poll(5 * time.Millisecond)
	if err != nil || sig != engine.SignalNone {
		t.Fatalf("idle poll = %v, %v", sig, err)
	}

	for _, r := range []rune{'x', 'q'} {
		if err := sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)); err != nil {
			t.Fatal(err)
		}
	}
	if !pollUntilQuit(s) {
		t.Fatal("q key never quit")
	}
	// q was the last event, so x must not have been taken as a quit.
	if sig, _ := s.Poll(5 * time.Millisecond); sig != engine.SignalNone {
		t.Errorf("extra signal %v after q", sig)
	}

	if err := sim.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)); err != nil {
		t.Fatal(err)
	}
	if !pollUntilQuit(s) {
		t.Error("ctrl+c never quit")
	}
}

func TestPoll_OtherEventsKeepWaiting(t *testing.T) {
	sim, s := newSim(t, false)

	for _, r := range []rune{'x', 'y', 'z'} {
		if err := sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)); err != nil {
			t.Fatal(err)
		}
	}
	start := time.Now()
	sig, err := s.Poll(50 * time.Millisecond)
	if err != nil || sig != engine.SignalNone {
		t.Fatalf("Poll = %v, %v", sig, err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Poll returned after %v, before its timeout", elapsed)
	}
}

func TestClose_StopsBlockedPump(t *testing.T) {
	sim, s := newSim(t, false)

	// Fill the event channel with nobody polling so the pump blocks on send.
	deadline := time.Now().Add(5 * time.Second)
	for len(s.events) < cap(s.events) {
		if time.Now().After(deadline) {
			t.Fatalf("event channel stuck at %d", len(s.events))
		}
		_ = sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
		time.Sleep(time.Millisecond)
	}
	_ = sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))

	s.Close()
	select {
	case <-s.exited:
	case <-time.After(time.Second):
		t.Fatal("event pump still running after Close")
	}
	s.Close()
}

// pollUntilQuit skips unrelated events such as the initial resize.
func pollUntilQuit(s *Screen) bool {
	for i := 0; i < 10; i++ {
		sig, err := s.Poll(time.Second)
		if err != nil {
			return false
		}
		if sig == engine.SignalQuit {
			return true
		}
	}
	return false
}
