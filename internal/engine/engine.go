package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/lavalamp/internal/field"
	"github.com/san-kum/lavalamp/internal/palette"
	"github.com/san-kum/lavalamp/internal/random"
	"github.com/san-kum/lavalamp/internal/sim"
)

// DefaultFrameInterval is the longest Run waits for input between frames.
const DefaultFrameInterval = 16 * time.Millisecond

// Observer is notified after every tick. It may read or adjust the engine;
// parameter changes apply from the next tick.
type Observer interface {
	OnTick(e *Engine, f *Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e *Engine, f *Frame)

func (fn ObserverFunc) OnTick(e *Engine, f *Frame) { fn(e, f) }

type Options struct {
	Density       float64
	FrameInterval time.Duration
	Params        sim.Params
	Rand          random.Source
	Logger        *slog.Logger
}

type Engine struct {
	density  float64
	interval time.Duration
	params   sim.Params
	mapper   *palette.Mapper
	rnd      random.Source
	log      *slog.Logger

	blobs  sim.BlobSet
	seeded bool
	w, h   int
	grid   *field.Grid
	tick   uint64
	last   Frame

	observers []Observer
}

func New(opts Options) (*Engine, error) {
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}
	if opts.Density < 0 {
		return nil, fmt.Errorf("%w: density must be >= 0, got %v", sim.ErrParamBounds, opts.Density)
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Rand == nil {
		opts.Rand = random.New(time.Now().UnixNano())
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		density:  opts.Density,
		interval: opts.FrameInterval,
		params:   opts.Params,
		mapper:   palette.New(opts.Params),
		rnd:      opts.Rand,
		log:      opts.Logger,
	}, nil
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Params() sim.Params { return e.params }

// SetParams replaces the tunables from the next tick on.
func (e *Engine) SetParams(p sim.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	e.params = p
	e.mapper = palette.New(p)
	return nil
}

// Blobs returns a copy of the current blob set.
func (e *Engine) Blobs() sim.BlobSet { return e.blobs.Clone() }

// Grid returns the field computed by the last tick. The grid is reused, so
// callers must not keep it across ticks.
func (e *Engine) Grid() *field.Grid { return e.grid }

// Last returns the most recent frame.
func (e *Engine) Last() Frame { return e.last }

func (e *Engine) Ticks() uint64 { return e.tick }

// Reseed drops the blob set; the next tick creates a fresh one.
func (e *Engine) Reseed() {
	e.blobs = nil
	e.seeded = false
}

// Tick advances the simulation once for a w x h viewport and returns the
// coloured frame. The blob set is created on the first call and keeps its
// size afterwards; a resize rescales positions into the new extent.
func (e *Engine) Tick(w, h int) Frame {
	w, h = max(w, 0), max(h, 0)

	switch {
	case !e.seeded:
		e.blobs = sim.NewBlobSet(w, h, e.density, e.params, e.rnd)
		e.seeded = true
		e.log.Info("blobs seeded", "width", w, "height", h, "count", len(e.blobs))
	case w != e.w || h != e.h:
		e.blobs = e.blobs.Rescale(e.w, e.h, w, h)
		e.log.Info("viewport resized", "from", fmt.Sprintf("%dx%d", e.w, e.h), "to", fmt.Sprintf("%dx%d", w, h))
	}
	e.w, e.h = w, h

	var resets int
	e.blobs, resets = sim.StepResets(e.blobs, float64(w), float64(h), e.params, e.rnd)
	if resets > 0 {
		e.log.Warn("non-finite blobs reset", "tick", e.tick+1, "count", resets)
	}
	e.grid = field.EvaluateInto(e.grid, e.blobs, w, h)

	rows := e.mapper.Frame(e.grid)
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	e.tick++
	f := Frame{
		Tick:    e.tick,
		W:       w,
		H:       h,
		Rows:    rows,
		Blobs:   len(e.blobs),
		Falling: e.blobs.Falling(),
		Inside:  e.grid.Count(e.params.Threshold),
	}
	for _, o := range e.observers {
		o.OnTick(e, &f)
	}
	e.last = f
	return f
}

// Run measures, ticks, renders and polls until the surface asks to quit,
// the surface closes or ctx is done. A quit or a closed surface returns nil.
func (e *Engine) Run(ctx context.Context, s Surface) error {
	start := e.tick
	defer func() {
		e.log.Info("engine stopped", "frames", e.tick-start)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		w, h, err := s.Extent()
		if err != nil {
			return &ViewportError{Tick: e.tick, Err: err}
		}

		f := e.Tick(w, h)
		if err := s.Render(f); err != nil {
			if errors.Is(err, ErrSurfaceClosed) {
				return nil
			}
			return fmt.Errorf("engine: render tick %d: %w", f.Tick, err)
		}

		sig, err := s.Poll(e.interval)
		if err != nil {
			if errors.Is(err, ErrSurfaceClosed) {
				return nil
			}
			return fmt.Errorf("engine: poll tick %d: %w", f.Tick, err)
		}
		if sig == SignalQuit {
			return nil
		}
	}
}
