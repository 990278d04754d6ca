package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/lavalamp/internal/engine"
	"github.com/san-kum/lavalamp/internal/metrics"
	"github.com/san-kum/lavalamp/internal/random"
	"github.com/san-kum/lavalamp/internal/sim"
)

// ParameterSweep runs the same seed headless across a range of values for
// one tunable.
type ParameterSweep struct {
	Param    string
	Min      float64
	Max      float64
	NumSteps int

	Width, Height int
	Ticks         int
	Density       float64
	Seed          int64
	Base          sim.Params
}

// SweepResult holds the summary metrics for one parameter value.
type SweepResult struct {
	Value   float64
	Metrics map[string]float64
}

// RunSweep executes a parameter sweep. progress, if non-nil, is called after
// each value.
func RunSweep(ctx context.Context, sw ParameterSweep, progress func(i int, r SweepResult)) ([]SweepResult, error) {
	if sw.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sw.NumSteps)
	}
	if _, err := sw.Base.Get(sw.Param); err != nil {
		return nil, err
	}

	step := 0.0
	if sw.NumSteps > 1 {
		step = (sw.Max - sw.Min) / float64(sw.NumSteps-1)
	}

	results := make([]SweepResult, 0, sw.NumSteps)
	for i := 0; i < sw.NumSteps; i++ {
		v := sw.Min + float64(i)*step
		p, err := sw.Base.Set(sw.Param, v)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%v: %w", sw.Param, v, err)
		}

		e, err := engine.New(engine.Options{
			Density: sw.Density,
			Params:  p,
			Rand:    random.New(sw.Seed),
		})
		if err != nil {
			return results, err
		}
		c := metrics.NewCollector(1, metrics.Defaults()...)
		e.AddObserver(c)

		if err := e.Run(ctx, engine.NewHeadless(sw.Width, sw.Height, sw.Ticks)); err != nil {
			return results, err
		}

		r := SweepResult{Value: v, Metrics: c.Summary()}
		results = append(results, r)
		if progress != nil {
			progress(i, r)
		}
	}
	return results, nil
}
