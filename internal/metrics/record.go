package metrics

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/lavalamp/internal/analysis"
	"github.com/san-kum/lavalamp/internal/engine"
	"github.com/san-kum/lavalamp/internal/field"
	"github.com/san-kum/lavalamp/internal/sim"
)

// Record is the per-tick summary written to trace files and the HUD.
type Record struct {
	Tick      uint64  `csv:"tick"`
	Width     int     `csv:"width"`
	Height    int     `csv:"height"`
	Blobs     int     `csv:"blobs"`
	Falling   int     `csv:"falling"`
	Coverage  float64 `csv:"coverage"`
	Regions   int     `csv:"regions"`
	Largest   int     `csv:"largest"`
	MeanSpeed float64 `csv:"mean_speed"`
	Peak      float64 `csv:"peak"`
}

// NewRecord summarises one tick. g may be nil for an empty viewport.
func NewRecord(f *engine.Frame, g *field.Grid, blobs sim.BlobSet, threshold float64) Record {
	r := Record{
		Tick:     f.Tick,
		Width:    f.W,
		Height:   f.H,
		Blobs:    f.Blobs,
		Falling:  f.Falling,
		Coverage: f.Coverage(),
	}
	if len(blobs) > 0 {
		r.MeanSpeed = stat.Mean(blobs.Speeds(), nil)
	}
	if g != nil {
		mask := g.Mask(threshold)
		comps := analysis.Components(mask)
		r.Regions = len(comps)
		if len(comps) > 0 {
			r.Largest = len(comps[0])
			for _, c := range comps[1:] {
				r.Largest = max(r.Largest, len(c))
			}
		}
		r.Peak = g.Peak()
	}
	return r
}

func (r Record) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("tick", r.Tick),
		slog.Int("blobs", r.Blobs),
		slog.Int("falling", r.Falling),
		slog.Float64("coverage", r.Coverage),
		slog.Int("regions", r.Regions),
		slog.Int("largest", r.Largest),
		slog.Float64("mean_speed", r.MeanSpeed),
	)
}
