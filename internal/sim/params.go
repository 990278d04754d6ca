package sim

import (
	"fmt"
	"math"
	"sort"
)

// paramFields maps the tunable names used by scenarios and the TUI onto
// Params fields. Boolean fields treat any non-zero value as true.
var paramFields = map[string]func(p *Params) *float64{
	"speed":            func(p *Params) *float64 { return &p.SpeedScale },
	"jitter":           func(p *Params) *float64 { return &p.Jitter },
	"buoyancy":         func(p *Params) *float64 { return &p.Buoyancy },
	"fall_gain":        func(p *Params) *float64 { return &p.FallGain },
	"fall_trigger":     func(p *Params) *float64 { return &p.FallTrigger },
	"fall_chance":      func(p *Params) *float64 { return &p.FallChance },
	"fall_settle":      func(p *Params) *float64 { return &p.FallSettle },
	"threshold":        func(p *Params) *float64 { return &p.Threshold },
	"hue_shift":        func(p *Params) *float64 { return &p.HueShift },
	"background_scale": func(p *Params) *float64 { return &p.BackgroundScale },
}

// ParamNames lists the names accepted by Set, sorted.
func ParamNames() []string {
	names := make([]string, 0, len(paramFields)+1)
	for k := range paramFields {
		names = append(names, k)
	}
	names = append(names, "background")
	sort.Strings(names)
	return names
}

// Get returns the named tunable.
func (p Params) Get(name string) (float64, error) {
	if name == "background" {
		if p.Background {
			return 1, nil
		}
		return 0, nil
	}
	field, ok := paramFields[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return *field(&p), nil
}

// Set returns a copy of p with the named tunable replaced.
func (p Params) Set(name string, v float64) (Params, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return p, fmt.Errorf("%w: %s=%v", ErrParamBounds, name, v)
	}
	if name == "background" {
		p.Background = v != 0
		return p, nil
	}
	field, ok := paramFields[name]
	if !ok {
		return p, fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	*field(&p) = v
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate checks the ranges the integrator and colour mapper rely on.
func (p Params) Validate() error {
	switch {
	case p.SpeedScale < 0:
		return fmt.Errorf("%w: speed must be >= 0, got %v", ErrParamBounds, p.SpeedScale)
	case p.Jitter < 0 || p.Jitter >= 1:
		return fmt.Errorf("%w: jitter must be in [0, 1), got %v", ErrParamBounds, p.Jitter)
	case p.VelRangeX < 0 || p.VelRangeY < 0:
		return fmt.Errorf("%w: velocity ranges must be >= 0", ErrParamBounds)
	case p.FallTrigger < 0 || p.FallTrigger > 1:
		return fmt.Errorf("%w: fall_trigger must be in [0, 1], got %v", ErrParamBounds, p.FallTrigger)
	case p.FallChance < 0 || p.FallChance > 1:
		return fmt.Errorf("%w: fall_chance must be in [0, 1], got %v", ErrParamBounds, p.FallChance)
	case p.FallSettle < 0:
		return fmt.Errorf("%w: fall_settle must be >= 0, got %v", ErrParamBounds, p.FallSettle)
	case p.Threshold <= 0 || p.Threshold > 1:
		// Colouring sees values clamped to 1, so a higher cutoff paints nothing.
		return fmt.Errorf("%w: threshold must be in (0, 1], got %v", ErrParamBounds, p.Threshold)
	case p.BackgroundScale < 0 || p.BackgroundScale > 1:
		return fmt.Errorf("%w: background_scale must be in [0, 1], got %v", ErrParamBounds, p.BackgroundScale)
	}
	return nil
}
