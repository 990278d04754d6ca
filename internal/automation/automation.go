package automation

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lavalamp/internal/engine"
	"github.com/san-kum/lavalamp/internal/palette"
	"github.com/san-kum/lavalamp/internal/sim"
)

// Scenario is a scripted list of parameter changes keyed by tick.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step applies at the first tick >= At.
type Step struct {
	At     uint64             `yaml:"at"`
	Params map[string]float64 `yaml:"params"`
	Theme  string             `yaml:"theme,omitempty"`
	Reseed bool               `yaml:"reseed,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// Validate checks every step against the default parameters and sorts the
// steps by tick.
func (s *Scenario) Validate() error {
	base := sim.DefaultParams()
	for i, step := range s.Steps {
		if _, err := step.apply(base); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].At < s.Steps[j].At })
	return nil
}

func (st Step) apply(p sim.Params) (sim.Params, error) {
	if st.Theme != "" {
		th, ok := palette.GetTheme(st.Theme)
		if !ok {
			return p, fmt.Errorf("unknown theme %q", st.Theme)
		}
		p.BaseColor = th.Base
		p.HueShift = th.HueShift
	}

	names := make([]string, 0, len(st.Params))
	for k := range st.Params {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		next, err := p.Set(name, st.Params[name])
		if err != nil {
			return p, err
		}
		p = next
	}
	return p, nil
}

// Director replays a scenario against a running engine. It is an
// engine.Observer; changes apply from the tick after the one that triggered
// them.
type Director struct {
	scenario *Scenario
	next     int
	log      *slog.Logger
	err      error
}

func NewDirector(s *Scenario, log *slog.Logger) *Director {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Director{scenario: s, log: log}
}

func (d *Director) OnTick(e *engine.Engine, f *engine.Frame) {
	for d.next < len(d.scenario.Steps) && d.scenario.Steps[d.next].At <= f.Tick {
		step := d.scenario.Steps[d.next]
		d.next++

		p, err := step.apply(e.Params())
		if err == nil {
			err = e.SetParams(p)
		}
		if err != nil {
			d.log.Error("scenario step rejected", "tick", f.Tick, "at", step.At, "error", err)
			if d.err == nil {
				d.err = fmt.Errorf("step at tick %d: %w", step.At, err)
			}
			continue
		}
		if step.Reseed {
			e.Reseed()
		}
		d.log.Info("scenario step applied", "tick", f.Tick, "at", step.At, "params", step.Params, "theme", step.Theme)
	}
}

// Done reports whether every step has been applied.
func (d *Director) Done() bool { return d.next >= len(d.scenario.Steps) }

func (d *Director) Err() error { return d.err }
