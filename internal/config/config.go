package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lavalamp/internal/colorspace"
	"github.com/san-kum/lavalamp/internal/palette"
	"github.com/san-kum/lavalamp/internal/sim"
)

const (
	DefaultBackend = "tui"
	DefaultFrame   = 16 * time.Millisecond
	DefaultDensity = 1.25
	DefaultColor   = "#ff5014"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Backends lists the accepted values of Config.Backend.
var Backends = []string{"tui", "tcell", "gui"}

type Config struct {
	Backend  string        `yaml:"backend"`
	Seed     int64         `yaml:"seed"`
	Frame    time.Duration `yaml:"frame"`
	Theme    string        `yaml:"theme,omitempty"`
	Mono     bool          `yaml:"mono"`
	LogFile  string        `yaml:"log_file,omitempty"`
	LogLevel string        `yaml:"log_level"`
	Sim      SimConfig     `yaml:"sim"`
	Color    ColorConfig   `yaml:"color"`
}

type SimConfig struct {
	Density     float64 `yaml:"density"`
	Speed       float64 `yaml:"speed"`
	Jitter      float64 `yaml:"jitter"`
	VelRangeX   float64 `yaml:"vel_range_x"`
	VelRangeY   float64 `yaml:"vel_range_y"`
	Buoyancy    float64 `yaml:"buoyancy"`
	FallGain    float64 `yaml:"fall_gain"`
	FallTrigger float64 `yaml:"fall_trigger"`
	FallChance  float64 `yaml:"fall_chance"`
	FallSettle  float64 `yaml:"fall_settle"`
}

type ColorConfig struct {
	Base            string  `yaml:"base"`
	Background      bool    `yaml:"background"`
	Threshold       float64 `yaml:"threshold"`
	HueShift        float64 `yaml:"hue_shift"`
	BackgroundScale float64 `yaml:"background_scale"`
}

func DefaultConfig() *Config {
	p := sim.DefaultParams()
	return &Config{
		Backend:  DefaultBackend,
		Frame:    DefaultFrame,
		LogLevel: "info",
		Sim: SimConfig{
			Density:     DefaultDensity,
			Speed:       p.SpeedScale,
			Jitter:      p.Jitter,
			VelRangeX:   p.VelRangeX,
			VelRangeY:   p.VelRangeY,
			Buoyancy:    p.Buoyancy,
			FallGain:    p.FallGain,
			FallTrigger: p.FallTrigger,
			FallChance:  p.FallChance,
			FallSettle:  p.FallSettle,
		},
		Color: ColorConfig{
			Base:            DefaultColor,
			Background:      p.Background,
			Threshold:       p.Threshold,
			HueShift:        p.HueShift,
			BackgroundScale: p.BackgroundScale,
		},
	}
}

// Load reads path over the defaults, so omitted keys keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	if !validBackend(c.Backend) {
		return fmt.Errorf("%w: backend must be one of %v, got %q", ErrInvalidConfig, Backends, c.Backend)
	}
	if c.Frame <= 0 {
		return fmt.Errorf("%w: frame interval must be positive, got %v", ErrInvalidConfig, c.Frame)
	}
	if c.Sim.Density <= 0 {
		return fmt.Errorf("%w: density must be positive, got %v", ErrInvalidConfig, c.Sim.Density)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level must be debug, info, warn or error, got %q", ErrInvalidConfig, c.LogLevel)
	}
	if _, err := c.Params(); err != nil {
		return err
	}
	return nil
}

// Params builds the simulation parameters. A theme, when set, replaces the
// base colour and hue shift.
func (c *Config) Params() (sim.Params, error) {
	base, err := colorspace.ParseHex(c.Color.Base)
	if err != nil {
		return sim.Params{}, fmt.Errorf("%w: color.base: %v", ErrInvalidConfig, err)
	}
	p := sim.Params{
		SpeedScale:      c.Sim.Speed,
		Jitter:          c.Sim.Jitter,
		VelRangeX:       c.Sim.VelRangeX,
		VelRangeY:       c.Sim.VelRangeY,
		Buoyancy:        c.Sim.Buoyancy,
		FallGain:        c.Sim.FallGain,
		FallTrigger:     c.Sim.FallTrigger,
		FallChance:      c.Sim.FallChance,
		FallSettle:      c.Sim.FallSettle,
		Threshold:       c.Color.Threshold,
		BaseColor:       base,
		Background:      c.Color.Background,
		HueShift:        c.Color.HueShift,
		BackgroundScale: c.Color.BackgroundScale,
	}
	if c.Theme != "" {
		th, ok := palette.GetTheme(c.Theme)
		if !ok {
			return sim.Params{}, fmt.Errorf("%w: unknown theme %q", ErrInvalidConfig, c.Theme)
		}
		p.BaseColor = th.Base
		p.HueShift = th.HueShift
	}
	if err := p.Validate(); err != nil {
		return sim.Params{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return p, nil
}

func validBackend(b string) bool {
	for _, v := range Backends {
		if v == b {
			return true
		}
	}
	return false
}
