package config

import "sort"

// Presets are complete configurations selectable by name.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"lava": preset(func(c *Config) {
		c.Theme = "lava"
		c.Sim.Density = 1.0
		c.Sim.Speed = 0.8
		c.Color.Threshold = 0.55
	}),
	"calm": preset(func(c *Config) {
		c.Theme = "ocean"
		c.Sim.Speed = 0.5
		c.Sim.Jitter = 0.05
		c.Sim.FallChance = 0.005
	}),
	"storm": preset(func(c *Config) {
		c.Theme = "cyberpunk"
		c.Sim.Density = 0.8
		c.Sim.Speed = 2.0
		c.Sim.Jitter = 0.3
		c.Sim.FallChance = 0.05
	}),
	"mono": preset(func(c *Config) {
		c.Mono = true
		c.Color.Background = false
	}),
}

func preset(mod func(c *Config)) *Config {
	c := DefaultConfig()
	mod(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
