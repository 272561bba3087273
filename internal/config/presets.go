package config

import (
	"sort"
	"time"

	"github.com/san-kum/colorfield/internal/field"
)

// Presets tweak the defaults. "parity" is the untouched walk every viewer
// agrees on; the others trade agreement for a different mood.
var Presets = map[string]func(*Config){
	"parity": func(c *Config) {},
	"calm": func(c *Config) {
		c.Walk.BaselineReturn = 0.7
		c.Walk.BaseDuration = 2 * time.Minute
		c.Walk.Jitter = 20 * time.Second
		c.Walk.CycleLength = 2 * time.Minute
		c.Modes.Gray = 4 * time.Second
	},
	"restless": func(c *Config) {
		c.Walk.BaselineReturn = 0.2
		c.Walk.BaseDuration = 15 * time.Second
		c.Walk.Jitter = 6 * time.Second
		c.Walk.CycleLength = 15 * time.Second
		c.Live.FPS = 60
	},
	"seasons-dark": func(c *Config) {
		c.Walk.Periods = [4]field.Weights{
			{0.5, 0.4, 0.1},
			{0.4, 0.5, 0.1},
			{0.3, 0.5, 0.2},
			{0.5, 0.4, 0.1},
		}
		c.Live.Theme = "night"
	},
	"gallery": func(c *Config) {
		c.Live.Backdrop = "#fafafa"
		c.Live.Theme = "paper"
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
