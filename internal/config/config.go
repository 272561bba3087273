package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/colorfield/internal/field"
	"github.com/san-kum/colorfield/internal/palette"
)

const (
	DefaultFPS   = 30
	DefaultTheme = "graphite"
	DefaultStep  = time.Second
	DefaultSpan  = 10 * time.Minute
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Walk  WalkConfig  `yaml:"walk"`
	Modes ModesConfig `yaml:"modes"`
	Hover HoverConfig `yaml:"hover"`
	Live  LiveConfig  `yaml:"live"`
	Trace TraceConfig `yaml:"trace"`
}

type WalkConfig struct {
	Buckets        [3]palette.Bucket `yaml:"buckets"`
	Periods        [4]field.Weights  `yaml:"periods"`
	BaselineReturn float64           `yaml:"baseline_return"`
	BaseDuration   time.Duration     `yaml:"base_duration"`
	Jitter         time.Duration     `yaml:"jitter"`
	CycleLength    time.Duration     `yaml:"cycle_length"`
}

type ModesConfig struct {
	White           time.Duration `yaml:"white"`
	Gray            time.Duration `yaml:"gray"`
	AccentAmplitude float64       `yaml:"accent_amplitude"`
	AccentScale     time.Duration `yaml:"accent_scale"`
}

type HoverConfig struct {
	Delay         time.Duration `yaml:"delay"`
	MinLeg        time.Duration `yaml:"min_leg"`
	MaxLeg        time.Duration `yaml:"max_leg"`
	LongLegChance float64       `yaml:"long_leg_chance"`
	MinLongLeg    time.Duration `yaml:"min_long_leg"`
	MaxLongLeg    time.Duration `yaml:"max_long_leg"`
	MinGray       uint8         `yaml:"min_gray"`
	MaxGray       uint8         `yaml:"max_gray"`
	Return        time.Duration `yaml:"return"`
	Rest          string        `yaml:"rest"`
}

type LiveConfig struct {
	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"`
	// Backdrop is the color the terminal starts from, "#rrggbb".
	Backdrop string `yaml:"backdrop"`
}

type TraceConfig struct {
	Step time.Duration `yaml:"step"`
	Span time.Duration `yaml:"span"`
}

func DefaultConfig() *Config {
	fp := field.DefaultParams()
	hp := field.DefaultHoverParams()
	return &Config{
		Walk: WalkConfig{
			Buckets:        fp.Buckets,
			Periods:        fp.Periods,
			BaselineReturn: fp.BaselineReturn,
			BaseDuration:   fp.BaseDuration,
			Jitter:         fp.Jitter,
			CycleLength:    fp.CycleLength,
		},
		Modes: ModesConfig{
			White:           fp.WhiteDuration,
			Gray:            fp.GrayDuration,
			AccentAmplitude: fp.AccentAmplitude,
			AccentScale:     fp.AccentScale,
		},
		Hover: HoverConfig{
			Delay:         hp.Delay,
			MinLeg:        hp.MinLeg,
			MaxLeg:        hp.MaxLeg,
			LongLegChance: hp.LongLegChance,
			MinLongLeg:    hp.MinLongLeg,
			MaxLongLeg:    hp.MaxLongLeg,
			MinGray:       hp.MinGray,
			MaxGray:       hp.MaxGray,
			Return:        hp.Return,
			Rest:          hp.Rest.Hex(),
		},
		Live: LiveConfig{
			FPS:      DefaultFPS,
			Theme:    DefaultTheme,
			Backdrop: palette.Baseline.Hex(),
		},
		Trace: TraceConfig{
			Step: DefaultStep,
			Span: DefaultSpan,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
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

func (c *Config) Validate() error {
	for i, b := range c.Walk.Buckets {
		if b.Min > b.Max {
			return invalid("bucket %d (%s): min %d above max %d", i, b.Name, b.Min, b.Max)
		}
		if b.Spread < 0 {
			return invalid("bucket %d (%s): negative spread", i, b.Name)
		}
	}
	for i, w := range c.Walk.Periods {
		for _, v := range w {
			if v < 0 {
				return invalid("period %d: negative weight", i)
			}
		}
		if w.Total() <= 0 {
			return invalid("period %d: weights sum to zero", i)
		}
	}
	if c.Walk.BaselineReturn < 0 || c.Walk.BaselineReturn > 1 {
		return invalid("baseline_return %.3f outside [0,1]", c.Walk.BaselineReturn)
	}
	if c.Walk.BaseDuration <= 0 {
		return invalid("base_duration must be positive, got %v", c.Walk.BaseDuration)
	}
	if c.Walk.Jitter < 0 || c.Walk.Jitter >= 2*c.Walk.BaseDuration {
		return invalid("jitter %v must be in [0, 2*base_duration)", c.Walk.Jitter)
	}
	if c.Walk.CycleLength < time.Second {
		return invalid("cycle_length must be at least 1s, got %v", c.Walk.CycleLength)
	}
	if c.Modes.White < 0 || c.Modes.Gray < 0 {
		return invalid("mode durations must not be negative")
	}
	if c.Hover.MinLeg > c.Hover.MaxLeg || c.Hover.MinLongLeg > c.Hover.MaxLongLeg {
		return invalid("hover leg bands out of order")
	}
	if c.Hover.LongLegChance < 0 || c.Hover.LongLegChance > 1 {
		return invalid("long_leg_chance %.3f outside [0,1]", c.Hover.LongLegChance)
	}
	if c.Hover.MinGray > c.Hover.MaxGray {
		return invalid("hover gray band out of order")
	}
	if _, err := palette.ParseHex(c.Hover.Rest); err != nil {
		return invalid("hover rest: %v", err)
	}
	if _, err := palette.ParseHex(c.Live.Backdrop); err != nil {
		return invalid("live backdrop: %v", err)
	}
	if c.Live.FPS < 1 || c.Live.FPS > 240 {
		return invalid("fps %d outside [1,240]", c.Live.FPS)
	}
	if c.Trace.Step <= 0 || c.Trace.Span <= 0 {
		return invalid("trace step and span must be positive")
	}
	return nil
}

// FieldParams converts the walk and mode sections for the scheduler.
func (c *Config) FieldParams() field.Params {
	return field.Params{
		Buckets:         c.Walk.Buckets,
		Periods:         c.Walk.Periods,
		BaselineReturn:  c.Walk.BaselineReturn,
		BaseDuration:    c.Walk.BaseDuration,
		Jitter:          c.Walk.Jitter,
		CycleLength:     c.Walk.CycleLength,
		WhiteDuration:   c.Modes.White,
		GrayDuration:    c.Modes.Gray,
		AccentAmplitude: c.Modes.AccentAmplitude,
		AccentScale:     c.Modes.AccentScale,
	}
}

func (c *Config) HoverParams() field.HoverParams {
	rest, err := palette.ParseHex(c.Hover.Rest)
	if err != nil {
		rest = palette.NearWhite
	}
	return field.HoverParams{
		Delay:         c.Hover.Delay,
		MinLeg:        c.Hover.MinLeg,
		MaxLeg:        c.Hover.MaxLeg,
		LongLegChance: c.Hover.LongLegChance,
		MinLongLeg:    c.Hover.MinLongLeg,
		MaxLongLeg:    c.Hover.MaxLongLeg,
		MinGray:       c.Hover.MinGray,
		MaxGray:       c.Hover.MaxGray,
		Return:        c.Hover.Return,
		Rest:          rest,
	}
}

func (c *Config) Backdrop() palette.Color {
	col, err := palette.ParseHex(c.Live.Backdrop)
	if err != nil {
		return palette.Baseline
	}
	return col
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
