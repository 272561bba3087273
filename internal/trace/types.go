package trace

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/colorfield/internal/field"
	"github.com/san-kum/colorfield/internal/palette"
)

var (
	ErrInvalidWindow = errors.New("trace: invalid window")
	ErrNoSamples     = errors.New("trace: no samples")
)

// Source is anything that yields a color per frame: the scheduler or the
// hover walk.
type Source interface {
	Tick(now time.Time) palette.Color
	Label() string
}

// Commander accepts named commands. Sources that do not implement it cannot
// replay scripted events.
type Commander interface {
	Apply(cmd field.Command, now time.Time) error
}

type Sample struct {
	Time  time.Time
	Color palette.Color
	Label string
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnSample(s Sample)
}

// Event fires a command once the recorder reaches At past the window start.
type Event struct {
	At      time.Duration `yaml:"at" json:"at"`
	Command field.Command `yaml:"command" json:"command"`
}

type Config struct {
	From   time.Time
	Span   time.Duration
	Step   time.Duration
	Events []Event
}

type Result struct {
	Samples []Sample
	Metrics map[string]float64
}

// Levels returns the gray level of each sample, for plotting.
func (r *Result) Levels() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Color.Level()
	}
	return out
}

// StepError reports a failure at a given step of the window.
type StepError struct {
	Step    int
	Time    time.Time
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Time.Format(time.RFC3339), e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
