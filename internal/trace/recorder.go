// Package trace drives a color source across a window of wall-clock time at
// a fixed step, collecting samples and metrics without waiting in real time.
package trace

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

type Recorder struct {
	src       Source
	metrics   []Metric
	observers []Observer
	log       *zap.Logger
}

func New(src Source, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{
		src:       src,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       log,
	}
}

func (r *Recorder) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Recorder) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run samples the source at From, From+Step, ... up to From+Span inclusive.
// Events are applied just before the first sample at or after their offset.
func (r *Recorder) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	events := append([]Event(nil), cfg.Events...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })

	var cmdr Commander
	if len(events) > 0 {
		c, ok := r.src.(Commander)
		if !ok {
			return nil, fmt.Errorf("trace: source %T does not accept commands", r.src)
		}
		cmdr = c
	}

	steps := int(cfg.Span / cfg.Step)
	result := &Result{
		Samples: make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	next := 0
	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		offset := cfg.Step * time.Duration(i)
		now := cfg.From.Add(offset)

		for next < len(events) && events[next].At <= offset {
			if err := cmdr.Apply(events[next].Command, now); err != nil {
				return result, &StepError{Step: i, Time: now, Wrapped: err}
			}
			r.log.Debug("trace event applied",
				zap.String("command", string(events[next].Command)),
				zap.Duration("at", offset))
			next++
		}

		s := Sample{Time: now, Color: r.src.Tick(now), Label: r.src.Label()}
		result.Samples = append(result.Samples, s)

		for _, m := range r.metrics {
			m.Observe(s)
		}
		for _, obs := range r.observers {
			obs.OnSample(s)
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	r.log.Debug("trace recorded",
		zap.Int("samples", len(result.Samples)),
		zap.Duration("span", cfg.Span),
		zap.Duration("step", cfg.Step))

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %v", ErrInvalidWindow, cfg.Step)
	}
	if cfg.Span <= 0 {
		return fmt.Errorf("%w: span must be positive, got %v", ErrInvalidWindow, cfg.Span)
	}
	if cfg.From.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidWindow)
	}
	for _, e := range cfg.Events {
		if e.At < 0 || e.At > cfg.Span {
			return fmt.Errorf("%w: event %q at %v outside span", ErrInvalidWindow, e.Command, e.At)
		}
	}
	return nil
}
