package trace

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Ensemble records the same window shape starting at several moments, one
// independent source per run. Used to compare seasons or reload points.
type Ensemble struct {
	newSource  func() Source
	newMetrics func() []Metric
	log        *zap.Logger
	limit      int
}

func NewEnsemble(newSource func() Source, newMetrics func() []Metric, log *zap.Logger) *Ensemble {
	if log == nil {
		log = zap.NewNop()
	}
	if newMetrics == nil {
		newMetrics = func() []Metric { return nil }
	}
	return &Ensemble{newSource: newSource, newMetrics: newMetrics, log: log, limit: 4}
}

// SetLimit caps the number of concurrent recordings.
func (e *Ensemble) SetLimit(n int) {
	if n > 0 {
		e.limit = n
	}
}

// Run records one window per start time. Results keep the order of starts.
func (e *Ensemble) Run(ctx context.Context, starts []time.Time, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(starts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i, from := range starts {
		g.Go(func() error {
			rec := New(e.newSource(), e.log.With(zap.Int("run", i)))
			for _, m := range e.newMetrics() {
				rec.AddMetric(m)
			}

			runCfg := cfg
			runCfg.From = from
			res, err := rec.Run(ctx, runCfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
