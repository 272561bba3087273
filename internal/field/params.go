package field

import (
	"time"

	"github.com/san-kum/colorfield/internal/palette"
)

// Weights are the selection weights for near-black, baseline and near-white,
// in bucket order.
type Weights [3]float64

func (w Weights) Total() float64 {
	return w[0] + w[1] + w[2]
}

// Params tunes the deterministic walk. Changing any value changes the
// trajectory, so viewers that should agree must share the same Params.
type Params struct {
	Buckets [3]palette.Bucket
	// Periods holds the weights for each quarter of the year.
	Periods [4]Weights
	// BaselineReturn is the chance a leg heads back to baseline before the
	// seasonal weights are consulted.
	BaselineReturn float64

	BaseDuration time.Duration
	// Jitter is the full width of the duration band around BaseDuration.
	Jitter      time.Duration
	CycleLength time.Duration

	WhiteDuration time.Duration
	GrayDuration  time.Duration

	AccentAmplitude float64
	AccentScale     time.Duration
}

func DefaultParams() Params {
	return Params{
		Buckets: palette.DefaultBuckets(),
		Periods: [4]Weights{
			{0.3, 0.5, 0.2},
			{0.2, 0.6, 0.2},
			{0.2, 0.5, 0.3},
			{0.2, 0.6, 0.2},
		},
		BaselineReturn:  0.4,
		BaseDuration:    60 * time.Second,
		Jitter:          10 * time.Second,
		CycleLength:     60 * time.Second,
		WhiteDuration:   time.Second,
		GrayDuration:    2 * time.Second,
		AccentAmplitude: 3,
		AccentScale:     5 * time.Second,
	}
}

// White is the color the scheduler pins to.
func (p Params) White() palette.Color {
	return palette.Gray(float64(p.Buckets[palette.BucketNearWhite].Base))
}

// Gray is the baseline the scheduler returns to.
func (p Params) Gray() palette.Color {
	return palette.Gray(float64(p.Buckets[palette.BucketBaseline].Base))
}
