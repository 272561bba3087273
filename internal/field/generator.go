package field

import (
	"time"

	"github.com/san-kum/colorfield/internal/lcg"
	"github.com/san-kum/colorfield/internal/palette"
)

const (
	daysPerYear   = 365
	daysPerPeriod = 91.25
	daySeedStride = 1000
)

// DayOfYear returns whole days elapsed since January 1st in t's location,
// clamped to [0,364].
func DayOfYear(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	day := int(t.Sub(jan1) / (24 * time.Hour))
	if day < 0 {
		return 0
	}
	if day > daysPerYear-1 {
		return daysPerYear - 1
	}
	return day
}

// PeriodOf maps a day of year onto one of four equal quarters.
func PeriodOf(day int) int {
	p := int(float64(day) / daysPerPeriod)
	if p < 0 {
		return 0
	}
	if p > 3 {
		return 3
	}
	return p
}

// Selection describes how a target color was chosen.
type Selection struct {
	Color    palette.Color
	Level    float64 // unrounded gray level behind Color
	Bucket   int
	Shortcut bool // picked by the baseline-return draw, not the seasonal weights
	Day      int
	Period   int
}

// Generator produces the deterministic colors and durations of the walk.
// It holds no mutable state; every call seeds its own LCG.
type Generator struct {
	p Params
}

func NewGenerator(p Params) *Generator {
	return &Generator{p: p}
}

func (g *Generator) Params() Params { return g.p }

// Select picks the color for a transition index on a given day.
func (g *Generator) Select(day int, index int64) Selection {
	period := PeriodOf(day)
	rng := lcg.New(int64(day)*daySeedStride + index)

	sel := Selection{Day: day, Period: period}
	if rng.Float64() < g.p.BaselineReturn {
		sel.Bucket = palette.BucketBaseline
		sel.Shortcut = true
	} else {
		sel.Bucket = weightedIndex(g.p.Periods[period], rng.Float64())
	}
	sel.Level = g.p.Buckets[sel.Bucket].Level(rng.Float64())
	sel.Color = palette.Gray(sel.Level)
	return sel
}

// SelectTargetColor is Select reduced to the color.
func (g *Generator) SelectTargetColor(day int, index int64) palette.Color {
	return g.Select(day, index).Color
}

// TransitionDuration returns the length of the leg ending at index. Seeded
// by index alone, so it does not change with the calendar.
func (g *Generator) TransitionDuration(index int64) time.Duration {
	r := lcg.New(index).Float64()
	return g.p.BaseDuration + time.Duration((r-0.5)*float64(g.p.Jitter))
}

// weightedIndex walks the weights in order, subtracting each from r*total
// until the remainder is no longer positive.
func weightedIndex(w Weights, r float64) int {
	remaining := r * w.Total()
	for i, weight := range w {
		remaining -= weight
		if remaining <= 0 {
			return i
		}
	}
	return len(w) - 1
}
