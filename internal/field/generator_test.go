package field

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/colorfield/internal/palette"
)

func TestDayOfYear(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"jan 1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"jan 11 noon", time.Date(2026, 1, 11, 12, 0, 0, 0, time.UTC), 10},
		{"dec 31", time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), 364},
		{"leap dec 31 clamped", time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), 364},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayOfYear(tt.t); got != tt.want {
				t.Errorf("DayOfYear() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPeriodOf(t *testing.T) {
	tests := []struct {
		day, want int
	}{
		{0, 0}, {91, 0}, {92, 1}, {182, 1}, {183, 2}, {273, 2}, {274, 3}, {364, 3}, {-1, 0}, {400, 3},
	}
	for _, tt := range tests {
		if got := PeriodOf(tt.day); got != tt.want {
			t.Errorf("PeriodOf(%d) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

func TestWeightedIndex(t *testing.T) {
	w := Weights{0.3, 0.5, 0.2}
	tests := []struct {
		r    float64
		want int
	}{
		{0, 0},
		{0.3, 0},
		{0.31, 1},
		{0.8, 1},
		{0.81, 2},
		{0.999, 2},
	}
	for _, tt := range tests {
		if got := weightedIndex(w, tt.r); got != tt.want {
			t.Errorf("weightedIndex(%v) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestSelectTargetColor_Scenario(t *testing.T) {
	g := NewGenerator(DefaultParams())

	sel := g.Select(10, 5)
	if sel.Period != 0 {
		t.Errorf("day 10 period = %d, want 0", sel.Period)
	}
	if !sel.Shortcut || sel.Bucket != palette.BucketBaseline {
		t.Errorf("seed 10005 should short-circuit to baseline, got bucket %d shortcut %v", sel.Bucket, sel.Shortcut)
	}
	want := palette.Gray(114)
	for i := 0; i < 5; i++ {
		if got := g.SelectTargetColor(10, 5); got != want {
			t.Fatalf("call %d: got %v, want %v", i, got, want)
		}
	}

	// a fresh generator must agree
	if got := NewGenerator(DefaultParams()).SelectTargetColor(10, 5); got != want {
		t.Errorf("fresh generator: got %v, want %v", got, want)
	}
}

func TestSelectTargetColor_KnownSequence(t *testing.T) {
	g := NewGenerator(DefaultParams())
	want := []uint8{255, 103, 97, 93, 88, 114, 109, 104, 99, 94}
	for i, v := range want {
		if got := g.SelectTargetColor(10, int64(i)); got != palette.Gray(float64(v)) {
			t.Errorf("index %d: got %v, want gray %d", i, got, v)
		}
	}
}

func TestSelectTargetColor_Bounds(t *testing.T) {
	g := NewGenerator(DefaultParams())
	buckets := palette.DefaultBuckets()
	for _, day := range []int{0, 100, 200, 300, 364} {
		for i := int64(0); i < 2000; i++ {
			sel := g.Select(day, 29_000_000+i)
			if !buckets[sel.Bucket].Contains(sel.Color) {
				t.Fatalf("day %d index %d: %v outside %s", day, i, sel.Color, buckets[sel.Bucket].Name)
			}
			if sel.Color != palette.Gray(sel.Level) {
				t.Fatalf("day %d index %d: color %v is not level %v rounded", day, i, sel.Color, sel.Level)
			}
		}
	}
}

func TestSelectTargetColor_BaselineBias(t *testing.T) {
	g := NewGenerator(DefaultParams())
	const n = 10000
	shortcuts := 0
	for i := int64(0); i < n; i++ {
		if g.Select(200, 29_000_000+i).Shortcut {
			shortcuts++
		}
	}
	frac := float64(shortcuts) / n
	if math.Abs(frac-0.4) > 0.02 {
		t.Errorf("baseline short-circuit fraction = %.4f, want ~0.40", frac)
	}
}

func TestTransitionDuration(t *testing.T) {
	g := NewGenerator(DefaultParams())

	d := g.TransitionDuration(42)
	if d < 55*time.Second || d > 65*time.Second {
		t.Fatalf("D(42) = %v out of [55s,65s]", d)
	}
	want := 63858839163 * time.Nanosecond
	if diff := d - want; diff < -time.Microsecond || diff > time.Microsecond {
		t.Errorf("D(42) = %v, want %v", d, want)
	}
	for i := 0; i < 5; i++ {
		if again := g.TransitionDuration(42); again != d {
			t.Fatalf("D(42) not stable: %v != %v", again, d)
		}
	}

	for i := int64(0); i < 5000; i++ {
		d := g.TransitionDuration(29_000_000 + i)
		if d < 55*time.Second || d > 65*time.Second {
			t.Fatalf("D(%d) = %v out of band", 29_000_000+i, d)
		}
	}
}
