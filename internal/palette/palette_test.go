package palette

import (
	"math"
	"testing"
)

func TestEaseInOutCubic_Endpoints(t *testing.T) {
	if v := EaseInOutCubic(0); v != 0 {
		t.Errorf("ease(0) = %v, want 0", v)
	}
	if v := EaseInOutCubic(1); v != 1 {
		t.Errorf("ease(1) = %v, want 1", v)
	}
	if v := EaseInOutCubic(0.5); math.Abs(v-0.5) > 1e-12 {
		t.Errorf("ease(0.5) = %v, want 0.5", v)
	}
}

func TestEaseInOutCubic_Monotonic(t *testing.T) {
	prev := EaseInOutCubic(0)
	for i := 1; i <= 1000; i++ {
		p := float64(i) / 1000
		v := EaseInOutCubic(p)
		if v < prev {
			t.Fatalf("ease not monotonic at p=%v: %v < %v", p, v, prev)
		}
		prev = v
	}
}

func TestEaseInOutCubic_ClampsInput(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{2, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := EaseInOutCubic(tt.in); got != tt.want {
			t.Errorf("ease(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	a := Color{0, 100, 200}
	b := Color{100, 100, 0}

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	if got, want := Lerp(a, b, 0.5), (Color{50, 100, 100}); got != want {
		t.Errorf("Lerp(0.5) = %v, want %v", got, want)
	}
	// 100*0.256 = 25.6 rounds up
	if got := Lerp(Color{}, Color{100, 100, 100}, 0.256); got.R != 26 {
		t.Errorf("Lerp rounding: got %d, want 26", got.R)
	}
}

func TestInterpolate_Endpoints(t *testing.T) {
	if got := Interpolate(NearBlack, NearWhite, 0); got != NearBlack {
		t.Errorf("Interpolate(0) = %v", got)
	}
	if got := Interpolate(NearBlack, NearWhite, 1); got != NearWhite {
		t.Errorf("Interpolate(1) = %v", got)
	}
}

func TestInterpolateLevel_RoundsOnce(t *testing.T) {
	// (1.6+2.6)/2 = 2.1, while the rounded ends 2 and 3 meet at 2.5
	if got := InterpolateLevel(1.6, 2.6, 0.5); got != Gray(2) {
		t.Errorf("InterpolateLevel = %v, want rgb(2, 2, 2)", got)
	}
	if got := Interpolate(Gray(1.6), Gray(2.6), 0.5); got != Gray(3) {
		t.Errorf("Interpolate on rounded ends = %v, want rgb(3, 3, 3)", got)
	}
}

func TestClampChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{12.4, 12},
		{12.5, 13},
		{254.6, 255},
		{300, 255},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := ClampChannel(tt.in); got != tt.want {
			t.Errorf("ClampChannel(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{NearBlack, "#070707"},
		{Baseline, "#636363"},
		{NearWhite, "#fafafa"},
		{Color{255, 0, 16}, "#ff0010"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("%v.Hex() = %s, want %s", tt.c, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#636363")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if c != Baseline {
		t.Errorf("got %v, want %v", c, Baseline)
	}

	if _, err := ParseHex("not-a-color"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestShift(t *testing.T) {
	if got := (Color{250, 250, 250}).Shift(10); got != (Color{255, 255, 255}) {
		t.Errorf("Shift clamp high: %v", got)
	}
	if got := (Color{2, 2, 2}).Shift(-3); got != (Color{}) {
		t.Errorf("Shift clamp low: %v", got)
	}
	if got := Baseline.Shift(2.6); got != (Color{102, 102, 102}) {
		t.Errorf("Shift: %v", got)
	}
}

func TestDistance(t *testing.T) {
	if d := (Color{10, 20, 30}).Distance(Color{15, 5, 31}); d != 15 {
		t.Errorf("Distance = %d, want 15", d)
	}
}

func TestIsNearWhite(t *testing.T) {
	if !NearWhite.IsNearWhite(245) {
		t.Error("near-white should pass the 245 threshold")
	}
	if (Color{250, 244, 250}).IsNearWhite(245) {
		t.Error("one low channel should fail the threshold")
	}
}

func TestBucketSample_Bounds(t *testing.T) {
	for _, b := range DefaultBuckets() {
		for i := 0; i < 1000; i++ {
			r := float64(i) / 1000
			c := b.Sample(r)
			if !b.Contains(c) {
				t.Fatalf("%s sample %v outside [%d,%d] for r=%v", b.Name, c, b.Min, b.Max, r)
			}
			if c.R != c.G || c.G != c.B {
				t.Fatalf("%s sample %v not monochrome", b.Name, c)
			}
		}
	}
}

func TestBucketSample_Midpoint(t *testing.T) {
	b := DefaultBuckets()
	if got := b[BucketBaseline].Sample(0.5); got != Baseline {
		t.Errorf("baseline midpoint = %v, want %v", got, Baseline)
	}
	// 250 + 0.49*20 = 259.8, clamped to 255
	if got := b[BucketNearWhite].Sample(0.99); got.R != 255 {
		t.Errorf("near-white clamp = %v", got)
	}
	// 7 - 0.5*15 = -0.5, clamped to 5
	if got := b[BucketNearBlack].Sample(0); got.R != 5 {
		t.Errorf("near-black clamp = %v", got)
	}
}

func TestBucketLevel_Unrounded(t *testing.T) {
	b := DefaultBuckets()[BucketBaseline]
	// 99 + (0.51-0.5)*30 = 99.3
	if got := b.Level(0.51); math.Abs(got-99.3) > 1e-9 {
		t.Errorf("Level(0.51) = %v, want 99.3", got)
	}
	if got := b.Sample(0.51); got != Baseline {
		t.Errorf("Sample(0.51) = %v, want %v", got, Baseline)
	}
}

func TestClassify(t *testing.T) {
	b := DefaultBuckets()
	tests := []struct {
		c    Color
		want int
	}{
		{Gray(10), BucketNearBlack},
		{Baseline, BucketBaseline},
		{Gray(245), BucketNearWhite},
		{Gray(180), -1},
	}
	for _, tt := range tests {
		if got := Classify(b, tt.c); got != tt.want {
			t.Errorf("Classify(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}
