package palette

// Bucket is one of the three tone families the field walks between. A sample
// is the base gray plus a single scalar offset shared by all channels, so
// samples stay monochrome.
type Bucket struct {
	Name   string  `yaml:"name"`
	Base   uint8   `yaml:"base"`
	Spread float64 `yaml:"spread"` // full width of the offset band
	Min    uint8   `yaml:"min"`
	Max    uint8   `yaml:"max"`
}

const (
	BucketNearBlack = iota
	BucketBaseline
	BucketNearWhite
)

// DefaultBuckets is ordered near-black, baseline, near-white. Weighted
// selection depends on that order.
func DefaultBuckets() [3]Bucket {
	return [3]Bucket{
		{Name: "near-black", Base: NearBlack.R, Spread: 15, Min: 5, Max: 20},
		{Name: "baseline", Base: Baseline.R, Spread: 30, Min: 70, Max: 130},
		{Name: "near-white", Base: NearWhite.R, Spread: 20, Min: 240, Max: 255},
	}
}

// Level converts a uniform draw r in [0,1) into an unrounded gray level
// within the bucket.
func (b Bucket) Level(r float64) float64 {
	v := float64(b.Base) + (r-0.5)*b.Spread
	if v < float64(b.Min) {
		v = float64(b.Min)
	}
	if v > float64(b.Max) {
		v = float64(b.Max)
	}
	return v
}

// Sample is Level rounded to a color.
func (b Bucket) Sample(r float64) Color {
	return Gray(b.Level(r))
}

// Contains reports whether every channel of c lies inside [Min,Max].
func (b Bucket) Contains(c Color) bool {
	for _, ch := range []uint8{c.R, c.G, c.B} {
		if ch < b.Min || ch > b.Max {
			return false
		}
	}
	return true
}

// Classify returns the index of the first bucket containing c, or -1.
func Classify(buckets [3]Bucket, c Color) int {
	for i, b := range buckets {
		if b.Contains(c) {
			return i
		}
	}
	return -1
}
