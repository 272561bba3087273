package metrics

import (
	"github.com/san-kum/colorfield/internal/field"
	"github.com/san-kum/colorfield/internal/palette"
	"github.com/san-kum/colorfield/internal/trace"
)

// BucketShare is the fraction of samples that fall inside one tone bucket.
type BucketShare struct {
	name    string
	bucket  palette.Bucket
	inside  int
	samples int
}

func NewBucketShare(b palette.Bucket) *BucketShare {
	return &BucketShare{name: "share_" + b.Name, bucket: b}
}

func (b *BucketShare) Name() string { return b.name }

func (b *BucketShare) Observe(s trace.Sample) {
	b.samples++
	if b.bucket.Contains(s.Color) {
		b.inside++
	}
}

func (b *BucketShare) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return float64(b.inside) / float64(b.samples)
}

func (b *BucketShare) Reset() {
	b.inside = 0
	b.samples = 0
}

// Default is the metric set recorded with every trace.
func Default(p field.Params) []trace.Metric {
	ms := []trace.Metric{NewMeanLevel(), NewMaxJump(), NewLabelChanges()}
	for _, b := range p.Buckets {
		ms = append(ms, NewBucketShare(b))
	}
	return ms
}
