package metrics

import "github.com/san-kum/colorfield/internal/trace"

// MeanLevel averages the gray level of all samples.
type MeanLevel struct {
	name    string
	samples int
	total   float64
}

func NewMeanLevel() *MeanLevel {
	return &MeanLevel{name: "mean_level"}
}

func (m *MeanLevel) Name() string { return m.name }

func (m *MeanLevel) Observe(s trace.Sample) {
	m.total += s.Color.Level()
	m.samples++
}

func (m *MeanLevel) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanLevel) Reset() {
	m.total = 0
	m.samples = 0
}
