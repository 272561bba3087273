package metrics

import (
	"github.com/san-kum/colorfield/internal/palette"
	"github.com/san-kum/colorfield/internal/trace"
)

// MaxJump is the largest per-channel change between consecutive samples.
// For a smooth walk it stays small relative to the sampling step.
type MaxJump struct {
	name    string
	prev    palette.Color
	samples int
	max     int
}

func NewMaxJump() *MaxJump {
	return &MaxJump{name: "max_jump"}
}

func (m *MaxJump) Name() string { return m.name }

func (m *MaxJump) Observe(s trace.Sample) {
	if m.samples > 0 {
		if d := s.Color.Distance(m.prev); d > m.max {
			m.max = d
		}
	}
	m.prev = s.Color
	m.samples++
}

func (m *MaxJump) Value() float64 { return float64(m.max) }

func (m *MaxJump) Reset() {
	m.prev = palette.Color{}
	m.samples = 0
	m.max = 0
}

// LabelChanges counts how often the source's mode label changed.
type LabelChanges struct {
	name    string
	prev    string
	samples int
	changes int
}

func NewLabelChanges() *LabelChanges {
	return &LabelChanges{name: "mode_changes"}
}

func (l *LabelChanges) Name() string { return l.name }

func (l *LabelChanges) Observe(s trace.Sample) {
	if l.samples > 0 && s.Label != l.prev {
		l.changes++
	}
	l.prev = s.Label
	l.samples++
}

func (l *LabelChanges) Value() float64 { return float64(l.changes) }

func (l *LabelChanges) Reset() {
	l.prev = ""
	l.samples = 0
	l.changes = 0
}
