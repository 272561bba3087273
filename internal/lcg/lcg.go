// Package lcg implements the small linear congruential generator that keeps
// the color field reproducible across processes.
//
// The constants are fixed: any other generator changes every color and
// duration the field produces, so independent viewers would drift apart.
package lcg

const (
	Multiplier = 9301
	Increment  = 49297
	Modulus    = 233280
)

// Step advances state once and returns the next state together with its
// value in [0,1).
func Step(state int64) (int64, float64) {
	next := (state*Multiplier + Increment) % Modulus
	return next, float64(next) / Modulus
}

// Generator is a stateful wrapper around Step. Not safe for concurrent use.
type Generator struct {
	state int64
}

func New(seed int64) *Generator {
	return &Generator{state: seed}
}

func (g *Generator) Float64() float64 {
	var v float64
	g.state, v = Step(g.state)
	return v
}

func (g *Generator) State() int64 { return g.state }
