package field

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/colorfield/internal/palette"
)

type HoverState int

const (
	HoverIdle HoverState = iota
	HoverArmed
	HoverWalking
	HoverReturning
)

func (s HoverState) String() string {
	switch s {
	case HoverIdle:
		return "idle"
	case HoverArmed:
		return "armed"
	case HoverWalking:
		return "walking"
	case HoverReturning:
		return "returning"
	default:
		return "unknown"
	}
}

// HoverParams tunes the hover walk.
type HoverParams struct {
	Delay time.Duration

	MinLeg time.Duration
	MaxLeg time.Duration
	// LongLegChance is the probability a leg is drawn from the long band.
	LongLegChance float64
	MinLongLeg    time.Duration
	MaxLongLeg    time.Duration

	MinGray uint8
	MaxGray uint8

	Return time.Duration
	Rest   palette.Color
}

func DefaultHoverParams() HoverParams {
	return HoverParams{
		Delay:         3 * time.Second,
		MinLeg:        5 * time.Second,
		MaxLeg:        60 * time.Second,
		LongLegChance: 0.1,
		MinLongLeg:    time.Minute,
		MaxLongLeg:    60 * time.Minute,
		MinGray:       15,
		MaxGray:       250,
		Return:        2 * time.Second,
		Rest:          palette.NearWhite,
	}
}

// Hover is the walk that runs only while the pointer rests on an element.
// It resets on every hover and is not reproducible.
type Hover struct {
	p   HoverParams
	rng *rand.Rand
	log *zap.Logger

	state   HoverState
	current palette.Color
	start   palette.Color
	target  palette.Color

	// settling is set while an interrupted return keeps easing under a new
	// delay.
	settling bool

	armedAt     time.Time
	legStart    time.Time
	legDuration time.Duration
}

type HoverOption func(*Hover)

func WithHoverLogger(l *zap.Logger) HoverOption {
	return func(h *Hover) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHover returns an idle hover walk resting on p.Rest. A nil rng is
// replaced by a time-seeded source.
func NewHover(p HoverParams, rng *rand.Rand, opts ...HoverOption) *Hover {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32))
	}
	h := &Hover{
		p:       p,
		rng:     rng,
		log:     zap.NewNop(),
		current: p.Rest,
		start:   p.Rest,
		target:  p.Rest,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// StartHoverAnimation arms the delay timer. The walk begins once the pointer
// has stayed for Params.Delay. A return in progress keeps easing toward rest
// while the timer runs.
func (h *Hover) StartHoverAnimation(now time.Time) {
	if h.state == HoverArmed || h.state == HoverWalking {
		return
	}
	h.settling = h.state == HoverReturning
	h.state = HoverArmed
	h.armedAt = now
	h.log.Debug("hover armed", zap.Duration("delay", h.p.Delay))
}

// StopHoverAnimation cancels a pending walk or eases a running one back to
// rest.
func (h *Hover) StopHoverAnimation(now time.Time) {
	switch h.state {
	case HoverArmed:
		switch {
		case h.settling:
			h.settling = false
			h.state = HoverReturning
		case h.current == h.p.Rest:
			h.state = HoverIdle
		default:
			h.beginReturn(now)
		}
	case HoverWalking:
		h.beginReturn(now)
	}
}

func (h *Hover) Tick(now time.Time) palette.Color {
	switch h.state {
	case HoverArmed:
		if h.settling {
			p := progress(now.Sub(h.legStart), h.p.Return)
			h.current = palette.Interpolate(h.start, h.p.Rest, p)
			h.settling = p < 1
		}
		if now.Sub(h.armedAt) >= h.p.Delay {
			h.settling = false
			h.state = HoverWalking
			h.beginLeg(now)
		}
	case HoverWalking:
		p := progress(now.Sub(h.legStart), h.legDuration)
		h.current = palette.Interpolate(h.start, h.target, p)
		if p >= 1 {
			h.beginLeg(now)
		}
	case HoverReturning:
		p := progress(now.Sub(h.legStart), h.p.Return)
		h.current = palette.Interpolate(h.start, h.p.Rest, p)
		if p >= 1 {
			h.state = HoverIdle
			h.log.Debug("hover at rest")
		}
	default:
		h.current = h.p.Rest
	}
	return h.current
}

func (h *Hover) beginLeg(now time.Time) {
	h.start = h.current
	h.target = palette.Gray(float64(h.drawGray()))
	h.legDuration = h.drawLeg()
	h.legStart = now
	h.log.Debug("hover leg started",
		zap.String("to", h.target.Hex()),
		zap.Duration("duration", h.legDuration))
}

func (h *Hover) beginReturn(now time.Time) {
	h.state = HoverReturning
	h.settling = false
	h.start = h.current
	h.target = h.p.Rest
	h.legStart = now
	h.legDuration = h.p.Return
}

func (h *Hover) drawGray() uint8 {
	lo, hi := int(h.p.MinGray), int(h.p.MaxGray)
	if hi <= lo {
		return h.p.MinGray
	}
	return uint8(lo + h.rng.IntN(hi-lo+1))
}

func (h *Hover) drawLeg() time.Duration {
	lo, hi := h.p.MinLeg, h.p.MaxLeg
	if h.rng.Float64() < h.p.LongLegChance {
		lo, hi = h.p.MinLongLeg, h.p.MaxLongLeg
	}
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(h.rng.Float64()*float64(hi-lo))
}

func (h *Hover) Current() palette.Color { return h.current }

func (h *Hover) State() HoverState { return h.state }

func (h *Hover) Label() string { return h.state.String() }

// Target is the color the current leg heads to.
func (h *Hover) Target() palette.Color { return h.target }

// LegDuration is the length of the current leg, zero while idle or armed.
func (h *Hover) LegDuration() time.Duration {
	if h.state == HoverWalking || h.state == HoverReturning {
		return h.legDuration
	}
	return 0
}
