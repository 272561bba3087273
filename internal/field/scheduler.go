package field

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/colorfield/internal/palette"
)

// Mode is the scheduler's current state.
type Mode int

const (
	Living Mode = iota
	PinnedWhite
	ReturningToGray
)

func (m Mode) String() string {
	switch m {
	case Living:
		return "living"
	case PinnedWhite:
		return "pinned-white"
	case ReturningToGray:
		return "returning-to-gray"
	default:
		return "unknown"
	}
}

// nearWhiteBackdrop is the per-channel threshold above which an existing
// backdrop counts as already white.
const nearWhiteBackdrop = 245

// Snapshot is a read-only view of the scheduler for renderers and logs.
type Snapshot struct {
	Mode     Mode
	Index    int64
	Start    palette.Color
	Target   palette.Color
	Current  palette.Color
	Progress float64
	Duration time.Duration
}

// Scheduler owns the deterministic walk and its white/gray detours.
type Scheduler struct {
	gen *Generator
	p   Params
	log *zap.Logger

	mode        Mode
	initialized bool

	current palette.Color
	start   palette.Color
	target  palette.Color

	// startLevel and targetLevel are the unrounded levels the walk eases
	// between.
	startLevel  float64
	targetLevel float64

	// index is the transition index of target.
	index     int64
	animStart time.Time
	duration  time.Duration

	// modeStart anchors the short PinnedWhite and ReturningToGray legs.
	modeStart time.Time
	progress  float64
}

type Option func(*Scheduler)

func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// NewScheduler returns a scheduler resting on baseline gray. The first Tick
// initializes it from that tick's time unless InitializeFromTime or
// InitializeFromBackdrop ran first.
func NewScheduler(p Params, opts ...Option) *Scheduler {
	gray := p.Gray()
	s := &Scheduler{
		gen:         NewGenerator(p),
		p:           p,
		log:         zap.NewNop(),
		mode:        Living,
		current:     gray,
		start:       gray,
		target:      gray,
		startLevel:  gray.Level(),
		targetLevel: gray.Level(),
		duration:    p.BaseDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Generator() *Generator { return s.gen }

// InitializeFromTime places the scheduler where the trajectory stands at
// now. Wall-clock time is cut into fixed cycles of Params.CycleLength. Cycle
// c opens with the leg from color c to color c+1 timed by D(c); an offset
// past D(c) spills into the leg from c+1 to c+2 timed by D(c+1). Legs begun
// by Tick are timed by the index of their target.
func (s *Scheduler) InitializeFromTime(now time.Time) {
	cycleMs := s.p.CycleLength.Milliseconds()
	if cycleMs <= 0 {
		cycleMs = 1
	}
	ms := floorDiv(now.UnixMilli(), 1000) * 1000
	if ms < 0 {
		ms = 0
	}
	leg := ms / cycleMs
	offset := time.Duration(ms%cycleMs) * time.Millisecond

	d := s.gen.TransitionDuration(leg)
	if offset >= d {
		offset -= d
		leg++
		d = s.gen.TransitionDuration(leg)
	}

	day := DayOfYear(now)
	from, to := s.gen.Select(day, leg), s.gen.Select(day, leg+1)
	s.mode = Living
	s.initialized = true
	s.start, s.startLevel = from.Color, from.Level
	s.target, s.targetLevel = to.Color, to.Level
	s.index = leg + 1
	s.duration = d
	s.animStart = now.Add(-offset)
	s.progress = progress(offset, d)
	s.current = palette.InterpolateLevel(s.startLevel, s.targetLevel, s.progress)

	s.log.Debug("field initialized",
		zap.Int("day", day),
		zap.Int("period", PeriodOf(day)),
		zap.Int64("index", s.index),
		zap.String("color", s.current.Hex()),
		zap.Float64("progress", s.progress))
}

// InitializeFromBackdrop starts from whatever the host is already showing:
// a near-white backdrop pins the field to white at once, anything else
// resumes the timed trajectory.
func (s *Scheduler) InitializeFromBackdrop(now time.Time, backdrop palette.Color) {
	if backdrop.IsNearWhite(nearWhiteBackdrop) {
		s.initialized = true
		s.PinToWhiteInstant(now)
		return
	}
	s.InitializeFromTime(now)
}

// Tick advances the scheduler to now and returns the color to paint.
func (s *Scheduler) Tick(now time.Time) palette.Color {
	s.ensureInitialized(now)

	switch s.mode {
	case PinnedWhite:
		s.progress = progress(now.Sub(s.modeStart), s.p.WhiteDuration)
		s.current = palette.Interpolate(s.start, s.p.White(), s.progress)
	case ReturningToGray:
		s.progress = progress(now.Sub(s.modeStart), s.p.GrayDuration)
		s.current = palette.Interpolate(s.start, s.p.Gray(), s.progress)
		if s.progress >= 1 {
			s.enter(Living, now)
		}
	default:
		s.progress = progress(now.Sub(s.animStart), s.duration)
		s.current = palette.InterpolateLevel(s.startLevel, s.targetLevel, s.progress)
		if s.progress >= 1 {
			s.advance(now, s.targetLevel)
		}
	}
	return s.current
}

// PinToWhite eases from the current color to white. No-op when already
// pinned.
func (s *Scheduler) PinToWhite(now time.Time) {
	s.ensureInitialized(now)
	if s.mode == PinnedWhite {
		return
	}
	s.enter(PinnedWhite, now)
}

// PinToWhiteInstant jumps straight to white, whatever the mode.
func (s *Scheduler) PinToWhiteInstant(now time.Time) {
	s.ensureInitialized(now)
	s.enter(PinnedWhite, now)
	s.start = s.p.White()
	s.current = s.start
	s.modeStart = now.Add(-s.p.WhiteDuration)
	s.progress = 1
}

// ResumeLiving leaves white through a short eased return to baseline gray.
// No-op unless pinned.
func (s *Scheduler) ResumeLiving(now time.Time) {
	if s.mode != PinnedWhite {
		return
	}
	s.enter(ReturningToGray, now)
}

func (s *Scheduler) ensureInitialized(now time.Time) {
	if !s.initialized {
		s.InitializeFromTime(now)
	}
}

// enter is the only place the mode changes.
func (s *Scheduler) enter(m Mode, now time.Time) {
	from := s.mode
	s.mode = m
	s.modeStart = now
	s.progress = 0

	switch m {
	case PinnedWhite, ReturningToGray:
		s.start = s.current
	case Living:
		gray := s.p.Gray()
		s.current = gray
		s.advance(now, gray.Level())
	}

	s.log.Debug("field mode changed",
		zap.Stringer("from", from),
		zap.Stringer("to", m),
		zap.String("color", s.current.Hex()))
}

// advance starts the next leg of the walk from the given level.
func (s *Scheduler) advance(now time.Time, from float64) {
	s.start, s.startLevel = palette.Gray(from), from
	s.index++
	to := s.gen.Select(DayOfYear(now), s.index)
	s.target, s.targetLevel = to.Color, to.Level
	s.duration = s.gen.TransitionDuration(s.index)
	s.animStart = now
	s.progress = 0

	s.log.Debug("field leg started",
		zap.Int64("index", s.index),
		zap.String("from", s.start.Hex()),
		zap.String("to", s.target.Hex()),
		zap.Duration("duration", s.duration))
}

func (s *Scheduler) Current() palette.Color { return s.current }

func (s *Scheduler) Hex() string { return s.current.Hex() }

func (s *Scheduler) Mode() Mode { return s.mode }

// Label names the mode for trace samples.
func (s *Scheduler) Label() string { return s.mode.String() }

func (s *Scheduler) Index() int64 { return s.index }

func (s *Scheduler) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:     s.mode,
		Index:    s.index,
		Start:    s.start,
		Target:   s.target,
		Current:  s.current,
		Progress: s.progress,
		Duration: s.duration,
	}
	switch s.mode {
	case PinnedWhite:
		snap.Target = s.p.White()
		snap.Duration = s.p.WhiteDuration
	case ReturningToGray:
		snap.Target = s.p.Gray()
		snap.Duration = s.p.GrayDuration
	}
	return snap
}

// Accent is the second stop of the background gradient: the current color
// nudged by a slow sine so the field never looks flat. Off the walk the
// backdrop is a plain fill and Accent equals Current.
func (s *Scheduler) Accent(now time.Time) palette.Color {
	if s.mode != Living || s.p.AccentScale <= 0 {
		return s.current
	}
	phase := float64(now.UnixMilli()) / (float64(s.p.AccentScale) / float64(time.Millisecond))
	return s.current.Shift(math.Sin(phase) * s.p.AccentAmplitude)
}

func progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return palette.Clamp01(float64(elapsed) / float64(total))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
