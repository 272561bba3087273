package field

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/colorfield/internal/palette"
)

var _ = Describe("Scheduler modes", func() {
	var (
		s   *Scheduler
		p   Params
		now time.Time
	)

	BeforeEach(func() {
		p = DefaultParams()
		s = NewScheduler(p)
		now = cycleStart.Add(20 * time.Second)
		s.InitializeFromTime(now)
	})

	It("starts living", func() {
		Expect(s.Mode()).To(Equal(Living))
	})

	Describe("PinToWhite", func() {
		It("eases from the current color to white over the white duration", func() {
			from := s.Current()
			s.PinToWhite(now)
			Expect(s.Mode()).To(Equal(PinnedWhite))
			Expect(s.Snapshot().Start).To(Equal(from))

			mid := s.Tick(now.Add(p.WhiteDuration / 2))
			Expect(mid).To(Equal(palette.Interpolate(from, p.White(), 0.5)))

			Expect(s.Tick(now.Add(p.WhiteDuration))).To(Equal(p.White()))
			Expect(s.Tick(now.Add(time.Minute))).To(Equal(p.White()))
			Expect(s.Mode()).To(Equal(PinnedWhite))
		})

		It("does not restart an ongoing pin", func() {
			s.PinToWhite(now)
			s.Tick(now.Add(p.WhiteDuration / 2))
			s.PinToWhite(now.Add(p.WhiteDuration / 2))
			Expect(s.Tick(now.Add(p.WhiteDuration))).To(Equal(p.White()))
		})

		It("cancels a return to gray", func() {
			s.PinToWhiteInstant(now)
			s.ResumeLiving(now)
			Expect(s.Mode()).To(Equal(ReturningToGray))

			s.Tick(now.Add(time.Second))
			s.PinToWhite(now.Add(time.Second))
			Expect(s.Mode()).To(Equal(PinnedWhite))
		})
	})

	Describe("PinToWhiteInstant", func() {
		It("shows white on the same frame", func() {
			s.PinToWhiteInstant(now)
			Expect(s.Current()).To(Equal(p.White()))
			Expect(s.Tick(now)).To(Equal(p.White()))
			Expect(s.Snapshot().Progress).To(BeNumerically("==", 1))
		})
	})

	Describe("ResumeLiving", func() {
		It("is ignored while living", func() {
			s.ResumeLiving(now)
			Expect(s.Mode()).To(Equal(Living))
		})

		It("returns to baseline gray and then resumes the walk", func() {
			s.PinToWhiteInstant(now)
			index := s.Index()

			s.ResumeLiving(now)
			Expect(s.Mode()).To(Equal(ReturningToGray))
			Expect(s.Snapshot().Start).To(Equal(p.White()))
			Expect(s.Snapshot().Target).To(Equal(p.Gray()))

			mid := s.Tick(now.Add(p.GrayDuration / 2))
			Expect(mid.R).To(BeNumerically(">", p.Gray().R))
			Expect(mid.R).To(BeNumerically("<", p.White().R))

			done := now.Add(p.GrayDuration)
			Expect(s.Tick(done)).To(Equal(p.Gray()))
			Expect(s.Mode()).To(Equal(Living))

			snap := s.Snapshot()
			Expect(snap.Index).To(Equal(index + 1))
			Expect(snap.Start).To(Equal(p.Gray()))
			Expect(snap.Target).To(Equal(s.Generator().SelectTargetColor(DayOfYear(done), index+1)))
			Expect(snap.Duration).To(Equal(s.Generator().TransitionDuration(index + 1)))
		})

		It("walks away from gray after the return", func() {
			s.PinToWhiteInstant(now)
			s.ResumeLiving(now)
			done := now.Add(p.GrayDuration)
			s.Tick(done)

			leg := s.Snapshot()
			Expect(s.Tick(done.Add(leg.Duration))).To(Equal(leg.Target))
		})
	})

	Describe("full cycle", func() {
		It("goes Living -> PinnedWhite -> ReturningToGray -> Living", func() {
			var seen []Mode
			record := func() { seen = append(seen, s.Mode()) }

			record()
			s.PinToWhite(now)
			record()
			s.Tick(now.Add(p.WhiteDuration))
			s.ResumeLiving(now.Add(p.WhiteDuration))
			record()
			s.Tick(now.Add(p.WhiteDuration + p.GrayDuration))
			record()

			Expect(seen).To(Equal([]Mode{Living, PinnedWhite, ReturningToGray, Living}))
		})
	})
})
