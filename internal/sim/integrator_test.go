package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/lavalamp/internal/random"
	"github.com/san-kum/lavalamp/internal/sim"
)

// still returns params with every vertical term and all noise switched off.
func still() sim.Params {
	p := sim.DefaultParams()
	p.Jitter = 0
	p.Buoyancy = 0
	p.FallChance = 0
	p.FallGain = 0
	return p
}

var _ = Describe("Lift", func() {
	It("is one at the bottom, guarded just below one", func() {
		f := sim.Lift(0, 40)
		Expect(f).To(BeNumerically("<", 1))
		Expect(f).To(BeNumerically("~", 1, 1e-6))
	})

	It("is zero at the top", func() {
		Expect(sim.Lift(40, 40)).To(Equal(0.0))
	})

	It("falls linearly with height", func() {
		Expect(sim.Lift(10, 40)).To(BeNumerically("~", 0.75, 1e-12))
		Expect(sim.Lift(30, 40)).To(BeNumerically("~", 0.25, 1e-12))
	})

	It("clamps outside the viewport", func() {
		Expect(sim.Lift(80, 40)).To(Equal(0.0))
		Expect(sim.Lift(-5, 40)).To(BeNumerically("<", 1))
		Expect(sim.Lift(5, 0)).To(Equal(0.0))
	})
})

var _ = Describe("Step", func() {
	var rnd *random.Sequence

	BeforeEach(func() {
		rnd = random.Fixed(0.5)
	})

	It("moves a blob by its velocity", func() {
		set := sim.BlobSet{{Pos: r2.Vec{X: 10, Y: 10}, Vel: r2.Vec{X: 1, Y: -0.5}}}
		next := sim.Step(set, 100, 40, still(), rnd)
		Expect(next[0].Pos.X).To(BeNumerically("~", 11, 1e-12))
		Expect(next[0].Pos.Y).To(BeNumerically("~", 9.5, 1e-12))
	})

	It("does not mutate its input", func() {
		set := sim.BlobSet{{Pos: r2.Vec{X: 10, Y: 10}, Vel: r2.Vec{X: 1, Y: 1}}}
		_ = sim.Step(set, 100, 40, still(), rnd)
		Expect(set[0].Pos).To(Equal(r2.Vec{X: 10, Y: 10}))
	})

	It("handles an empty set", func() {
		Expect(sim.Step(sim.BlobSet{}, 100, 40, sim.DefaultParams(), rnd)).To(BeEmpty())
	})

	It("adds buoyancy that weakens toward the top", func() {
		p := still()
		p.Buoyancy = 0.4
		p.SpeedScale = 2
		set := sim.BlobSet{
			{Pos: r2.Vec{X: 50, Y: 10}},
			{Pos: r2.Vec{X: 50, Y: 30}},
		}
		next := sim.Step(set, 100, 40, p, rnd)
		low := next[0].Pos.Y - 10
		high := next[1].Pos.Y - 30
		Expect(low).To(BeNumerically("~", 2*0.4*0.75, 1e-12))
		Expect(high).To(BeNumerically("~", 2*0.4*0.25, 1e-12))
		Expect(next[0].Vel).To(Equal(r2.Vec{}))
	})

	Context("at a boundary", func() {
		It("reflects the horizontal axis", func() {
			set := sim.BlobSet{{Pos: r2.Vec{X: 99.5, Y: 20}, Vel: r2.Vec{X: 1, Y: 0}}}
			next := sim.Step(set, 100, 40, still(), rnd)
			Expect(next[0].Vel.X).To(Equal(-1.0))
			Expect(next[0].Pos.X).To(BeNumerically("~", 98.5, 1e-12))
		})

		It("reflects the vertical axis", func() {
			set := sim.BlobSet{{Pos: r2.Vec{X: 50, Y: 0.2}, Vel: r2.Vec{X: 0, Y: -0.5}}}
			next := sim.Step(set, 100, 40, still(), rnd)
			Expect(next[0].Vel.Y).To(Equal(0.5))
			Expect(next[0].Pos.Y).To(BeNumerically("~", 0.7, 1e-12))
		})

		It("reflects both axes in a corner", func() {
			set := sim.BlobSet{{Pos: r2.Vec{X: 0.1, Y: 39.9}, Vel: r2.Vec{X: -0.5, Y: 0.5}}}
			next := sim.Step(set, 100, 40, still(), rnd)
			Expect(next[0].Vel).To(Equal(r2.Vec{X: 0.5, Y: -0.5}))
		})

		It("preserves speed through reflection", func() {
			p := still()
			p.Jitter = 0.3
			set := sim.BlobSet{{Pos: r2.Vec{X: 99.8, Y: 0.1}, Vel: r2.Vec{X: 0.6, Y: -0.8}}}
			next := sim.Step(set, 100, 40, p, random.Fixed(1))
			Expect(r2.Norm(next[0].Vel)).To(BeNumerically("~", 1, 1e-12))
			Expect(next[0].Vel).To(Equal(r2.Vec{X: -0.6, Y: 0.8}))
		})
	})

	It("scales displacement by one jitter factor on both axes", func() {
		p := still()
		p.Jitter = 0.5
		set := sim.BlobSet{{Pos: r2.Vec{X: 50, Y: 20}, Vel: r2.Vec{X: 1, Y: 2}}}
		// Fraction 1 draws the top of [0.5, 1.5).
		next := sim.Step(set, 100, 40, p, random.Fixed(1))
		Expect(next[0].Pos.X - 50).To(BeNumerically("~", 1.5, 1e-12))
		Expect(next[0].Pos.Y - 20).To(BeNumerically("~", 3, 1e-12))
		Expect(next[0].Vel).To(Equal(r2.Vec{X: 1, Y: 2}))
	})

	It("keeps blobs inside the viewport without jitter", func() {
		p := sim.DefaultParams()
		p.Jitter = 0
		gen := random.New(11)
		set := sim.NewBlobSet(100, 40, 1.25, p, gen)
		Expect(set).NotTo(BeEmpty())
		for tick := 0; tick < 2000; tick++ {
			set = sim.Step(set, 100, 40, p, gen)
			for _, b := range set {
				Expect(b.Pos.X).To(BeNumerically(">=", 0))
				Expect(b.Pos.X).To(BeNumerically("<", 100))
				Expect(b.Pos.Y).To(BeNumerically(">=", 0))
				Expect(b.Pos.Y).To(BeNumerically("<", 40))
			}
		}
		Expect(set.IsValid()).To(BeTrue())
	})

	Describe("falling mode", func() {
		It("enters above the trigger height when the draw is under the chance", func() {
			p := still()
			p.FallChance = 0.5
			p.FallTrigger = 0.75
			p.FallGain = 1
			p.FallSettle = 0
			set := sim.BlobSet{{Pos: r2.Vec{X: 50, Y: 36}}}
			// Draws: fall roll 0.1, settle eps, jitter.
			next := sim.Step(set, 100, 40, p, random.NewSequence(0.1, 0, 0.5))
			Expect(next[0].Falling).To(BeTrue())
			Expect(next[0].Pos.Y).To(BeNumerically("<", 36))
		})

		It("does not enter below the trigger height", func() {
			p := still()
			p.FallChance = 1
			set := sim.BlobSet{{Pos: r2.Vec{X: 50, Y: 10}}}
			next := sim.Step(set, 100, 40, p, random.Fixed(0))
			Expect(next[0].Falling).To(BeFalse())
		})

		It("pulls harder the higher the blob is", func() {
			p := still()
			p.FallGain = 1
			p.FallSettle = 0
			set := sim.BlobSet{
				{Pos: r2.Vec{X: 20, Y: 36}, Falling: true},
				{Pos: r2.Vec{X: 60, Y: 20}, Falling: true},
			}
			next := sim.Step(set, 100, 40, p, random.Fixed(0.5))
			high := 36 - next[0].Pos.Y
			mid := 20 - next[1].Pos.Y
			Expect(high).To(BeNumerically("~", 0.9, 1e-9))
			Expect(mid).To(BeNumerically("~", 0.5, 1e-9))
			Expect(next[0].Falling).To(BeTrue())
		})

		It("settles once the vertical resultant is near zero", func() {
			p := still()
			p.Buoyancy = 0.5
			p.FallGain = 0.5
			p.FallSettle = 0.1
			// At mid height buoyancy and fall pull cancel exactly.
			set := sim.BlobSet{{Pos: r2.Vec{X: 50, Y: 20}, Falling: true}}
			next := sim.Step(set, 100, 40, p, random.Fixed(0.5))
			Expect(next[0].Falling).To(BeFalse())
		})
	})

	It("recovers from a non-finite position", func() {
		set := sim.BlobSet{{Pos: r2.Vec{X: math.NaN(), Y: 5}, Vel: r2.Vec{X: 1}}}
		next := sim.Step(set, 100, 40, still(), rnd)
		Expect(next.IsValid()).To(BeTrue())
	})

	It("counts the blobs it had to reset", func() {
		set := sim.BlobSet{
			{Pos: r2.Vec{X: math.NaN(), Y: 5}, Vel: r2.Vec{X: 1}},
			{Pos: r2.Vec{X: 10, Y: 10}, Vel: r2.Vec{X: math.Inf(1)}},
			{Pos: r2.Vec{X: 20, Y: 10}, Vel: r2.Vec{X: 1}},
		}
		next, resets := sim.StepResets(set, 100, 40, still(), rnd)
		Expect(resets).To(Equal(2))
		Expect(next.IsValid()).To(BeTrue())
		Expect(next[0].Pos).To(Equal(r2.Vec{X: 50, Y: 20}))

		_, resets = sim.StepResets(set[2:], 100, 40, still(), rnd)
		Expect(resets).To(BeZero())
	})
})
