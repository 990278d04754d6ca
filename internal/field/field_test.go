package field_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/lavalamp/internal/field"
	"github.com/san-kum/lavalamp/internal/sim"
)

var _ = Describe("Evaluate", func() {
	It("returns an all-zero grid for an empty set", func() {
		g := field.Evaluate(sim.BlobSet{}, 30, 10)
		Expect(g.W).To(Equal(30))
		Expect(g.H).To(Equal(10))
		Expect(g.Values).To(HaveLen(300))
		for _, v := range g.Values {
			Expect(v).To(BeZero())
		}
		Expect(g.Peak()).To(BeZero())
	})

	It("handles a zero-sized viewport", func() {
		g := field.Evaluate(sim.BlobSet{{Pos: r2.Vec{X: 1, Y: 1}}}, 0, 0)
		Expect(g.Values).To(BeEmpty())
		Expect(g.Mask(0.5)).To(BeEmpty())
	})

	Context("with a single blob on a cell", func() {
		var g *field.Grid

		BeforeEach(func() {
			g = field.Evaluate(sim.BlobSet{{Pos: r2.Vec{X: 10, Y: 5}}}, 21, 11)
		})

		It("saturates at the blob's cell without going infinite", func() {
			v := g.At(5, 10)
			Expect(math.IsInf(v, 0)).To(BeFalse())
			Expect(v).To(BeNumerically("~", 1/field.MinDistance, 1e-9))
			Expect(g.Peak()).To(Equal(v))
			Expect(g.Clamped(5, 10)).To(Equal(1.0))
		})

		It("strictly decreases with distance", func() {
			prev := g.At(5, 10)
			for dx := 1; dx <= 10; dx++ {
				v := g.At(5, 10+dx)
				Expect(v).To(BeNumerically("<", prev))
				Expect(v).To(BeNumerically("~", 1/float64(dx), 1e-12))
				prev = v
			}
			Expect(g.At(6, 11)).To(BeNumerically("~", 1/math.Sqrt2, 1e-12))
		})

		It("thresholds to a disk", func() {
			for i := 0; i < g.H; i++ {
				for j := 0; j < g.W; j++ {
					d := math.Hypot(float64(j-10), float64(i-5))
					Expect(g.Inside(i, j, 0.5)).To(Equal(d <= 2), "cell (%d,%d) at distance %.3f", i, j, d)
				}
			}
			Expect(g.Count(0.5)).To(Equal(13))
		})
	})

	It("sums contributions from every blob", func() {
		set := sim.BlobSet{
			{Pos: r2.Vec{X: 0, Y: 0}},
			{Pos: r2.Vec{X: 4, Y: 0}},
		}
		g := field.Evaluate(set, 5, 1)
		Expect(g.At(0, 2)).To(BeNumerically("~", 1.0, 1e-12))
		Expect(g.At(0, 1)).To(BeNumerically("~", 1+1.0/3, 1e-12))
	})

	It("ignores blobs with a NaN position", func() {
		set := sim.BlobSet{{Pos: r2.Vec{X: math.NaN(), Y: 0}}, {Pos: r2.Vec{X: 2, Y: 0}}}
		g := field.Evaluate(set, 3, 1)
		Expect(g.At(0, 0)).To(BeNumerically("~", 0.5, 1e-12))
	})
})

var _ = Describe("EvaluateInto", func() {
	It("reuses the buffer when it is large enough", func() {
		set := sim.BlobSet{{Pos: r2.Vec{X: 2, Y: 2}}}
		g := field.Evaluate(set, 10, 10)
		buf := &g.Values[0]

		g2 := field.EvaluateInto(g, set, 5, 5)
		Expect(g2).To(BeIdenticalTo(g))
		Expect(&g2.Values[0]).To(BeIdenticalTo(buf))
		Expect(g2.Values).To(HaveLen(25))
		Expect(g2.At(2, 2)).To(BeNumerically("~", 1/field.MinDistance, 1e-9))
	})

	It("grows the buffer on a larger viewport", func() {
		g := field.NewGrid(2, 2)
		g2 := field.EvaluateInto(g, sim.BlobSet{}, 8, 4)
		Expect(g2.Values).To(HaveLen(32))
	})
})
