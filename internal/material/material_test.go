package material_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/curesim/internal/cure"
	"github.com/san-kum/curesim/internal/glass"
	"github.com/san-kum/curesim/internal/kinetics"
	"github.com/san-kum/curesim/internal/material"
	"github.com/san-kum/curesim/internal/modulus"
	"github.com/san-kum/curesim/internal/thermal"
)

func dykemanMaterial() *material.Material {
	return &material.Material{
		Name:     "dykeman",
		Glass:    glass.NewDykeman(50, 180, 0.8),
		Kinetics: kinetics.Dykeman{},
		Modulus: modulus.ModelA{
			GelPoint: 0.4, TempRef: 180,
			Eta0A: 0.2, Eta0B: 0.1, DEta0A: 0.05, DEta0B: 0.02,
			A1A: 1000, A1B: 0.1, A2A: 10, A2B: 1,
		},
		Expansion:    thermal.ExpansionA{GelPoint: 0.45, Alpha: 80, Beta: 70},
		HeatCapacity: thermal.HeatCapacityLinear{Alpha: 1.2e-3, Beta: 0.2},
	}
}

var _ = Describe("Material", func() {
	var m *material.Material

	BeforeEach(func() {
		m = dykemanMaterial()
	})

	Describe("Evaluate", func() {
		It("feeds the evaluated Tg into the kinetics law", func() {
			props, err := m.Evaluate(0.5, 160)
			Expect(err).NotTo(HaveOccurred())

			tg, err := m.Glass.Tg(0.5, 160)
			Expect(err).NotTo(HaveOccurred())
			Expect(props.Tg).To(Equal(tg))

			rate, err := m.Kinetics.CureRate(0.5, 160, tg)
			Expect(err).NotTo(HaveOccurred())
			Expect(props.CureRate).To(Equal(rate))
		})

		It("returns every property at the point", func() {
			props, err := m.Evaluate(0.6, 150)
			Expect(err).NotTo(HaveOccurred())
			Expect(props.Phi).To(Equal(0.6))
			Expect(props.TempC).To(Equal(150.0))
			Expect(props.Modulus).To(BeNumerically(">", modulus.GelPlaceholder))
			Expect(props.CTE).To(BeNumerically(">", 0))
			Expect(props.SpecificHeat).To(BeNumerically(">", 0))
			Expect(math.IsNaN(props.CureRate)).To(BeFalse())
		})

		It("is reproducible bit for bit", func() {
			a, err := m.Evaluate(0.33, 140)
			Expect(err).NotTo(HaveOccurred())
			b, err := m.Evaluate(0.33, 140)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		})

		It("rejects cure fractions outside [0, 1]", func() {
			_, err := m.Evaluate(1.5, 150)
			Expect(err).To(MatchError(cure.ErrInputDomain))
		})

		It("reports missing families as configuration errors", func() {
			m.Modulus = nil
			m.HeatCapacity = nil
			_, err := m.Evaluate(0.5, 150)
			Expect(err).To(MatchError(cure.ErrConfiguration))
			Expect(err.Error()).To(ContainSubstring("modulus"))
			Expect(err.Error()).To(ContainSubstring("heat_capacity"))
		})
	})

	Describe("EvaluateBatch", func() {
		It("preserves point order across chunks", func() {
			points := make([]material.Point, 1000)
			for i := range points {
				points[i] = material.Point{Phi: 0.01 + 0.98*float64(i)/999, TempC: 160}
			}

			batch, err := m.EvaluateBatch(points)
			Expect(err).NotTo(HaveOccurred())
			Expect(batch).To(HaveLen(len(points)))

			for _, i := range []int{0, 63, 64, 500, 999} {
				single, err := m.Evaluate(points[i].Phi, points[i].TempC)
				Expect(err).NotTo(HaveOccurred())
				Expect(batch[i]).To(Equal(single))
			}
		})

		It("returns the first failing point's error", func() {
			points := []material.Point{{Phi: 0.5, TempC: 150}, {Phi: -1, TempC: 150}, {Phi: 0.5, TempC: -400}}
			_, err := m.EvaluateBatch(points)
			Expect(err).To(MatchError(cure.ErrInputDomain))
			Expect(err.Error()).To(ContainSubstring("phi"))
		})

		It("handles an empty batch", func() {
			batch, err := m.EvaluateBatch(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(batch).To(BeEmpty())
		})
	})

	Describe("Describe", func() {
		It("names the chosen model per family", func() {
			Expect(m.Describe()).To(Equal(map[string]string{
				"glass":         "dykeman",
				"kinetics":      "dykeman",
				"modulus":       "model_a",
				"expansion":     "model_a",
				"heat_capacity": "linear",
			}))
		})
	})
})

var _ = Describe("ParallelFor", func() {
	It("covers every index exactly once", func() {
		const n = 1037
		hits := make([]int, n)
		material.ParallelFor(n, 16, func(start, end int) {
			for i := start; i < end; i++ {
				hits[i]++
			}
		})
		for i := range hits {
			Expect(hits[i]).To(Equal(1), "index %d", i)
		}
	})
})
