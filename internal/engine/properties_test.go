package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

var _ = Describe("crank angle wrapping", func() {
	It("maps every real angle into [0, 720)", func() {
		for a := -5000.0; a < 5000.0; a += 13.7 {
			w := engine.Wrap720(a)
			Expect(w).To(BeNumerically(">=", 0))
			Expect(w).To(BeNumerically("<", 720))
		}
	})

	It("is idempotent", func() {
		for a := -1500.0; a < 1500.0; a += 9.1 {
			w := engine.Wrap720(a)
			Expect(engine.Wrap720(w)).To(BeNumerically("~", w, 1e-12))
		}
	})
})

var _ = Describe("stroke classification", func() {
	It("partitions the cycle into four exhaustive bins", func() {
		counts := map[engine.Stroke]int{}
		for a := 0.0; a < 720.0; a += 0.25 {
			counts[engine.StrokeAt(a)]++
		}
		Expect(counts).To(HaveLen(4))
		for _, n := range counts {
			Expect(n).To(Equal(720 * 4 / 4))
		}
	})

	It("assigns boundary angles to the stroke they begin", func() {
		Expect(engine.StrokeAt(179.999)).To(Equal(engine.Intake))
		Expect(engine.StrokeAt(180.0)).To(Equal(engine.Compression))
		Expect(engine.StrokeAt(539.999)).To(Equal(engine.Power))
		Expect(engine.StrokeAt(540.0)).To(Equal(engine.Exhaust))
	})

	It("cycles intake, compression, power, exhaust every 180 degrees", func() {
		order := []engine.Stroke{engine.Intake, engine.Compression, engine.Power, engine.Exhaust}
		for i, want := range order {
			Expect(engine.StrokeAt(float64(i)*180 + 90)).To(Equal(want))
		}
	})
})

var _ = Describe("piston displacement", func() {
	geom := engine.DefaultGeometry()

	It("repeats every crankshaft revolution", func() {
		for a := 0.0; a < 360.0; a += 4.9 {
			Expect(engine.PistonDisplacement(a+360, geom)).To(
				BeNumerically("~", engine.PistonDisplacement(a, geom), 1e-9))
		}
	})

	It("agrees at the cycle seams", func() {
		d0 := engine.PistonDisplacement(0, geom)
		Expect(engine.PistonDisplacement(360, geom)).To(BeNumerically("~", d0, 1e-9))
		Expect(engine.PistonDisplacement(720, geom)).To(BeNumerically("~", d0, 1e-9))
	})

	It("stays finite for any finite angle", func() {
		for _, a := range []float64{-1e9, -720.5, 0, 359.999, 1e9} {
			d := engine.PistonDisplacement(a, geom)
			Expect(math.IsNaN(d)).To(BeFalse())
			Expect(math.IsInf(d, 0)).To(BeFalse())
		}
	})
})

var _ = Describe("advancing the crank", func() {
	It("is additive in elapsed time at constant rpm", func() {
		s := engine.State{CrankAngleDeg: 17, RPM: 950}
		split := engine.Advance(engine.Advance(s, 0.007), 0.021)
		whole := engine.Advance(s, 0.028)
		Expect(split.CrankAngleDeg).To(BeNumerically("~", whole.CrankAngleDeg, 1e-9))
	})

	It("sweeps 360 degrees in one 0.1s tick at 600 rpm", func() {
		s := engine.Advance(engine.State{RPM: 600}, 0.1)
		Expect(s.CrankAngleDeg).To(BeNumerically("~", 360, 1e-9))
	})

	It("holds still at zero rpm", func() {
		s := engine.State{CrankAngleDeg: 88, RPM: 0}
		Expect(engine.Advance(s, 10).CrankAngleDeg).To(Equal(88.0))
	})
})

var _ = Describe("inline-4 firing spacing", func() {
	It("keeps one cylinder in each stroke at all times", func() {
		cyls := engine.InlineFour()
		for a := 0.0; a < 720.0; a += 1.0 {
			s := engine.State{CrankAngleDeg: a}
			seen := map[engine.Stroke]bool{}
			for _, c := range cyls {
				seen[c.Stroke(s)] = true
			}
			Expect(seen).To(HaveLen(4))
		}
	})

	It("starts the bank as intake, exhaust, compression, power", func() {
		s := engine.State{}
		want := []engine.Stroke{engine.Intake, engine.Exhaust, engine.Compression, engine.Power}
		for i, c := range engine.InlineFour() {
			Expect(c.Stroke(s)).To(Equal(want[i]))
		}
	})
})
