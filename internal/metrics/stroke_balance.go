package metrics

import (
	"math"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

// StrokeBalance measures how evenly cylinder 0 spends its time across the
// four strokes. Value is the largest absolute deviation of any stroke's
// occupancy from the ideal 1/4; zero for a long run at constant RPM.
type StrokeBalance struct {
	name    string
	counts  map[engine.Stroke]int
	samples int
}

func NewStrokeBalance() *StrokeBalance {
	return &StrokeBalance{
		name:   "stroke_balance",
		counts: make(map[engine.Stroke]int),
	}
}

func (s *StrokeBalance) Name() string { return s.name }

func (s *StrokeBalance) Observe(snap engine.Snapshot, t float64) {
	if len(snap.Cylinders) == 0 {
		return
	}
	s.counts[snap.Cylinders[0].Stroke]++
	s.samples++
}

func (s *StrokeBalance) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	maxDev := 0.0
	for _, stroke := range []engine.Stroke{engine.Intake, engine.Compression, engine.Power, engine.Exhaust} {
		frac := float64(s.counts[stroke]) / float64(s.samples)
		maxDev = math.Max(maxDev, math.Abs(frac-0.25))
	}
	return maxDev
}

func (s *StrokeBalance) Reset() {
	s.counts = make(map[engine.Stroke]int)
	s.samples = 0
}

// FiringSpread reports the fraction of samples in which every cylinder
// occupied a distinct stroke — the defining property of even firing spacing.
// 1.0 for the canonical inline-4 offsets, lower for a clashing table.
type FiringSpread struct {
	name    string
	spread  int
	samples int
}

func NewFiringSpread() *FiringSpread {
	return &FiringSpread{name: "firing_spread"}
}

func (f *FiringSpread) Name() string { return f.name }

func (f *FiringSpread) Observe(snap engine.Snapshot, t float64) {
	f.samples++
	seen := make(map[engine.Stroke]bool, 4)
	for _, cv := range snap.Cylinders {
		seen[cv.Stroke] = true
	}
	if len(seen) == len(snap.Cylinders) {
		f.spread++
	}
}

func (f *FiringSpread) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.spread) / float64(f.samples)
}

func (f *FiringSpread) Reset() {
	f.spread = 0
	f.samples = 0
}
