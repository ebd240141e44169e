package engine

import (
	"math"
	"testing"
)

func TestInlineFourOffsets(t *testing.T) {
	want := []float64{0, 540, 180, 360}
	cyls := InlineFour()

	if len(cyls) != 4 {
		t.Fatalf("expected 4 cylinders, got %d", len(cyls))
	}
	for i, c := range cyls {
		if c.Index != i {
			t.Errorf("cylinder %d has index %d", i, c.Index)
		}
		if c.PhaseOffsetDeg != want[i] {
			t.Errorf("cylinder %d offset = %g, want %g", i, c.PhaseOffsetDeg, want[i])
		}
	}
}

func TestInlineFourOneCylinderPerStroke(t *testing.T) {
	// The defining property of even firing spacing: at every crank angle
	// the four cylinders occupy four distinct strokes.
	cyls := InlineFour()

	for a := 0.0; a < 720.0; a += 0.5 {
		s := State{CrankAngleDeg: a}
		seen := make(map[Stroke]int)
		for _, c := range cyls {
			seen[c.Stroke(s)]++
		}
		if len(seen) != 4 {
			t.Fatalf("at angle %g strokes collide: %v", a, seen)
		}
	}
}

func TestInlineFourAtZero(t *testing.T) {
	want := []Stroke{Intake, Exhaust, Compression, Power}
	s := State{CrankAngleDeg: 0}

	for i, c := range InlineFour() {
		if got := c.Stroke(s); got != want[i] {
			t.Errorf("cylinder %d at angle 0: got %v, want %v", i, got, want[i])
		}
	}
}

func TestIndexOrderedSpacing(t *testing.T) {
	for _, n := range []int{1, 2, 4, 6} {
		cyls := IndexOrdered(n)
		if len(cyls) != n {
			t.Fatalf("IndexOrdered(%d) returned %d cylinders", n, len(cyls))
		}
		gap := CycleDeg / float64(n)
		for i, c := range cyls {
			if math.Abs(c.PhaseOffsetDeg-float64(i)*gap) > 1e-9 {
				t.Errorf("IndexOrdered(%d) cylinder %d offset = %g", n, i, c.PhaseOffsetDeg)
			}
		}
	}
}

func TestEffectiveAngleWraps(t *testing.T) {
	c := Cylinder{Index: 1, PhaseOffsetDeg: 540}
	s := State{CrankAngleDeg: 300}

	if got := c.EffectiveAngle(s); math.Abs(got-120) > 1e-9 {
		t.Errorf("effective angle = %g, want 120", got)
	}
}
