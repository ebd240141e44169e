package engine

import (
	"math"
	"testing"
)

func TestPistonDisplacementPeriod(t *testing.T) {
	g := DefaultGeometry()

	for a := 0.0; a < 360.0; a += 3.7 {
		d0 := PistonDisplacement(a, g)
		d1 := PistonDisplacement(a+360, g)
		d2 := PistonDisplacement(a+720, g)
		if math.Abs(d0-d1) > 1e-9 || math.Abs(d0-d2) > 1e-9 {
			t.Fatalf("displacement not 360-periodic at %g: %g %g %g", a, d0, d1, d2)
		}
	}
}

func TestPistonDisplacementDeadCenters(t *testing.T) {
	g := DefaultGeometry()

	if got := PistonDisplacement(0, g); math.Abs(got-TDC(g)) > 1e-9 {
		t.Errorf("TDC: got %g, want %g", got, TDC(g))
	}
	if got := PistonDisplacement(180, g); math.Abs(got-BDC(g)) > 1e-9 {
		t.Errorf("BDC: got %g, want %g", got, BDC(g))
	}

	// Extremes bound every angle in between.
	for a := 0.0; a < 720.0; a += 1.7 {
		d := PistonDisplacement(a, g)
		if d < BDC(g)-1e-9 || d > TDC(g)+1e-9 {
			t.Fatalf("displacement %g at %g escapes [%g, %g]", d, a, BDC(g), TDC(g))
		}
	}
}

func TestPistonDisplacementFinite(t *testing.T) {
	// Even hostile geometry must not leak NaN; the radicand is clamped.
	g := Geometry{CrankRadius: 1.0, RodLength: 1.0000001}
	for a := 0.0; a < 720.0; a += 0.9 {
		d := PistonDisplacement(a, g)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t.Fatalf("non-finite displacement %g at %g", d, a)
		}
	}
}

func TestPistonDisplacementContinuity(t *testing.T) {
	g := DefaultGeometry()
	prev := PistonDisplacement(0, g)
	for a := 0.01; a <= 720.0; a += 0.01 {
		d := PistonDisplacement(a, g)
		if math.Abs(d-prev) > 0.001 {
			t.Fatalf("jump of %g at angle %g", math.Abs(d-prev), a)
		}
		prev = d
	}
}

func TestPistonSpeedDeadCenters(t *testing.T) {
	g := DefaultGeometry()
	for _, a := range []float64{0, 180, 360, 540} {
		if v := PistonSpeed(a, 3000, g); math.Abs(v) > 1e-9 {
			t.Errorf("piston speed at dead center %g: got %g, want 0", a, v)
		}
	}
}

func TestPistonSpeedMatchesFiniteDifference(t *testing.T) {
	g := DefaultGeometry()
	rpm := 1200.0
	degPerSec := rpm * 6.0

	for a := 5.0; a < 720.0; a += 11.3 {
		h := 1e-4 // seconds
		d0 := PistonDisplacement(a, g)
		d1 := PistonDisplacement(a+degPerSec*h, g)
		numeric := (d1 - d0) / h
		analytic := PistonSpeed(a, rpm, g)
		if math.Abs(numeric-analytic) > 1e-2 {
			t.Fatalf("speed mismatch at %g: numeric %g, analytic %g", a, numeric, analytic)
		}
	}
}

func TestStrokeFraction(t *testing.T) {
	g := DefaultGeometry()

	if f := StrokeFraction(TDC(g), g); math.Abs(f-1) > 1e-9 {
		t.Errorf("fraction at TDC = %g, want 1", f)
	}
	if f := StrokeFraction(BDC(g), g); math.Abs(f) > 1e-9 {
		t.Errorf("fraction at BDC = %g, want 0", f)
	}
	if f := StrokeFraction(TDC(g)+5, g); f != 1 {
		t.Errorf("fraction above TDC not clamped: %g", f)
	}
}
