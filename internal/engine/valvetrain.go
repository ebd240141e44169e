package engine

import "math"

// Valve lift and flame intensity are classification-range functions of the
// effective angle, structurally the same as StrokeAt. They live here rather
// than in the display layers so every consumer (TUI, GUI, audio) reads the
// same curves; nothing in this file feeds back into the kinematics.

// IntakeValveLift returns a normalized lift in [0, 1]: a half-sine bump over
// the intake stroke, fully closed elsewhere.
func IntakeValveLift(effAngleDeg float64) float64 {
	a := Wrap720(effAngleDeg)
	if a >= StrokeDeg {
		return 0
	}
	return math.Sin(math.Pi * a / StrokeDeg)
}

// ExhaustValveLift returns a normalized lift in [0, 1]: a half-sine bump
// over the exhaust stroke, fully closed elsewhere.
func ExhaustValveLift(effAngleDeg float64) float64 {
	a := Wrap720(effAngleDeg)
	if a < 3*StrokeDeg {
		return 0
	}
	return math.Sin(math.Pi * (a - 3*StrokeDeg) / StrokeDeg)
}

// FlameIntensity returns a normalized combustion intensity in [0, 1]:
// maximal at the start of the power stroke and decaying quadratically to
// zero by bottom dead center. Zero outside the power stroke.
func FlameIntensity(effAngleDeg float64) float64 {
	a := Wrap720(effAngleDeg)
	if a < 2*StrokeDeg || a >= 3*StrokeDeg {
		return 0
	}
	x := (a - 2*StrokeDeg) / StrokeDeg
	return (1 - x) * (1 - x)
}
