package engine

import (
	"fmt"
	"math"
)

// CycleDeg is the angular span of one four-stroke cycle: two crankshaft
// revolutions.
const CycleDeg = 720.0

// StrokeDeg is the angular span of a single stroke.
const StrokeDeg = 180.0

type Stroke int

const (
	Intake Stroke = iota
	Compression
	Power
	Exhaust
)

func (s Stroke) String() string {
	switch s {
	case Intake:
		return "intake"
	case Compression:
		return "compression"
	case Power:
		return "power"
	case Exhaust:
		return "exhaust"
	default:
		return fmt.Sprintf("stroke(%d)", int(s))
	}
}

// Wrap720 maps any angle onto [0, 720). Negative remainders wrap forward.
// Idempotent: Wrap720(Wrap720(a)) == Wrap720(a).
func Wrap720(a float64) float64 {
	a = math.Mod(a, CycleDeg)
	if a < 0 {
		a += CycleDeg
	}
	return a
}

// StrokeAt classifies an angle into its stroke. The four 180° bins are
// half-open, so a boundary value belongs to the stroke it begins:
// StrokeAt(180) == Compression, StrokeAt(540) == Exhaust.
func StrokeAt(angleDeg float64) Stroke {
	a := Wrap720(angleDeg)
	switch {
	case a < StrokeDeg:
		return Intake
	case a < 2*StrokeDeg:
		return Compression
	case a < 3*StrokeDeg:
		return Power
	default:
		return Exhaust
	}
}

// Geometry holds the rod-crank constants shared by all cylinders.
type Geometry struct {
	CrankRadius float64 `yaml:"crank_radius"`
	RodLength   float64 `yaml:"rod_length"`
	Bore        float64 `yaml:"bore"`
}

func DefaultGeometry() Geometry {
	return Geometry{
		CrankRadius: 0.5,
		RodLength:   2.0,
		Bore:        0.5,
	}
}

// Validate rejects geometry that would make the displacement radicand go
// negative. Checked once at startup, not per frame.
func (g Geometry) Validate() error {
	if g.CrankRadius <= 0 {
		return fmt.Errorf("%w: crank radius %g", ErrInvalidGeometry, g.CrankRadius)
	}
	if g.RodLength <= g.CrankRadius {
		return fmt.Errorf("%w: rod length %g, crank radius %g", ErrInvalidGeometry, g.RodLength, g.CrankRadius)
	}
	return nil
}

// StrokeLength is the piston's total travel, 2R.
func (g Geometry) StrokeLength() float64 {
	return 2 * g.CrankRadius
}

// State is the process-wide simulation state: one crank angle drives every
// cylinder, plus the current crankshaft speed.
type State struct {
	CrankAngleDeg float64
	RPM           float64
}

// Advance integrates the crank angle over dt seconds at the state's RPM and
// wraps it back into [0, 720). One revolution is 360° and one minute is 60
// seconds, so RPM converts to degrees per second as RPM × 6. Deterministic;
// dt = 0 or RPM = 0 leaves the angle unchanged.
func Advance(s State, dt float64) State {
	degPerSec := s.RPM * 6.0
	s.CrankAngleDeg = Wrap720(s.CrankAngleDeg + degPerSec*dt)
	return s
}
