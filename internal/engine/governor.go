package engine

import "math"

// RPM bounds enforced by the governor and the UI layers.
const (
	MinRPM = 80.0
	MaxRPM = 3500.0
)

// ClampRPM pins a requested speed into [MinRPM, MaxRPM].
func ClampRPM(rpm float64) float64 {
	return math.Max(MinRPM, math.Min(MaxRPM, rpm))
}

// Governor eases the actual crankshaft speed toward a target with a
// first-order lag, so slider input spools the engine up and down instead of
// stepping it. Targets are clamped on the way in.
type Governor struct {
	Target       float64
	TimeConstant float64
}

func NewGovernor(targetRPM float64) *Governor {
	return &Governor{
		Target:       ClampRPM(targetRPM),
		TimeConstant: 0.8,
	}
}

func (g *Governor) SetTarget(rpm float64) {
	g.Target = ClampRPM(rpm)
}

// Step returns the new RPM after dt seconds of approach toward the target.
func (g *Governor) Step(current, dt float64) float64 {
	if dt <= 0 || g.TimeConstant <= 0 {
		return current
	}
	alpha := 1 - math.Exp(-dt/g.TimeConstant)
	return current + (g.Target-current)*alpha
}
