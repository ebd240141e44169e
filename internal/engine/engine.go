package engine

import "fmt"

// Engine couples shared geometry, a cylinder bank and the single crank state.
type Engine struct {
	Geometry  Geometry
	Cylinders []Cylinder
	State     State
}

// New validates the configuration once and returns a ready engine with the
// crank parked at angle 0 (intake for the reference cylinder).
func New(g Geometry, cylinders []Cylinder, rpm float64) (*Engine, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(cylinders) == 0 {
		return nil, ErrNoCylinders
	}
	if rpm < 0 {
		return nil, fmt.Errorf("%w: %g", ErrRPMRange, rpm)
	}
	return &Engine{
		Geometry:  g,
		Cylinders: cylinders,
		State:     State{CrankAngleDeg: 0, RPM: rpm},
	}, nil
}

// Advance moves the crank forward by dt seconds at the current RPM.
func (e *Engine) Advance(dt float64) {
	e.State = Advance(e.State, dt)
}

// Reset parks the crank back at angle 0.
func (e *Engine) Reset() {
	e.State.CrankAngleDeg = 0
}

// CylinderView is one cylinder's slice of a snapshot.
type CylinderView struct {
	Index             int
	EffectiveAngleDeg float64
	Displacement      float64
	Stroke            Stroke
	IntakeLift        float64
	ExhaustLift       float64
	FlameIntensity    float64
}

// Snapshot is a consistent view of every cylinder at one crank angle.
type Snapshot struct {
	CrankAngleDeg float64
	RPM           float64
	Cylinders     []CylinderView
}

// Snapshot derives all per-cylinder quantities from the current state.
// Callers that tick the simulation must Advance first and then query one
// snapshot, so all cylinders observe the same crank angle.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		CrankAngleDeg: e.State.CrankAngleDeg,
		RPM:           e.State.RPM,
		Cylinders:     make([]CylinderView, len(e.Cylinders)),
	}
	for i, c := range e.Cylinders {
		eff := c.EffectiveAngle(e.State)
		snap.Cylinders[i] = CylinderView{
			Index:             c.Index,
			EffectiveAngleDeg: eff,
			Displacement:      PistonDisplacement(eff, e.Geometry),
			Stroke:            StrokeAt(eff),
			IntakeLift:        IntakeValveLift(eff),
			ExhaustLift:       ExhaustValveLift(eff),
			FlameIntensity:    FlameIntensity(eff),
		}
	}
	return snap
}
