package metrics

import (
	"math"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

// MeanPistonSpeed averages the absolute piston speed of cylinder 0 over the
// run. A classic engine figure of merit; for a crank turning at constant RPM
// it approaches 2 × stroke × RPM / 60.
type MeanPistonSpeed struct {
	name    string
	geom    engine.Geometry
	sum     float64
	samples int
}

func NewMeanPistonSpeed(geom engine.Geometry) *MeanPistonSpeed {
	return &MeanPistonSpeed{
		name: "mean_piston_speed",
		geom: geom,
	}
}

func (m *MeanPistonSpeed) Name() string { return m.name }

func (m *MeanPistonSpeed) Observe(snap engine.Snapshot, t float64) {
	if len(snap.Cylinders) == 0 {
		return
	}
	cv := snap.Cylinders[0]
	m.sum += math.Abs(engine.PistonSpeed(cv.EffectiveAngleDeg, snap.RPM, m.geom))
	m.samples++
}

func (m *MeanPistonSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanPistonSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}
