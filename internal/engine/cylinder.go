package engine

// Cylinder identifies one bore and its angular offset from cylinder 0.
// Offsets are fixed at configuration time; everything else is derived.
type Cylinder struct {
	Index          int     `yaml:"index"`
	PhaseOffsetDeg float64 `yaml:"phase_offset_deg"`
}

// EffectiveAngle is the cylinder's own position in the four-stroke cycle.
func (c Cylinder) EffectiveAngle(s State) float64 {
	return Wrap720(s.CrankAngleDeg + c.PhaseOffsetDeg)
}

// Stroke reports which stroke the cylinder is in for the given state.
func (c Cylinder) Stroke(s State) Stroke {
	return StrokeAt(c.EffectiveAngle(s))
}

// InlineFour returns the canonical inline-4 bank with firing order 1-3-4-2.
// Firing events land every 180° of crank rotation, so the offsets by
// cylinder index are {0, 540, 180, 360} — cylinder 2 (index 1) trails
// cylinder 1 by a full revolution plus a stroke, not by a naive 180°.
// At any crank angle exactly one cylinder occupies each stroke.
func InlineFour() []Cylinder {
	return []Cylinder{
		{Index: 0, PhaseOffsetDeg: 0},
		{Index: 1, PhaseOffsetDeg: 540},
		{Index: 2, PhaseOffsetDeg: 180},
		{Index: 3, PhaseOffsetDeg: 360},
	}
}

// IndexOrdered returns n cylinders with offsets assigned in index order,
// 720/n apart. For n=4 this is the {0, 180, 360, 540} table some of the
// original demo's variants used; it spaces firing evenly but walks the bank
// left to right instead of following a real firing order.
func IndexOrdered(n int) []Cylinder {
	cyls := make([]Cylinder, n)
	for i := 0; i < n; i++ {
		cyls[i] = Cylinder{Index: i, PhaseOffsetDeg: float64(i) * CycleDeg / float64(n)}
	}
	return cyls
}
