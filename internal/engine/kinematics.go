package engine

import "math"

// PistonDisplacement computes the piston pin position for a crank angle in
// degrees, using the exact rod-crank form
//
//	y = R·cosθ + L·√(1 − (R/L)²·sin²θ)
//
// measured from the crank axis toward the cylinder head, with θ=0 at top
// dead center. The original demo's variants disagreed on the cosine sign
// and zero point; this convention makes the intake stroke, which begins at
// angle 0, start with the piston at TDC. The radicand is clamped to zero so
// a degenerate geometry can never leak NaN into callers; Geometry.Validate
// keeps that branch from being reachable in practice.
//
// The result has period 360°: the piston returns to the same position every
// crankshaft revolution regardless of where the cycle stands.
func PistonDisplacement(angleDeg float64, g Geometry) float64 {
	theta := angleDeg * math.Pi / 180.0
	r, l := g.CrankRadius, g.RodLength

	ratio := r / l
	sin := math.Sin(theta)
	radicand := 1 - ratio*ratio*sin*sin
	if radicand < 0 {
		radicand = 0
	}
	return r*math.Cos(theta) + l*math.Sqrt(radicand)
}

// PistonSpeed is the analytic derivative of PistonDisplacement with respect
// to time, in length units per second, for a crankshaft turning at rpm.
// Zero at top and bottom dead center.
func PistonSpeed(angleDeg, rpm float64, g Geometry) float64 {
	theta := angleDeg * math.Pi / 180.0
	r, l := g.CrankRadius, g.RodLength

	ratio := r / l
	sin, cos := math.Sin(theta), math.Cos(theta)
	radicand := 1 - ratio*ratio*sin*sin
	if radicand <= 0 {
		return 0
	}

	// dy/dθ, then chain rule through ω = rpm·2π/60.
	dyDTheta := -r*sin - (r*r*sin*cos)/(l*math.Sqrt(radicand))
	omega := rpm * 2 * math.Pi / 60.0
	return dyDTheta * omega
}

// TDC and BDC are the displacement extremes for a geometry: L+R at top dead
// center (θ=0 mod 360) and L-R at bottom dead center (θ=180 mod 360).
func TDC(g Geometry) float64 { return g.RodLength + g.CrankRadius }
func BDC(g Geometry) float64 { return g.RodLength - g.CrankRadius }

// StrokeFraction normalizes a displacement into [0, 1], 0 at BDC and 1 at
// TDC. Handy for display layers that only care about relative travel.
func StrokeFraction(displacement float64, g Geometry) float64 {
	span := TDC(g) - BDC(g)
	if span == 0 {
		return 0
	}
	f := (displacement - BDC(g)) / span
	return math.Max(0, math.Min(1, f))
}
