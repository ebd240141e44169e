// Package engine implements the crank-angle kinematics of a four-stroke
// piston engine.
//
// The whole model hangs off a single scalar: the crank angle in degrees,
// wrapped to [0, 720) so one value spans the full four-stroke cycle (two
// crankshaft revolutions). From it the package derives, per cylinder:
//
//   - [PistonDisplacement]: rod-crank kinematics (exact form)
//   - [StrokeAt]: intake / compression / power / exhaust classification
//   - valve lift and flame intensity curves for display layers
//
// # Conventions
//
// Displacement is measured from the crank axis toward the cylinder head, so
// it is maximal at top dead center. Displacement has period 360°; only the
// stroke classification has period 720°. Per-cylinder phase offsets follow
// the inline-4 firing order 1-3-4-2, giving offsets {0, 540, 180, 360} for
// cylinder indices {0, 1, 2, 3}.
//
// All functions are pure and non-blocking; [Engine] holds the only mutable
// state. Engine instances are NOT thread-safe.
package engine
