package engine

import "errors"

// Domain errors for engine configuration.
var (
	// ErrInvalidGeometry indicates a rod-crank configuration whose
	// displacement formula is not real-valued (L <= R, or R <= 0).
	ErrInvalidGeometry = errors.New("engine: invalid geometry")

	// ErrNoCylinders indicates an engine configured without cylinders.
	ErrNoCylinders = errors.New("engine: at least one cylinder required")

	// ErrRPMRange indicates a requested speed outside [MinRPM, MaxRPM].
	ErrRPMRange = errors.New("engine: rpm out of range")
)
