package sim

import (
	"fmt"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(snap engine.Snapshot, t float64)
	Value() float64
	Reset()
}

// Observer receives every snapshot as the run progresses.
type Observer interface {
	OnTick(snap engine.Snapshot, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
}

// Result holds the recorded trace of one run. Per-cylinder series are
// indexed [cylinder][sample].
type Result struct {
	Times         []float64
	Angles        []float64
	Displacements [][]float64
	Strokes       [][]engine.Stroke
	Metrics       map[string]float64
	Steps         int
}

type RunError struct {
	Time    float64
	Step    int
	Message string
}

func (e RunError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
