package sim

import (
	"context"
	"fmt"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

// Runner drives an engine through a fixed-duration run, recording the trace
// and feeding metrics and observers. Within one tick the crank is advanced
// first and every cylinder is then read from a single snapshot, so all
// consumers observe one consistent crank angle.
type Runner struct {
	eng       *engine.Engine
	metrics   []Metric
	observers []Observer
}

func New(eng *engine.Engine) *Runner {
	return &Runner{
		eng:       eng,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	ncyl := len(r.eng.Cylinders)

	result := &Result{
		Times:         make([]float64, 0, steps+1),
		Angles:        make([]float64, 0, steps+1),
		Displacements: make([][]float64, ncyl),
		Strokes:       make([][]engine.Stroke, ncyl),
		Metrics:       make(map[string]float64),
	}
	for i := 0; i < ncyl; i++ {
		result.Displacements[i] = make([]float64, 0, steps+1)
		result.Strokes[i] = make([]engine.Stroke, 0, steps+1)
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	record := func(snap engine.Snapshot) {
		result.Times = append(result.Times, t)
		result.Angles = append(result.Angles, snap.CrankAngleDeg)
		for i, cv := range snap.Cylinders {
			result.Displacements[i] = append(result.Displacements[i], cv.Displacement)
			result.Strokes[i] = append(result.Strokes[i], cv.Stroke)
		}
	}

	snap := r.eng.Snapshot()
	record(snap)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.eng.Advance(cfg.Dt)
		t += cfg.Dt
		snap = r.eng.Snapshot()

		for _, m := range r.metrics {
			m.Observe(snap, t)
		}
		for _, obs := range r.observers {
			obs.OnTick(snap, t)
		}

		record(snap)
		result.Steps++
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback streams snapshots instead of recording them; the run stops
// early when the callback returns false.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(engine.Snapshot, float64) bool) error {
	if err := r.validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.eng.Advance(cfg.Dt)
		t += cfg.Dt

		if !callback(r.eng.Snapshot(), t) {
			return nil
		}
	}
	return nil
}

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
