package sim

import (
	"context"
	"fmt"
)

// Runner drives a Simulation for a fixed duration at a fixed tick,
// collecting the energy series and metric values along the way.
type Runner struct {
	s         Simulation
	metrics   []Metric
	observers []Observer
}

func NewRunner(s Simulation) *Runner {
	return &Runner{s: s}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt=%f", ErrInvalidTimestep, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration=%f", ErrInvalidTimestep, cfg.Duration)
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:    make([]float64, 0, steps+1),
		Energies: make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.Times = append(result.Times, t)
	result.Energies = append(result.Energies, r.s.Energy())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.s.Step(cfg.Dt)
		t += cfg.Dt
		result.Steps++

		for _, m := range r.metrics {
			m.Observe(r.s, t)
		}
		for _, o := range r.observers {
			o.OnStep(r.s, t)
		}

		e := r.s.Energy()
		if !Finite([]float64{e}) {
			return result, fmt.Errorf("%w: step %d (t=%.4f)", ErrDiverged, i, t)
		}
		result.Times = append(result.Times, t)
		result.Energies = append(result.Energies, e)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	if snap, ok := r.s.(Snapshotter); ok {
		result.Final = snap.Snapshot()
	}

	return result, nil
}
