package sim

import "math"

// Simulation is a stepwise physics model driven by an external tick.
// Step advances the model by dt; Energy reports the current total energy.
// Callers own the choice of dt; the models bound misbehavior by clamping
// rather than validating.
type Simulation interface {
	Step(dt float64)
	Energy() float64
}

// Snapshotter exposes a flat, self-describing numeric snapshot for a
// rendering consumer.
type Snapshotter interface {
	Snapshot() []float64
}

// Source supplies uniform random values in [0, 1). A seeded *rand.Rand
// satisfies it; tests substitute fixed sequences.
type Source interface {
	Float64() float64
}

type Metric interface {
	Name() string
	Observe(s Simulation, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Simulation, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
}

// Result holds the time/energy series and per-metric values from a run.
type Result struct {
	Times    []float64
	Energies []float64
	Metrics  map[string]float64
	Final    []float64
	Steps    int
}

// Finite reports whether every value in vals is a usable float.
func Finite(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
