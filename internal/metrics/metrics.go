package metrics

import (
	"math"

	"github.com/san-kum/stringverse/internal/sim"
)

// EnergyDrift tracks the maximum relative deviation of reported energy
// from its first observed value.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s sim.Simulation, t float64) {
	energy := s.Energy()
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// loopCounter is satisfied by the string simulation.
type loopCounter interface {
	LoopCount() int
}

// LoopPopulation records the peak number of simultaneously active loops.
type LoopPopulation struct {
	peak int
}

func NewLoopPopulation() *LoopPopulation {
	return &LoopPopulation{}
}

func (l *LoopPopulation) Name() string { return "peak_loops" }

func (l *LoopPopulation) Observe(s sim.Simulation, t float64) {
	lc, ok := s.(loopCounter)
	if !ok {
		return
	}
	if n := lc.LoopCount(); n > l.peak {
		l.peak = n
	}
}

func (l *LoopPopulation) Value() float64 { return float64(l.peak) }

func (l *LoopPopulation) Reset() { l.peak = 0 }

// idIssuer is satisfied by the string simulation.
type idIssuer interface {
	NextID() int
}

// SplitTally infers the number of splits from identity issuance: ids 0
// and 1 belong to the seed loops and every split issues exactly two.
type SplitTally struct {
	splits int
}

func NewSplitTally() *SplitTally {
	return &SplitTally{}
}

func (s *SplitTally) Name() string { return "splits" }

func (s *SplitTally) Observe(simn sim.Simulation, t float64) {
	ids, ok := simn.(idIssuer)
	if !ok {
		return
	}
	s.splits = (ids.NextID() - 2) / 2
}

func (s *SplitTally) Value() float64 { return float64(s.splits) }

func (s *SplitTally) Reset() { s.splits = 0 }
