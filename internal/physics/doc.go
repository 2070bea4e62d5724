// Package physics provides the two simulation engines behind the
// stringverse renderer:
//
//   - [StringSimulation]: a population of discretized closed loops under
//     wave-equation tension, with probabilistic self-intersection
//     splitting and density-driven resampling.
//   - [MatrixModel]: a bosonic matrix model of three coupled real
//     symmetric matrices evolving under nested-commutator forces.
//
// Both engines implement [sim.Simulation] and are advanced by an external
// driver one tick at a time. Numerical stability comes from clamping at
// fixed bounds rather than from validating dt; the bounds are part of the
// engine contract.
package physics
