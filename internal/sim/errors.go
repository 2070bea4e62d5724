package sim

import "errors"

// Domain errors for simulation construction and driving.
var (
	// ErrInvalidSize indicates a matrix or loop dimension that cannot be
	// simulated (e.g. a zero-sized matrix model).
	ErrInvalidSize = errors.New("sim: invalid size")

	// ErrInvalidTimestep indicates a non-positive dt or duration.
	ErrInvalidTimestep = errors.New("sim: timestep must be positive")

	// ErrDiverged indicates NaN/Inf leaked into reported values.
	ErrDiverged = errors.New("sim: simulation diverged (NaN or Inf)")
)
