package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/stringverse/internal/linalg"
	"github.com/san-kum/stringverse/internal/sim"
)

const (
	forceBound        = 2.0
	displacementBound = 0.15
	momentumBound     = 3.0
	matrixDamping     = 0.08
)

// MatrixModel simulates the bosonic sector of a matrix model of D0-branes:
//
//	H = 1/2 Tr(P^2) - 1/4 g^2 Σ_{i≠j} Tr([Xi,Xj]^2) + 1/2 m^2 Σ_i Tr(Xi^2)
//
// with three real symmetric N×N matrices standing in for Hermitian degrees
// of freedom (imaginary parts assumed zero). Commutator forces grow with
// the cube of the matrix norm, so the integrator clamps at three levels:
// force entries, per-step displacement, and momentum entries.
type MatrixModel struct {
	n        int
	x        [3][]float64
	p        [3][]float64
	mass     float64
	coupling float64
	damping  float64
	rng      sim.Source
}

// NewMatrixModel allocates the three matrix/momentum pairs. Positions
// start as small symmetric random matrices scaled by 0.1/sqrt(n) so the
// first force evaluation stays tame; momenta start at zero. n must be at
// least 1.
func NewMatrixModel(n int, coupling, mass float64, rng sim.Source) (*MatrixModel, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: matrix model needs n >= 1, got %d", sim.ErrInvalidSize, n)
	}

	m := &MatrixModel{
		n:        n,
		mass:     mass,
		coupling: coupling,
		damping:  matrixDamping,
		rng:      rng,
	}

	scale := 0.1 / math.Sqrt(float64(n))
	for i := 0; i < 3; i++ {
		m.x[i] = make([]float64, n*n)
		m.p[i] = make([]float64, n*n)
		for a := 0; a < n; a++ {
			for b := a; b < n; b++ {
				val := (2*rng.Float64() - 1) * scale
				m.x[i][a*n+b] = val
				m.x[i][b*n+a] = val
			}
		}
	}

	return m, nil
}

func (m *MatrixModel) N() int { return m.n }

// computeForces evaluates F_i = g^2 Σ_{j≠i} [Xj, [Xj, Xi]] - m^2 Xi with
// every entry clamped.
func (m *MatrixModel) computeForces() [3][]float64 {
	n := m.n
	g2 := m.coupling * m.coupling
	m2 := m.mass * m.mass

	var forces [3][]float64
	for i := 0; i < 3; i++ {
		forces[i] = make([]float64, n*n)
		for j := 0; j < 3; j++ {
			if i == j {
				continue
			}
			comm := linalg.Commutator(m.x[j], m.x[i], n)
			double := linalg.Commutator(m.x[j], comm, n)
			for idx := range forces[i] {
				forces[i][idx] += g2 * double[idx]
			}
		}
		for idx := range forces[i] {
			forces[i][idx] = linalg.Clamp(forces[i][idx]-m2*m.x[i][idx], -forceBound, forceBound)
		}
	}
	return forces
}

// Step advances one clamped velocity-Verlet step and repairs the symmetry
// invariant. The commutator of two symmetric matrices is antisymmetric,
// so the raw update drifts off the symmetric manifold every step; the
// final averaging restores Xi[a][b] == Xi[b][a] exactly.
func (m *MatrixModel) Step(dt float64) {
	n := m.n
	dt2 := dt * dt

	forces := m.computeForces()

	for i := 0; i < 3; i++ {
		for idx := 0; idx < n*n; idx++ {
			dx := m.p[i][idx]*dt + 0.5*forces[i][idx]*dt2
			m.x[i][idx] += linalg.Clamp(dx, -displacementBound, displacementBound)
		}
	}

	forcesNew := m.computeForces()

	damp := 1 - m.damping*dt
	for i := 0; i < 3; i++ {
		for idx := 0; idx < n*n; idx++ {
			p := damp * (m.p[i][idx] + 0.5*(forces[i][idx]+forcesNew[i][idx])*dt)
			m.p[i][idx] = linalg.Clamp(p, -momentumBound, momentumBound)
		}
	}

	for i := 0; i < 3; i++ {
		linalg.Symmetrize(m.x[i], n)
	}
}

// Poke kicks the momenta with one random draw per unordered index pair,
// applied identically to both mirrored entries. Symmetry is preserved by
// construction here, not by post-hoc repair.
func (m *MatrixModel) Poke(strength float64) {
	n := m.n
	for i := 0; i < 3; i++ {
		for a := 0; a < n; a++ {
			for b := a; b < n; b++ {
				kick := (m.rng.Float64() - 0.5) * strength * 2
				pv := linalg.Clamp(m.p[i][a*n+b]+kick, -momentumBound, momentumBound)
				m.p[i][a*n+b] = pv
				m.p[i][b*n+a] = pv
			}
		}
	}
}

func (m *MatrixModel) SetCoupling(c float64) { m.coupling = c }
func (m *MatrixModel) SetMass(mass float64)  { m.mass = mass }

// Eigenvalues returns the diagonal entries of each matrix as a flat
// [n*3] array: per index a, the X1, X2, X3 diagonals. The diagonal is a
// cheap proxy for the true eigenvalues; an exact eigendecomposition is
// deliberately not computed.
func (m *MatrixModel) Eigenvalues() []float64 {
	n := m.n
	out := make([]float64, 0, n*3)
	for a := 0; a < n; a++ {
		for i := 0; i < 3; i++ {
			out = append(out, m.x[i][a*n+a])
		}
	}
	return out
}

// Connections returns, for every unordered pair a < b, the triple
// (a, b, sqrt(Σ_i Xi[a][b]^2)): the off-diagonal excitation magnitude
// that drives the inter-brane linkage layer.
func (m *MatrixModel) Connections() []float64 {
	n := m.n
	out := make([]float64, 0, 3*n*(n-1)/2)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			strength := 0.0
			for i := 0; i < 3; i++ {
				v := m.x[i][a*n+b]
				strength += v * v
			}
			out = append(out, float64(a), float64(b), math.Sqrt(strength))
		}
	}
	return out
}

// Energy evaluates the Hamiltonian. The commutator term is subtracted,
// so negative totals are expected.
func (m *MatrixModel) Energy() float64 {
	n := m.n
	g2 := m.coupling * m.coupling
	m2 := m.mass * m.mass

	ke, potential := 0.0, 0.0
	for i := 0; i < 3; i++ {
		for idx := 0; idx < n*n; idx++ {
			ke += 0.5 * m.p[i][idx] * m.p[i][idx]
			potential += 0.5 * m2 * m.x[i][idx] * m.x[i][idx]
		}
	}

	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			comm := linalg.Commutator(m.x[i], m.x[j], n)
			for idx := 0; idx < n*n; idx++ {
				potential -= 0.25 * g2 * comm[idx] * comm[idx]
			}
		}
	}

	return ke + potential
}

// Snapshot implements sim.Snapshotter with the eigenvalue proxy.
func (m *MatrixModel) Snapshot() []float64 { return m.Eigenvalues() }

// Entry returns Xi[a][b] for diagnostics and tests.
func (m *MatrixModel) Entry(i, a, b int) float64 { return m.x[i][a*m.n+b] }

// Momentum returns Pi[a][b] for diagnostics and tests.
func (m *MatrixModel) Momentum(i, a, b int) float64 { return m.p[i][a*m.n+b] }
