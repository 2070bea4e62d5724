package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/onsi/gomega"

	"github.com/san-kum/stringverse/internal/sim"
)

func newTestModel(t *testing.T, n int, coupling, mass float64) *MatrixModel {
	t.Helper()
	m, err := NewMatrixModel(n, coupling, mass, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	return m
}

func TestMatrixModelRejectsZeroSize(t *testing.T) {
	g := gomega.NewWithT(t)

	_, err := NewMatrixModel(0, 1.0, 1.0, rand.New(rand.NewSource(1)))
	g.Expect(err).To(gomega.MatchError(sim.ErrInvalidSize))

	_, err = NewMatrixModel(-3, 1.0, 1.0, rand.New(rand.NewSource(1)))
	g.Expect(err).To(gomega.MatchError(sim.ErrInvalidSize))
}

func TestMatrixModelInitialState(t *testing.T) {
	g := gomega.NewWithT(t)
	m := newTestModel(t, 4, 1.0, 1.0)

	eig := m.Eigenvalues()
	g.Expect(eig).To(gomega.HaveLen(12))

	// Initial entries are scaled by 0.1/sqrt(4) = 0.05.
	for _, v := range eig {
		g.Expect(v).To(gomega.BeNumerically("~", 0, 0.05))
	}

	g.Expect(math.IsNaN(m.Energy())).To(gomega.BeFalse())
	g.Expect(math.IsInf(m.Energy(), 0)).To(gomega.BeFalse())

	// Momenta start at zero.
	for i := 0; i < 3; i++ {
		for a := 0; a < 4; a++ {
			for b := 0; b < 4; b++ {
				g.Expect(m.Momentum(i, a, b)).To(gomega.BeZero())
			}
		}
	}
}

func TestMatrixModelSymmetryExactAfterSteps(t *testing.T) {
	g := gomega.NewWithT(t)
	m := newTestModel(t, 3, 1.5, 1.0)

	for step := 0; step < 50; step++ {
		m.Step(0.05)
		for i := 0; i < 3; i++ {
			for a := 0; a < 3; a++ {
				for b := a + 1; b < 3; b++ {
					// Exact equality, not tolerance: the averaging
					// repair restores the invariant bit-for-bit.
					g.Expect(m.Entry(i, a, b)).To(gomega.Equal(m.Entry(i, b, a)))
				}
			}
		}
	}
}

func TestMatrixModelSizeOne(t *testing.T) {
	g := gomega.NewWithT(t)
	m := newTestModel(t, 1, 1.0, 1.0)

	m.Step(0.1)
	g.Expect(m.Eigenvalues()).To(gomega.HaveLen(3))
	g.Expect(m.Connections()).To(gomega.BeEmpty())
}

func TestMatrixModelClampBoundsUnderLargeTimestep(t *testing.T) {
	g := gomega.NewWithT(t)
	n := 4
	m := newTestModel(t, n, 5.0, 2.0)

	before := make([]float64, 0, 3*n*n)
	for i := 0; i < 3; i++ {
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				before = append(before, m.Entry(i, a, b))
			}
		}
	}

	// dt far beyond anything the caller should use; an unclamped
	// integrator diverges here on the first step.
	m.Step(10.0)

	idx := 0
	for i := 0; i < 3; i++ {
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				g.Expect(m.Momentum(i, a, b)).To(gomega.BeNumerically("<=", momentumBound))
				g.Expect(m.Momentum(i, a, b)).To(gomega.BeNumerically(">=", -momentumBound))

				dx := m.Entry(i, a, b) - before[idx]
				g.Expect(math.Abs(dx)).To(gomega.BeNumerically("<=", displacementBound+1e-12))
				idx++
			}
		}
	}

	g.Expect(math.IsNaN(m.Energy())).To(gomega.BeFalse())
	g.Expect(math.IsInf(m.Energy(), 0)).To(gomega.BeFalse())
}

func TestMatrixModelBoundednessOverManySteps(t *testing.T) {
	g := gomega.NewWithT(t)
	n := 3
	m := newTestModel(t, n, 3.0, 1.0)

	for step := 0; step < 300; step++ {
		m.Step(0.05)
	}
	for i := 0; i < 3; i++ {
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				g.Expect(math.Abs(m.Momentum(i, a, b))).To(gomega.BeNumerically("<=", momentumBound))
				g.Expect(math.IsNaN(m.Entry(i, a, b))).To(gomega.BeFalse())
			}
		}
	}
}

func TestPokePreservesSymmetry(t *testing.T) {
	g := gomega.NewWithT(t)
	n := 5
	m := newTestModel(t, n, 1.0, 1.0)

	m.Poke(100.0)

	for i := 0; i < 3; i++ {
		for a := 0; a < n; a++ {
			for b := a + 1; b < n; b++ {
				g.Expect(m.Momentum(i, a, b)).To(gomega.Equal(m.Momentum(i, b, a)))
			}
			g.Expect(math.Abs(m.Momentum(i, a, a))).To(gomega.BeNumerically("<=", momentumBound))
		}
	}
}

func TestConnectionsLayout(t *testing.T) {
	g := gomega.NewWithT(t)
	n := 4
	m := newTestModel(t, n, 1.0, 1.0)

	conns := m.Connections()
	pairCount := n * (n - 1) / 2
	g.Expect(conns).To(gomega.HaveLen(3 * pairCount))

	for k := 0; k < pairCount; k++ {
		a, b, strength := conns[3*k], conns[3*k+1], conns[3*k+2]
		g.Expect(a).To(gomega.BeNumerically("<", b))
		g.Expect(strength).To(gomega.BeNumerically(">=", 0))
	}
}

func TestSettersAffectDynamics(t *testing.T) {
	a := newTestModel(t, 3, 1.0, 1.0)
	b := newTestModel(t, 3, 1.0, 1.0)
	b.SetMass(10.0)

	a.Step(0.05)
	b.Step(0.05)

	diff := 0.0
	for i := 0; i < 3; i++ {
		diff += math.Abs(a.Momentum(i, 0, 0) - b.Momentum(i, 0, 0))
	}
	if diff == 0 {
		t.Error("expected mass change to alter the momenta")
	}
}
