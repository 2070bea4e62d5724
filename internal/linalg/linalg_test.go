package linalg

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp(7, -5, 5); got != 5 {
		t.Errorf("expected 5, got %f", got)
	}
	if got := Clamp(-7, -5, 5); got != -5 {
		t.Errorf("expected -5, got %f", got)
	}
	if got := Clamp(0.3, -5, 5); got != 0.3 {
		t.Errorf("expected 0.3, got %f", got)
	}
}

func TestDist3(t *testing.T) {
	got := Dist3(0, 0, 0, 3, 4, 0)
	if math.Abs(got-5) > 1e-12 {
		t.Errorf("expected 5, got %f", got)
	}
}

func TestCommutatorKnownValue(t *testing.T) {
	// [A, B] for A = [[0,1],[0,0]], B = [[0,0],[1,0]] is [[1,0],[0,-1]].
	a := []float64{0, 1, 0, 0}
	b := []float64{0, 0, 1, 0}

	c := Commutator(a, b, 2)
	want := []float64{1, 0, 0, -1}
	for i := range want {
		if math.Abs(c[i]-want[i]) > 1e-12 {
			t.Errorf("entry %d: expected %f, got %f", i, want[i], c[i])
		}
	}
}

func TestCommutatorWithIdentityVanishes(t *testing.T) {
	n := 3
	id := make([]float64, n*n)
	for i := 0; i < n; i++ {
		id[i*n+i] = 1
	}
	b := []float64{2, -1, 0, 3, 0.5, 1, -2, 4, 7}

	c := Commutator(id, b, n)
	for i, v := range c {
		if math.Abs(v) > 1e-12 {
			t.Errorf("entry %d: expected 0, got %f", i, v)
		}
	}
}

func TestCommutatorOfSymmetricIsAntisymmetric(t *testing.T) {
	a := []float64{1, 2, 2, 3}
	b := []float64{0, 1, 1, 4}

	c := Commutator(a, b, 2)
	if c[0*2+1] != -c[1*2+0] {
		t.Errorf("expected antisymmetric off-diagonal, got %f and %f", c[1], c[2])
	}
	if math.Abs(c[0]) > 1e-12 || math.Abs(c[3]) > 1e-12 {
		t.Errorf("expected zero diagonal, got %f and %f", c[0], c[3])
	}
}

func TestCommutatorSizeOne(t *testing.T) {
	c := Commutator([]float64{2}, []float64{3}, 1)
	if c[0] != 0 {
		t.Errorf("1x1 commutator must vanish, got %f", c[0])
	}
}

func TestSymmetrize(t *testing.T) {
	m := []float64{1, 2, 4, 3}
	Symmetrize(m, 2)

	if m[1] != 3 || m[2] != 3 {
		t.Errorf("expected averaged off-diagonals 3, got %f and %f", m[1], m[2])
	}
	if !IsSymmetric(m, 2) {
		t.Error("expected symmetric matrix after Symmetrize")
	}
}
