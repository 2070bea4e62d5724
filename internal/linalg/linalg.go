// Package linalg provides the numeric primitives shared by both
// simulation engines: clamping, 3-vector distances, and commutators
// over flat row-major square real matrices.
package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Dist3 returns the Euclidean distance between two 3-vectors.
func Dist3(ax, ay, az, bx, by, bz float64) float64 {
	dx, dy, dz := ax-bx, ay-by, az-bz
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Commutator computes [A, B] = AB - BA for n×n matrices stored as flat
// row-major slices. The inputs are not modified.
func Commutator(a, b []float64, n int) []float64 {
	am := mat.NewDense(n, n, a)
	bm := mat.NewDense(n, n, b)

	var ab, ba mat.Dense
	ab.Mul(am, bm)
	ba.Mul(bm, am)
	ab.Sub(&ab, &ba)

	out := make([]float64, n*n)
	copy(out, ab.RawMatrix().Data)
	return out
}

// Symmetrize forces m[a][b] == m[b][a] by averaging each off-diagonal
// pair in place.
func Symmetrize(m []float64, n int) {
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			avg := 0.5 * (m[a*n+b] + m[b*n+a])
			m[a*n+b] = avg
			m[b*n+a] = avg
		}
	}
}

// IsSymmetric reports whether m[a][b] == m[b][a] exactly for all pairs.
func IsSymmetric(m []float64, n int) bool {
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if m[a*n+b] != m[b*n+a] {
				return false
			}
		}
	}
	return true
}
