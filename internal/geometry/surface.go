// Package geometry samples the fixed algebraic background surface shown
// behind the simulations. It is a stateless collaborator of the physics
// engines: pure sampling, no invariants.
package geometry

import "math"

// VertexStride is the number of floats per vertex in the interleaved
// mesh layout: position (3), normal (3), uv (2).
const VertexStride = 8

// SurfacePoint maps (u, v) on a deformed quintic-slice parameterization
// to a point in 3-space. psi deforms the surface; sliceZ selects the
// slice.
func SurfacePoint(u, v, sliceZ, psi float64) (x, y, z float64) {
	su, cu := math.Sincos(u)
	sv, cv := math.Sincos(v)
	s2u, c2u := math.Sincos(2 * u)
	s3v, c3v := math.Sincos(3 * v)

	x = cu*cv + psi*0.2*c2u*c3v + sliceZ*su*0.3
	y = su*sv + psi*0.2*s2u*s3v + sliceZ*cv*0.3
	z = (cu*sv+su*cv)*0.7 + sliceZ*0.5*c2u

	return x * 2.5, y * 2.5, z * 2.5
}

// Mesh samples a (resolution+1)² vertex grid and returns interleaved
// [x, y, z, nx, ny, nz, u, v] data. Normals come from finite differences
// of the two tangent directions; their length is floored at 1e-8 rather
// than failing on degenerate points.
func Mesh(resolution int, sliceZ, psi float64) []float64 {
	res := resolution
	vertices := make([]float64, 0, (res+1)*(res+1)*VertexStride)

	const eps = 0.01
	for iu := 0; iu <= res; iu++ {
		for iv := 0; iv <= res; iv++ {
			u := float64(iu) / float64(res) * 2 * math.Pi
			v := float64(iv) / float64(res) * 2 * math.Pi

			x, y, z := SurfacePoint(u, v, sliceZ, psi)
			x1, y1, z1 := SurfacePoint(u+eps, v, sliceZ, psi)
			x2, y2, z2 := SurfacePoint(u, v+eps, sliceZ, psi)

			tux, tuy, tuz := x1-x, y1-y, z1-z
			tvx, tvy, tvz := x2-x, y2-y, z2-z
			nx := tuy*tvz - tuz*tvy
			ny := tuz*tvx - tux*tvz
			nz := tux*tvy - tuy*tvx
			nlen := math.Max(math.Sqrt(nx*nx+ny*ny+nz*nz), 1e-8)

			vertices = append(vertices,
				x, y, z,
				nx/nlen, ny/nlen, nz/nlen,
				float64(iu)/float64(res), float64(iv)/float64(res),
			)
		}
	}
	return vertices
}

// Indices returns the triangle index buffer for a resolution×resolution
// quad grid, two triangles per quad.
func Indices(resolution int) []uint32 {
	res := resolution
	indices := make([]uint32, 0, res*res*6)
	for iu := 0; iu < res; iu++ {
		for iv := 0; iv < res; iv++ {
			a := uint32(iu*(res+1) + iv)
			b := a + 1
			c := uint32((iu+1)*(res+1) + iv)
			d := c + 1
			indices = append(indices, a, b, c, b, d, c)
		}
	}
	return indices
}

// PsiFromTime is the slow oscillation used to animate the deformation
// parameter.
func PsiFromTime(t float64) float64 {
	return math.Sin(t*0.3)*0.8 + 1.0
}
