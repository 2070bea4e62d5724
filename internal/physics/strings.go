package physics

import (
	"github.com/san-kum/stringverse/internal/linalg"
	"github.com/san-kum/stringverse/internal/sim"
)

// StringSimulation owns a bounded collection of vibrating closed loops.
// Each step integrates every loop independently, then resolves topology
// changes (probabilistic splitting at self-intersections) and restores
// point density by resampling.
type StringSimulation struct {
	loops    []*Loop
	coupling float64
	nextID   int
	rng      sim.Source
}

// NewStringSimulation creates the two seed loops (sizes 64 and 48, ids 0
// and 1) and starts the identity counter at 2. Ids are issued strictly
// increasing and never reused.
func NewStringSimulation(coupling float64, rng sim.Source) *StringSimulation {
	return &StringSimulation{
		loops:    []*Loop{newSeedLoop(64, 0), newSeedLoop(48, 1)},
		coupling: coupling,
		nextID:   2,
		rng:      rng,
	}
}

// Step advances every loop by dt, then, while below the loop cap,
// resolves at most one split per loop, and finally resamples.
func (s *StringSimulation) Step(dt float64) {
	for _, lp := range s.loops {
		s.integrate(lp, dt)
	}
	s.resolveSplits()
	s.resampleLoops()
}

// integrate applies velocity-Verlet under the discrete-Laplacian tension
// force, clamping every velocity component after the update.
func (s *StringSimulation) integrate(lp *Loop, dt float64) {
	n := lp.Len()
	dt2 := dt * dt

	forces := s.forces(lp)

	for i := 0; i < n; i++ {
		for d := 0; d < 3; d++ {
			lp.Positions[i][d] += lp.Velocities[i][d]*dt + 0.5*forces[i][d]*dt2
		}
	}

	forcesNew := s.forces(lp)

	for i := 0; i < n; i++ {
		for d := 0; d < 3; d++ {
			v := lp.Velocities[i][d] + 0.5*(forces[i][d]+forcesNew[i][d])*dt
			lp.Velocities[i][d] = linalg.Clamp(v, -velocityBound, velocityBound)
		}
	}
}

// forces returns the per-point restoring force: the second difference of
// position across cyclic neighbors scaled by the coupling constant.
func (s *StringSimulation) forces(lp *Loop) [][3]float64 {
	n := lp.Len()
	out := make([][3]float64, n)
	for i := 0; i < n; i++ {
		prev := (i + n - 1) % n
		next := (i + 1) % n
		for d := 0; d < 3; d++ {
			laplacian := lp.Positions[prev][d] - 2*lp.Positions[i][d] + lp.Positions[next][d]
			out[i][d] = s.coupling * laplacian
		}
	}
	return out
}

// resolveSplits scans each loop for its first qualifying close-approach
// pair and splits there with probability min(coupling*0.3, 0.8). Parents
// are removed only after every loop has been scanned, so the scan never
// sees a half-updated population.
func (s *StringSimulation) resolveSplits() {
	count := len(s.loops)
	var removed []int
	var children []*Loop

	for idx, lp := range s.loops {
		if count >= MaxLoops {
			break
		}
		i, j, ok := s.splitCandidate(lp)
		if !ok {
			continue
		}
		prob := s.coupling * 0.3
		if prob > 0.8 {
			prob = 0.8
		}
		if s.rng.Float64() >= prob {
			continue
		}

		// Two fresh ids per split, even if a child is discarded.
		idA, idB := s.nextID, s.nextID+1
		s.nextID += 2
		a, b := lp.split(i, j, idA, idB)

		removed = append(removed, idx)
		count--
		if a.Len() >= MinLoopPoints {
			children = append(children, a)
			count++
		}
		if b.Len() >= MinLoopPoints {
			children = append(children, b)
			count++
		}
	}

	for k := len(removed) - 1; k >= 0; k-- {
		s.loops = append(s.loops[:removed[k]], s.loops[removed[k]+1:]...)
	}
	s.loops = append(s.loops, children...)
}

// splitCandidate returns the first point pair (i, j), scanned in
// ascending i then j, with j >= i+4, excluding the wrap pair (0, N-1),
// whose children would both be viable and whose Euclidean distance is
// below the intersection threshold.
func (s *StringSimulation) splitCandidate(lp *Loop) (int, int, bool) {
	n := lp.Len()
	for i := 0; i < n; i++ {
		for j := i + 4; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			lenA := j - i + 1
			lenB := (n - j) + (i + 1)
			if lenA < MinLoopPoints || lenB < MinLoopPoints {
				continue
			}
			p, q := lp.Positions[i], lp.Positions[j]
			if linalg.Dist3(p[0], p[1], p[2], q[0], q[1], q[2]) < intersectionThreshold {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// resampleLoops re-points each loop toward the target density. The
// target count derives from arc length, but the interpolation itself is
// index-uniform; small deviations are left alone.
func (s *StringSimulation) resampleLoops() {
	for idx, lp := range s.loops {
		target := int(lp.arcLength() / targetPointDensity)
		if target < MinLoopPoints {
			target = MinLoopPoints
		}
		if target > MaxLoopPoints {
			target = MaxLoopPoints
		}
		diff := target - lp.Len()
		if diff < 0 {
			diff = -diff
		}
		if diff > resampleSlack {
			s.loops[idx] = lp.resample(target)
		}
	}
}

// SetCoupling changes the shared coupling constant; it affects both the
// tension force and the split probability of subsequent steps.
func (s *StringSimulation) SetCoupling(c float64) { s.coupling = c }

func (s *StringSimulation) LoopCount() int { return len(s.loops) }

// NextID reports the next identity to be issued.
func (s *StringSimulation) NextID() int { return s.nextID }

// Energy sums each loop's kinetic energy and stretching proxy.
func (s *StringSimulation) Energy() float64 {
	total := 0.0
	for _, lp := range s.loops {
		total += lp.Energy()
	}
	return total
}

// Positions returns the flat self-describing layout
// [loopCount, (pointCount, colorID, x,y,z × pointCount) × loopCount].
func (s *StringSimulation) Positions() []float64 {
	out := []float64{float64(len(s.loops))}
	for _, lp := range s.loops {
		out = append(out, float64(lp.Len()), float64(lp.ColorID))
		for _, p := range lp.Positions {
			out = append(out, p[0], p[1], p[2])
		}
	}
	return out
}

// VelocityMags returns [loopCount, (pointCount, |v| × pointCount) × loopCount].
func (s *StringSimulation) VelocityMags() []float64 {
	out := []float64{float64(len(s.loops))}
	for _, lp := range s.loops {
		out = append(out, float64(lp.Len()))
		for _, v := range lp.Velocities {
			out = append(out, linalg.Dist3(v[0], v[1], v[2], 0, 0, 0))
		}
	}
	return out
}

// Snapshot implements sim.Snapshotter.
func (s *StringSimulation) Snapshot() []float64 { return s.Positions() }

// Loops exposes the live loop records for visualization; callers must
// not mutate them.
func (s *StringSimulation) Loops() []*Loop { return s.loops }
