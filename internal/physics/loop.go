package physics

import (
	"math"

	"github.com/san-kum/stringverse/internal/linalg"
)

const (
	// MinLoopPoints is the smallest viable loop; child segments below it
	// are discarded on split.
	MinLoopPoints = 20
	// MaxLoopPoints caps resampling growth.
	MaxLoopPoints = 256
	// MaxLoops bounds the active loop population.
	MaxLoops = 8

	intersectionThreshold = 0.8
	targetPointDensity    = 0.5
	resampleSlack         = 10
	velocityBound         = 5.0
)

// Loop is a discretized closed curve: N cyclically adjacent points, each
// carrying a position and a velocity. ColorID tags the loop for tracking
// and visual grouping only; it never enters the physics.
type Loop struct {
	Positions  [][3]float64
	Velocities [][3]float64
	ColorID    int
}

// newSeedLoop builds the deterministic parametric closed curve used at
// simulation start. The phase offset depends on the identity index so the
// seed loops are visually distinct.
func newSeedLoop(n, colorID int) *Loop {
	lp := &Loop{
		Positions:  make([][3]float64, n),
		Velocities: make([][3]float64, n),
		ColorID:    colorID,
	}
	phase := float64(colorID) * 0.7
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		lp.Positions[i] = [3]float64{
			math.Cos(t+phase)*3 + math.Sin(t*2)*0.5,
			math.Sin(t+phase)*3 + math.Cos(t*3)*0.5,
			math.Sin(t*0.5+phase) * 1.5,
		}
		lp.Velocities[i] = [3]float64{
			-math.Sin(t+phase) * 0.3,
			math.Cos(t+phase) * 0.3,
			math.Cos(t*0.5) * 0.1,
		}
	}
	return lp
}

func (lp *Loop) Len() int { return len(lp.Positions) }

// Energy is the kinetic term plus a linear stretching proxy: the sum of
// cyclic neighbor distances, not a quadratic stiffness.
func (lp *Loop) Energy() float64 {
	n := lp.Len()
	ke, pe := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := lp.Velocities[i]
		ke += 0.5 * (v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		next := (i + 1) % n
		p, q := lp.Positions[i], lp.Positions[next]
		pe += linalg.Dist3(p[0], p[1], p[2], q[0], q[1], q[2])
	}
	return ke + pe
}

// arcLength is the total cyclic arc length, wrapping from the last point
// back to the first.
func (lp *Loop) arcLength() float64 {
	n := lp.Len()
	total := 0.0
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		p, q := lp.Positions[i], lp.Positions[next]
		total += linalg.Dist3(p[0], p[1], p[2], q[0], q[1], q[2])
	}
	return total
}

// resample replaces the loop's points with target new points by
// index-uniform linear interpolation along the original sequence.
// The parameterization is deliberately index-based, not arclength-based;
// the target count alone is arclength-driven.
func (lp *Loop) resample(target int) *Loop {
	n := lp.Len()
	if n == target {
		return lp.clone()
	}
	out := &Loop{
		Positions:  make([][3]float64, target),
		Velocities: make([][3]float64, target),
		ColorID:    lp.ColorID,
	}
	for i := 0; i < target; i++ {
		t := float64(i) / float64(target) * float64(n)
		idx := int(t) % n
		frac := t - math.Floor(t)
		next := (idx + 1) % n
		for d := 0; d < 3; d++ {
			out.Positions[i][d] = lp.Positions[idx][d] + frac*(lp.Positions[next][d]-lp.Positions[idx][d])
			out.Velocities[i][d] = lp.Velocities[idx][d] + frac*(lp.Velocities[next][d]-lp.Velocities[idx][d])
		}
	}
	return out
}

func (lp *Loop) clone() *Loop {
	out := &Loop{
		Positions:  make([][3]float64, lp.Len()),
		Velocities: make([][3]float64, lp.Len()),
		ColorID:    lp.ColorID,
	}
	copy(out.Positions, lp.Positions)
	copy(out.Velocities, lp.Velocities)
	return out
}

// split divides the loop at point indices i < j into two children.
// Child A takes points i..j inclusive; child B takes j..N-1 followed by
// 0..i inclusive. Points i and j appear in both children by construction.
func (lp *Loop) split(i, j, idA, idB int) (*Loop, *Loop) {
	n := lp.Len()

	a := &Loop{ColorID: idA}
	for k := i; k <= j; k++ {
		a.Positions = append(a.Positions, lp.Positions[k])
		a.Velocities = append(a.Velocities, lp.Velocities[k])
	}

	b := &Loop{ColorID: idB}
	for k := j; k < n; k++ {
		b.Positions = append(b.Positions, lp.Positions[k])
		b.Velocities = append(b.Velocities, lp.Velocities[k])
	}
	for k := 0; k <= i; k++ {
		b.Positions = append(b.Positions, lp.Positions[k])
		b.Velocities = append(b.Velocities, lp.Velocities[k])
	}

	return a, b
}
