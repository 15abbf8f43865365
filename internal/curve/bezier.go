package curve

import (
	"math"

	"git.lost.host/meutraa/hitsound/internal/game"
)

const (
	// Handle is how far along the span the control points sit
	Handle = 0.35
	// Epsilon is the tolerance on the time coordinate when inverting the curve
	Epsilon = 1e-7
	// MaxIterations caps the bisection on the curve parameter
	MaxIterations = 500
)

// cubic is one axis of an arc as a Bézier in (time, value) space
type cubic struct {
	t [4]float64
	v [4]float64
}

func newCubic(t0, t3 game.Tick, v0, v3 float64) cubic {
	a, d := float64(t0), float64(t3)
	b := (1-Handle)*a + Handle*d
	c := d - (b - a)
	return cubic{
		t: [4]float64{a, b, c, d},
		v: [4]float64{v0, v0, v3, v3},
	}
}

func bez(p [4]float64, u float64) float64 {
	m := 1 - u
	return m*m*m*p[0] + 3*m*m*u*p[1] + 3*m*u*u*p[2] + u*u*u*p[3]
}

func (c *cubic) at(u float64) (t, v float64) {
	return bez(c.t, u), bez(c.v, u)
}

// solve finds the value at time t. The time coordinate is monotonic in
// u because the control points are ordered, so bisection converges.
func (c *cubic) solve(t float64) float64 {
	lo, hi := 0.0, 1.0
	v := c.v[0]
	for i := 0; i < MaxIterations; i++ {
		mid := (lo + hi) / 2
		var pt float64
		pt, v = c.at(mid)
		if math.Abs(pt-t) < Epsilon {
			break
		}
		if pt <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	return game.Round2(v)
}

func bezierAt(t0, t3 game.Tick, v0, v3 float64, t game.Tick) float64 {
	if v0 == v3 || t == t0 {
		return game.Round2(v0)
	}
	if t == t3 {
		return game.Round2(v3)
	}
	c := newCubic(t0, t3, v0, v3)
	return c.solve(float64(t))
}
