// Package curve locates arc-like notes at an arbitrary tick.
//
// Every coordinate returned here is rounded to two decimal places, the
// same precision charts are written in. Later stages compare points as
// exact tuples, so the rounding is part of the contract.
package curve

import (
	"math"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/hitsound/internal/game"
)

var ErrNotArc = errors.New("note has no curve")

// Position returns where the note is at tick t.
//
// Notes whose span is zero sit at their start point for every t.
func Position(n *game.Note, t game.Tick) (x, y float64, err error) {
	if !n.IsArcLike() {
		return 0, 0, errors.Wrapf(ErrNotArc, "%v at %d", n.Kind, n.Time)
	}
	g := &n.Geometry
	if n.EndTime == n.Time {
		return game.Round2(g.StartX), game.Round2(g.StartY), nil
	}

	if g.Easing == game.Bezier {
		x = bezierAt(n.Time, n.EndTime, g.StartX, g.EndX, t)
		y = bezierAt(n.Time, n.EndTime, g.StartY, g.EndY, t)
		return x, y, nil
	}

	ex, ey := g.Easing.Axes()
	x = axis(ex, n, t, g.StartX, g.EndX)
	y = axis(ey, n, t, g.StartY, g.EndY)
	return x, y, nil
}

// X is Position without the vertical coordinate, which black curve
// arctaps ignore.
func X(n *game.Note, t game.Tick) (float64, error) {
	x, _, err := Position(n, t)
	return x, err
}

func axis(rule game.Sine, n *game.Note, t game.Tick, start, end float64) float64 {
	switch rule {
	case game.In:
		return sineIn(n.Time, n.EndTime, t, start, end)
	case game.Out:
		return sineOut(n.Time, n.EndTime, t, start, end)
	}
	return straight(n.Time, n.EndTime, t, start, end)
}

// transform maps s from [sa, sb] onto [ta, tb]
func transform(sa, s, sb, ta, tb float64) float64 {
	ratio := (s - sa) / (sb - sa)
	return ta + ratio*(tb-ta)
}

func straight(t0, t1, t game.Tick, start, end float64) float64 {
	ratio := float64(t-t0) / float64(t1-t0)
	return game.Round2(start + (end-start)*ratio)
}

func sineIn(t0, t1, t game.Tick, start, end float64) float64 {
	phase := transform(float64(t0), float64(t), float64(t1), 0, math.Pi/2)
	return game.Round2(transform(0, math.Sin(phase), 1, start, end))
}

func sineOut(t0, t1, t game.Tick, start, end float64) float64 {
	phase := transform(float64(t0), float64(t), float64(t1), -math.Pi/2, 0)
	return game.Round2(transform(-1, math.Sin(phase), 0, start, end))
}
