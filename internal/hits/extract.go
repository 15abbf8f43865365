package hits

import (
	"git.lost.host/meutraa/hitsound/internal/coincidence"
	"git.lost.host/meutraa/hitsound/internal/curve"
	"git.lost.host/meutraa/hitsound/internal/game"
	"git.lost.host/meutraa/hitsound/internal/logger"
)

type Options struct {
	// Radius of the neighbourhood around an arc start, in ticks and
	// hundredths. Zero means coincidence.Radius.
	Radius int64
	// Offset is added to every emitted time. Coincidence is always
	// decided on the unshifted chart times.
	Offset game.Tick
}

// Extract walks the notes once and returns the sorted, deduplicated hits.
// An arc whose start lies near the arrival point of an earlier motion of
// the same colour stays silent, that arrival already makes a sound.
func Extract(notes []game.Note, idx *coincidence.Index, opts Options) ([]Hit, error) {
	radius := opts.Radius
	if radius == 0 {
		radius = coincidence.Radius
	}

	set := Set{}
	emit := func(t game.Tick, x float64, s Sound) {
		set.Add(Hit{Time: t + opts.Offset, X: x, Sound: s})
	}

	for i := range notes {
		n := &notes[i]
		switch n.Kind {
		case game.Tap, game.Hold:
			emit(n.Time, n.LanePoint().X, TapSound)
		case game.ArcTap:
			emit(n.Time, n.X, ArcTapSound)
		case game.BlackCurve:
			for _, t := range n.ArcTaps {
				x, err := curve.X(n, t)
				if nil != err {
					return nil, err
				}
				emit(t, x, ArcTapSound)
			}
		case game.Arc:
			g := &n.Geometry
			if idx.Near(n.Time, g.StartX, g.StartY, n.Color, radius) {
				logger.Debug("arc start coincides, no sound",
					logger.Int64("time", int64(n.Time)),
					logger.Float64("x", g.StartX),
					logger.Float64("y", g.StartY),
					logger.String("color", n.Color.String()),
				)
				continue
			}
			if idx.NearCurve(n.Time, g.StartX, n.Color, radius) {
				logger.Debug("arc start meets a black curve arctap, keeping sound",
					logger.Int64("time", int64(n.Time)),
					logger.Float64("x", g.StartX),
				)
			}
			emit(n.Time, g.StartX, ArcSound)
		}
	}
	return set.Sorted(), nil
}

// FromChart builds the index and extracts in one go
func FromChart(chart *game.Chart, opts Options) ([]Hit, error) {
	idx, err := coincidence.Build(chart.Notes)
	if nil != err {
		return nil, err
	}
	return Extract(chart.Notes, idx, opts)
}
