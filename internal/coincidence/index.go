// Package coincidence records where notes finish, so that an arc starting
// on top of one can be recognised.
package coincidence

import (
	"git.lost.host/meutraa/hitsound/internal/curve"
	"git.lost.host/meutraa/hitsound/internal/game"
)

// Radius is the default neighbourhood, in ticks and in hundredths of a
// coordinate, searched around an arc's start
const Radius = 5

// key is an arrival point quantized to ticks and hundredths
type key struct {
	t      game.Tick
	cx, cy int64
	color  game.Color
}

// curveKey is an arrival point left by a black curve arctap. It has no
// vertical coordinate and never matches an arc search.
type curveKey struct {
	t     game.Tick
	cx    int64
	color game.Color
}

type Index struct {
	arrivals map[key]struct{}
	curves   map[curveKey]struct{}
}

func New() *Index {
	return &Index{
		arrivals: map[key]struct{}{},
		curves:   map[curveKey]struct{}{},
	}
}

// Build registers the arrival points of every note
func Build(notes []game.Note) (*Index, error) {
	idx := New()
	for i := range notes {
		if err := idx.Add(&notes[i]); nil != err {
			return nil, err
		}
	}
	return idx, nil
}

// Add registers the arrival points of one note. Taps and holds can be
// met by either a blue or a red arc, so they register both colours.
func (idx *Index) Add(n *game.Note) error {
	switch n.Kind {
	case game.Tap, game.Hold:
		p := n.LanePoint()
		idx.add(n.EndTime, p.X, p.Y, game.Blue)
		idx.add(n.EndTime, p.X, p.Y, game.Red)
	case game.Arc:
		idx.add(n.EndTime, n.Geometry.EndX, n.Geometry.EndY, n.Color)
	case game.BlackCurve:
		for _, t := range n.ArcTaps {
			x, err := curve.X(n, t)
			if nil != err {
				return err
			}
			idx.addCurve(t, x, game.Blue)
			idx.addCurve(t, x, game.Red)
		}
	case game.ArcTap:
	}
	return nil
}

func (idx *Index) add(t game.Tick, x, y float64, color game.Color) {
	idx.arrivals[key{t, game.Centi(x), game.Centi(y), color}] = struct{}{}
}

func (idx *Index) addCurve(t game.Tick, x float64, color game.Color) {
	idx.curves[curveKey{t, game.Centi(x), color}] = struct{}{}
}

// Has is an exact lookup of a rounded arrival point
func (idx *Index) Has(t game.Tick, x, y float64, color game.Color) bool {
	_, ok := idx.arrivals[key{t, game.Centi(x), game.Centi(y), color}]
	return ok
}

// HasCurveArrival is an exact lookup among black curve arctaps
func (idx *Index) HasCurveArrival(t game.Tick, x float64, color game.Color) bool {
	_, ok := idx.curves[curveKey{t, game.Centi(x), color}]
	return ok
}

// Near reports whether any arrival point of the colour lies within
// radius ticks and radius hundredths on both axes of (t, x, y).
func (idx *Index) Near(t game.Tick, x, y float64, color game.Color, radius int64) bool {
	cx, cy := game.Centi(x), game.Centi(y)
	r := game.Tick(radius)
	for dt := -r; dt <= r; dt++ {
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				if _, ok := idx.arrivals[key{t + dt, cx + dx, cy + dy, color}]; ok {
					return true
				}
			}
		}
	}
	return false
}

// NearCurve is Near against black curve arctaps, ignoring y
func (idx *Index) NearCurve(t game.Tick, x float64, color game.Color, radius int64) bool {
	cx := game.Centi(x)
	r := game.Tick(radius)
	for dt := -r; dt <= r; dt++ {
		for dx := -radius; dx <= radius; dx++ {
			if _, ok := idx.curves[curveKey{t + dt, cx + dx, color}]; ok {
				return true
			}
		}
	}
	return false
}

func (idx *Index) Len() int {
	return len(idx.arrivals) + len(idx.curves)
}
