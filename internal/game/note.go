package game

import (
	"github.com/pkg/errors"
)

// Tick is the chart time unit, milliseconds for every chart seen so far.
type Tick int64

type Kind uint8

const (
	Tap Kind = iota
	Hold
	Arc
	ArcTap
	BlackCurve
)

var kindNames = [...]string{
	Tap:        "tap",
	Hold:       "hold",
	Arc:        "arc",
	ArcTap:     "arctap",
	BlackCurve: "blackcurve",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Geometry is the shared shape of arcs and black curves
type Geometry struct {
	StartX, EndX float64
	StartY, EndY float64
	Easing       Easing
}

type Note struct {
	Kind    Kind
	Time    Tick // When the note starts
	EndTime Tick // When the note ends, equal to Time for instant notes

	Lane uint8 // Tap and Hold only

	Geometry Geometry // Arc and BlackCurve only
	Color    Color    // Arc only

	X, Y float64 // ArcTap only

	SFX     string // BlackCurve only
	ArcTaps []Tick // BlackCurve only, absolute ticks
}

var (
	ErrLane     = errors.New("lane out of range")
	ErrEndTime  = errors.New("end time before start time")
	ErrHoldSpan = errors.New("hold must end after it starts")
)

func checkLane(lane int) error {
	if lane < 0 || lane >= len(Lanes) {
		return errors.Wrapf(ErrLane, "lane %d", lane)
	}
	return nil
}

func NewTap(time Tick, lane int) (Note, error) {
	if err := checkLane(lane); nil != err {
		return Note{}, err
	}
	return Note{Kind: Tap, Time: time, EndTime: time, Lane: uint8(lane)}, nil
}

func NewHold(time, endTime Tick, lane int) (Note, error) {
	if err := checkLane(lane); nil != err {
		return Note{}, err
	}
	if endTime <= time {
		return Note{}, errors.Wrapf(ErrHoldSpan, "hold %d..%d", time, endTime)
	}
	return Note{Kind: Hold, Time: time, EndTime: endTime, Lane: uint8(lane)}, nil
}

func NewArc(time, endTime Tick, g Geometry, color Color) (Note, error) {
	if endTime < time {
		return Note{}, errors.Wrapf(ErrEndTime, "arc %d..%d", time, endTime)
	}
	return Note{Kind: Arc, Time: time, EndTime: endTime, Geometry: g, Color: color}, nil
}

func NewArcTap(time Tick, x, y float64) Note {
	return Note{Kind: ArcTap, Time: time, EndTime: time, X: x, Y: y}
}

// NewBlackCurve copies arctaps so the note stays immutable after construction.
func NewBlackCurve(time, endTime Tick, g Geometry, sfx string, arctaps []Tick) (Note, error) {
	if endTime < time {
		return Note{}, errors.Wrapf(ErrEndTime, "black curve %d..%d", time, endTime)
	}
	taps := make([]Tick, len(arctaps))
	copy(taps, arctaps)
	return Note{Kind: BlackCurve, Time: time, EndTime: endTime, Geometry: g, SFX: sfx, ArcTaps: taps}, nil
}

// IsArcLike reports whether the note carries a Geometry
func (n *Note) IsArcLike() bool {
	return n.Kind == Arc || n.Kind == BlackCurve
}

// LanePoint is the arrival coordinate of a Tap or Hold
func (n *Note) LanePoint() Point {
	return Lanes[n.Lane]
}

// OutOfSpan returns the arctap ticks that fall outside [Time, EndTime]
func (n *Note) OutOfSpan() []Tick {
	var out []Tick
	for _, t := range n.ArcTaps {
		if t < n.Time || t > n.EndTime {
			out = append(out, t)
		}
	}
	return out
}
