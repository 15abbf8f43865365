package game

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

type Easing uint8

const (
	Straight       Easing = iota // s
	Bezier                       // b
	SineIn                       // si
	SineOut                      // so
	SineInSineIn                 // sisi
	SineInSineOut                // siso
	SineOutSineIn                // sosi
	SineOutSineOut               // soso
)

var easingNames = map[string]Easing{
	"s":    Straight,
	"b":    Bezier,
	"si":   SineIn,
	"so":   SineOut,
	"sisi": SineInSineIn,
	"siso": SineInSineOut,
	"sosi": SineOutSineIn,
	"soso": SineOutSineOut,
}

var ErrEasing = errors.New("unknown easing")

func ParseEasing(name string) (Easing, error) {
	e, ok := easingNames[name]
	if !ok {
		return 0, errors.Wrapf(ErrEasing, "%q", name)
	}
	return e, nil
}

func (e Easing) String() string {
	for name, v := range easingNames {
		if v == e {
			return name
		}
	}
	return "unknown"
}

// Sine is the per-axis rule of a sine easing
type Sine uint8

const (
	Linear Sine = iota
	In
	Out
)

// Axes splits a sine easing into its X and Y rules. A single-axis
// name eases X only and leaves Y linear.
func (e Easing) Axes() (x, y Sine) {
	switch e {
	case SineIn:
		return In, Linear
	case SineOut:
		return Out, Linear
	case SineInSineIn:
		return In, In
	case SineInSineOut:
		return In, Out
	case SineOutSineIn:
		return Out, In
	case SineOutSineOut:
		return Out, Out
	}
	return Linear, Linear
}

type Color uint8

const (
	Blue Color = iota
	Red
	Green
)

var ErrColor = errors.New("unknown arc color")

func ParseColor(digit int) (Color, error) {
	switch digit {
	case 0:
		return Blue, nil
	case 1:
		return Red, nil
	case 2:
		return Green, nil
	}
	return 0, errors.Wrapf(ErrColor, "%d", digit)
}

func (c Color) String() string {
	switch c {
	case Blue:
		return "blue"
	case Red:
		return "red"
	case Green:
		return "green"
	}
	return "unknown"
}

type Point struct {
	X, Y float64
}

// Lanes maps a Tap or Hold lane to where an arc would meet it
var Lanes = [...]Point{
	{0, 0},
	{-0.25, 0},
	{0.25, 0},
	{0.75, 0},
	{1.25, 0},
}

// Round2 quantizes a coordinate to the chart's two decimal places. The
// exact binary value is rounded, ties going to even, so 0.125 gives 0.12.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if nil != err {
		return v
	}
	// No negative zero in hit files
	if r == 0 {
		return 0
	}
	return r
}

// Centi returns a coordinate as an integer count of 0.01, after Round2
func Centi(v float64) int64 {
	return int64(math.Round(Round2(v) * 100))
}
