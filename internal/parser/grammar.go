package parser

import (
	"strconv"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/hitsound/internal/game"
)

// result is what a grammar produces for a matched line: either a note,
// or an offset directive.
type result struct {
	note      game.Note
	offset    game.Tick
	hasNote   bool
	hasOffset bool
}

// A grammar reports matched=false when the line is not of its shape.
// A matched line may still carry an error when a field does not convert.
type grammar struct {
	name  string
	match func(line string) (res result, matched bool, err error)
}

// grammars are tried in this order and the first match wins. The arc and
// black curve grammars differ only in their closing literal, and the arc
// form is tried first, so a line can never be read as both.
var grammars = []grammar{
	{"offset", matchOffset},
	{"tap", matchTap},
	{"hold", matchHold},
	{"arc", matchArc},
	{"blackcurve", matchBlackCurve},
}

func tick(s string) (game.Tick, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if nil != err {
		return 0, errors.Wrapf(err, "tick %q", s)
	}
	return game.Tick(v), nil
}

func integer(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if nil != err {
		return 0, errors.Wrapf(err, "integer %q", s)
	}
	return v, nil
}

func float(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if nil != err {
		return 0, errors.Wrapf(err, "coordinate %q", s)
	}
	return v, nil
}

func matchOffset(line string) (result, bool, error) {
	c := cursor{s: line}
	if !c.lit("AudioOffset:") {
		return result{}, false, nil
	}
	d, ok := c.digits()
	if !ok {
		return result{}, false, nil
	}
	offset, err := tick(d)
	if nil != err {
		return result{}, true, err
	}
	return result{offset: offset, hasOffset: true}, true, nil
}

func matchTap(line string) (result, bool, error) {
	c := cursor{s: line}
	if !c.lit("(") {
		return result{}, false, nil
	}
	t, ok := c.digits()
	if !ok || !c.sep() {
		return result{}, false, nil
	}
	l, ok := c.digits()
	if !ok || !c.lit(");") {
		return result{}, false, nil
	}

	time, err := tick(t)
	if nil != err {
		return result{}, true, err
	}
	lane, err := integer(l)
	if nil != err {
		return result{}, true, err
	}
	note, err := game.NewTap(time, lane)
	if nil != err {
		return result{}, true, err
	}
	return result{note: note, hasNote: true}, true, nil
}

func matchHold(line string) (result, bool, error) {
	c := cursor{s: line}
	if !c.lit("hold(") {
		return result{}, false, nil
	}
	var fields [3]string
	for i := range fields {
		if i > 0 && !c.sep() {
			return result{}, false, nil
		}
		d, ok := c.digits()
		if !ok {
			return result{}, false, nil
		}
		fields[i] = d
	}
	if !c.lit(");") {
		return result{}, false, nil
	}

	time, err := tick(fields[0])
	if nil != err {
		return result{}, true, err
	}
	endTime, err := tick(fields[1])
	if nil != err {
		return result{}, true, err
	}
	lane, err := integer(fields[2])
	if nil != err {
		return result{}, true, err
	}
	note, err := game.NewHold(time, endTime, lane)
	if nil != err {
		return result{}, true, err
	}
	return result{note: note, hasNote: true}, true, nil
}

// arcFields is the text of everything an arc line shares with a black curve
type arcFields struct {
	time, endTime string
	startX, endX  string
	easing        string
	startY, endY  string
	color         string
	sfx           string
}

func scanArc(line, closing string) (arcFields, bool) {
	var f arcFields
	c := cursor{s: line}
	if !c.lit("arc(") {
		return f, false
	}
	var ok bool
	if f.time, ok = c.digits(); !ok || !c.sep() {
		return f, false
	}
	if f.endTime, ok = c.digits(); !ok || !c.sep() {
		return f, false
	}
	if f.startX, ok = c.coord(); !ok || !c.sep() {
		return f, false
	}
	if f.endX, ok = c.coord(); !ok || !c.sep() {
		return f, false
	}
	if f.easing, ok = c.lower(); !ok || !c.sep() {
		return f, false
	}
	if f.startY, ok = c.coord(); !ok || !c.sep() {
		return f, false
	}
	if f.endY, ok = c.coord(); !ok || !c.sep() {
		return f, false
	}
	if f.color, ok = c.digits(); !ok || !c.sep() {
		return f, false
	}
	if f.sfx, ok = c.token(closing); !ok {
		return f, false
	}
	return f, true
}

func (f *arcFields) convert() (time, endTime game.Tick, g game.Geometry, err error) {
	if time, err = tick(f.time); nil != err {
		return
	}
	if endTime, err = tick(f.endTime); nil != err {
		return
	}
	if g.StartX, err = float(f.startX); nil != err {
		return
	}
	if g.EndX, err = float(f.endX); nil != err {
		return
	}
	if g.StartY, err = float(f.startY); nil != err {
		return
	}
	if g.EndY, err = float(f.endY); nil != err {
		return
	}
	g.Easing, err = game.ParseEasing(f.easing)
	return
}

// color accepts exactly one of the digits 0, 1 or 2
func color(s string) (game.Color, error) {
	if len(s) != 1 {
		return 0, errors.Wrapf(game.ErrColor, "%q", s)
	}
	return game.ParseColor(int(s[0] - '0'))
}

func matchArc(line string) (result, bool, error) {
	f, ok := scanArc(line, "false);")
	if !ok {
		return result{}, false, nil
	}
	time, endTime, g, err := f.convert()
	if nil != err {
		return result{}, true, err
	}
	c, err := color(f.color)
	if nil != err {
		return result{}, true, err
	}
	note, err := game.NewArc(time, endTime, g, c)
	if nil != err {
		return result{}, true, err
	}
	return result{note: note, hasNote: true}, true, nil
}

func matchBlackCurve(line string) (result, bool, error) {
	f, ok := scanArc(line, "true)")
	if !ok {
		return result{}, false, nil
	}
	// The colour digit is read but a black curve has no colour of its own
	time, endTime, g, err := f.convert()
	if nil != err {
		return result{}, true, err
	}
	arctaps, err := arcTaps(line)
	if nil != err {
		return result{}, true, err
	}
	note, err := game.NewBlackCurve(time, endTime, g, f.sfx, arctaps)
	if nil != err {
		return result{}, true, err
	}
	return result{note: note, hasNote: true}, true, nil
}

// arcTaps collects every arctap(<tick>) inside the bracketed sub-list
func arcTaps(line string) ([]game.Tick, error) {
	list, ok := bracketed(line)
	if !ok {
		return nil, nil
	}
	var taps []game.Tick
	c := cursor{s: list}
	for c.i < len(c.s) {
		start := c.i
		if c.lit("arctap(") {
			if d, ok := c.digits(); ok && c.lit(")") {
				t, err := tick(d)
				if nil != err {
					return nil, err
				}
				taps = append(taps, t)
				continue
			}
			c.i = start
		}
		c.i++
	}
	return taps, nil
}
