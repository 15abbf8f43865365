package parser

import (
	"errors"
	"strings"
	"testing"

	"git.lost.host/meutraa/hitsound/internal/game"
	"git.lost.host/meutraa/hitsound/internal/testdata"
)

var lineTests = map[string]*game.Note{
	"(152485,4);":        {Kind: game.Tap, Time: 152485, EndTime: 152485, Lane: 4},
	"(10, 0);":           {Kind: game.Tap, Time: 10, EndTime: 10, Lane: 0},
	"hold(7624,8950,1);": {Kind: game.Hold, Time: 7624, EndTime: 8950, Lane: 1},
	"hold(1, 2,\t3);":    {Kind: game.Hold, Time: 1, EndTime: 2, Lane: 3},
	"arc(662,1325,1.00,0.50,so,1.00,1.00,1,none,false);": {
		Kind: game.Arc, Time: 662, EndTime: 1325, Color: game.Red,
		Geometry: game.Geometry{StartX: 1, EndX: 0.5, StartY: 1, EndY: 1, Easing: game.SineOut},
	},
	"arc(0, 100, -0.25, 1.25, sisi, 0.00, 1.00, 2, glass_wav, false);": {
		Kind: game.Arc, Time: 0, EndTime: 100, Color: game.Green,
		Geometry: game.Geometry{StartX: -0.25, EndX: 1.25, StartY: 0, EndY: 1, Easing: game.SineInSineIn},
	},
	"arc(5966,6629,0.50,0.50,s,1.00,1.00,0,none,true)[arctap(6298)];": {
		Kind: game.BlackCurve, Time: 5966, EndTime: 6629, SFX: "none", ArcTaps: []game.Tick{6298},
		Geometry: game.Geometry{StartX: 0.5, EndX: 0.5, StartY: 1, EndY: 1, Easing: game.Straight},
	},
	"arc(0,10,0.00,1.00,b,0.00,1.00,0,none,true);": {
		Kind: game.BlackCurve, Time: 0, EndTime: 10, SFX: "none",
		Geometry: game.Geometry{StartX: 0, EndX: 1, StartY: 0, EndY: 1, Easing: game.Bezier},
	},
	"arc(0,10,0.00,1.00,b,0.00,1.00,0,none,true)[arctap(2),arctap(x),arctap(7)];": {
		Kind: game.BlackCurve, Time: 0, EndTime: 10, SFX: "none", ArcTaps: []game.Tick{2, 7},
		Geometry: game.Geometry{StartX: 0, EndX: 1, StartY: 0, EndY: 1, Easing: game.Bezier},
	},
	"  (5,3);  ": {Kind: game.Tap, Time: 5, EndTime: 5, Lane: 3},
	// Nothing to produce
	"":                       nil,
	"-":                      nil,
	"timing(0,126.00,4.00);": nil,
	"(1,2)":                  nil,
	"hold(1,2);":             nil,
	"arc(0,10,0.5,1.00,s,0.00,1.00,0,none,false);":             nil,
	"arc(0,10,0.000,1.00,s,0.00,1.00,0,none,false);":           nil,
	"arc(0,10,0.00,1.00,s,0.00,1.00,0,none,false)[arctap(5)];": nil,
	"arc(0,10,0.00,1.00,s,0.00,1.00,0,,false);":                nil,
	"scenecontrol(7000,trackhide);":                            nil,
}

func sameNote(p, q *game.Note) bool {
	if p.Kind != q.Kind || p.Time != q.Time || p.EndTime != q.EndTime {
		return false
	}
	if p.Lane != q.Lane || p.Geometry != q.Geometry || p.Color != q.Color || p.SFX != q.SFX {
		return false
	}
	if len(p.ArcTaps) != len(q.ArcTaps) {
		return false
	}
	for i := range p.ArcTaps {
		if p.ArcTaps[i] != q.ArcTaps[i] {
			return false
		}
	}
	return true
}

func TestScanLines(t *testing.T) {
	for line, expected := range lineTests {
		s := NewScanner(strings.NewReader(line + "\n"))
		if !s.Scan() && line != "" {
			t.Errorf("no line scanned for %q", line)
			continue
		}
		if lerr := s.LineErr(); nil != lerr {
			t.Errorf("%q: unexpected error %v", line, lerr)
			continue
		}
		note, ok := s.Note()
		if expected == nil {
			if ok {
				t.Errorf("%q: expected nothing, got %+v", line, note)
			}
			continue
		}
		if !ok || !sameNote(&note, expected) {
			t.Log("line    ", line)
			t.Log("note    ", note)
			t.Log("expected", *expected)
			t.Fail()
		}
	}
}

func TestArcAndBlackCurveExclusive(t *testing.T) {
	base := "arc(0,10,0.00,1.00,s,0.00,1.00,1,none,"
	for tail, kind := range map[string]game.Kind{
		"false);":           game.Arc,
		"true);":            game.BlackCurve,
		"true)[arctap(5)];": game.BlackCurve,
		" false);":          game.Arc,
		"   true)":          game.BlackCurve,
	} {
		matched := []string{}
		for _, g := range grammars {
			if _, ok, _ := g.match(base + tail); ok {
				matched = append(matched, g.name)
			}
		}
		if len(matched) != 1 || matched[0] != kind.String() {
			t.Errorf("%q matched %v, want only %v", tail, matched, kind)
		}
	}
}

var badLines = map[string]error{
	"(10,5);":        game.ErrLane,
	"hold(10,10,1);": game.ErrHoldSpan,
	"hold(10,20,9);": game.ErrLane,
	"arc(10,5,0.00,1.00,s,0.00,1.00,0,none,false);":  game.ErrEndTime,
	"arc(0,10,0.00,1.00,zz,0.00,1.00,0,none,false);": game.ErrEasing,
	"arc(0,10,0.00,1.00,s,0.00,1.00,3,none,false);":  game.ErrColor,
	"arc(0,10,0.00,1.00,q,0.00,1.00,0,none,true);":   game.ErrEasing,
	"arc(0,10,0.00,1.00,s,0.00,1.00,01,none,false);": game.ErrColor,
	"arc(0,10,0.00,1.00,s,0.00,1.00,00,none,false);": game.ErrColor,
}

func TestLineErrors(t *testing.T) {
	for line, expected := range badLines {
		s := NewScanner(strings.NewReader(line))
		s.Scan()
		lerr := s.LineErr()
		if nil == lerr || !errors.Is(lerr, expected) {
			t.Errorf("%q: error %v, want %v", line, lerr, expected)
			continue
		}
		if lerr.Line != 1 || lerr.Text != line {
			t.Errorf("%q: line context %d %q", line, lerr.Line, lerr.Text)
		}
	}
}

func TestOverflowIsLineError(t *testing.T) {
	s := NewScanner(strings.NewReader("(99999999999999999999,1);"))
	s.Scan()
	if s.LineErr() == nil {
		t.Error("expected an overflowing tick to be a line error")
	}
}

func TestParseChart(t *testing.T) {
	p := DefaultParser{}
	chart, err := p.Parse(testdata.Reader())
	if nil != err {
		t.Fatal(err)
	}
	if chart.AudioOffset != 248 {
		t.Errorf("offset = %v, want 248", chart.AudioOffset)
	}
	if len(chart.Notes) != 7 {
		t.Errorf("%d notes, want 7", len(chart.Notes))
	}
	if chart.TapCount != 2 || chart.HoldCount != 1 || chart.ArcCount != 3 || chart.BlackCurveCount != 1 {
		t.Errorf("counts %d %d %d %d", chart.TapCount, chart.HoldCount, chart.ArcCount, chart.BlackCurveCount)
	}
	if chart.Sum == "" {
		t.Error("chart sum not set")
	}
	again, _ := p.Parse(testdata.Reader())
	if again.Sum != chart.Sum {
		t.Error("chart sum is not stable")
	}
}

func TestMissingOffsetIsZero(t *testing.T) {
	p := DefaultParser{}
	chart, err := p.Parse(strings.NewReader("(1,1);\n"))
	if nil != err || chart.AudioOffset != 0 {
		t.Errorf("offset %v (%v), want 0", chart.AudioOffset, err)
	}
}

func TestParseDiagnostics(t *testing.T) {
	in := "(1,1);\n(2,7);\nhold(5,9,2);\n"

	lenient := DefaultParser{}
	chart, err := lenient.Parse(strings.NewReader(in))
	if nil != err {
		t.Fatal(err)
	}
	if len(chart.Notes) != 2 || len(chart.Diagnostics) != 1 {
		t.Fatalf("%d notes %d diagnostics, want 2 and 1", len(chart.Notes), len(chart.Diagnostics))
	}
	var lerr *LineError
	if !errors.As(chart.Diagnostics[0], &lerr) || lerr.Line != 2 {
		t.Errorf("diagnostic %v, want line 2", chart.Diagnostics[0])
	}

	strict := DefaultParser{Strict: true}
	if _, err := strict.Parse(strings.NewReader(in)); !errors.Is(err, game.ErrLane) {
		t.Errorf("strict parse error %v, want lane error", err)
	}
}

func TestArcTapsOutsideCurve(t *testing.T) {
	p := DefaultParser{}
	chart, err := p.Parse(strings.NewReader("arc(100,200,0.00,1.00,s,0.00,0.00,0,none,true)[arctap(50),arctap(150),arctap(250)];\n"))
	if nil != err {
		t.Fatal(err)
	}
	if len(chart.Notes) != 1 || len(chart.Diagnostics) != 0 {
		t.Fatalf("%d notes %d diagnostics, want 1 and 0", len(chart.Notes), len(chart.Diagnostics))
	}
	n := chart.Notes[0]
	if len(n.ArcTaps) != 3 {
		t.Errorf("arctaps %v, want all three kept", n.ArcTaps)
	}
	outside := n.OutOfSpan()
	if len(outside) != 2 || outside[0] != 50 || outside[1] != 250 {
		t.Errorf("outside %v, want [50 250]", outside)
	}
}

func BenchmarkParse(b *testing.B) {
	p := DefaultParser{}
	for n := 0; n < b.N; n++ {
		if _, err := p.Parse(testdata.Reader()); nil != err {
			b.Fatal(err)
		}
	}
}
