package export

import (
	"bytes"
	"testing"

	"gitlab.com/gomidi/midi/v2/smf"

	"git.lost.host/meutraa/hitsound/internal/hits"
)

func TestTrackTiming(t *testing.T) {
	in := []hits.Hit{
		{Time: 0, X: 0.5, Sound: hits.TapSound},
		{Time: 10, X: 1, Sound: hits.ArcSound},
		{Time: 100, X: 0.25, Sound: hits.ArcTapSound},
	}
	tr, err := Track(in)
	if nil != err {
		t.Fatal(err)
	}

	var abs uint32
	ons := map[uint32]uint8{}
	for _, ev := range tr {
		abs += ev.Delta
		if len(ev.Message) == 3 && ev.Message[0] == 0x90|DrumChannel && ev.Message[2] > 0 {
			ons[abs] = ev.Message[1]
		}
	}
	expected := map[uint32]uint8{0: 38, 10: 49, 100: 42}
	if len(ons) != len(expected) {
		t.Fatalf("note ons %v, want %v", ons, expected)
	}
	for at, key := range expected {
		if ons[at] != key {
			t.Errorf("note on at %d = %d, want %d", at, ons[at], key)
		}
	}
}

func TestTrackOrdersUnsortedHits(t *testing.T) {
	in := []hits.Hit{
		{Time: 500, Sound: hits.ArcSound},
		{Time: 0, Sound: hits.TapSound},
		{Time: 10, Sound: hits.ArcTapSound},
	}
	tr, err := Track(in)
	if nil != err {
		t.Fatal(err)
	}
	var abs uint32
	ons := []uint32{}
	for _, ev := range tr {
		abs += ev.Delta
		if len(ev.Message) == 3 && ev.Message[0] == 0x90|DrumChannel && ev.Message[2] > 0 {
			ons = append(ons, abs)
		}
	}
	// A negative delta would wrap and push everything after it far out
	if abs != 500+Gate {
		t.Errorf("track ends at %d, want %d", abs, 500+Gate)
	}
	expected := []uint32{0, 10, 500}
	if len(ons) != len(expected) {
		t.Fatalf("note ons at %v, want %v", ons, expected)
	}
	for i := range expected {
		if ons[i] != expected[i] {
			t.Errorf("note ons at %v, want %v", ons, expected)
			break
		}
	}
}

func TestWriteMIDI(t *testing.T) {
	in := []hits.Hit{{Time: 5, Sound: hits.TapSound}, {Time: 5, X: 1, Sound: hits.TapSound}}
	var buf bytes.Buffer
	if err := WriteMIDI(&buf, in); nil != err {
		t.Fatal(err)
	}
	s, err := smf.ReadFrom(&buf)
	if nil != err {
		t.Fatal(err)
	}
	if len(s.Tracks) != 1 {
		t.Fatalf("%d tracks, want 1", len(s.Tracks))
	}
	if s.TimeFormat != Resolution {
		t.Errorf("time format %v, want %v", s.TimeFormat, Resolution)
	}
}

func TestUnknownSound(t *testing.T) {
	if _, err := Track([]hits.Hit{{Sound: "bell"}}); nil == err {
		t.Error("expected an error for an unknown sound")
	}
}
