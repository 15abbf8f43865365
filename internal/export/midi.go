// Package export writes hit lists in formats other tools understand.
package export

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"git.lost.host/meutraa/hitsound/internal/game"
	"git.lost.host/meutraa/hitsound/internal/hits"
)

const (
	// At 60 bpm and 1000 ticks per quarter, one tick is one millisecond
	Resolution = smf.MetricTicks(1000)
	Tempo      = 60.0

	DrumChannel = 9
	Velocity    = 100
	// Gate is how long each drum note is held, in ticks
	Gate = 30
)

// Keys maps a sound to a General MIDI percussion key
var Keys = map[hits.Sound]uint8{
	hits.TapSound:    38, // Acoustic snare
	hits.ArcTapSound: 42, // Closed hi-hat
	hits.ArcSound:    49, // Crash cymbal
}

type event struct {
	at  game.Tick
	msg midi.Message
}

// Track renders sorted hits as a drum track
func Track(in []hits.Hit) (smf.Track, error) {
	var events []event
	for _, h := range in {
		key, ok := Keys[h.Sound]
		if !ok {
			return nil, errors.Errorf("no midi key for %s", h.Sound)
		}
		if h.Time < 0 {
			continue
		}
		events = append(events,
			event{h.Time, midi.NoteOn(DrumChannel, key, Velocity)},
			event{h.Time + Gate, midi.NoteOff(DrumChannel, key)},
		)
	}
	// Offs are appended after their ons, a stable sort keeps that order
	sort.SliceStable(events, func(i, j int) bool { return events[i].at < events[j].at })

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("hitsounds"))
	tr.Add(0, smf.MetaTempo(Tempo))
	var last game.Tick
	for _, e := range events {
		tr.Add(uint32(e.at-last), e.msg)
		last = e.at
	}
	tr.Close(0)
	return tr, nil
}

// File builds a single track standard midi file
func File(in []hits.Hit) (*smf.SMF, error) {
	tr, err := Track(in)
	if nil != err {
		return nil, err
	}
	s := smf.New()
	s.TimeFormat = Resolution
	if err := s.Add(tr); nil != err {
		return nil, errors.Wrap(err, "unable to add midi track")
	}
	return s, nil
}

func WriteMIDI(w io.Writer, in []hits.Hit) error {
	s, err := File(in)
	if nil != err {
		return err
	}
	if _, err := s.WriteTo(w); nil != err {
		return errors.Wrap(err, "unable to write midi")
	}
	return nil
}

func WriteMIDIFile(file string, in []hits.Hit) error {
	s, err := File(in)
	if nil != err {
		return err
	}
	return errors.Wrap(s.WriteFile(file), "unable to write midi")
}
