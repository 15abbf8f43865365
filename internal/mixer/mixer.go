// Package mixer turns a hit list into a stereo track by overlaying a
// panned sample for every hit onto silence.
package mixer

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/hitsound/internal/game"
	"git.lost.host/meutraa/hitsound/internal/hits"
)

const (
	// PanLimit is how far from the centre a hit may be panned
	PanLimit = 0.9
	// ResampleQuality is passed to beep.Resample
	ResampleQuality = 4
	chunk           = 512
)

var ErrSound = errors.New("no sample for sound")

// Pan maps a chart x coordinate onto [-1, 1], centred on x = 0.5
func Pan(x float64) float64 {
	x -= 0.5
	if x > PanLimit {
		x = PanLimit
	}
	if x < -PanLimit {
		x = -PanLimit
	}
	return x / PanLimit
}

// Format is the output format for a sample rate
func Format(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}

// Length is the latest hit plus twice the tap sample, so the last
// sample always rings out.
func Length(in []hits.Hit, tap time.Duration) time.Duration {
	var last game.Tick
	for _, h := range in {
		if h.Time > last {
			last = h.Time
		}
	}
	return time.Duration(last)*time.Millisecond + 2*tap
}

func decode(file string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, beep.Format{}, err
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	}
	f.Close()
	return nil, beep.Format{}, errors.Errorf("unsupported sample format %q", filepath.Ext(file))
}

// LoadSample decodes a sample into memory at the given rate
func LoadSample(file string, rate beep.SampleRate) (*beep.Buffer, error) {
	streamer, format, err := decode(file)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to decode sample %s", file)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != rate {
		s = beep.Resample(ResampleQuality, format.SampleRate, rate, streamer)
	}
	buffer := beep.NewBuffer(Format(rate))
	buffer.Append(s)
	return buffer, nil
}

// Samples holds one decoded sample per sound
type Samples map[hits.Sound]*beep.Buffer

func LoadSamples(files map[hits.Sound]string, rate beep.SampleRate) (Samples, error) {
	samples := Samples{}
	for sound, file := range files {
		b, err := LoadSample(file, rate)
		if nil != err {
			return nil, err
		}
		samples[sound] = b
	}
	return samples, nil
}

// Mix overlays every hit onto a silent stereo bed and returns it
func Mix(in []hits.Hit, samples Samples, rate beep.SampleRate) ([][2]float64, error) {
	tap, ok := samples[hits.TapSound]
	if !ok {
		return nil, errors.Wrapf(ErrSound, "%s", hits.TapSound)
	}
	bed := make([][2]float64, rate.N(Length(in, rate.D(tap.Len()))))

	buf := make([][2]float64, chunk)
	for _, h := range in {
		sample, ok := samples[h.Sound]
		if !ok {
			return nil, errors.Wrapf(ErrSound, "%s", h.Sound)
		}
		at := rate.N(time.Duration(h.Time) * time.Millisecond)
		if at < 0 || at >= len(bed) {
			continue
		}
		panned := &effects.Pan{Streamer: sample.Streamer(0, sample.Len()), Pan: Pan(h.X)}
		dst := bed[at:]
		for len(dst) > 0 {
			want := chunk
			if len(dst) < want {
				want = len(dst)
			}
			n, ok := panned.Stream(buf[:want])
			for i := 0; i < n; i++ {
				dst[i][0] += buf[i][0]
				dst[i][1] += buf[i][1]
			}
			dst = dst[n:]
			if !ok || n == 0 {
				break
			}
		}
	}
	return bed, nil
}

// Streamer plays back a mixed bed
func Streamer(bed [][2]float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(bed) {
			return 0, false
		}
		n := copy(samples, bed[pos:])
		pos += n
		return n, true
	})
}

// Encode writes the bed as a 16 bit stereo wav
func Encode(w io.WriteSeeker, bed [][2]float64, rate beep.SampleRate) error {
	if err := wav.Encode(w, Streamer(bed), Format(rate)); nil != err {
		return errors.Wrap(err, "unable to encode wav")
	}
	return nil
}

// MixFile loads the samples, mixes and writes the wav in one go
func MixFile(out string, in []hits.Hit, files map[hits.Sound]string, rate beep.SampleRate) (err error) {
	samples, err := LoadSamples(files, rate)
	if nil != err {
		return err
	}
	bed, err := Mix(in, samples, rate)
	if nil != err {
		return err
	}
	f, err := os.Create(out)
	if nil != err {
		return errors.Wrap(err, "unable to create wav")
	}
	defer func() {
		if cerr := f.Close(); nil == err {
			err = cerr
		}
	}()
	return Encode(f, bed, rate)
}
