package hits

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/hitsound/internal/game"
)

// Write emits one "<time> <x> <sound>" line per hit
func Write(w io.Writer, hits []Hit) error {
	bw := bufio.NewWriter(w)
	for _, h := range hits {
		bw.WriteString(strconv.FormatInt(int64(h.Time), 10))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(h.X, 'f', -1, 64))
		bw.WriteByte(' ')
		bw.WriteString(string(h.Sound))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func WriteFile(file string, hits []Hit) (err error) {
	f, err := os.Create(file)
	if nil != err {
		return errors.Wrap(err, "unable to create hit file")
	}
	defer func() {
		if cerr := f.Close(); nil == err {
			err = cerr
		}
	}()
	return Write(f, hits)
}

// Read parses a hit file. Blank lines are ignored.
func Read(r io.Reader) ([]Hit, error) {
	var out []Hit
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, errors.Errorf("hit file line %d: want 3 fields, got %d", line, len(fields))
		}
		t, err := strconv.ParseInt(fields[0], 10, 64)
		if nil != err {
			return nil, errors.Wrapf(err, "hit file line %d", line)
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if nil != err {
			return nil, errors.Wrapf(err, "hit file line %d", line)
		}
		out = append(out, Hit{Time: game.Tick(t), X: x, Sound: Sound(fields[2])})
	}
	if err := s.Err(); nil != err {
		return nil, errors.Wrap(err, "unable to read hit file")
	}
	return out, nil
}

func ReadFile(file string) ([]Hit, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open hit file")
	}
	defer f.Close()
	return Read(f)
}
