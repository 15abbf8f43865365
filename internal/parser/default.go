package parser

import (
	"crypto/sha256"
	"encoding/base64"
	"io"
	"os"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/hitsound/internal/game"
	"git.lost.host/meutraa/hitsound/internal/logger"
)

type DefaultParser struct {
	// Strict aborts on the first line that matches a grammar but does
	// not convert, instead of dropping it with a diagnostic.
	Strict bool
}

func (p *DefaultParser) ParseFile(file string) (*game.Chart, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open chart")
	}
	defer f.Close()
	return p.Parse(f)
}

func (p *DefaultParser) Parse(r io.Reader) (*game.Chart, error) {
	hash := sha256.New()
	s := NewScanner(io.TeeReader(r, hash))
	chart := &game.Chart{}

	for s.Scan() {
		if lerr := s.LineErr(); nil != lerr {
			if p.Strict {
				return nil, lerr
			}
			logger.Warn("dropping line", logger.Int("line", lerr.Line), logger.String("grammar", lerr.Grammar), logger.Err(lerr.Err))
			chart.Diagnostics = append(chart.Diagnostics, lerr)
			continue
		}
		if offset, ok := s.Offset(); ok {
			logger.Debug("audio offset", logger.Int64("offset", int64(offset)))
			chart.AudioOffset = offset
			continue
		}
		note, ok := s.Note()
		if !ok {
			if s.Text() != "" {
				logger.Debug("unmatched line", logger.Int("line", s.Line()), logger.String("text", s.Text()))
			}
			continue
		}
		if outside := note.OutOfSpan(); len(outside) > 0 {
			logger.Warn("arctap outside its curve",
				logger.Int("line", s.Line()),
				logger.Int64("time", int64(note.Time)),
				logger.Int64("endTime", int64(note.EndTime)),
				logger.Any("arctaps", outside),
			)
		}
		chart.Notes = append(chart.Notes, note)
	}
	if err := s.Err(); nil != err {
		return nil, err
	}

	sum := hash.Sum(nil)
	chart.Sum = base64.StdEncoding.EncodeToString(sum)
	chart.Count()
	return chart, nil
}
