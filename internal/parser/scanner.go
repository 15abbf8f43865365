package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/hitsound/internal/game"
)

const maxLine = 1 << 20

// LineError is a line that matched a grammar but could not be converted
type LineError struct {
	Line    int
	Grammar string
	Text    string
	Err     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%s): %v: %q", e.Line, e.Grammar, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }
func (e *LineError) Cause() error  { return e.Err }

// Scanner yields one optional note per chart line. Like bufio.Scanner it
// is finite and cannot be rewound.
type Scanner struct {
	lines *bufio.Scanner
	line  int
	text  string

	res     result
	grammar string
	lineErr *LineError
	err     error
}

func NewScanner(r io.Reader) *Scanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 4096), maxLine)
	return &Scanner{lines: lines}
}

// Scan advances to the next line. It returns false at the end of input
// or when reading fails. A line that does not parse still returns true;
// check LineErr.
func (s *Scanner) Scan() bool {
	s.res, s.grammar, s.lineErr = result{}, "", nil
	if !s.lines.Scan() {
		if err := s.lines.Err(); nil != err {
			s.err = errors.Wrap(err, "unable to read chart")
		}
		return false
	}
	s.line++
	s.text = strings.TrimSpace(s.lines.Text())

	for _, g := range grammars {
		res, matched, err := g.match(s.text)
		if !matched {
			continue
		}
		s.grammar = g.name
		if nil != err {
			s.lineErr = &LineError{Line: s.line, Grammar: g.name, Text: s.text, Err: err}
			return true
		}
		s.res = res
		return true
	}
	return true
}

// Note is the note on the current line, if there is one
func (s *Scanner) Note() (game.Note, bool) {
	return s.res.note, s.res.hasNote
}

// Offset is the audio offset on the current line, if there is one
func (s *Scanner) Offset() (game.Tick, bool) {
	return s.res.offset, s.res.hasOffset
}

// Matched names the grammar the current line matched, empty for none
func (s *Scanner) Matched() string {
	return s.grammar
}

func (s *Scanner) LineErr() *LineError {
	return s.lineErr
}

func (s *Scanner) Line() int {
	return s.line
}

func (s *Scanner) Text() string {
	return s.text
}

func (s *Scanner) Err() error {
	return s.err
}
