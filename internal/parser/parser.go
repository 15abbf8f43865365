package parser

import (
	"io"

	"git.lost.host/meutraa/hitsound/internal/game"
)

type Parser interface {
	Parse(r io.Reader) (*game.Chart, error)
	ParseFile(file string) (*game.Chart, error)
}
