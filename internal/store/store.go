package store

import (
	"git.lost.host/meutraa/hitsound/internal/hits"
)

type Store interface {
	Init(file string) error
	Deinit()

	// Save the hits produced for a chart sum
	Save(sum, run string, hits []hits.Hit) error

	// Load the most recent hits saved for a chart sum
	Load(sum string) ([]hits.Hit, bool)

	History(sum string) ([]Run, error)
}

type Run struct {
	ID    string
	Count int
}
