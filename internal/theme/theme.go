package theme

import (
	"git.lost.host/meutraa/hitsound/internal/game"
	"git.lost.host/meutraa/hitsound/internal/hits"
)

type Theme interface {
	RenderSound(sound hits.Sound, text string) string
	RenderDiagnostic(text string) string
	// runs is how often this chart has been stored, zero without a store
	Summary(chart *game.Chart, counts map[hits.Sound]int, cached bool, runs int) string
}
