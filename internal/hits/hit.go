package hits

import (
	"sort"

	"git.lost.host/meutraa/hitsound/internal/game"
)

type Sound string

const (
	TapSound    Sound = "tap-sound"
	ArcTapSound Sound = "arctap-sound"
	ArcSound    Sound = "arc-sound"
)

// Sounds lists every sound id in output order
var Sounds = []Sound{TapSound, ArcTapSound, ArcSound}

// Hit tells the mixer to play Sound at Time, panned by X
type Hit struct {
	Time  game.Tick
	X     float64
	Sound Sound
}

func Less(a, b Hit) bool {
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Sound < b.Sound
}

// Set collects hits with set semantics
type Set map[Hit]struct{}

func (s Set) Add(h Hit) {
	s[h] = struct{}{}
}

// Sorted returns the members ordered by time, x, then sound
func (s Set) Sorted() []Hit {
	out := make([]Hit, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// Normalize deduplicates and sorts hits. Applying it twice changes nothing.
func Normalize(hits []Hit) []Hit {
	s := make(Set, len(hits))
	for _, h := range hits {
		s.Add(h)
	}
	return s.Sorted()
}

// Count tallies hits per sound
func Count(hits []Hit) map[Sound]int {
	counts := make(map[Sound]int, len(Sounds))
	for _, h := range hits {
		counts[h.Sound]++
	}
	return counts
}
