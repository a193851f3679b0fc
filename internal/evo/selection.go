package evo

import (
	"errors"
	"fmt"
	"math/rand"

	"sunswarm/internal/model"
)

// ErrNoSurvivors is returned by selectors when the ranked pool is empty.
// Callers handle extinction before selection, so hitting it indicates a bug.
var ErrNoSurvivors = errors.New("evo: no survivors to select from")

// ScoredGene pairs a survivor's gene with its realized fitness.
type ScoredGene struct {
	Gene    model.Gene
	Fitness float64
}

// Selector picks a parent gene from a pool ranked best-first. eliteCount is
// the size of the elite prefix; selectors may use or ignore it.
type Selector interface {
	Name() string
	PickParent(rng *rand.Rand, ranked []ScoredGene, eliteCount int) (model.Gene, error)
}

// EliteSelector draws parents uniformly from the elite prefix. This is the
// canonical selector: strong pressure, no fitness-proportional weighting.
type EliteSelector struct{}

func (EliteSelector) Name() string { return "elite" }

func (EliteSelector) PickParent(rng *rand.Rand, ranked []ScoredGene, eliteCount int) (model.Gene, error) {
	if len(ranked) == 0 {
		return model.Gene{}, ErrNoSurvivors
	}
	if eliteCount < 1 {
		eliteCount = 1
	}
	if eliteCount > len(ranked) {
		eliteCount = len(ranked)
	}
	return ranked[rng.Intn(eliteCount)].Gene, nil
}

// TournamentSelector draws Size random entries from the whole ranked pool
// and returns the best of them. Softer pressure than elite selection; weak
// genes keep a nonzero chance of parenthood.
type TournamentSelector struct {
	Size int
}

// NewTournamentSelector validates the tournament size.
func NewTournamentSelector(size int) (*TournamentSelector, error) {
	if size < 1 {
		return nil, fmt.Errorf("evo: tournament size must be at least 1, got %d", size)
	}
	return &TournamentSelector{Size: size}, nil
}

func (s *TournamentSelector) Name() string { return "tournament" }

func (s *TournamentSelector) PickParent(rng *rand.Rand, ranked []ScoredGene, _ int) (model.Gene, error) {
	if len(ranked) == 0 {
		return model.Gene{}, ErrNoSurvivors
	}
	// The pool is sorted best-first, so the winner is the lowest index drawn.
	best := rng.Intn(len(ranked))
	for i := 1; i < s.Size; i++ {
		if idx := rng.Intn(len(ranked)); idx < best {
			best = idx
		}
	}
	return ranked[best].Gene, nil
}
