// Package evo implements the generational evolution cycle: fitness ranking,
// elite selection, gene mutation, and population respawn.
package evo

import (
	"math/rand"

	"sunswarm/internal/model"
)

// Operator is a pluggable gene mutation. Implementations are pure value
// transforms: they take a gene by value and return the mutated copy, drawing
// randomness only from the supplied source.
type Operator interface {
	// Name identifies the operator in diagnostics.
	Name() string
	// Apply returns the mutated gene. The input is never modified.
	Apply(rng *rand.Rand, g model.Gene) model.Gene
}

// Pipeline applies a fixed sequence of operators in order.
type Pipeline []Operator

func (p Pipeline) Apply(rng *rand.Rand, g model.Gene) model.Gene {
	for _, op := range p {
		g = op.Apply(rng, g)
	}
	return g
}
