package generator

import "svw.info/maxrun/internal/ports"

// SeededGenerator fills a template sample with a solver, using the seed to
// order the solver's guesses so results are reproducible.
type SeededGenerator struct {
	Solver ports.Solver
}

// NewSeededGenerator wires a generator that completes templates with s.
func NewSeededGenerator(s ports.Solver) *SeededGenerator {
	return &SeededGenerator{Solver: s}
}

// Note: Generate is implemented in seeded.go and GenerateBatch in batch.go.
