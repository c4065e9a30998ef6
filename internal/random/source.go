// Package random provides the injectable randomness source used by the
// card selector, spawn selector and pity coin flip. Game randomness does
// not need to be cryptographically secure, but every draw must be
// independent and uniform, and tests need deterministic seeding.
package random

import "math/rand/v2"

// Source abstracts the uniform random source so weighted selection and the
// pity tier-boost flip can be seeded deterministically in tests.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). Panics if n <= 0.
	IntN(n int) int
}

type processSource struct{}

func (processSource) Float64() float64 { return rand.Float64() } //nolint:gosec // Game logic randomness, not security critical
func (processSource) IntN(n int) int   { return rand.IntN(n) }   //nolint:gosec // Game logic randomness, not security critical

// Default returns the process-wide source backed by math/rand/v2.
func Default() Source { return processSource{} }

type seededSource struct {
	r *rand.Rand
}

// NewSeeded returns a replicable source for deterministic tests.
func NewSeeded(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }
func (s *seededSource) IntN(n int) int   { return s.r.IntN(n) }
