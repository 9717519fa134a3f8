package woods

import "math/rand"

// Source is the random draw used by wandering decisions.
// *rand.Rand satisfies it; tests inject scripted sources.
type Source interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// NewSource returns a seeded pseudorandom Source.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
