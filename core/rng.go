package core

import (
	"math/rand/v2"
	"time"
)

// RandomSource supplies the uniform variates consumed by the generator.
// *rand.Rand from math/rand/v2 satisfies it, as does any fixed-sequence
// stub used in tests.
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// NewRNG creates a deterministic random source from the given seed.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// newTimeRNG seeds a source from the wall clock, for callers that did not
// ask for reproducibility.
func newTimeRNG() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
}
