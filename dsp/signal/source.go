package signal

import (
	"math"
	"math/rand/v2"
)

// Source fills dst with independent draws from a normal distribution.
type Source interface {
	Normal(dst []float64, mean, stddev float64)
}

// NormalSource is a seeded Gaussian source. Equal seeds yield equal
// sequences. It is not safe for concurrent use.
type NormalSource struct {
	seed uint64
	rng  *rand.Rand
}

// NewNormalSource creates a source seeded with seed.
func NewNormalSource(seed uint64) *NormalSource {
	s := &NormalSource{}
	s.SetSeed(seed)
	return s
}

// Seed returns the seed the source was last reset with.
func (s *NormalSource) Seed() uint64 {
	return s.seed
}

// SetSeed restarts the sequence from seed.
func (s *NormalSource) SetSeed(seed uint64) {
	s.seed = seed
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Normal fills dst with mean + stddev*N(0,1) draws.
func (s *NormalSource) Normal(dst []float64, mean, stddev float64) {
	for i := range dst {
		dst[i] = mean + stddev*s.rng.NormFloat64()
	}
}

// StdDev converts a variance to a standard deviation.
func StdDev(variance float64) float64 {
	return math.Sqrt(variance)
}
