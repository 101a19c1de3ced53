package testutil

import "math"

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Ramp returns 1, 2, ..., n.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

// CountingSource is a deterministic Gaussian stand-in. Every call fills dst
// with mean + stddev*Calls, so consecutive draws are distinguishable.
type CountingSource struct {
	Calls int
}

// Normal implements the noise source contract.
func (s *CountingSource) Normal(dst []float64, mean, stddev float64) {
	s.Calls++
	for i := range dst {
		dst[i] = mean + stddev*float64(s.Calls)
	}
}
