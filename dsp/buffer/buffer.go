package buffer

import "github.com/cwbudde/algo-sigexplore/dsp/core"

// Buffer is a resizable sample vector whose backing array survives
// shrinking, so repeated work of similar size does not reallocate.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	b := &Buffer{}
	b.Resize(length)
	return b
}

// Samples returns the underlying slice. It is invalidated by Resize.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the capacity of the backing array.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Resize sets the length to n (negative means 0) and zeroes every sample.
func (b *Buffer) Resize(n int) {
	n = max(n, 0)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		b.samples = make([]float64, n)
	}
	core.Fill(b.samples, 0)
}
