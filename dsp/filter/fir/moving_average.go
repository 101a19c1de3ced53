package fir

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sigexplore/dsp/core"
)

// DefaultWindow is the moving-average length used when none is configured.
const DefaultWindow = 10

// MovingAverage is a causal, uniformly weighted FIR smoother.
//
// Output n is the arithmetic mean of the last min(n+1, window) inputs, so
// the window shrinks near the start instead of assuming zero history and
// never looks ahead. Each output re-sums the delay line, so a huge or
// non-finite input only affects the outputs whose window contains it.
type MovingAverage struct {
	window int
	delay  []float64
	pos    int
	count  int
}

// NewMovingAverage creates a moving average over window samples.
// window must be >= 1.
func NewMovingAverage(window int) (*MovingAverage, error) {
	if window <= 0 {
		return nil, core.InvalidParameter("moving average window", float64(window), ">= 1")
	}
	return &MovingAverage{
		window: window,
		delay:  make([]float64, window),
	}, nil
}

// Window returns the configured window length.
func (m *MovingAverage) Window() int {
	return m.window
}

// ProcessSample pushes x into the delay line and returns the current mean.
func (m *MovingAverage) ProcessSample(x float64) float64 {
	if m.count < m.window {
		m.count++
	}
	m.delay[m.pos] = x

	m.pos++
	if m.pos >= m.window {
		m.pos = 0
	}
	// Until the line is full, the filled slots are exactly delay[:count].
	return vecmath.Sum(m.delay[:m.count]) / float64(m.count)
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (m *MovingAverage) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = m.ProcessSample(x)
	}
}

// Reset clears the delay line.
func (m *MovingAverage) Reset() {
	core.Fill(m.delay, 0)
	m.pos = 0
	m.count = 0
}

// Smooth returns the causal moving average of x over window samples as a
// new slice of the same length.
func Smooth(x []float64, window int) ([]float64, error) {
	m, err := NewMovingAverage(window)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	m.ProcessBlockTo(out, x)
	return out, nil
}
