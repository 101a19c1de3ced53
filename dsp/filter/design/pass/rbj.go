package pass

import (
	"math"

	"github.com/cwbudde/algo-sigexplore/dsp/filter/biquad"
)

// LowpassRBJ designs a second-order low-pass section using the RBJ audio
// EQ cookbook formulas (bilinear transform with pre-warping at freq).
// Non-positive q falls back to 1/√2. It returns zero coefficients for a
// cutoff outside (0, Nyquist).
func LowpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	if validateCutoff(freq, sampleRate) != nil {
		return biquad.Coefficients{}
	}
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		q = 1 / math.Sqrt2
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
