package pass

import (
	"math"
	"strconv"

	"github.com/cwbudde/algo-sigexplore/dsp/core"
	"github.com/cwbudde/algo-sigexplore/dsp/filter/biquad"
)

// validateCutoff rejects cutoffs outside (0, Nyquist) and non-positive rates.
func validateCutoff(freq, sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return core.InvalidParameter("sample rate", sampleRate, "finite and > 0")
	}
	if !(freq > 0) {
		return core.InvalidParameter("cutoff frequency", freq, "> 0")
	}
	if nyquist := sampleRate / 2; freq >= nyquist {
		return core.InvalidParameter("cutoff frequency", freq, "< Nyquist ("+strconv.FormatFloat(nyquist, 'g', 6, 64)+")")
	}
	return nil
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2
	}

	return 1 / (2 * s)
}

// butterworthFirstOrderLP designs the first-order section of odd-order
// Butterworth low-pass filters.
func butterworthFirstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}
