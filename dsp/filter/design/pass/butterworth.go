package pass

import (
	"github.com/cwbudde/algo-sigexplore/dsp/core"
	"github.com/cwbudde/algo-sigexplore/dsp/filter/biquad"
)

// ButterworthLP designs a low-pass Butterworth cascade of the given order.
//
// Even orders yield order/2 biquads; odd orders append a first-order section
// (B2=A2=0). The cascade is -3 dB at freq and every pole lies inside the unit
// circle. A cutoff at or above Nyquist is rejected, never clamped.
func ButterworthLP(freq float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order <= 0 {
		return nil, core.InvalidParameter("butterworth order", float64(order), "> 0")
	}
	if err := validateCutoff(freq, sampleRate); err != nil {
		return nil, err
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sections = append(sections, LowpassRBJ(freq, q, sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}
	return sections, nil
}
