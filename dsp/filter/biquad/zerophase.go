package biquad

import "github.com/cwbudde/algo-sigexplore/dsp/buffer"

var scratch = buffer.NewPool()

// PadLen returns the number of samples FiltFilt extends each edge by for a
// cascade of the given coefficients: three times the effective tap count.
func PadLen(coeffs []Coefficients) int {
	var zeroB2, zeroA2 int
	for i := range coeffs {
		if coeffs[i].B2 == 0 {
			zeroB2++
		}
		if coeffs[i].A2 == 0 {
			zeroA2++
		}
	}
	taps := 2*len(coeffs) + 1 - min(zeroB2, zeroA2)
	return 3 * taps
}

// FiltFilt applies the cascade forward and then backward over x and returns
// a new slice of the same length. The result has zero phase distortion and
// the squared magnitude response of the chain.
//
// Edges are handled by odd extension of PadLen samples (fewer when x is
// shorter) and by starting each pass from the steady state matching its
// first sample, which suppresses start-up transients. The chain's own
// state is left reset.
func (c *Chain) FiltFilt(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return []float64{}
	}

	pad := PadLen(c.Coefficients())
	if pad > n-1 {
		pad = n - 1
	}

	buf := scratch.Get(n + 2*pad)
	defer scratch.Put(buf)
	ext := buf.Samples()
	oddExtend(ext, x, pad)

	c.settle(ext[0])
	c.ProcessBlock(ext)

	reverse(ext)
	c.settle(ext[0])
	c.ProcessBlock(ext)
	reverse(ext)

	c.Reset()

	out := make([]float64, n)
	copy(out, ext[pad:pad+n])
	return out
}

// FiltFilt runs a zero-phase pass of coeffs over x.
// See [Chain.FiltFilt].
func FiltFilt(coeffs []Coefficients, x []float64) []float64 {
	return NewChain(coeffs).FiltFilt(x)
}

// oddExtend writes x into ext (len(x)+2*pad) with pad samples of
// point-symmetric extension on both ends: 2*x[0]-x[pad..1] before and
// 2*x[n-1]-x[n-2..n-1-pad] after.
func oddExtend(ext, x []float64, pad int) {
	n := len(x)

	first, last := x[0], x[n-1]
	for i := 0; i < pad; i++ {
		ext[i] = 2*first - x[pad-i]
		ext[pad+n+i] = 2*last - x[n-2-i]
	}
	copy(ext[pad:], x)
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
