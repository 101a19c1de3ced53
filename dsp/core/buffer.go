package core

// Fill sets every element of buf to v.
func Fill(buf []float64, v float64) {
	for i := range buf {
		buf[i] = v
	}
}

// Filled returns a new slice of length n with every element set to v.
func Filled(n int, v float64) []float64 {
	out := make([]float64, n)
	Fill(out, v)
	return out
}

// Clone returns a copy of src. A nil src yields an empty, non-nil slice.
func Clone(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}
