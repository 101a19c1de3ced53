package biquad

import (
	"math"
	"testing"
)

// onePoleLP is a stable unity-DC-gain smoothing section.
func onePoleLP() []Coefficients {
	return []Coefficients{
		{B0: 0.0675, B1: 0.135, B2: 0.0675, A1: -1.143, A2: 0.413},
		{B0: 0.0675, B1: 0.135, B2: 0.0675, A1: -1.143, A2: 0.413},
	}
}

func TestPadLen(t *testing.T) {
	if got := PadLen(onePoleLP()); got != 15 {
		t.Fatalf("PadLen = %d, want 15", got)
	}
	odd := append(onePoleLP(), Coefficients{B0: 0.5, B1: 0.5})
	if got := PadLen(odd); got != 18 {
		t.Fatalf("PadLen with first-order section = %d, want 18", got)
	}
}

func TestFiltFiltLength(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 16, 1000} {
		x := make([]float64, n)
		for i := range x {
			x[i] = math.Sin(float64(i))
		}
		out := FiltFilt(onePoleLP(), x)
		if len(out) != n {
			t.Fatalf("n=%d: len = %d", n, len(out))
		}
	}
}

func TestFiltFiltConstantPreserved(t *testing.T) {
	c := NewChain(onePoleLP())
	dc := c.DCGain()
	x := make([]float64, 200)
	for i := range x {
		x[i] = 3
	}
	out := c.FiltFilt(x)
	want := 3 * dc * dc
	for i, y := range out {
		if !almostEqual(y, want, 1e-9) {
			t.Fatalf("out[%d] = %v, want %v", i, y, want)
		}
	}
	for i, s := range c.State() {
		if s != [2]float64{} {
			t.Fatalf("section %d state not reset after FiltFilt: %v", i, s)
		}
	}
}

func TestFiltFiltZeroPhase(t *testing.T) {
	// Normalize so the cascade has unity DC gain.
	coeffs := onePoleLP()
	for i := range coeffs {
		g := coeffs[i].DCGain()
		coeffs[i].B0 /= g
		coeffs[i].B1 /= g
		coeffs[i].B2 /= g
	}

	const n = 2000
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * float64(i) / 400)
	}
	out := FiltFilt(coeffs, x)

	// A causal pass would delay the sine; the forward-backward pass must not.
	for i := 200; i < n-200; i++ {
		if !almostEqual(out[i], x[i], 0.01) {
			t.Fatalf("out[%d] = %v, want ~%v", i, out[i], x[i])
		}
	}
}

func TestFiltFiltDoesNotModifyInput(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	orig := append([]float64(nil), x...)
	_ = FiltFilt(onePoleLP(), x)
	for i := range x {
		if x[i] != orig[i] {
			t.Fatalf("input modified at %d", i)
		}
	}
}

func TestOddExtend(t *testing.T) {
	ext := make([]float64, 7)
	oddExtend(ext, []float64{1, 2, 4}, 2)
	want := []float64{-2, 0, 1, 2, 4, 6, 7}
	for i := range want {
		if ext[i] != want[i] {
			t.Fatalf("ext = %v, want %v", ext, want)
		}
	}
}
