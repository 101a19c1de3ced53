package biquad

import (
	"math"
	"testing"
)

// twoSectionCoeffs returns two biquad sections for a 4th-order-like cascade.
func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestNewChain(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	if c.NumSections() != 2 {
		t.Fatalf("NumSections: got %d, want 2", c.NumSections())
	}
	if c.Order() != 4 {
		t.Fatalf("Order: got %d, want 4", c.Order())
	}
	if c.Gain() != 1 {
		t.Fatalf("default gain: got %v, want 1", c.Gain())
	}
}

func TestChainOrderFirstOrderSection(t *testing.T) {
	c := NewChain([]Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.5, B1: 0.5, A1: -0.1},
	})
	if c.Order() != 3 {
		t.Fatalf("Order: got %d, want 3", c.Order())
	}
}

func TestChain_ProcessSample_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	section1 := NewSection(coeffs[0])
	section2 := NewSection(coeffs[1])
	chain := NewChain(coeffs)

	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	for i, x := range input {
		ref := section2.ProcessSample(section1.ProcessSample(x))
		if got := chain.ProcessSample(x); !almostEqual(got, ref, eps) {
			t.Errorf("sample %d: chain=%.15f, ref=%.15f", i, got, ref)
		}
	}
}

func TestChain_ProcessBlockWithGain(t *testing.T) {
	coeffs := twoSectionCoeffs()
	ref := NewChain(coeffs, WithGain(0.5))
	blk := NewChain(coeffs, WithGain(0.5))

	input := []float64{1, 0.5, -0.3, 0.7, 0, -1}
	buf := append([]float64(nil), input...)
	blk.ProcessBlock(buf)
	for i, x := range input {
		if want := ref.ProcessSample(x); !almostEqual(buf[i], want, eps) {
			t.Fatalf("sample %d: %v, want %v", i, buf[i], want)
		}
	}
}

func TestChain_StateRoundTrip(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)
	saved := c.State()
	c.Reset()
	for i, s := range c.State() {
		if s != [2]float64{} {
			t.Fatalf("section %d not reset: %v", i, s)
		}
	}
	c.SetState(saved)
	for i, s := range c.State() {
		if s != saved[i] {
			t.Fatalf("section %d: %v, want %v", i, s, saved[i])
		}
	}
	if got := c.Coefficients(); len(got) != 2 || got[1] != twoSectionCoeffs()[1] {
		t.Fatalf("Coefficients() = %v", got)
	}
	if c.Section(0).Coefficients != twoSectionCoeffs()[0] {
		t.Fatal("Section(0) mismatch")
	}
}

func TestChain_StableAndPoles(t *testing.T) {
	if !NewChain(twoSectionCoeffs()).Stable() {
		t.Fatal("expected stable chain")
	}
	unstable := NewChain([]Coefficients{{B0: 1, A1: -2.5, A2: 1.2}})
	if unstable.Stable() {
		t.Fatal("expected unstable chain")
	}

	p := (&Coefficients{A1: 0, A2: -0.25}).Poles()
	for _, pole := range p {
		if !almostEqual(math.Abs(real(pole)), 0.5, eps) {
			t.Fatalf("poles = %v, want ±0.5", p)
		}
	}
	z := (&Coefficients{B0: 1, B1: 2, B2: 1}).Zeros()
	for _, zero := range z {
		if !almostEqual(real(zero), -1, 1e-6) {
			t.Fatalf("zeros = %v, want -1 (double)", z)
		}
	}
}

func TestChain_ResponseAtDC(t *testing.T) {
	c := NewChain(twoSectionCoeffs(), WithGain(2))
	h := c.Response(0, 48000)
	if !almostEqual(real(h), c.DCGain(), 1e-12) || !almostEqual(imag(h), 0, 1e-12) {
		t.Fatalf("Response(0) = %v, want %v", h, c.DCGain())
	}
	if !almostEqual(c.MagnitudeDB(0, 48000), 20*math.Log10(c.DCGain()), 1e-9) {
		t.Fatalf("MagnitudeDB(0) = %v", c.MagnitudeDB(0, 48000))
	}
}
