package summary

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculateSquareWave(t *testing.T) {
	s := Calculate([]float64{1, -1, 1, -1})

	if s.Length != 4 || s.Valid != 4 {
		t.Fatalf("length/valid = %d/%d", s.Length, s.Valid)
	}
	if !almostEqual(s.Mean, 0, eps) {
		t.Fatalf("mean = %g", s.Mean)
	}
	if !almostEqual(s.RMS, 1, eps) || !almostEqual(s.RMSdB, 0, eps) {
		t.Fatalf("rms = %g (%g dB)", s.RMS, s.RMSdB)
	}
	if !almostEqual(s.Variance, 1, eps) {
		t.Fatalf("variance = %g", s.Variance)
	}
	if s.ZeroCrossings != 3 {
		t.Fatalf("zero crossings = %d", s.ZeroCrossings)
	}
	if s.Max != 1 || s.MaxPos != 0 || s.Min != -1 || s.MinPos != 1 || s.Peak != 1 {
		t.Fatalf("extrema = %+v", s)
	}
}

func TestCalculateSkipsPlaceholders(t *testing.T) {
	nan := math.NaN()
	s := Calculate([]float64{nan, 2, nan, 4, math.Inf(1)})

	if s.Length != 5 || s.Valid != 2 {
		t.Fatalf("length/valid = %d/%d", s.Length, s.Valid)
	}
	if !almostEqual(s.Mean, 3, eps) {
		t.Fatalf("mean = %g", s.Mean)
	}
	if !almostEqual(s.Variance, 1, eps) {
		t.Fatalf("variance = %g", s.Variance)
	}
	if s.MaxPos != 3 || s.MinPos != 1 {
		t.Fatalf("positions = %d/%d", s.MaxPos, s.MinPos)
	}
}

func TestCalculateAllPlaceholders(t *testing.T) {
	s := Calculate([]float64{math.NaN(), math.NaN()})
	if !s.Empty() {
		t.Fatal("expected empty summary")
	}
	if s.MaxPos != -1 || s.MinPos != -1 {
		t.Fatalf("positions = %d/%d", s.MaxPos, s.MinPos)
	}
	if !math.IsInf(s.RMSdB, -1) {
		t.Fatalf("rms dB = %g", s.RMSdB)
	}

	if !Calculate(nil).Empty() {
		t.Fatal("expected empty summary for nil")
	}
}

func TestCalculateSine(t *testing.T) {
	n := 4000
	x := make([]float64, n)
	for i := range x {
		x[i] = 2 * math.Sin(2*math.Pi*float64(i)/100)
	}

	s := Calculate(x)
	if !almostEqual(s.RMS, math.Sqrt2, 1e-9) {
		t.Fatalf("rms = %g, want sqrt2", s.RMS)
	}
	if !almostEqual(s.Variance, 2, 1e-9) {
		t.Fatalf("variance = %g, want 2", s.Variance)
	}
}

func TestRMSError(t *testing.T) {
	a := []float64{1, 2, 3, math.NaN()}
	b := []float64{1, 4, 3, 5, 6}

	got, n := RMSError(a, b)
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}
	if !almostEqual(got, math.Sqrt(4.0/3), eps) {
		t.Fatalf("rms error = %g", got)
	}

	if got, n := RMSError(nil, b); got != 0 || n != 0 {
		t.Fatalf("empty = %g, %d", got, n)
	}
}
