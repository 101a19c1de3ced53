package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	// First sample of a sine at phase 0 should be 0.
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestRamp(t *testing.T) {
	r := Ramp(4)
	for i, want := range []float64{1, 2, 3, 4} {
		if r[i] != want {
			t.Fatalf("r[%d] = %v, want %v", i, r[i], want)
		}
	}
}

func TestCountingSource(t *testing.T) {
	var s CountingSource
	dst := make([]float64, 3)

	s.Normal(dst, 1, 2)
	if s.Calls != 1 || dst[0] != 3 {
		t.Fatalf("first draw: calls=%d dst=%v", s.Calls, dst)
	}
	s.Normal(dst, 1, 2)
	if s.Calls != 2 || dst[2] != 5 {
		t.Fatalf("second draw: calls=%d dst=%v", s.Calls, dst)
	}
}
