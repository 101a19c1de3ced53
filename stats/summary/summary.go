package summary

import (
	"math"

	"github.com/cwbudde/algo-sigexplore/dsp/core"
)

// Summary holds time-domain statistics of one view. Non-finite samples
// (the placeholders of a hidden view) are skipped; Valid counts the rest.
type Summary struct {
	Length        int
	Valid         int
	Mean          float64
	RMS           float64
	RMSdB         float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	Variance      float64
	ZeroCrossings int
}

// Empty reports whether the view held no finite samples.
func (s Summary) Empty() bool {
	return s.Valid == 0
}

// Calculate computes the statistics of view in a single pass using
// Welford's online algorithm for the variance.
func Calculate(view []float64) Summary {
	s := Summary{
		Length: len(view),
		MaxPos: -1,
		MinPos: -1,
		RMSdB:  math.Inf(-1),
	}

	var (
		mean, m2 float64
		sumSq    float64
		prev     float64
		havePrev bool
	)

	for i, x := range view {
		if !core.IsFinite(x) {
			havePrev = false
			continue
		}

		s.Valid++
		ni := float64(s.Valid)
		delta := x - mean
		mean += delta / ni
		m2 += delta * (x - mean)

		sumSq += x * x

		if s.MaxPos < 0 || x > s.Max {
			s.Max = x
			s.MaxPos = i
		}
		if s.MinPos < 0 || x < s.Min {
			s.Min = x
			s.MinPos = i
		}

		if havePrev && prev*x < 0 {
			s.ZeroCrossings++
		}
		prev, havePrev = x, true
	}

	if s.Valid == 0 {
		return s
	}

	nf := float64(s.Valid)
	s.Mean = mean
	s.Variance = m2 / nf
	s.RMS = math.Sqrt(sumSq / nf)
	s.RMSdB = core.LinearToDB(s.RMS)
	s.Peak = math.Max(math.Abs(s.Max), math.Abs(s.Min))

	return s
}

// RMSError returns the root-mean-square difference of a and b over the
// indices where both are finite, and the number of such indices. Extra
// samples of the longer slice are ignored.
func RMSError(a, b []float64) (float64, int) {
	n := min(len(a), len(b))

	var (
		sumSq float64
		count int
	)
	for i := 0; i < n; i++ {
		if !core.IsFinite(a[i]) || !core.IsFinite(b[i]) {
			continue
		}
		d := a[i] - b[i]
		sumSq += d * d
		count++
	}

	if count == 0 {
		return 0, 0
	}
	return math.Sqrt(sumSq / float64(count)), count
}
