package explorer

import (
	"math"

	"github.com/cwbudde/algo-sigexplore/dsp/core"
	"github.com/cwbudde/algo-sigexplore/dsp/filter/bank"
	"github.com/cwbudde/algo-sigexplore/dsp/filter/fir"
)

// SignalParams describe the harmonic waveform.
type SignalParams struct {
	Amplitude float64
	Frequency float64
	Phase     float64
}

// NoiseParams describe the additive Gaussian noise.
type NoiseParams struct {
	Mean     float64
	Variance float64 // >= 0
}

// FilterTuning holds the user-facing filter settings. Multipliers scale
// values derived from the grid and the live frequency; see [FilterTuning.Resolve].
type FilterTuning struct {
	Window         int     // moving-average length
	Order          int     // Butterworth order
	CutoffMult     float64 // scales the frequency-tracking cutoff
	SampleRateMult float64 // scales the grid sample rate
	CutoffHz       float64 // fixed cutoff; 0 tracks the live frequency
}

// DefaultTuning returns the tuning used when nothing is configured.
func DefaultTuning() FilterTuning {
	return FilterTuning{
		Window:         fir.DefaultWindow,
		Order:          bank.DefaultOrder,
		CutoffMult:     1,
		SampleRateMult: 1,
	}
}

// Resolve turns t into absolute filter parameters for a signal of the given
// frequency on grid. The sample rate is grid.SampleRate()*SampleRateMult.
// The cutoff is CutoffHz when positive, otherwise 2*|frequency|*CutoffMult.
//
// Multipliers and the fixed cutoff are only checked when path is
// [bank.PathButterworth]; other paths ignore them.
func (t FilterTuning) Resolve(grid core.Grid, frequency float64, path bank.Path) (bank.Tuning, error) {
	out := bank.Tuning{Window: t.Window, Order: t.Order}
	if path != bank.PathButterworth {
		return out, nil
	}

	if !(t.SampleRateMult > 0) || math.IsInf(t.SampleRateMult, 0) {
		return bank.Tuning{}, core.InvalidParameter("sample rate multiplier", t.SampleRateMult, "finite and > 0")
	}
	if math.IsNaN(t.CutoffHz) || t.CutoffHz < 0 {
		return bank.Tuning{}, core.InvalidParameter("fixed cutoff", t.CutoffHz, ">= 0")
	}

	out.SampleRate = grid.SampleRate() * t.SampleRateMult
	if t.CutoffHz > 0 {
		out.CutoffHz = t.CutoffHz
		return out, nil
	}

	if !(t.CutoffMult > 0) || math.IsInf(t.CutoffMult, 0) {
		return bank.Tuning{}, core.InvalidParameter("cutoff multiplier", t.CutoffMult, "finite and > 0")
	}
	out.CutoffHz = 2 * math.Abs(frequency) * t.CutoffMult
	return out, nil
}

// State bundles every input of a recomputation.
type State struct {
	Signal    SignalParams
	Noise     NoiseParams
	Selection bank.Selection
	Tuning    FilterTuning
}

// DefaultState returns the initial parameter set, which is also what a
// reset restores: a unit sine at frequency 2 with visible noise of
// variance 0.1 and the filter hidden.
func DefaultState() State {
	return State{
		Signal: SignalParams{Amplitude: 1, Frequency: 2, Phase: 0},
		Noise:  NoiseParams{Mean: 0, Variance: 0.1},
		Selection: bank.Selection{
			NoiseEnabled:    true,
			FilterEnabled:   false,
			UseCustomFilter: false,
		},
		Tuning: DefaultTuning(),
	}
}

// Views are the three display vectors of one recomputation. Every slice is
// freshly allocated and owned by the caller.
type Views struct {
	Pure      []float64
	Displayed []float64
	Filtered  []float64
	Path      bank.Path
}
