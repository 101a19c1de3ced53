package bank

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-sigexplore/dsp/core"
	"github.com/cwbudde/algo-sigexplore/dsp/filter/biquad"
	"github.com/cwbudde/algo-sigexplore/dsp/filter/design/pass"
	"github.com/cwbudde/algo-sigexplore/dsp/filter/fir"
)

// DefaultOrder is the Butterworth order used when none is configured.
const DefaultOrder = 4

// Path identifies which filtering strategy produced an output.
type Path int

const (
	// PathDisabled emits placeholders instead of a filtered signal.
	PathDisabled Path = iota
	// PathMovingAverage runs the causal moving average.
	PathMovingAverage
	// PathButterworth runs the zero-phase Butterworth low-pass.
	PathButterworth
)

// String returns a stable, lowercase name for the path.
func (p Path) String() string {
	switch p {
	case PathDisabled:
		return "disabled"
	case PathMovingAverage:
		return "moving_average"
	case PathButterworth:
		return "butterworth"
	default:
		return fmt.Sprintf("Path(%d)", int(p))
	}
}

// Selection holds the display toggles.
type Selection struct {
	NoiseEnabled    bool
	FilterEnabled   bool
	UseCustomFilter bool
}

// Select resolves the toggles to a path. Priority, highest first:
// filter off, filter on with custom filter, filter on.
// NoiseEnabled never influences the choice.
func Select(sel Selection) Path {
	switch {
	case !sel.FilterEnabled:
		return PathDisabled
	case sel.UseCustomFilter:
		return PathMovingAverage
	default:
		return PathButterworth
	}
}

// Tuning carries the absolute parameters of every strategy. Only the
// fields of the strategy that runs are validated.
type Tuning struct {
	Window     int     // moving-average length, >= 1
	Order      int     // Butterworth order, >= 1
	CutoffHz   float64 // Butterworth cutoff, in (0, SampleRate/2)
	SampleRate float64 // samples per time unit, > 0
}

// Bank applies one of the interchangeable smoothing strategies.
// A Bank holds no per-call state and may be reused freely.
type Bank struct {
	placeholder float64
}

// Option configures a Bank.
type Option func(*Bank)

// WithPlaceholder sets the value emitted on the disabled path.
// The default is NaN, which plotting hosts treat as "not shown".
func WithPlaceholder(v float64) Option {
	return func(b *Bank) {
		b.placeholder = v
	}
}

// New creates a filter bank.
func New(opts ...Option) *Bank {
	b := &Bank{placeholder: math.NaN()}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Placeholder returns the value emitted on the disabled path.
func (b *Bank) Placeholder() float64 {
	return b.placeholder
}

// Filter applies the strategy chosen by sel to signal and returns a new
// slice of the same length together with the path taken. The input is
// never modified and never returned as-is.
func (b *Bank) Filter(signal []float64, sel Selection, tuning Tuning) ([]float64, Path, error) {
	path := Select(sel)

	var (
		out []float64
		err error
	)
	switch path {
	case PathDisabled:
		out = core.Filled(len(signal), b.placeholder)
	case PathMovingAverage:
		out, err = fir.Smooth(signal, tuning.Window)
	case PathButterworth:
		out, err = butterworth(signal, tuning)
	}
	if err != nil {
		return nil, path, fmt.Errorf("%s filter: %w", path, err)
	}
	return out, path, nil
}

// Validate checks tuning for the path sel selects against a signal of
// length samples, without filtering anything. It reports exactly the
// errors [Bank.Filter] would.
func Validate(sel Selection, tuning Tuning, length int) error {
	path := Select(sel)

	var err error
	switch path {
	case PathMovingAverage:
		_, err = fir.NewMovingAverage(tuning.Window)
	case PathButterworth:
		_, err = butterworthFor(tuning, length)
	}
	if err != nil {
		return fmt.Errorf("%s filter: %w", path, err)
	}
	return nil
}

// Butterworth designs the low-pass cascade for tuning without running it.
func Butterworth(tuning Tuning) (*biquad.Chain, error) {
	sections, err := pass.ButterworthLP(tuning.CutoffHz, tuning.Order, tuning.SampleRate)
	if err != nil {
		return nil, err
	}
	chain := biquad.NewChain(sections)
	if !chain.Stable() {
		return nil, core.InvalidParameter("cutoff frequency", tuning.CutoffHz, "yielding a stable design")
	}
	return chain, nil
}

// butterworthFor designs the cascade and rejects signals too short for
// the zero-phase edge padding.
func butterworthFor(tuning Tuning, length int) (*biquad.Chain, error) {
	chain, err := Butterworth(tuning)
	if err != nil {
		return nil, err
	}
	if pad := biquad.PadLen(chain.Coefficients()); length <= pad {
		return nil, core.InvalidParameter("signal length", float64(length),
			fmt.Sprintf("> %d for zero-phase padding", pad))
	}
	return chain, nil
}

func butterworth(signal []float64, tuning Tuning) ([]float64, error) {
	chain, err := butterworthFor(tuning, len(signal))
	if err != nil {
		return nil, err
	}
	return chain.FiltFilt(signal), nil
}
