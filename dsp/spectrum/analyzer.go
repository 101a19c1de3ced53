package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-sigexplore/dsp/core"
	"github.com/cwbudde/algo-sigexplore/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Result is a single-sided amplitude spectrum.
type Result struct {
	// Freqs holds the bin centre frequencies, 0..SampleRate/2.
	Freqs []float64
	// Amplitude holds the window-corrected peak amplitude per bin. A
	// full-scale on-bin sine of amplitude A reads A.
	Amplitude []float64
	// FFTSize is the transform length after zero padding.
	FFTSize int
}

// Peak returns the index of the largest non-DC bin, or 0 if there is none.
func (r Result) Peak() int {
	best := 0
	for i := 1; i < len(r.Amplitude); i++ {
		if best == 0 || r.Amplitude[i] > r.Amplitude[best] {
			best = i
		}
	}
	return best
}

// Analyzer computes amplitude spectra of finite sample vectors. Plans are
// cached per transform size. An Analyzer is not safe for concurrent use.
type Analyzer struct {
	window window.Type
	plans  map[int]*algofft.Plan[complex128]
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWindow selects the taper applied before the transform.
func WithWindow(t window.Type) Option {
	return func(a *Analyzer) {
		a.window = t
	}
}

// NewAnalyzer returns an analyzer using a Hann window by default.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		window: window.TypeHann,
		plans:  make(map[int]*algofft.Plan[complex128]),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Window returns the configured window type.
func (a *Analyzer) Window() window.Type {
	return a.window
}

// Analyze windows x, zero-pads it to the next power of two and returns its
// single-sided amplitude spectrum. x must hold at least two finite samples;
// a placeholder (NaN) view is rejected rather than transformed.
func (a *Analyzer) Analyze(x []float64, sampleRate float64) (Result, error) {
	if len(x) < 2 {
		return Result{}, core.InvalidParameter("spectrum length", float64(len(x)), ">= 2")
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Result{}, core.InvalidParameter("sample rate", sampleRate, "finite and > 0")
	}
	for _, v := range x {
		if !core.IsFinite(v) {
			return Result{}, core.InvalidParameter("spectrum sample", v, "finite")
		}
	}

	n := len(x)
	coeffs := window.Generate(a.window, n, window.WithPeriodic())
	weighted := make([]float64, n)
	vecmath.MulBlock(weighted, x, coeffs)

	windowSum := vecmath.Sum(coeffs)
	if windowSum == 0 {
		return Result{}, fmt.Errorf("spectrum: %s window has zero gain at length %d", a.window, n)
	}

	size := NextPowerOfTwo(n)
	plan, err := a.plan(size)
	if err != nil {
		return Result{}, err
	}

	in := make([]complex128, size)
	for i, v := range weighted {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("spectrum forward transform: %w", err)
	}

	bins := size/2 + 1
	amp := Magnitude(out[:bins])
	vecmath.ScaleBlockInPlace(amp, 2/windowSum)
	amp[0] /= 2
	if size%2 == 0 {
		amp[bins-1] /= 2
	}

	freqs := make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) * sampleRate / float64(size)
	}

	return Result{Freqs: freqs, Amplitude: amp, FFTSize: size}, nil
}

func (a *Analyzer) plan(size int) (*algofft.Plan[complex128], error) {
	if p, ok := a.plans[size]; ok {
		return p, nil
	}
	p, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum init fft plan: %w", err)
	}
	a.plans[size] = p
	return p, nil
}
