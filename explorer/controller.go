package explorer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-sigexplore/dsp/core"
	"github.com/cwbudde/algo-sigexplore/dsp/filter/bank"
	"github.com/cwbudde/algo-sigexplore/dsp/noise"
	"github.com/cwbudde/algo-sigexplore/dsp/signal"
	"github.com/cwbudde/algo-sigexplore/dsp/spectrum"
	"github.com/cwbudde/algo-sigexplore/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Controller recomputes every view from the full parameter set on each
// change. It owns the noise cache and the filter bank and is not safe for
// concurrent use; hosts serialize calls (see internal/session).
type Controller struct {
	grid     core.Grid
	gen      *signal.Generator
	cache    *noise.Cache
	bank     *bank.Bank
	analyzer *spectrum.Analyzer
	logger   *slog.Logger
	observer Observer
}

type settings struct {
	noiseOpts []noise.Option
	genOpts   []signal.Option
	bankOpts  []bank.Option
	window    window.Type
	logger    *slog.Logger
	observer  Observer
}

// Option configures a Controller.
type Option func(*settings)

// WithSeed seeds the Gaussian noise source.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.noiseOpts = append(s.noiseOpts, noise.WithSeed(seed))
	}
}

// WithNoiseSource replaces the Gaussian noise source.
func WithNoiseSource(src signal.Source) Option {
	return func(s *settings) {
		s.noiseOpts = append(s.noiseOpts, noise.WithSource(src))
	}
}

// WithConvention selects the phase convention of the harmonic generator.
func WithConvention(c signal.Convention) Option {
	return func(s *settings) {
		s.genOpts = append(s.genOpts, signal.WithConvention(c))
	}
}

// WithPlaceholder sets the value filling a hidden filtered view.
func WithPlaceholder(v float64) Option {
	return func(s *settings) {
		s.bankOpts = append(s.bankOpts, bank.WithPlaceholder(v))
	}
}

// WithSpectrumWindow selects the taper used by [Controller.Spectrum].
func WithSpectrumWindow(t window.Type) Option {
	return func(s *settings) {
		s.window = t
	}
}

// WithLogger sets the logger for debug events. Nil keeps the default,
// which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver installs an observer for recomputation events.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		if o != nil {
			s.observer = o
		}
	}
}

// New creates a controller for grid.
func New(grid core.Grid, opts ...Option) (*Controller, error) {
	if grid.Len() < 2 {
		return nil, core.InvalidParameter("grid points", float64(grid.Len()), ">= 2")
	}

	s := settings{
		window:   window.TypeHann,
		logger:   slog.New(slog.DiscardHandler),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	cache, err := noise.New(grid.Len(), s.noiseOpts...)
	if err != nil {
		return nil, fmt.Errorf("noise cache: %w", err)
	}

	return &Controller{
		grid:     grid,
		gen:      signal.NewGenerator(s.genOpts...),
		cache:    cache,
		bank:     bank.New(s.bankOpts...),
		analyzer: spectrum.NewAnalyzer(spectrum.WithWindow(s.window)),
		logger:   s.logger,
		observer: s.observer,
	}, nil
}

// Grid returns the sample grid all views are computed on.
func (c *Controller) Grid() core.Grid {
	return c.grid
}

// Recompute derives the pure, displayed and filtered views from the given
// parameters. It is all-or-nothing: on error no views are returned and the
// noise cache is either untouched or fully replaced.
func (c *Controller) Recompute(sig SignalParams, nz NoiseParams, sel bank.Selection, tuning FilterTuning) (Views, error) {
	start := time.Now()
	path := bank.Select(sel)

	views, err := c.recompute(sig, nz, sel, tuning, path)
	c.observer.ObserveRecompute(path, time.Since(start), err)
	if err != nil {
		c.logger.Debug("recompute failed", "path", path.String(), "error", err)
		return Views{}, err
	}
	return views, nil
}

// RecomputeState is Recompute with the inputs bundled.
func (c *Controller) RecomputeState(st State) (Views, error) {
	return c.Recompute(st.Signal, st.Noise, st.Selection, st.Tuning)
}

func (c *Controller) recompute(sig SignalParams, nz NoiseParams, sel bank.Selection, tuning FilterTuning, path bank.Path) (Views, error) {
	pure := c.gen.Harmonic(c.grid, sig.Amplitude, sig.Frequency, sig.Phase)

	resolved, err := tuning.Resolve(c.grid, sig.Frequency, path)
	if err != nil {
		return Views{}, fmt.Errorf("filter tuning: %w", err)
	}
	if err := bank.Validate(sel, resolved, c.grid.Len()); err != nil {
		return Views{}, err
	}

	displayed := make([]float64, len(pure))
	if sel.NoiseEnabled {
		before := c.cache.Stats()
		samples, err := c.cache.Noise(nz.Mean, nz.Variance)
		if err != nil {
			return Views{}, err
		}
		hit := c.cache.Stats().Hits > before.Hits
		c.observer.ObserveNoise(hit)
		if !hit {
			c.logger.Debug("noise regenerated", "mean", nz.Mean, "variance", nz.Variance)
		}
		vecmath.AddBlock(displayed, pure, samples)
	} else {
		copy(displayed, pure)
	}

	filtered, _, err := c.bank.Filter(displayed, sel, resolved)
	if err != nil {
		return Views{}, err
	}

	c.logger.Debug("recomputed", "path", path.String(), "points", len(pure))

	return Views{
		Pure:      pure,
		Displayed: displayed,
		Filtered:  filtered,
		Path:      path,
	}, nil
}

// Reset discards the cached noise so the next noisy recomputation draws a
// fresh vector.
func (c *Controller) Reset() {
	c.cache.Reset()
	c.logger.Debug("noise cache reset")
}

// NoiseStats returns the noise cache hit and miss counts.
func (c *Controller) NoiseStats() noise.Stats {
	return c.cache.Stats()
}

// Spectrum returns the amplitude spectrum of view at the grid sample rate.
// Hidden (placeholder) views are rejected.
func (c *Controller) Spectrum(view []float64) (spectrum.Result, error) {
	return c.analyzer.Analyze(view, c.grid.SampleRate())
}
