package noise

import (
	"math"

	"github.com/cwbudde/algo-sigexplore/dsp/core"
	"github.com/cwbudde/algo-sigexplore/dsp/signal"
)

// DefaultSeed seeds the Gaussian source when no source or seed is supplied.
const DefaultSeed uint64 = 1

// Stats counts cache lookups.
type Stats struct {
	Hits   int
	Misses int
}

// state is replaced wholesale on every regeneration.
type state struct {
	mean, variance float64
	samples        []float64
}

// Cache memoizes an additive noise vector keyed on (mean, variance).
//
// As long as the pair is unchanged the same vector is returned, so a noisy
// signal stays visually stable while unrelated parameters change. Cache is
// not safe for concurrent use.
type Cache struct {
	length int
	source signal.Source
	cur    *state
	stats  Stats
}

// Option configures a Cache.
type Option func(*Cache)

// WithSource sets the Gaussian source used for fresh draws.
func WithSource(src signal.Source) Option {
	return func(c *Cache) {
		if src != nil {
			c.source = src
		}
	}
}

// WithSeed uses a [signal.NormalSource] seeded with seed.
func WithSeed(seed uint64) Option {
	return func(c *Cache) {
		c.source = signal.NewNormalSource(seed)
	}
}

// New creates a cache producing vectors of the given length.
func New(length int, opts ...Option) (*Cache, error) {
	if length <= 0 {
		return nil, core.InvalidParameter("noise length", float64(length), "> 0")
	}
	c := &Cache{length: length}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.source == nil {
		c.source = signal.NewNormalSource(DefaultSeed)
	}
	return c, nil
}

// Len returns the length of every produced vector.
func (c *Cache) Len() int {
	return c.length
}

// Noise returns a noise vector drawn from N(mean, sqrt(variance)).
//
// If (mean, variance) equals the pair of the previous successful call, the
// previously returned slice is returned again. Callers must not modify it.
// A negative or NaN variance is rejected and leaves the cached state intact.
func (c *Cache) Noise(mean, variance float64) ([]float64, error) {
	if math.IsNaN(variance) || variance < 0 {
		return nil, core.InvalidParameter("noise variance", variance, ">= 0")
	}
	if math.IsNaN(mean) {
		return nil, core.InvalidParameter("noise mean", mean, "a number")
	}

	if c.cur != nil && c.cur.mean == mean && c.cur.variance == variance {
		c.stats.Hits++
		return c.cur.samples, nil
	}

	samples := make([]float64, c.length)
	c.source.Normal(samples, mean, signal.StdDev(variance))
	c.cur = &state{mean: mean, variance: variance, samples: samples}
	c.stats.Misses++

	return samples, nil
}

// Params returns the pair that produced the cached vector. ok is false when
// nothing has been generated yet.
func (c *Cache) Params() (mean, variance float64, ok bool) {
	if c.cur == nil {
		return 0, 0, false
	}
	return c.cur.mean, c.cur.variance, true
}

// Stats returns hit and miss counts since creation.
func (c *Cache) Stats() Stats {
	return c.stats
}

// Reset discards the cached vector; the next call draws fresh noise.
func (c *Cache) Reset() {
	c.cur = nil
}
