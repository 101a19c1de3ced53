// Package metrics exposes recomputation counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cwbudde/algo-sigexplore/dsp/filter/bank"
)

// Collector records explorer events on a private registry. It satisfies
// explorer.Observer.
type Collector struct {
	registry   *prometheus.Registry
	recomputes *prometheus.CounterVec
	noise      *prometheus.CounterVec
	duration   prometheus.Histogram
}

// Option configures a Collector.
type Option func(*options)

type options struct {
	runtime bool
}

// WithRuntimeMetrics also registers the Go runtime and process collectors.
func WithRuntimeMetrics() Option {
	return func(o *options) {
		o.runtime = true
	}
}

// New creates a collector with its own registry.
func New(opts ...Option) *Collector {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	reg := prometheus.NewRegistry()
	if o.runtime {
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	c := &Collector{
		registry: reg,
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sigexplore_recomputes_total",
			Help: "Recompute calls by filter path and result.",
		}, []string{"path", "result"}),
		noise: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sigexplore_noise_cache_total",
			Help: "Noise cache lookups by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sigexplore_recompute_duration_seconds",
			Help:    "Recompute latency in seconds.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}
	reg.MustRegister(c.recomputes, c.noise, c.duration)

	return c
}

// ObserveRecompute counts one recomputation and records its duration.
func (c *Collector) ObserveRecompute(path bank.Path, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.recomputes.WithLabelValues(path.String(), result).Inc()
	c.duration.Observe(d.Seconds())
}

// ObserveNoise counts one noise cache lookup.
func (c *Collector) ObserveNoise(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.noise.WithLabelValues(result).Inc()
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the HTTP handler serving the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
