package core

import "math"

// Grid is an immutable, evenly spaced sequence of sample times.
//
// A Grid is created once and shared by every component that needs the
// time axis. Points returns a copy so callers cannot mutate it.
type Grid struct {
	start, stop float64
	points      []float64
}

// Linspace returns n evenly spaced points over the closed interval [start, stop].
func Linspace(start, stop float64, n int) (Grid, error) {
	if n < 2 {
		return Grid{}, InvalidParameter("grid points", float64(n), ">= 2")
	}
	if math.IsNaN(start) || math.IsInf(start, 0) {
		return Grid{}, InvalidParameter("grid start", start, "finite")
	}
	if !(stop > start) || math.IsInf(stop, 0) {
		return Grid{}, InvalidParameter("grid stop", stop, "finite and > start")
	}

	step := (stop - start) / float64(n-1)
	points := make([]float64, n)
	for i := range points {
		points[i] = start + float64(i)*step
	}
	points[n-1] = stop

	return Grid{start: start, stop: stop, points: points}, nil
}

// DefaultGrid returns 1000 points over [0, 4π].
func DefaultGrid() Grid {
	g, _ := Linspace(0, 4*math.Pi, 1000)
	return g
}

// Len returns the number of sample points.
func (g Grid) Len() int { return len(g.points) }

// At returns the i-th sample time.
func (g Grid) At(i int) float64 { return g.points[i] }

// Start returns the first sample time.
func (g Grid) Start() float64 { return g.start }

// Stop returns the last sample time.
func (g Grid) Stop() float64 { return g.stop }

// Points returns a copy of all sample times.
func (g Grid) Points() []float64 {
	out := make([]float64, len(g.points))
	copy(out, g.points)
	return out
}

// Spacing returns the distance between consecutive sample times.
func (g Grid) Spacing() float64 {
	if len(g.points) < 2 {
		return 0
	}
	return (g.stop - g.start) / float64(len(g.points)-1)
}

// SampleRate returns the number of samples per time unit (1/Spacing).
func (g Grid) SampleRate() float64 {
	s := g.Spacing()
	if s == 0 {
		return 0
	}
	return 1 / s
}

// Nyquist returns half of SampleRate.
func (g Grid) Nyquist() float64 {
	return g.SampleRate() / 2
}
