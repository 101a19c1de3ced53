package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-sigexplore/dsp/core"
)

// Convention selects how the frequency parameter enters the phase argument.
type Convention int

const (
	// ConventionAngular evaluates sin(frequency*t + phase); frequency is in
	// radians per time unit. This is the default.
	ConventionAngular Convention = iota
	// ConventionCyclic evaluates sin(2π*frequency*t + phase); frequency is in
	// cycles per time unit.
	ConventionCyclic
)

// String returns the convention name.
func (c Convention) String() string {
	switch c {
	case ConventionAngular:
		return "angular"
	case ConventionCyclic:
		return "cyclic"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// ParseConvention maps "angular" or "cyclic" to a Convention.
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "", "angular":
		return ConventionAngular, nil
	case "cyclic":
		return ConventionCyclic, nil
	default:
		return ConventionAngular, fmt.Errorf("unknown phase convention: %q", s)
	}
}

// Generator produces harmonic waveforms over a sample grid.
type Generator struct {
	convention Convention
}

// Option configures a Generator.
type Option func(*Generator)

// WithConvention selects the phase convention.
func WithConvention(c Convention) Option {
	return func(g *Generator) {
		g.convention = c
	}
}

// NewGenerator creates a generator using the angular convention unless
// overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{convention: ConventionAngular}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Convention returns the configured phase convention.
func (g *Generator) Convention() Convention {
	return g.convention
}

// Harmonic returns amplitude*sin(w*t + phase) for every t of grid, where w is
// frequency (angular) or 2π*frequency (cyclic). The result is a new slice.
func (g *Generator) Harmonic(grid core.Grid, amplitude, frequency, phase float64) []float64 {
	w := frequency
	if g.convention == ConventionCyclic {
		w = 2 * math.Pi * frequency
	}

	out := make([]float64, grid.Len())
	for i := range out {
		out[i] = amplitude * math.Sin(w*grid.At(i)+phase)
	}
	return out
}
