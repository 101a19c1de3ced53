// Package pass designs low-pass filter cascades as biquad coefficients.
//
// Designs are returned as []biquad.Coefficients ready for
// [biquad.NewChain]. Invalid inputs (non-positive order, cutoff outside
// (0, Nyquist)) are reported as core.InvalidParameterError.
package pass
