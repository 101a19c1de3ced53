// Package bank selects and runs one of the interchangeable smoothing
// strategies applied to the displayed signal.
//
// The choice is made from three display toggles in strict priority:
//
//   - filter disabled: a vector of placeholders (NaN by default), never the
//     unfiltered input
//   - filter enabled and custom filter set: causal moving average
//     ([fir.Smooth])
//   - filter enabled otherwise: zero-phase Butterworth low-pass
//     ([pass.ButterworthLP] + [biquad.Chain.FiltFilt])
//
// Every path returns a vector of the input's length.
package bank
