// Package explorer is the reactive core of the signal explorer.
//
// A [Controller] turns the complete parameter set (signal, noise, display
// toggles and filter tuning) into three views on a fixed grid:
//
//   - Pure: amplitude*sin(frequency*t + phase)
//   - Displayed: Pure plus the cached Gaussian noise when noise is shown
//   - Filtered: the filter bank output for the selected strategy
//
// Hosts call [Controller.Recompute] after every parameter change. The noise
// vector is reused as long as its mean and variance are unchanged, so the
// noisy curve stays stable while the other parameters move.
package explorer
