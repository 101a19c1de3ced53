// Package spectrum computes amplitude spectra of signal views for display
// next to the time-domain plots.
package spectrum
