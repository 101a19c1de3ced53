// Package window provides the tapering windows applied before a spectrum
// is taken of a displayed signal.
package window
