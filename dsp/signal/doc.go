// Package signal generates the harmonic test waveform and the Gaussian
// samples used for additive noise.
//
// Two phase conventions exist for the same frequency value. [ConventionAngular]
// (the default) treats frequency as radians per time unit, so
// frequency=2 over [0, 4π] yields four periods. [ConventionCyclic] treats it
// as cycles per time unit.
package signal
