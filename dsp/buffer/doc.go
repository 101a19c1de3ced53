// Package buffer provides pooled scratch vectors for filters that need
// temporary working storage larger than their input, such as the padded
// signal of zero-phase filtering.
package buffer
