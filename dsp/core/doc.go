// Package core holds the primitives shared by every other package: the
// immutable sample [Grid], the [InvalidParameterError] taxonomy and small
// numeric and buffer helpers.
package core
