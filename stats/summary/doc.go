// Package summary reduces a signal view to a handful of scalar statistics
// for tabular display.
package summary
