// Package fir provides the causal moving-average smoother.
//
// [MovingAverage] is the streaming form with a circular delay line;
// [Smooth] is the offline form used on whole views.
package fir
