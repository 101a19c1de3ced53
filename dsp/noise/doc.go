// Package noise provides a memoizing source of additive Gaussian noise.
//
// The [Cache] regenerates its vector only when the requested mean or
// variance differs (by exact value) from the pair that produced the cached
// vector:
//
//	c, _ := noise.New(grid.Len(), noise.WithSeed(7))
//	n1, _ := c.Noise(0, 0.1)
//	n2, _ := c.Noise(0, 0.1) // same slice as n1
//	n3, _ := c.Noise(0, 0.2) // fresh draw
package noise
