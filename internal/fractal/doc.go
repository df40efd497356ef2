// Package fractal computes escape-time fields over the complex plane.
//
// The package has no drawing or UI dependencies so it can be exercised
// without a display:
//
//	f := fractal.Compute(500, 500, 50)
//	lo, hi := f.Range()
//
// Each cell of a [Field] holds the number of iterations of z <- z*z + c
// before |z| exceeds [EscapeRadius], capped at the iteration bound.
package fractal
