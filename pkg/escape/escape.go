// Package escape computes escape-time counts of the Mandelbrot recurrence.
package escape

import (
	"github.com/willbeason/mandelbrot/pkg/plane"
	"github.com/willbeason/mandelbrot/pkg/transforms"
)

const (
	// Threshold is the squared escape radius. An orbit with |z| > 2 diverges.
	Threshold = 4.0

	DefaultMaxIterations = 256
)

// An Evaluator counts iterations up to a fixed cap.
type Evaluator struct {
	MaxIterations uint

	// Step is the orbit map. nil means transforms.Mandelbrot.
	Step transforms.Step
}

// Count returns the first n < MaxIterations at which |z_n|² exceeds
// Threshold, or MaxIterations if the orbit never escapes.
func (e Evaluator) Count(c plane.Complex) uint {
	if e.Step == nil {
		return Count(c, e.MaxIterations)
	}

	return count(c, e.MaxIterations, e.Step)
}

// Count is Evaluator.Count for the quadratic map, without the interface call.
func Count(c plane.Complex, maxIter uint) uint {
	return count(c, maxIter, transforms.Mandelbrot{})
}

// count is the escape-time loop. Instantiated with a concrete step the call
// to Next is static and can be inlined.
func count[S transforms.Step](c plane.Complex, maxIter uint, step S) uint {
	z := plane.Complex{}
	for n := uint(0); n < maxIter; n++ {
		if z.ModulusSq() > Threshold {
			return n
		}
		z = step.Next(z, c)
	}

	return maxIter
}
