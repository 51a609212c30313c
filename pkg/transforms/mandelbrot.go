package transforms

import "github.com/willbeason/mandelbrot/pkg/plane"

// A Step advances an orbit by one iteration for the parameter c.
type Step interface {
	Next(z, c plane.Complex) plane.Complex
}

// Mandelbrot is the quadratic map z² + c.
type Mandelbrot struct{}

func (Mandelbrot) Next(z, c plane.Complex) plane.Complex {
	return plane.Sum(plane.Square(z), c)
}

var _ Step = Mandelbrot{}
