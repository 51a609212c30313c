package plane

import "math"

// Complex is a point of the complex plane.
type Complex struct {
	Re float64
	Im float64
}

// ModulusSq is |c|², which avoids the square root of Modulus.
func (c Complex) ModulusSq() float64 {
	return c.Re*c.Re + c.Im*c.Im
}

func (c Complex) Modulus() float64 {
	return math.Sqrt(c.ModulusSq())
}

func (c Complex) Square() Complex {
	return Complex{
		Re: c.Re*c.Re - c.Im*c.Im,
		Im: 2 * c.Re * c.Im,
	}
}

func (c Complex) Add(o Complex) Complex {
	return Complex{Re: c.Re + o.Re, Im: c.Im + o.Im}
}

func (c Complex) Sub(o Complex) Complex {
	return Complex{Re: c.Re - o.Re, Im: c.Im - o.Im}
}

func (c Complex) Mul(o Complex) Complex {
	return Complex{
		Re: c.Re*o.Re - c.Im*o.Im,
		Im: c.Re*o.Im + o.Re*c.Im,
	}
}

func (c Complex) Conjugate() Complex {
	return Complex{Re: c.Re, Im: -c.Im}
}

// Sum returns a + b.
func Sum(a, b Complex) Complex {
	return a.Add(b)
}

// Square returns c².
func Square(c Complex) Complex {
	return c.Square()
}

// ModulusSq returns re² + im².
func ModulusSq(c Complex) float64 {
	return c.ModulusSq()
}
