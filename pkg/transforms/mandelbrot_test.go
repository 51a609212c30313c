package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/willbeason/mandelbrot/pkg/plane"
)

func TestMandelbrotNext(t *testing.T) {
	m := Mandelbrot{}
	c := plane.Complex{Re: -1, Im: 0}

	// -1 is a period-2 orbit: 0 -> -1 -> 0 -> -1.
	z := m.Next(plane.Complex{}, c)
	assert.Equal(t, plane.Complex{Re: -1}, z)
	z = m.Next(z, c)
	assert.Equal(t, plane.Complex{Re: 0}, z)

	got := m.Next(plane.Complex{Re: 1, Im: 1}, plane.Complex{Re: 0.5, Im: -0.25})
	// (1+i)² = 2i
	assert.Equal(t, plane.Complex{Re: 0.5, Im: 1.75}, got)
}
