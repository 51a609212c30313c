// Package raster maps a rectangle of the complex plane onto a pixel grid
// and colors each pixel by its escape count.
package raster

import "github.com/willbeason/mandelbrot/pkg/plane"

// Image is a row-major grid of packed pixels sampling the rectangle between
// UpperLeft and LowerRight. The corners may be given in any order.
type Image struct {
	Width  uint
	Height uint

	UpperLeft  plane.Complex
	LowerRight plane.Complex

	// Pixels holds Width*Height packed colors. The pixel at (x, y) is
	// Pixels[x+y*Width].
	Pixels []uint32
}

func New(width, height uint, upperLeft, lowerRight plane.Complex) *Image {
	return &Image{
		Width:      width,
		Height:     height,
		UpperLeft:  upperLeft,
		LowerRight: lowerRight,
		Pixels:     make([]uint32, width*height),
	}
}

// Step is the distance in the plane between horizontally and vertically
// adjacent pixels. Either may be negative or zero.
func (img *Image) Step() (float64, float64) {
	dx := (img.LowerRight.Re - img.UpperLeft.Re) / float64(img.Width)
	dy := (img.LowerRight.Im - img.UpperLeft.Im) / float64(img.Height)
	return dx, dy
}

// Sample is the point of the plane pixel (x, y) is evaluated at.
func (img *Image) Sample(x, y uint) plane.Complex {
	dx, dy := img.Step()
	return img.sample(x, y, dx, dy)
}

func (img *Image) sample(x, y uint, dx, dy float64) plane.Complex {
	return plane.Complex{
		Re: img.UpperLeft.Re + float64(x)*dx,
		Im: img.UpperLeft.Im + float64(y)*dy,
	}
}
