// Package palette builds the color tables that map escape counts to packed
// pixel values.
package palette

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
)

// Table maps an escape count n in [0, maxIter] to a packed pixel.
// The entry at maxIter colors points that never escaped.
type Table []uint32

// MaxIterations is the largest iteration cap a table can be built for.
const MaxIterations = 1 << 24

// InSet is the color of points that never escaped.
var InSet = color.NRGBA{A: 0xff}

// CheckCap rejects iteration caps whose table would not fit in memory.
func CheckCap(maxIter uint) error {
	if maxIter > MaxIterations {
		return errors.Errorf("iteration cap %d exceeds %d", maxIter, MaxIterations)
	}
	return nil
}

// newTable allocates maxIter+1 entries with the in-set color at maxIter.
func newTable(maxIter uint) (Table, error) {
	if err := CheckCap(maxIter); err != nil {
		return nil, err
	}

	t := make(Table, maxIter+1)
	t[maxIter] = Pack(InSet)
	return t, nil
}

func (t Table) At(n uint) uint32 {
	return t[n]
}

// Check reports whether t has exactly one entry per possible count.
func (t Table) Check(maxIter uint) error {
	if err := CheckCap(maxIter); err != nil {
		return err
	}
	if uint(len(t)) != maxIter+1 {
		return errors.Errorf("color table has %d entries, need %d for %d iterations",
			len(t), maxIter+1, maxIter)
	}
	return nil
}

// Pack stores c as 8-bit non-premultiplied R | G<<8 | B<<16 | A<<24.
// Written little-endian, a packed pixel is the byte sequence R, G, B, A.
func Pack(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint32(n.R) | uint32(n.G)<<8 | uint32(n.B)<<16 | uint32(n.A)<<24
}

func Unpack(v uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

// Grayscale brightens with the escape count, reaching white at maxIter-1.
func Grayscale(maxIter uint) (Table, error) {
	t, err := newTable(maxIter)
	if err != nil {
		return nil, err
	}

	for n := uint(0); n < maxIter; n++ {
		v := uint8(255 * uint64(n+1) / uint64(maxIter))
		t[n] = Pack(color.NRGBA{R: v, G: v, B: v, A: 0xff})
	}
	return t, nil
}

// FromPalette cycles through p for escaped counts.
func FromPalette(p color.Palette, maxIter uint) (Table, error) {
	if len(p) == 0 {
		return nil, errors.New("empty palette")
	}

	t, err := newTable(maxIter)
	if err != nil {
		return nil, err
	}

	for n := uint(0); n < maxIter; n++ {
		t[n] = Pack(p[n%uint(len(p))])
	}
	return t, nil
}

// Rainbow sweeps hue once around the Oklab LCh circle while lightness rises,
// so low counts are dark and counts near the cap are bright.
func Rainbow(maxIter uint) (Table, error) {
	const (
		minL   = 0.45
		maxL   = 0.9
		chroma = 0.13
	)

	t, err := newTable(maxIter)
	if err != nil {
		return nil, err
	}

	for n := uint(0); n < maxIter; n++ {
		f := float64(n) / float64(maxIter)
		lc := LCh{
			L: minL + (maxL-minL)*f,
			C: chroma,
			H: 2 * math.Pi * f,
		}
		t[n] = Pack(lc)
	}
	return t, nil
}
