package palette

import (
	"image/color"
	"math"
)

// LCh is an opaque color in the polar form of Oklab.
// See https://bottosson.github.io/posts/oklab/
type LCh struct {
	L float64 // perceived lightness
	C float64 // chroma
	H float64 // hue, radians
}

var _ color.Color = LCh{}

func (lc LCh) RGBA() (uint32, uint32, uint32, uint32) {
	r, g, b := lc.linearRGB()
	return uint32(toSRGB(r) * 0xffff), uint32(toSRGB(g) * 0xffff), uint32(toSRGB(b) * 0xffff), 0xffff
}

func (lc LCh) linearRGB() (float64, float64, float64) {
	a := lc.C * math.Cos(lc.H)
	b := lc.C * math.Sin(lc.H)

	l := lc.L + 0.3963377774*a + 0.2158037573*b
	l = l * l * l
	m := lc.L - 0.1055613458*a - 0.0638541728*b
	m = m * m * m
	s := lc.L - 0.0894841775*a - 1.2914855480*b
	s = s * s * s

	return +4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		-1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		-0.0041960863*l - 0.7034186147*m + 1.7076147010*s
}

// toSRGB gamma-encodes a linear channel, clamping out-of-gamut values.
func toSRGB(x float64) float64 {
	x = min(max(x, 0), 1)
	if x >= 0.0031308 {
		return min(math.Pow(x, 1.0/2.4)*1.055-0.055, 1)
	}
	return x * 12.92
}
