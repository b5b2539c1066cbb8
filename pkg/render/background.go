package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/geometry"
)

// Background colours: a warm dark glow normally, a pale one while the pointer is held.
var (
	idleInner    = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	idleOuter    = color.RGBA{R: 0x1a, G: 0x0f, B: 0x00, A: 255}
	engagedInner = color.RGBA{R: 0xeb, G: 0xf0, B: 0xfa, A: 255}
	engagedOuter = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// The gradient runs from a small circle at (75, 50) to a circle of the surface width
// centred at (90, 60), like a canvas two-circle radial gradient.
const (
	gradientX0 = 75.0
	gradientY0 = 50.0
	gradientR0 = 5.0
	gradientX1 = 90.0
	gradientY1 = 60.0
)

// newRadialGradient renders once the background of a width x height surface.
// Redrawing it per pixel every frame would cost far more than the whole simulation.
func newRadialGradient(width, height int, inner, outer color.RGBA) *ebiten.Image {
	pix := make([]byte, 4*width*height)
	r1 := float64(width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := gradientOffset(float64(x), float64(y), r1)
			i := 4 * (y*width + x)
			pix[i] = lerp(inner.R, outer.R, t)
			pix[i+1] = lerp(inner.G, outer.G, t)
			pix[i+2] = lerp(inner.B, outer.B, t)
			pix[i+3] = 255
		}
	}
	img := ebiten.NewImage(width, height)
	img.WritePixels(pix)
	return img
}

// gradientOffset returns the colour stop, in [0, 1], of the point (px, py): the largest t
// for which the point lies on the circle interpolated between the start circle and the
// end circle of radius r1. Points inside the start circle give 0, beyond the end circle 1.
func gradientOffset(px, py, r1 float64) float64 {
	cdx, cdy := gradientX1-gradientX0, gradientY1-gradientY0
	dr := r1 - gradientR0
	pdx, pdy := px-gradientX0, py-gradientY0

	// |pd - t*cd|^2 = (r0 + t*dr)^2  <=>  a*t^2 - 2*b*t + c = 0
	a := cdx*cdx + cdy*cdy - dr*dr
	b := pdx*cdx + pdy*cdy + gradientR0*dr
	c := pdx*pdx + pdy*pdy - gradientR0*gradientR0

	var roots []float64
	if a == 0 {
		if b != 0 {
			roots = append(roots, c/(2*b))
		}
	} else if disc := b*b - a*c; disc >= 0 {
		sq := math.Sqrt(disc)
		roots = append(roots, (b+sq)/a, (b-sq)/a)
	}

	t, found := 0.0, false
	for _, r := range roots {
		if gradientR0+r*dr >= 0 && (!found || r > t) {
			t, found = r, true
		}
	}
	return geometry.Constrain(t, 0, 1)
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
