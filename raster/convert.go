package raster

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effects"
	"github.com/lucasb-eyer/go-colorful"
)

// ToGray converts a BGR image to an 8-bit grayscale plane using
// bild/effects.Grayscale's luma weighting, reused here instead of
// hand-rolling a channel-weighted average.
func ToGray(im *BGR) *Gray {
	src := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			b, g, r := im.At(x, y)
			src.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	grayImg := effects.Grayscale(src)

	out := NewGray(im.Width, im.Height)
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			c := grayImg.RGBAAt(x, y)
			out.Set(x, y, c.R)
		}
	}
	return out
}

// LabAt converts the pixel at (x, y) to CIE-Lab, normalizing BGR to
// [0,1] first as the original implementation does before its Lab
// conversion. go-colorful's Color.Lab() returns L, a, b all scaled down
// by ~100 from classic CIELAB (its own XyzToLabWhiteRef uses coefficients
// 1.16/5.0/2.0 where the classic formula uses 116/500/200); scale all
// three back up so L lands in [0,100] as the rest of this module assumes.
func LabAt(im *BGR, x, y int) (l, a, b float64) {
	bb, gg, rr := im.At(x, y)
	c := colorful.Color{R: float64(rr) / 255, G: float64(gg) / 255, B: float64(bb) / 255}
	l, a, b = c.Lab()
	return l * 100, a * 100, b * 100
}

// LabDistSq returns the squared Euclidean distance between two Lab
// triples, the metric the colormap builder's nearest-color scan
// minimizes.
func LabDistSq(l1, a1, b1, l2, a2, b2 float64) float64 {
	dl := l1 - l2
	da := a1 - a2
	db := b1 - b2
	return dl*dl + da*da + db*db
}

// HLSAt converts the pixel at (x, y) to hue/lightness/saturation,
// returning (h, l, s) to match the original's H,L,S channel order.
func HLSAt(im *BGR, x, y int) (h, l, s float64) {
	bb, gg, rr := im.At(x, y)
	c := colorful.Color{R: float64(rr) / 255, G: float64(gg) / 255, B: float64(bb) / 255}
	hh, ss, ll := c.Hsl()
	return hh, ll, ss
}

// DoubleConeSaturation computes S*(1-|2L-1|), the achromatic-detection
// metric used by the Achro+Multi colormap mode.
func DoubleConeSaturation(l, s float64) float64 {
	v := 2*l - 1
	if v < 0 {
		v = -v
	}
	return s * (1 - v)
}
