package raster

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// Gaussian applies a plain Gaussian blur of the given sigma, reusing
// bild/blur.Gaussian rather than hand-rolling separable convolution.
func Gaussian(g *Gray, sigma float64) *Gray {
	src := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	copy(src.Pix, g.Pix)
	blurred := blur.Gaussian(src, sigma)

	out := NewGray(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			out.Set(x, y, blurred.GrayAt(x, y).Y)
		}
	}
	return out
}

// Bilateral applies edge-preserving bilateral smoothing: each output
// pixel is a weighted average of its neighborhood within radius,
// weighted by both spatial distance (sigmaSpace) and intensity
// difference (sigmaColor). bild has no bilateral filter, so this loop
// is hand-rolled on the standard library, like raster's Sobel,
// morphology and thinning code (see DESIGN.md).
func Bilateral(g *Gray, radius int, sigmaColor, sigmaSpace float64) *Gray {
	out := NewGray(g.Width, g.Height)

	spatialDenom := 2 * sigmaSpace * sigmaSpace
	colorDenom := 2 * sigmaColor * sigmaColor

	ParallelRows(g.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < g.Width; x++ {
				center := float64(g.At(x, y))
				var sum, weightSum float64
				for dy := -radius; dy <= radius; dy++ {
					ny := y + dy
					if ny < 0 || ny >= g.Height {
						continue
					}
					for dx := -radius; dx <= radius; dx++ {
						nx := x + dx
						if nx < 0 || nx >= g.Width {
							continue
						}
						neighbor := float64(g.At(nx, ny))
						spatial := math.Exp(-float64(dx*dx+dy*dy) / spatialDenom)
						colorDiff := neighbor - center
						colorWeight := math.Exp(-(colorDiff * colorDiff) / colorDenom)
						w := spatial * colorWeight
						sum += neighbor * w
						weightSum += w
					}
				}
				if weightSum == 0 {
					out.Set(x, y, g.At(x, y))
					continue
				}
				v := sum / weightSum
				if v < 0 {
					v = 0
				}
				if v > 255 {
					v = 255
				}
				out.Set(x, y, uint8(v+0.5))
			}
		}
	})
	return out
}
