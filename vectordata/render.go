package vectordata

import (
	"image"
	"image/color"
)

// Render rasterizes data to an RGBA image at the given integer upscale
// factor, drawing polylines, contours, and hatch lines in their
// declared palette color. This mirrors the original implementation's
// visualize() debug preview, minus the GUI texture upload it fed (out
// of scope per the module's Non-goals).
func Render(data VectorData, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, data.Width*scale, data.Height*scale))
	// white background
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			img.Set(x, y, color.White)
		}
	}

	colorFor := func(id int) color.RGBA {
		if bgr, ok := data.ColorValues[id]; ok {
			return color.RGBA{R: bgr[2], G: bgr[1], B: bgr[0], A: 255}
		}
		return color.RGBA{A: 255}
	}

	for id, pls := range data.Polylines {
		col := colorFor(id)
		for _, pl := range pls {
			drawPolyline(img, pl.Points, pl.Closed, scale, col)
		}
	}
	for id, cs := range data.Contours {
		col := colorFor(id)
		for _, c := range cs {
			drawPolyline(img, c.Points, true, scale, col)
		}
	}
	for id, hs := range data.HatchLines {
		col := colorFor(id)
		for _, h := range hs {
			drawLine(img, h.A, h.B, scale, col)
		}
	}
	return img
}

func drawPolyline(img *image.RGBA, pts []Point, closed bool, scale int, col color.RGBA) {
	for i := 1; i < len(pts); i++ {
		drawLine(img, pts[i-1], pts[i], scale, col)
	}
	if closed && len(pts) > 1 {
		drawLine(img, pts[len(pts)-1], pts[0], scale, col)
	}
}

// drawLine is a plain Bresenham rasterizer; the module's stroke output
// is single-pixel-width and anti-aliasing fidelity is explicitly out of
// scope, so no scanline/coverage renderer is needed here.
func drawLine(img *image.RGBA, a, b Point, scale int, col color.RGBA) {
	x0, y0 := int(a.X*float64(scale)), int(a.Y*float64(scale))
	x1, y1 := int(b.X*float64(scale)), int(b.Y*float64(scale))

	dx := abs(x1 - x0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	dy := -abs(y1 - y0)
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
