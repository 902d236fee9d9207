package raster

// StructuringElement is a set of (dx, dy) offsets relative to a pixel,
// used by Erode/Dilate as the neighborhood to test or union.
type StructuringElement struct {
	Offsets [][2]int
}

// EllipseElement returns an elliptical structuring element of the given
// radius, matching the original implementation's
// cv::getStructuringElement(MORPH_ELLIPSE, ...) convention.
func EllipseElement(radius int) StructuringElement {
	var offs [][2]int
	r2 := float64(radius) * float64(radius)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if float64(dx*dx)+float64(dy*dy) <= r2+0.5 {
				offs = append(offs, [2]int{dx, dy})
			}
		}
	}
	return StructuringElement{Offsets: offs}
}

// RectElement returns a rectangular structuring element of the given
// radius (a (2*radius+1)^2 square).
func RectElement(radius int) StructuringElement {
	var offs [][2]int
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			offs = append(offs, [2]int{dx, dy})
		}
	}
	return StructuringElement{Offsets: offs}
}

// Dilate returns the pixelwise max over se's offsets: a pixel is set if
// any neighbor under se is set.
func Dilate(g *Gray, se StructuringElement) *Gray {
	out := NewGray(g.Width, g.Height)
	ParallelRows(g.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < g.Width; x++ {
				var v uint8
				for _, o := range se.Offsets {
					nx, ny := x+o[0], y+o[1]
					if nx < 0 || nx >= g.Width || ny < 0 || ny >= g.Height {
						continue
					}
					if nv := g.At(nx, ny); nv > v {
						v = nv
					}
				}
				out.Set(x, y, v)
			}
		}
	})
	return out
}

// Erode returns the pixelwise min over se's offsets.
func Erode(g *Gray, se StructuringElement) *Gray {
	out := NewGray(g.Width, g.Height)
	ParallelRows(g.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < g.Width; x++ {
				v := uint8(255)
				for _, o := range se.Offsets {
					nx, ny := x+o[0], y+o[1]
					if nx < 0 || nx >= g.Width || ny < 0 || ny >= g.Height {
						v = 0
						continue
					}
					if nv := g.At(nx, ny); nv < v {
						v = nv
					}
				}
				out.Set(x, y, v)
			}
		}
	})
	return out
}

// Open performs erosion followed by dilation, removing small isolated
// foreground specks without materially shrinking larger regions.
func Open(g *Gray, se StructuringElement) *Gray {
	return Dilate(Erode(g, se), se)
}

// Close performs dilation followed by erosion, filling small holes
// without materially growing the region's outer boundary.
func Close(g *Gray, se StructuringElement) *Gray {
	return Erode(Dilate(g, se), se)
}
