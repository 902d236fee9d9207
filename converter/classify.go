package converter

import (
	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
)

// ClassifyPixels splits a LineAndFill mask into its thin "line" pixels
// and its solidly filled regions: a pixel counts as a line candidate
// when it has few set neighbors within an r-radius box (i.e. it sits on
// a thin stroke, not inside a blob), refined by subtracting an
// "already looks filled" region computed via open+dilate, then
// reconciled against the filled leftover by re-thinning tiny (area<4)
// thinned components back into filled. Grounded on classifyPixels, using
// raster.ZhangSuenThin for the internal reclassification thinning, the
// same algorithm (THINNING_ZHANGSUEN) the original applies at this step.
func ClassifyPixels(binary *raster.Gray, r int) (lines, filled *raster.Gray) {
	radius := r
	if radius < 1 {
		radius = 1
	}
	w, h := binary.Width, binary.Height

	thresholdCount := radius * radius * 2
	count := neighborCount(binary, radius)

	lines = raster.NewGray(w, h)
	for i := range lines.Pix {
		if binary.Pix[i] == 255 && count[i] <= thresholdCount {
			lines.Pix[i] = 255
		}
	}

	ellipseSize := 2*radius + 1
	if ellipseSize < 3 {
		ellipseSize = 3
	}
	ellipseRadius := (ellipseSize - 1) / 2
	nearFilled := raster.Open(binary, raster.EllipseElement(ellipseRadius))

	rectSize := ellipseSize / 2
	if rectSize < 3 {
		rectSize = 3
	}
	rectRadius := (rectSize - 1) / 2
	nearFilled = raster.Dilate(nearFilled, raster.RectElement(rectRadius))
	nearFilled = nearFilled.Not()

	lines = lines.And(nearFilled)
	lines = raster.RemoveSmall(lines, 10)

	notLines := lines.Not()
	filled = binary.And(notLines)
	filled = raster.RemoveSmall(filled, 10)

	notFilled := filled.Not()
	lines = binary.And(notFilled)

	thinnedLines := raster.ZhangSuenThin(lines)
	thinLabels, thinComps := raster.Label(thinnedLines)

	specks := make(map[int]bool)
	for _, c := range thinComps {
		if c.Area < 4 {
			specks[c.ID] = true
		}
	}
	if len(specks) > 0 {
		linesLabels, _ := raster.Label(lines)
		speckLines := make(map[int32]bool)
		for i := range lines.Pix {
			tl := thinLabels.At(i%w, i/w)
			if tl == 0 || !specks[int(tl)] {
				continue
			}
			speckLines[linesLabels.At(i%w, i/w)] = true
		}
		for j := range lines.Pix {
			if ll := linesLabels.At(j%w, j/w); ll != 0 && speckLines[ll] {
				filled.Pix[j] = 255
				lines.Pix[j] = 0
			}
		}
	}

	return lines, filled
}

// neighborCount returns, for each pixel, the count of set neighbors
// within a (2*radius+1) box excluding the center, computed via a
// sliding-window prefix sum over the binarized (0/1) plane.
func neighborCount(g *raster.Gray, radius int) []int {
	w, h := g.Width, g.Height
	bin := make([]int, w*h)
	for i, v := range g.Pix {
		if v != 0 {
			bin[i] = 1
		}
	}

	prefix := make([]int, (w+1)*(h+1))
	idx := func(x, y int) int { return y*(w+1) + x }
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			prefix[idx(x+1, y+1)] = bin[y*w+x] + prefix[idx(x, y+1)] + prefix[idx(x+1, y)] - prefix[idx(x, y)]
		}
	}
	sum := func(x0, y0, x1, y1 int) int {
		if x0 < 0 {
			x0 = 0
		}
		if y0 < 0 {
			y0 = 0
		}
		if x1 >= w {
			x1 = w - 1
		}
		if y1 >= h {
			y1 = h - 1
		}
		if x1 < x0 || y1 < y0 {
			return 0
		}
		return prefix[idx(x1+1, y1+1)] - prefix[idx(x0, y1+1)] - prefix[idx(x1+1, y0)] + prefix[idx(x0, y0)]
	}

	out := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			total := sum(x-radius, y-radius, x+radius, y+radius)
			out[y*w+x] = total - bin[y*w+x]
		}
	}
	return out
}
