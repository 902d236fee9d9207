package vectorize

import "github.com/hssscienceclubpr/pen-plotter-2025/raster"

// rawContours finds the outer boundary of every connected foreground
// component in mask via Moore-neighbor boundary tracing (the open-source
// equivalent of cv::findContours' RETR_CCOMP outer-boundary pass; hole
// contours are not separately tracked since this module's converters
// never feed nested shapes through the outline path).
func rawContours(mask *raster.Gray) [][]intPoint {
	w, h := mask.Width, mask.Height
	seen := raster.NewGray(w, h)
	var result [][]intPoint

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.At(x, y) == 0 || seen.At(x, y) != 0 {
				continue
			}
			// Only start from a boundary pixel: foreground with a
			// background (or off-image) neighbor to its left, i.e. the
			// classic leftmost-pixel-of-its-row entry condition.
			if x > 0 && mask.At(x-1, y) != 0 {
				continue
			}
			boundary := traceBoundary(mask, x, y)
			for _, p := range boundary {
				seen.Set(p.X, p.Y, 1)
			}
			result = append(result, boundary)
		}
	}
	return result
}

// traceBoundary walks the outer boundary of the component containing
// (startX, startY) using Moore-neighbor tracing in clockwise 8-connected
// order, starting from the "enter from the left" direction.
func traceBoundary(mask *raster.Gray, startX, startY int) []intPoint {
	w, h := mask.Width, mask.Height
	inBounds := func(x, y int) bool { return x >= 0 && x < w && y >= 0 && y < h }
	fg := func(x, y int) bool { return inBounds(x, y) && mask.At(x, y) != 0 }

	start := intPoint{startX, startY}
	boundary := []intPoint{start}

	// Clockwise neighbor order starting "west" (the direction we just
	// came from when entering the component from its left).
	dirs := [8][2]int{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}}

	cur := start
	backtrack := 0 // index in dirs of the direction we arrived from
	for steps := 0; steps < w*h*8; steps++ {
		found := false
		for i := 0; i < 8; i++ {
			d := (backtrack + 1 + i) % 8
			nx, ny := cur.X+dirs[d][0], cur.Y+dirs[d][1]
			if fg(nx, ny) {
				cur = intPoint{nx, ny}
				backtrack = (d + 4) % 8
				found = true
				break
			}
		}
		if !found || cur == start {
			break
		}
		boundary = append(boundary, cur)
	}
	return boundary
}

// ExtractContoursFromFilled splits each raw boundary trace into closed
// Contours (fully interior to the image) and open polylines (where the
// trace touches the image border, which the original treats as a break
// point rather than a genuine closure). Grounded on
// extractContoursFromFilled's edge-splitting/stitching pass.
func ExtractContoursFromFilled(mask *raster.Gray) (polylines, contours [][]intPoint) {
	w, h := mask.Width, mask.Height
	isEdge := func(p intPoint) bool {
		return p.X <= 0 || p.X >= w-1 || p.Y <= 0 || p.Y >= h-1
	}

	for _, raw := range rawContours(mask) {
		var lines [][]intPoint
		var line []intPoint
		prevIsEdge := false
		wholeRun := false // the trace never ended a run at the border
		var lastEdgePoint intPoint

		for _, pt := range raw {
			if isEdge(pt) {
				if len(line) == 0 {
					lastEdgePoint = pt
				} else {
					line = append(line, pt)
					lines = append(lines, line)
					line = nil
					lastEdgePoint = pt
				}
				prevIsEdge = true
			} else {
				if prevIsEdge {
					line = append(line, lastEdgePoint, pt)
				} else {
					line = append(line, pt)
				}
				prevIsEdge = false
			}
		}

		if len(line) >= 2 {
			if len(lines) == 0 {
				lines = append(lines, line)
				wholeRun = true
			} else {
				line = append(line, lines[0][0])
				lines = append(lines, line)
			}
		} else if prevIsEdge && len(line) >= 1 {
			lines = append(lines, []intPoint{lastEdgePoint, line[0]})
		}

		switch {
		case len(lines) == 1 && wholeRun && len(lines[0]) >= 3:
			contours = append(contours, lines[0])
		case len(lines) == 1 && !wholeRun:
			polylines = append(polylines, lines[0])
		case len(lines) > 1:
			var ring [][]intPoint
			firstSkip := false
			for i, l := range lines {
				switch {
				case len(ring) == 0:
					ring = append(ring, l)
				case l[0] == ring[len(ring)-1][len(ring[len(ring)-1])-1]:
					ring[len(ring)-1] = append(ring[len(ring)-1], l[1:]...)
				default:
					ring = append(ring, l)
				}
				if i == len(lines)-1 && len(ring) > 1 &&
					ring[0][0] == ring[len(ring)-1][len(ring[len(ring)-1])-1] {
					ring[len(ring)-1] = append(ring[len(ring)-1], ring[0][1:]...)
					firstSkip = true
				}
			}
			if len(ring) == 1 && len(ring[0]) >= 3 {
				contours = append(contours, ring[0])
			} else if len(ring) > 1 {
				if firstSkip {
					polylines = append(polylines, ring[1:]...)
				} else {
					polylines = append(polylines, ring...)
				}
			}
		}
	}
	return polylines, contours
}
