package vectorize

import "github.com/hssscienceclubpr/pen-plotter-2025/raster"

// intPoint is an integer pixel coordinate, used while tracing before
// conversion to the float vectordata.Point space.
type intPoint struct{ X, Y int }

// 8-neighborhood offsets, indexed by direction 0..7:
//
//	3 2 1
//	4   0
//	5 6 7
var traceDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
var traceDY = [8]int{0, -1, -1, -1, 0, 1, 1, 1}

// directionPriority is the 17-row table selecting which of the 8
// neighbor directions to prefer next, keyed by the last two headings
// taken. Row 0 is the "no history yet" row; rows 9-16 handle the
// odd/even adjacent-direction turn cases. Grounded verbatim on
// extractPolylines' dir_priorities table — the exact ordering here is
// load-bearing for which of several valid next-pixels a trace picks at
// a branch point, so it is preserved literally rather than re-derived.
var directionPriority = [17][8]int{
	{0, 2, 4, 6, 1, 3, 5, 7},
	{0, 2, 6, 4, 1, 7, 3, 5},
	{0, 2, 4, 6, 1, 3, 7, 5},
	{2, 0, 4, 6, 1, 3, 7, 5},
	{2, 4, 0, 6, 3, 1, 5, 7},
	{4, 2, 6, 0, 3, 5, 1, 7},
	{4, 6, 0, 2, 5, 3, 7, 1},
	{6, 4, 0, 2, 5, 7, 3, 1},
	{0, 6, 2, 4, 7, 1, 5, 3},
	{0, 6, 2, 4, 7, 1, 3, 5},
	{0, 2, 6, 4, 1, 7, 3, 5},
	{2, 0, 4, 6, 1, 3, 7, 5},
	{2, 4, 0, 6, 3, 1, 5, 7},
	{4, 2, 6, 0, 3, 5, 1, 7},
	{4, 6, 2, 0, 5, 3, 7, 1},
	{6, 4, 0, 2, 5, 7, 3, 1},
	{6, 0, 4, 2, 7, 5, 1, 3},
}

// priorityRow computes which directionPriority row to use given the
// last two headings taken (most recent first; -1 means "none yet").
func priorityRow(last0, last1 int) int {
	switch {
	case last0 == -1:
		return 0
	case last1 == -1:
		return last0 + 1
	case last0 == last1:
		return last0 + 1
	}
	d := last1 - last0
	if d < 0 {
		d += 8
	}
	if d == 1 || d == 7 {
		var even, odd int
		if last0%2 == 0 {
			even, odd = last0, last1
		} else {
			even, odd = last1, last0
		}
		l := 9 + even
		if odd == even+1 {
			l++
		}
		return l
	}
	return last0 + 1
}

// ExtractPolylines traces 8-connected 1-pixel-wide lines in mask into
// open polylines. Each unvisited foreground pixel starts a bidirectional
// trace (outward in two directions from the seed, concatenated), after
// which each end of the resulting polyline may re-attach to an already
// visited neighboring pixel — but only if that neighbor is not within 4
// vertices of the relevant end already in the polyline. That 4-hop
// guard is preserved exactly as in extractPolylines: it is a literal
// quirk of the original tracer's self-intersection handling, not a bug
// to "fix" — removing it changes which closed loops get detected later.
func ExtractPolylines(mask *raster.Gray) [][]intPoint {
	visited := raster.NewGray(mask.Width, mask.Height)
	var polylines [][]intPoint

	isValid := func(x, y int) bool {
		return x >= 0 && x < mask.Width && y >= 0 && y < mask.Height
	}

	// last0, last1 hold the two most recent headings taken by the tracer
	// and are declared once, outside both the seed-pixel loop and the
	// two-half k loop below, exactly as extractPolylines' last_2_dir is.
	// This direction history is never reset: it leaks from one seed's
	// trace into the next seed's first step, and from a seed's first
	// half-trace (k=0) into its second (k=1). That leak is a literal
	// quirk of the original tracer, not a bug — priorityRow(-1, -1)'s
	// "no history" row only ever applies to the very first step of the
	// very first trace in the whole mask.
	last0, last1 := -1, -1

	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.At(x, y) == 0 || visited.At(x, y) != 0 {
				continue
			}

			visited.Set(x, y, 1)
			var branches [2][]intPoint

			for k := 0; k < 2; k++ {
				q := intPoint{x, y}
				branches[k] = append(branches[k], q)

				for {
					l := priorityRow(last0, last1)
					found := false
					for _, dir := range directionPriority[l] {
						nx, ny := q.X+traceDX[dir], q.Y+traceDY[dir]
						if isValid(nx, ny) && mask.At(nx, ny) == 255 && visited.At(nx, ny) == 0 {
							q = intPoint{nx, ny}
							branches[k] = append(branches[k], q)
							visited.Set(nx, ny, 1)
							last1 = last0
							last0 = dir
							found = true
							break
						}
					}
					if !found {
						break
					}
				}
			}

			var poly []intPoint
			if len(branches[1]) > 1 {
				reversed := make([]intPoint, len(branches[0]))
				for i, p := range branches[0] {
					reversed[len(branches[0])-1-i] = p
				}
				poly = append(reversed, branches[1][1:]...)
			} else {
				poly = branches[0]
			}

			poly = reattachEnds(poly, mask, visited, isValid)

			if len(poly) >= 2 {
				polylines = append(polylines, poly)
			}
		}
	}
	return polylines
}

// reattachEnds mirrors extractPolylines' post-trace pass: for each end
// of poly, look for an already-visited neighbor (priority row 0) and
// splice the first one found onto that end, skipping neighbors that are
// poly's own vertices near that end (among its first 4 vertices for the
// start, among its last 3 for the tail). Neighbors visited by earlier
// traces are not in poly and are never skipped. This is what allows a traced open polyline to close
// itself into a loop when tracing happened to visit the closing pixel
// from the "wrong" direction first.
func reattachEnds(poly []intPoint, mask, visited *raster.Gray, isValid func(x, y int) bool) []intPoint {
	for k := 0; k < 2; k++ {
		var q intPoint
		if k == 0 {
			q = poly[0]
		} else {
			q = poly[len(poly)-1]
			if q == poly[0] {
				continue
			}
		}

		var found bool
		var r intPoint
		for _, dir := range directionPriority[0] {
			nx, ny := q.X+traceDX[dir], q.Y+traceDY[dir]
			if !isValid(nx, ny) || mask.At(nx, ny) != 255 || visited.At(nx, ny) != 1 {
				continue
			}
			r = intPoint{nx, ny}
			if idx := indexOf(poly, r); idx >= 0 {
				if k == 0 && idx < 4 {
					continue
				}
				if k == 1 && len(poly)-idx < 4 {
					continue
				}
			}
			found = true
			break
		}

		if found {
			if k == 0 {
				poly = append([]intPoint{r}, poly...)
			} else {
				poly = append(poly, r)
			}
		}
	}
	return poly
}

func indexOf(poly []intPoint, p intPoint) int {
	for i, q := range poly {
		if q == p {
			return i
		}
	}
	return -1
}
