package vectorize

import "github.com/hssscienceclubpr/pen-plotter-2025/vectordata"

func pointsEqual(p1, p2 vectordata.Point) bool {
	return p1.Equal(p2)
}

// MergePolylines repeatedly fuses polylines whose endpoints coincide
// (in any of the four start/end orientation combinations), returning
// the fused set and whether any merge happened in this single pass.
// Grounded on mergePolylines.
func MergePolylines(polylines [][]vectordata.Point) ([][]vectordata.Point, bool) {
	consumed := make([]bool, len(polylines))
	var next [][]vectordata.Point
	mergedInPass := false

	for i := range polylines {
		if consumed[i] {
			continue
		}
		current := append([]vectordata.Point(nil), polylines[i]...)
		consumed[i] = true

		locallyMerged := true
		for locallyMerged {
			locallyMerged = false
			for j := range polylines {
				if i == j || consumed[j] {
					continue
				}
				nextPl := polylines[j]
				if len(current) == 0 || len(nextPl) == 0 {
					continue
				}
				curStart, curEnd := current[0], current[len(current)-1]
				nxtStart, nxtEnd := nextPl[0], nextPl[len(nextPl)-1]

				var merged []vectordata.Point
				doMerge := true
				switch {
				case pointsEqual(curEnd, nxtStart):
					merged = append(append([]vectordata.Point(nil), current...), nextPl[1:]...)
				case pointsEqual(curStart, nxtEnd):
					merged = append(append([]vectordata.Point(nil), nextPl[:len(nextPl)-1]...), current...)
				case pointsEqual(curEnd, nxtEnd):
					rev := reversePoints(nextPl)
					merged = append(append([]vectordata.Point(nil), current...), rev[1:]...)
				case pointsEqual(curStart, nxtStart):
					current = reversePoints(current)
					merged = append(append([]vectordata.Point(nil), current...), nextPl[1:]...)
				default:
					doMerge = false
				}

				if doMerge {
					current = merged
					consumed[j] = true
					locallyMerged = true
					mergedInPass = true
					break
				}
			}
		}
		next = append(next, current)
	}

	if mergedInPass {
		return next, true
	}
	return polylines, false
}

func reversePoints(points []vectordata.Point) []vectordata.Point {
	out := make([]vectordata.Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// ClassifyLines moves every line whose first and last vertex coincide
// into contours (dropping the duplicated closing vertex), leaving the
// rest as open polylines. Grounded on classifyLines.
func ClassifyLines(lines [][]vectordata.Point, contours [][]vectordata.Point) (remaining, outContours [][]vectordata.Point) {
	outContours = contours
	for _, line := range lines {
		if len(line) > 2 && pointsEqual(line[0], line[len(line)-1]) {
			outContours = append(outContours, line[:len(line)-1])
		} else {
			remaining = append(remaining, line)
		}
	}
	return remaining, outContours
}

// SpliceContours walks, for each remaining open polyline, every vertex
// of every existing contour looking for a coincident endpoint; on a
// match it splices the contour's remaining vertices into the polyline
// (walking forward from the match for an end-match, backward for a
// start-match) and discards the consumed contour. Grounded on
// optimizeVectorData's Step 3.
func SpliceContours(polylines [][]vectordata.Point, contours [][]vectordata.Point) (outPolylines, outContours [][]vectordata.Point, mergedAny bool) {
	contours = append([][]vectordata.Point(nil), contours...)

	for {
		mergedInPass := false
		var next [][]vectordata.Point

		for _, current := range polylines {
			if len(current) == 0 {
				next = append(next, current)
				continue
			}
			curStart, curEnd := current[0], current[len(current)-1]
			locallyMerged := false

			for c := range contours {
				contour := contours[c]
				if len(contour) == 0 {
					continue
				}
				for v, vertex := range contour {
					switch {
					case pointsEqual(curEnd, vertex):
						combined := append([]vectordata.Point(nil), current...)
						for k := (v + 1) % len(contour); k != v; k = (k + 1) % len(contour) {
							combined = append(combined, contour[k])
						}
						combined = append(combined, vertex)
						current = combined
						contours[c] = nil
						mergedInPass, locallyMerged = true, true
					case pointsEqual(curStart, vertex):
						startK := v - 1
						if v == 0 {
							startK = len(contour) - 1
						}
						endK := (v + 1) % len(contour)
						combined := []vectordata.Point{vertex}
						k := startK
						for {
							combined = append(combined, contour[k])
							if k == endK {
								break
							}
							if k == 0 {
								k = len(contour) - 1
							} else {
								k--
							}
						}
						combined = append(combined, current...)
						current = combined
						contours[c] = nil
						mergedInPass, locallyMerged = true, true
					}
					if locallyMerged {
						break
					}
				}
				if locallyMerged {
					break
				}
			}
			next = append(next, current)
		}

		polylines = next
		if mergedInPass {
			mergedAny = true
		} else {
			break
		}
	}

	for _, c := range contours {
		if len(c) > 0 {
			outContours = append(outContours, c)
		}
	}
	return polylines, outContours, mergedAny
}

// OptimizeVectorData runs the full stitching pass for one color's
// geometry: repeatedly merge coincident-endpoint polylines, lift closed
// results into contours, splice remaining open polylines into existing
// contour vertices, then reclassify once more. Grounded on
// optimizeVectorData.
func OptimizeVectorData(polylines [][]vectordata.Point, contours [][]vectordata.Point) (outPolylines, outContours [][]vectordata.Point) {
	current := polylines
	for {
		merged, ok := MergePolylines(current)
		current = merged
		if !ok {
			break
		}
	}

	current, contours = ClassifyLines(current, contours)
	current, contours, _ = SpliceContours(current, contours)
	current, contours = ClassifyLines(current, contours)

	return current, contours
}
