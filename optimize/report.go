package optimize

import (
	"fmt"
	"math"

	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

// Report summarizes an optimized DrawPath's travel cost, the numeric
// half of analyzePath (its debug raster rendering is left to
// vectordata.Render, which already draws polylines/contours/hatch
// lines in the right palette color).
type Report struct {
	TotalPaths     int
	TotalPoints    int
	TotalLengthMM  float64
	TotalLengthM   float64
	TravelDistance float64 // portion of TotalLengthMM spent on pen-up moves between paths
}

// Analyze computes a Report for path, matching analyzePath's totals.
func Analyze(path DrawPath) Report {
	var r Report
	var drawLength, travelLength float64

	for _, paths := range path.Paths {
		r.TotalPaths += len(paths)
		for _, pts := range paths {
			r.TotalPoints += len(pts)
			for i := 0; i+1 < len(pts); i++ {
				drawLength += segLen(pts[i], pts[i+1])
			}
		}
		for i := 0; i+1 < len(paths); i++ {
			if len(paths[i]) == 0 || len(paths[i+1]) == 0 {
				continue
			}
			travelLength += segLen(paths[i][len(paths[i])-1], paths[i+1][0])
		}
	}

	r.TravelDistance = travelLength
	r.TotalLengthMM = drawLength + travelLength
	r.TotalLengthM = r.TotalLengthMM / 1000
	return r
}

func segLen(a, b vectordata.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// String renders the report in the same five-line shape as
// analyzePath's analysis string.
func (r Report) String() string {
	return fmt.Sprintf(
		"Optimized Path Analysis:\nTotal Paths: %d\nTotal Points: %d\nTotal Length: %.2f\n(%d meters)\n",
		r.TotalPaths, r.TotalPoints, r.TotalLengthMM, int(math.Round(r.TotalLengthM)),
	)
}
