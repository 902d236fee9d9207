// Package vectorize turns masks (from converter's MaskSet) into
// polylines, contours, and hatch lines: thinning, tracing, contour
// extraction, stitching, and simplification.
package vectorize

import (
	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
)

// NWGThin runs the two-sub-step NWG thinning algorithm to a fixed
// point. The LUT machinery lives in package raster (raster.Thin), next
// to raster.ZhangSuenThin, which converter's ClassifyPixels uses; this
// wrapper keeps the name vectorize's own pipeline code already uses.
func NWGThin(mask *raster.Gray) *raster.Gray {
	return raster.Thin(mask)
}

// CleanThinned fills "missing corner" gaps left after thinning.
// Delegates to raster.CleanThinned for the same reason as NWGThin.
func CleanThinned(thinned *raster.Gray) *raster.Gray {
	return raster.CleanThinned(thinned)
}
