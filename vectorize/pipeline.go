package vectorize

import (
	"github.com/hssscienceclubpr/pen-plotter-2025/converter"
	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

// HatchLineSetting overrides the default hatch line spacing, mode, and
// output color for one source color, keyed by color name ("_" matches
// any color without its own entry). Grounded on HatchLineSetting in
// gui/shell_manager.hpp.
type HatchLineSetting struct {
	Mode            string
	Spacing         int
	SubstituteColor string
}

// PipelineConfig bundles the tunables lastConvertToVectorData threads
// through as parameters.
type PipelineConfig struct {
	HatchLineSpacing int
	HatchLineAngle   float64
	MinSize          int
	JitterEpsilon    float64
	MinPolylineLen   float64
	HatchLineSettings map[string]HatchLineSetting
}

// DefaultPipelineConfig returns the original implementation's default
// tunables.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		HatchLineSpacing:  4,
		HatchLineAngle:    135,
		MinSize:           10,
		JitterEpsilon:     2,
		MinPolylineLen:    2,
		HatchLineSettings: map[string]HatchLineSetting{},
	}
}

func toPoints(pts []intPoint) []vectordata.Point {
	out := make([]vectordata.Point, len(pts))
	for i, p := range pts {
		out[i] = vectordata.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}

func toPointsSet(sets [][]intPoint) [][]vectordata.Point {
	out := make([][]vectordata.Point, len(sets))
	for i, s := range sets {
		out[i] = toPoints(s)
	}
	return out
}

// resolveSubstitute finds, among names, the color id whose name matches
// substituteColor; falls back to colorID when no match exists or
// substituteColor is empty.
func resolveSubstitute(names map[int]string, colorID int, substituteColor string) int {
	if substituteColor == "" {
		return colorID
	}
	for id, name := range names {
		if name == substituteColor {
			return id
		}
	}
	return colorID
}

func settingFor(settings map[string]HatchLineSetting, colorName string) (HatchLineSetting, bool) {
	if s, ok := settings[colorName]; ok {
		return s, true
	}
	if s, ok := settings["_"]; ok {
		return s, true
	}
	return HatchLineSetting{}, false
}

// Run ties together hatch generation (from filled masks), thinning and
// polyline tracing (from edge masks), contour extraction (from outline
// masks), the stitching pass, and final simplification into one
// VectorData, per color id. Grounded on lastConvertToVectorData; the
// visualize() call at the end of the original is this module's
// vectordata.Render, left to callers since it is a debug aid rather
// than part of the geometry pipeline.
func Run(ms *converter.MaskSet, cfg PipelineConfig) vectordata.VectorData {
	data := vectordata.NewVectorData(ms.Width, ms.Height)
	for id, name := range ms.ColorNames {
		data.ColorNames[id] = name
	}
	for id, v := range ms.ColorValues {
		data.ColorValues[id] = v
	}

	for colorID, mask := range ms.FilledMasks {
		if mask == nil {
			continue
		}
		cleaned := raster.RemoveSmall(mask, cfg.MinSize)

		useID := colorID
		spacing := cfg.HatchLineSpacing
		angles := []float64{cfg.HatchLineAngle}

		if setting, ok := settingFor(cfg.HatchLineSettings, ms.ColorNames[colorID]); ok {
			if setting.Spacing > 0 {
				spacing = setting.Spacing
			}
			angles = HatchAngles(setting.Mode)
			useID = resolveSubstitute(ms.ColorNames, colorID, setting.SubstituteColor)
		}

		for _, angle := range angles {
			lines := GenerateHatchLines(cleaned, spacing, angle)
			data.HatchLines[useID] = append(data.HatchLines[useID], lines...)
		}
	}

	for colorID, mask := range ms.EdgeMasks {
		if mask == nil {
			continue
		}
		thinned := NWGThin(mask)
		cleaned := CleanThinned(thinned)
		rawPolylines := ExtractPolylines(cleaned)
		polylines := toPointsSet(rawPolylines)
		polylines = RemoveShortPolylines(polylines, cfg.MinPolylineLen, false)
		noJitter := RemovePolylinesJitter(polylines, false, cfg.JitterEpsilon)
		for _, pl := range noJitter {
			data.Polylines[colorID] = append(data.Polylines[colorID], vectordata.Polyline{Points: pl})
		}
	}

	for colorID, mask := range ms.OutlineMasks {
		if mask == nil {
			continue
		}
		rawPolylines, rawContours := ExtractContoursFromFilled(mask)
		polylines := toPointsSet(rawPolylines)
		contours := toPointsSet(rawContours)

		useID := colorID
		if setting, ok := cfg.HatchLineSettings[ms.ColorNames[colorID]]; ok {
			useID = resolveSubstitute(ms.ColorNames, colorID, setting.SubstituteColor)
		}

		for _, pl := range polylines {
			data.Polylines[useID] = append(data.Polylines[useID], vectordata.Polyline{Points: pl})
		}
		for _, c := range contours {
			data.Contours[useID] = append(data.Contours[useID], vectordata.Contour{Points: c})
		}
	}

	for id, contours := range data.Contours {
		var pts [][]vectordata.Point
		for _, c := range contours {
			pts = append(pts, c.Points)
		}
		pts = RemoveShortPolylines(pts, cfg.MinPolylineLen, true)
		data.Contours[id] = data.Contours[id][:0]
		for _, p := range pts {
			data.Contours[id] = append(data.Contours[id], vectordata.Contour{Points: p})
		}
	}

	optimized := vectordata.NewVectorData(data.Width, data.Height)
	for id, n := range data.ColorNames {
		optimized.ColorNames[id] = n
	}
	for id, v := range data.ColorValues {
		optimized.ColorValues[id] = v
	}
	for id, hs := range data.HatchLines {
		optimized.HatchLines[id] = append(optimized.HatchLines[id], hs...)
	}
	allIDs := map[int]bool{}
	for id := range data.Polylines {
		allIDs[id] = true
	}
	for id := range data.Contours {
		allIDs[id] = true
	}
	for id := range allIDs {
		var pls, cts [][]vectordata.Point
		for _, pl := range data.Polylines[id] {
			pls = append(pls, pl.Points)
		}
		for _, c := range data.Contours[id] {
			cts = append(cts, c.Points)
		}
		outPls, outCts := OptimizeVectorData(pls, cts)
		for _, p := range outPls {
			optimized.Polylines[id] = append(optimized.Polylines[id], vectordata.Polyline{Points: p})
		}
		for _, c := range outCts {
			optimized.Contours[id] = append(optimized.Contours[id], vectordata.Contour{Points: c})
		}
	}

	return SimplifyVectorData(optimized)
}
