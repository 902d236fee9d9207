// Package planner fits a VectorData's geometry onto a physical sheet:
// recenter, rotate, scale to fit the drawable area (inside the paper
// margin), optionally duplicate into a two-up "double" layout, apply a
// final size percentage, and recenter onto the paper. Grounded on
// original_source/lppe/gui/output_manager.cpp's renderViewImage.
package planner

import (
	"fmt"
	"math"

	"github.com/hssscienceclubpr/pen-plotter-2025/perr"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

// Config bundles the paper and layout tunables renderViewImage reads
// from OutputManager's GUI state.
type Config struct {
	PaperWidthMM, PaperHeightMM int
	MarginMM                    int
	DirectionDegrees            int // clockwise rotation applied before fitting
	AllowCenterDrift            bool
	SizePercent                 int // 1..100
	DoubleMode                  bool
	AddBorder                   bool
	BorderColorName             string // color to draw the border/midline in when AddBorder is set; "" picks "black" if present
}

// Validate checks Config's numeric ranges, matching the GUI's own
// clamping logic but returning an error instead of silently clamping,
// since planner.Plan has no GUI to clamp through.
func (c Config) Validate() error {
	if c.PaperWidthMM <= 0 || c.PaperHeightMM <= 0 {
		return fmt.Errorf("planner: paper dimensions must be positive: %w", perr.InvalidConfiguration)
	}
	if c.PaperWidthMM <= 2*c.MarginMM || c.PaperHeightMM <= 2*c.MarginMM {
		return fmt.Errorf("planner: margin too large for paper size: %w", perr.InvalidConfiguration)
	}
	if c.SizePercent < 1 || c.SizePercent > 100 {
		return fmt.Errorf("planner: size percent must be in [1,100]: %w", perr.InvalidConfiguration)
	}
	return nil
}

// transform applies the affine new_x = a*x + b*y + c, new_y = d*x + e*y + f
// to every point in data, leaving width/height unset (0) since the
// result no longer corresponds to pixel-grid dimensions. Grounded on
// applyLinearTransformVectorData.
func transform(data vectordata.VectorData, a, b, c, d, e, f float64) vectordata.VectorData {
	out := vectordata.VectorData{
		Polylines:   make(map[int][]vectordata.Polyline),
		Contours:    make(map[int][]vectordata.Contour),
		HatchLines:  make(map[int][]vectordata.HatchLine),
		ColorNames:  data.ColorNames,
		ColorValues: data.ColorValues,
	}
	apply := func(p vectordata.Point) vectordata.Point {
		return vectordata.Point{X: a*p.X + b*p.Y + c, Y: d*p.X + e*p.Y + f}
	}
	for color, lines := range data.Polylines {
		for _, line := range lines {
			pts := make([]vectordata.Point, len(line.Points))
			for i, p := range line.Points {
				pts[i] = apply(p)
			}
			out.Polylines[color] = append(out.Polylines[color], vectordata.Polyline{Points: pts, Closed: line.Closed})
		}
	}
	for color, lines := range data.Contours {
		for _, line := range lines {
			pts := make([]vectordata.Point, len(line.Points))
			for i, p := range line.Points {
				pts[i] = apply(p)
			}
			out.Contours[color] = append(out.Contours[color], vectordata.Contour{Points: pts})
		}
	}
	for color, lines := range data.HatchLines {
		for _, line := range lines {
			out.HatchLines[color] = append(out.HatchLines[color], vectordata.HatchLine{A: apply(line.A), B: apply(line.B)})
		}
	}
	return out
}

// merge concatenates src1's geometry onto src0's (src0's color
// names/values win on collision), matching mergeVectorData.
func merge(src0, src1 vectordata.VectorData) vectordata.VectorData {
	out := vectordata.VectorData{
		Polylines:   make(map[int][]vectordata.Polyline),
		Contours:    make(map[int][]vectordata.Contour),
		HatchLines:  make(map[int][]vectordata.HatchLine),
		ColorNames:  make(map[int]string),
		ColorValues: make(map[int][3]uint8),
	}
	for id, v := range src0.Polylines {
		out.Polylines[id] = append(out.Polylines[id], v...)
	}
	for id, v := range src1.Polylines {
		out.Polylines[id] = append(out.Polylines[id], v...)
	}
	for id, v := range src0.Contours {
		out.Contours[id] = append(out.Contours[id], v...)
	}
	for id, v := range src1.Contours {
		out.Contours[id] = append(out.Contours[id], v...)
	}
	for id, v := range src0.HatchLines {
		out.HatchLines[id] = append(out.HatchLines[id], v...)
	}
	for id, v := range src1.HatchLines {
		out.HatchLines[id] = append(out.HatchLines[id], v...)
	}
	for id, n := range src0.ColorNames {
		out.ColorNames[id] = n
	}
	for id, n := range src1.ColorNames {
		if _, ok := out.ColorNames[id]; !ok {
			out.ColorNames[id] = n
		}
	}
	for id, v := range src0.ColorValues {
		out.ColorValues[id] = v
	}
	for id, v := range src1.ColorValues {
		if _, ok := out.ColorValues[id]; !ok {
			out.ColorValues[id] = v
		}
	}
	return out
}

func rect(data vectordata.VectorData) (minX, minY, maxX, maxY float64) {
	return data.BoundingBox()
}

// Plan fits data (in pixel-space, data.Width x data.Height) onto the
// configured paper: recenter to origin, rotate by Config.DirectionDegrees,
// scale to fill the drawable area (paper minus margin on all sides),
// optionally duplicate into a two-up layout, apply the final size
// percentage, then recenter onto the paper. Grounded on
// renderViewImage's transform pipeline.
func Plan(data vectordata.VectorData, cfg Config) (vectordata.VectorData, error) {
	if err := cfg.Validate(); err != nil {
		return vectordata.VectorData{}, err
	}
	if data.Width <= 0 || data.Height <= 0 {
		return vectordata.VectorData{}, fmt.Errorf("planner: invalid source vector data size: %w", perr.InvalidInput)
	}

	drawableWidth := float64(cfg.PaperWidthMM - 2*cfg.MarginMM)
	drawableHeight := float64(cfg.PaperHeightMM - 2*cfg.MarginMM)

	moved := transform(data, 1, 0, -float64(data.Width)*0.5, 0, 1, -float64(data.Height)*0.5)

	rad := float64(cfg.DirectionDegrees) * math.Pi / 180
	a, b := math.Cos(rad), -math.Sin(rad)
	d, e := math.Sin(rad), math.Cos(rad)
	rotated := transform(moved, a, b, 0, d, e, 0)

	minX, minY, maxX, maxY := rect(rotated)

	var paperFit vectordata.VectorData
	if cfg.AllowCenterDrift {
		scale := math.Min(drawableWidth/(maxX-minX), drawableHeight/(maxY-minY))
		centerX := (minX + maxX) * 0.5
		centerY := (minY + maxY) * 0.5
		paperFit = transform(rotated, scale, 0, -centerX*scale, 0, scale, -centerY*scale)
	} else {
		scale := math.Min(
			(drawableWidth*0.5)/math.Max(maxX, -minX),
			(drawableHeight*0.5)/math.Max(maxY, -minY),
		)
		paperFit = transform(rotated, scale, 0, 0, 0, scale, 0)
	}

	finalScale := float64(cfg.SizePercent) / 100.0
	if cfg.DoubleMode {
		rotated90 := transform(paperFit, 0, -math.Sqrt(0.5)*finalScale, 0, math.Sqrt(0.5)*finalScale, 0, 0)
		upperHalf := transform(rotated90, 1, 0, 0, 0, 1, -drawableHeight*0.25)
		lowerHalf := transform(rotated90, 1, 0, 0, 0, 1, drawableHeight*0.25)
		paperFit = merge(upperHalf, lowerHalf)
		finalScale = 1.0
	}

	final := transform(paperFit, finalScale, 0, float64(cfg.PaperWidthMM)*0.5, 0, finalScale, float64(cfg.PaperHeightMM)*0.5)
	final.Width = cfg.PaperWidthMM
	final.Height = cfg.PaperHeightMM

	if cfg.AddBorder {
		addBorder(&final, data.ColorNames, cfg)
	}

	return final, nil
}

// addBorder inserts a rectangular margin contour (and, in double mode,
// a horizontal midline polyline) into the color id matching
// Config.BorderColorName, falling back to whichever color is named
// "black", or the lowest color id if neither is found. Grounded on
// renderViewImage's add_border block.
func addBorder(data *vectordata.VectorData, names map[int]string, cfg Config) {
	borderColor := -1
	for _, want := range []string{cfg.BorderColorName, "black"} {
		for id, name := range names {
			if want != "" && name == want && (borderColor == -1 || id < borderColor) {
				borderColor = id
			}
		}
		if borderColor != -1 {
			break
		}
	}
	if borderColor == -1 {
		for id := range names {
			if borderColor == -1 || id < borderColor {
				borderColor = id
			}
		}
	}
	if borderColor == -1 {
		return
	}

	m, w, h := float64(cfg.MarginMM), float64(cfg.PaperWidthMM), float64(cfg.PaperHeightMM)
	data.Contours[borderColor] = append(data.Contours[borderColor], vectordata.Contour{
		Points: []vectordata.Point{
			{X: m, Y: m},
			{X: w - m, Y: m},
			{X: w - m, Y: h - m},
			{X: m, Y: h - m},
		},
	})
	if cfg.DoubleMode {
		data.Polylines[borderColor] = append(data.Polylines[borderColor], vectordata.Polyline{
			Points: []vectordata.Point{{X: m, Y: h * 0.5}, {X: w - m, Y: h * 0.5}},
		})
	}
}
