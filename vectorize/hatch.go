package vectorize

import (
	"math"

	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

// boundingBox returns the bounding rectangle of mask's nonzero pixels.
// Mirrors cv::boundingRect; ok is false if mask is entirely empty.
func boundingBox(mask *raster.Gray) (x, y, w, h int, ok bool) {
	minX, minY, maxX, maxY := mask.Width, mask.Height, -1, -1
	for py := 0; py < mask.Height; py++ {
		for px := 0; px < mask.Width; px++ {
			if mask.At(px, py) == 0 {
				continue
			}
			if px < minX {
				minX = px
			}
			if px > maxX {
				maxX = px
			}
			if py < minY {
				minY = py
			}
			if py > maxY {
				maxY = py
			}
		}
	}
	if maxX < 0 {
		return 0, 0, 0, 0, false
	}
	return minX, minY, maxX - minX + 1, maxY - minY + 1, true
}

// GenerateHatchLines samples a rotated family of parallel lines, spaced
// lineSpacing pixels apart at angleDegree, across the bounding box of
// mask, emitting a HatchLine for each contiguous in-mask run. Grounded
// on generateHatchLines.
func GenerateHatchLines(mask *raster.Gray, lineSpacing int, angleDegree float64) []vectordata.HatchLine {
	bx, by, bw, bh, ok := boundingBox(mask)
	if !ok {
		return nil
	}
	if lineSpacing < 1 {
		lineSpacing = 1
	}

	angleRad := angleDegree * math.Pi / 180
	cosA, sinA := math.Cos(angleRad), math.Sin(angleRad)
	centerX := float64(bx) + float64(bw)/2
	centerY := float64(by) + float64(bh)/2

	extendedLen := int(math.Ceil(math.Sqrt(float64(bw*bw + bh*bh))))

	var result []vectordata.HatchLine

	for offsetY := -extendedLen / 2; offsetY < extendedLen/2; offsetY += lineSpacing {
		var runPoints []vectordata.Point

		steps := extendedLen
		if steps == 0 {
			steps = 1
		}
		for i := 0; i <= steps; i++ {
			pxLocal := -float64(extendedLen)/2 + float64(i)*float64(extendedLen)/float64(steps)
			pyLocal := float64(offsetY)

			rx := pxLocal*cosA - pyLocal*sinA
			ry := pxLocal*sinA + pyLocal*cosA

			pxImg := int(math.Round(centerX + rx))
			pyImg := int(math.Round(centerY + ry))

			px := pxImg - bx
			py := pyImg - by

			inBox := px >= 0 && px < bw && py >= 0 && py < bh
			inMask := inBox && mask.At(bx+px, by+py) > 0

			if inMask {
				runPoints = append(runPoints, vectordata.Point{X: float64(pxImg), Y: float64(pyImg)})
			} else {
				if len(runPoints) >= 2 {
					result = append(result, vectordata.HatchLine{A: runPoints[0], B: runPoints[len(runPoints)-1]})
				}
				runPoints = nil
			}
		}
		if len(runPoints) >= 2 {
			result = append(result, vectordata.HatchLine{A: runPoints[0], B: runPoints[len(runPoints)-1]})
		}
	}
	return result
}

// HatchAngles maps a shell-configured hatch mode character to the set
// of angles (in degrees) to sample, per shell_manager's mode table.
func HatchAngles(mode string) []float64 {
	switch mode {
	case "/":
		return []float64{135}
	case "\\":
		return []float64{45}
	case "|":
		return []float64{90}
	case "-":
		return []float64{0}
	case "x":
		return []float64{45, 135}
	case "+":
		return []float64{0, 90}
	default:
		return []float64{135}
	}
}
