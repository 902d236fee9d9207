package colormap

import (
	"fmt"
	"math"

	"github.com/hssscienceclubpr/pen-plotter-2025/perr"
	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

// Mode selects which colormap-building algorithm Build runs.
type Mode int

const (
	// Binary thresholds a grayscale conversion of the source into
	// "white" (id 0) and "black" (id 1).
	Binary Mode = iota
	// Multi assigns every pixel to the nearest palette color in Lab
	// space, omitting any palette color with zero assigned pixels.
	Multi
	// AchroMulti runs an achromatic pre-pass (2, 3, or 4 gray tiers by
	// double-cone saturation and Lab lightness) before falling back to
	// Multi-style nearest-Lab classification for chromatic pixels.
	AchroMulti
)

// Config holds every knob the three colormap modes accept. Only the
// fields relevant to Mode need be set; Validate checks exactly the
// fields the selected mode consumes.
type Config struct {
	Mode Mode

	// Binary mode.
	Threshold uint8

	// Multi and AchroMulti modes.
	Palette vectordata.Palette

	// AchroMulti mode only.
	AchroSensitivity float64
	AchroThresholds  []float64 // length must be len(AchroColors)-1, monotonic increasing
	AchroColors      vectordata.Palette
}

// Validate checks cfg up front, before any pixel is touched, per the
// pipeline's validate-then-abort error handling convention.
func (c Config) Validate() error {
	switch c.Mode {
	case Binary:
		// Threshold has no invalid range: any uint8 value is acceptable.
	case Multi:
		if len(c.Palette) < 2 {
			return fmt.Errorf("multi colormap needs at least 2 palette colors: %w", perr.InvalidConfiguration)
		}
	case AchroMulti:
		n := len(c.AchroColors)
		if n != 2 && n != 3 && n != 4 {
			return fmt.Errorf("achro+multi needs 2, 3, or 4 achromatic tiers, got %d: %w", n, perr.InvalidConfiguration)
		}
		if len(c.AchroThresholds) != n-1 {
			return fmt.Errorf("achro+multi needs %d thresholds for %d tiers, got %d: %w", n-1, n, len(c.AchroThresholds), perr.InvalidConfiguration)
		}
		for i := 1; i < len(c.AchroThresholds); i++ {
			if c.AchroThresholds[i] <= c.AchroThresholds[i-1] {
				return fmt.Errorf("achro thresholds must be strictly increasing: %w", perr.InvalidConfiguration)
			}
		}
		if len(c.Palette) < 2 {
			return fmt.Errorf("achro+multi needs at least 2 chromatic palette colors: %w", perr.InvalidConfiguration)
		}
	default:
		return fmt.Errorf("unknown colormap mode %d: %w", c.Mode, perr.InvalidConfiguration)
	}
	return nil
}

// Build runs the configured colormap algorithm over img.
func Build(img *raster.BGR, cfg Config) (vectordata.ColorMap, error) {
	if err := cfg.Validate(); err != nil {
		return vectordata.ColorMap{}, err
	}
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return vectordata.ColorMap{}, fmt.Errorf("empty source image: %w", perr.InvalidInput)
	}

	switch cfg.Mode {
	case Binary:
		return buildBinary(img, cfg.Threshold), nil
	case Multi:
		return buildMulti(img, cfg.Palette, nil, 0), nil
	case AchroMulti:
		return buildAchroMulti(img, cfg)
	default:
		return vectordata.ColorMap{}, fmt.Errorf("unknown colormap mode %d: %w", cfg.Mode, perr.InvalidConfiguration)
	}
}

// buildBinary grounds generateBinaryColorMap: grayscale, threshold,
// id0="white" (>= threshold), id1="black" (< threshold).
func buildBinary(img *raster.BGR, threshold uint8) vectordata.ColorMap {
	gray := raster.ToGray(img)
	cm := vectordata.NewColorMap(img.Width, img.Height)
	cm.Names[0] = "white"
	cm.Values[0] = [3]uint8{255, 255, 255}
	cm.Names[1] = "black"
	cm.Values[1] = [3]uint8{0, 0, 0}

	raster.ParallelRows(img.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < img.Width; x++ {
				if gray.At(x, y) >= threshold {
					cm.Set(x, y, 0)
				} else {
					cm.Set(x, y, 1)
				}
			}
		}
	})
	return cm
}

// buildMulti grounds generateMultiColorMap: per-candidate-color
// row-parallel squared Lab distance with running minimum, materializing
// only colors with at least one assigned pixel. When excludeMask is
// non-nil, pixels where it is set are skipped (used by buildAchroMulti
// for the chromatic fallback pass) and ids are offset by idOffset.
func buildMulti(img *raster.BGR, palette vectordata.Palette, excludeMask *raster.Gray, idOffset int) vectordata.ColorMap {
	cm := vectordata.NewColorMap(img.Width, img.Height)
	for i := range cm.IDs {
		cm.IDs[i] = -1
	}

	labs := make([][3]float64, len(palette))
	for i, entry := range palette {
		labs[i] = bgrToLab(entry.BGR)
	}

	pixLab := make([][3]float64, img.Width*img.Height)
	raster.ParallelRows(img.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < img.Width; x++ {
				l, a, b := raster.LabAt(img, x, y)
				pixLab[y*img.Width+x] = [3]float64{l, a, b}
			}
		}
	})

	minDist := make([]float64, img.Width*img.Height)
	for i := range minDist {
		minDist[i] = math.MaxFloat64
	}

	for ci, c := range labs {
		raster.ParallelRows(img.Height, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				for x := 0; x < img.Width; x++ {
					i := y*img.Width + x
					if excludeMask != nil && excludeMask.At(x, y) != 0 {
						continue
					}
					p := pixLab[i]
					d := raster.LabDistSq(p[0], p[1], p[2], c[0], c[1], c[2])
					if d < minDist[i] {
						minDist[i] = d
						cm.IDs[i] = ci + idOffset
					}
				}
			}
		})
	}

	counts := make(map[int]int)
	for _, id := range cm.IDs {
		if id >= 0 {
			counts[id]++
		}
	}
	for i, entry := range palette {
		id := i + idOffset
		if counts[id] > 0 {
			cm.Names[id] = entry.Name
			cm.Values[id] = entry.BGR
		}
	}
	for i, id := range cm.IDs {
		if id < 0 {
			cm.IDs[i] = 0
			_ = i
		}
	}
	return cm
}

func bgrToLab(bgr [3]uint8) [3]float64 {
	tmp := raster.NewBGR(1, 1)
	tmp.Set(0, 0, bgr[0], bgr[1], bgr[2])
	l, a, b := raster.LabAt(tmp, 0, 0)
	return [3]float64{l, a, b}
}

// buildAchroMulti grounds generateAchroColorMap: compute the
// double-cone-saturation achromatic mask, classify achromatic pixels
// into 2/3/4 gray tiers by Lab lightness against monotonic thresholds,
// then run the Multi nearest-Lab classification on the remaining
// (non-achromatic) pixels, offset by the tier count.
func buildAchroMulti(img *raster.BGR, cfg Config) (vectordata.ColorMap, error) {
	offset := len(cfg.AchroColors)

	achroMask := raster.NewGray(img.Width, img.Height)
	lLab := make([]float64, img.Width*img.Height)

	raster.ParallelRows(img.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < img.Width; x++ {
				_, l, s := raster.HLSAt(img, x, y)
				sDouble := raster.DoubleConeSaturation(l, s)
				i := y*img.Width + x
				labL, _, _ := raster.LabAt(img, x, y)
				lLab[i] = labL
				if sDouble < cfg.AchroSensitivity {
					achroMask.Set(x, y, 255)
				}
			}
		}
	})

	cm := vectordata.NewColorMap(img.Width, img.Height)
	tierOf := func(l float64) int {
		tier := offset - 1
		for i, th := range cfg.AchroThresholds {
			if l < th {
				tier = i
				break
			}
		}
		return tier
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := y*img.Width + x
			if achroMask.At(x, y) == 0 {
				continue
			}
			cm.Set(x, y, tierOf(lLab[i]))
		}
	}
	for i, entry := range cfg.AchroColors {
		cm.Names[i] = entry.Name
		cm.Values[i] = entry.BGR
	}

	chromatic := buildMulti(img, cfg.Palette, achroMask, offset)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if achroMask.At(x, y) == 0 {
				cm.Set(x, y, chromatic.At(x, y))
			}
		}
	}
	for id, name := range chromatic.Names {
		cm.Names[id] = name
		cm.Values[id] = chromatic.Values[id]
	}

	return cm, nil
}
