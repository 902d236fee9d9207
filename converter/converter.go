// Package converter implements the mask-to-geometry converters: Edge,
// Fill, LineAndFill, Outline, and Empty, each consuming a ColorMap mask
// restricted to a given mode and accumulating into a MaskSet.
package converter

import (
	"fmt"

	"github.com/hssscienceclubpr/pen-plotter-2025/perr"
	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

// MaskSet accumulates the three mask families converters write into,
// per color id, before vectorization turns them into geometry.
// Grounded on the VectorData.{edge,filled,outline}_masks maps in
// vector_data.hpp.
type MaskSet struct {
	Width, Height int
	EdgeMasks     map[int]*raster.Gray
	FilledMasks   map[int]*raster.Gray
	OutlineMasks  map[int]*raster.Gray
	ColorNames    map[int]string
	ColorValues   map[int][3]uint8
}

// NewMaskSet allocates an empty MaskSet sized to match a ColorMap.
func NewMaskSet(cm vectordata.ColorMap) *MaskSet {
	ms := &MaskSet{
		Width:        cm.Width,
		Height:       cm.Height,
		EdgeMasks:    make(map[int]*raster.Gray),
		FilledMasks:  make(map[int]*raster.Gray),
		OutlineMasks: make(map[int]*raster.Gray),
		ColorNames:   make(map[int]string),
		ColorValues:  make(map[int][3]uint8),
	}
	for id, name := range cm.Names {
		ms.ColorNames[id] = name
		ms.ColorValues[id] = cm.Values[id]
	}
	return ms
}

func (ms *MaskSet) orEdge(id int, mask *raster.Gray) {
	if existing, ok := ms.EdgeMasks[id]; ok {
		ms.EdgeMasks[id] = existing.Or(mask)
	} else {
		ms.EdgeMasks[id] = mask
	}
}

func (ms *MaskSet) orFilled(id int, mask *raster.Gray) {
	if existing, ok := ms.FilledMasks[id]; ok {
		ms.FilledMasks[id] = existing.Or(mask)
	} else {
		ms.FilledMasks[id] = mask
	}
}

func (ms *MaskSet) orOutline(id int, mask *raster.Gray) {
	if existing, ok := ms.OutlineMasks[id]; ok {
		ms.OutlineMasks[id] = existing.Or(mask)
	} else {
		ms.OutlineMasks[id] = mask
	}
}

// modeMask returns a 0/255 mask selecting pixels where modeMap equals
// mode, the `modeMap == mode` test every converter applies before
// unioning a color's mask into its accumulators.
func modeMask(mm vectordata.ModeMap, mode int) *raster.Gray {
	out := raster.NewGray(mm.Width, mm.Height)
	for i, m := range mm.Modes {
		if m == mode {
			out.Pix[i] = 255
		}
	}
	return out
}

func colorMaskOf(cm vectordata.ColorMap, id int) *raster.Gray {
	out := raster.NewGray(cm.Width, cm.Height)
	for i, v := range cm.IDs {
		if v == id {
			out.Pix[i] = 255
		}
	}
	return out
}

func ellipse(radius int) raster.StructuringElement {
	return raster.EllipseElement(radius)
}

// Kind tags which converter variant a Converter value holds, replacing
// the original's REGISTER_CONVERTER class-registry with a closed Go sum
// type per this module's design notes.
type Kind int

const (
	KindEmpty Kind = iota
	KindEdge
	KindFill
	KindLineAndFill
	KindOutline
)

// EdgeParams configures the Edge converter.
type EdgeParams struct {
	MinSize       int
	OpeningRadius int
}

// FillParams configures the Fill converter, including its canny_mode,
// color_edges, and back_outline side channels.
type FillParams struct {
	MinSize       int
	OpeningRadius int
	ClosingRadius int
	// ErosionRadius: positive dilates the filled mask before recording
	// it, negative erodes it. This sign convention is preserved
	// literally from FillConverter::apply rather than split into two
	// separate knobs, per this module's design notes.
	ErosionRadius int
	OutlineMode   bool
	CannyMode     string // color name to route Canny edges into, "" disables
	LowThreshold  int
	HighThreshold int
	ColorEdges    string // color name to route group-map edges into, "" disables
	BackOutline   string // color name to route the inverse-of-white outline into, "" disables
}

// LineAndFillParams configures the LineAndFill converter.
type LineAndFillParams struct {
	Radius        int
	MinSize       int
	OpeningRadius int
	OutlineMode   bool
}

// OutlineParams configures the Outline converter.
type OutlineParams struct {
	MinSize       int
	OpeningRadius int
}

// Converter is the closed tagged variant replacing the original's
// per-class converter registry: exactly one of the Kind-matching fields
// is meaningful for a given value.
type Converter struct {
	Kind        Kind
	Edge        EdgeParams
	Fill        FillParams
	LineAndFill LineAndFillParams
	Outline     OutlineParams
}

// Apply runs the converter over every color id in cm, restricted to
// pixels where modeMap equals mode, accumulating results into out.
func (c Converter) Apply(original *raster.BGR, cm vectordata.ColorMap, mm vectordata.ModeMap, mode int, out *MaskSet) error {
	if original == nil || original.Width != cm.Width || original.Height != cm.Height {
		return fmt.Errorf("converter: original image size mismatch: %w", perr.InvalidInput)
	}
	switch c.Kind {
	case KindEmpty:
		return nil
	case KindEdge:
		return applyEdge(c.Edge, cm, mm, mode, out)
	case KindFill:
		return applyFill(original, c.Fill, cm, mm, mode, out)
	case KindLineAndFill:
		return applyLineAndFill(c.LineAndFill, cm, mm, mode, out)
	case KindOutline:
		return applyOutline(c.Outline, cm, mm, mode, out)
	default:
		return fmt.Errorf("converter: unknown kind %d: %w", c.Kind, perr.InvalidConfiguration)
	}
}

// Chain runs an ordered list of Converters over every color in cm,
// matching §5's "within a color, converters are applied in insertion
// order" scheduling rule.
type Chain []Converter

// Run applies every converter in the chain, in order, for the given
// mode, accumulating into out.
func (ch Chain) Run(original *raster.BGR, cm vectordata.ColorMap, mm vectordata.ModeMap, mode int, out *MaskSet) error {
	for _, c := range ch {
		if err := c.Apply(original, cm, mm, mode, out); err != nil {
			return err
		}
	}
	return nil
}

func cleanedMask(cm vectordata.ColorMap, id, minSize, openingRadius int) *raster.Gray {
	mask := colorMaskOf(cm, id)
	mask = raster.RemoveSmall(mask, minSize)
	if openingRadius > 0 {
		mask = raster.Open(mask, ellipse(openingRadius))
	}
	return mask
}

func applyEdge(p EdgeParams, cm vectordata.ColorMap, mm vectordata.ModeMap, mode int, out *MaskSet) error {
	mm2 := modeMask(mm, mode)
	for id, name := range cm.Names {
		if name == "white" {
			continue
		}
		mask := cleanedMask(cm, id, p.MinSize, p.OpeningRadius)
		out.orEdge(id, mask.And(mm2))
	}
	return nil
}

func applyOutline(p OutlineParams, cm vectordata.ColorMap, mm vectordata.ModeMap, mode int, out *MaskSet) error {
	mm2 := modeMask(mm, mode)
	for id, name := range cm.Names {
		if name == "white" {
			continue
		}
		mask := cleanedMask(cm, id, p.MinSize, p.OpeningRadius)
		out.orOutline(id, mask.And(mm2))
	}
	return nil
}

func applyLineAndFill(p LineAndFillParams, cm vectordata.ColorMap, mm vectordata.ModeMap, mode int, out *MaskSet) error {
	mm2 := modeMask(mm, mode)
	for id, name := range cm.Names {
		if name == "white" {
			continue
		}
		mask := cleanedMask(cm, id, p.MinSize, p.OpeningRadius)
		restricted := mask.And(mm2)
		lines, filled := ClassifyPixels(restricted, p.Radius)
		out.orEdge(id, lines)
		out.orFilled(id, filled)
		if p.OutlineMode {
			out.orOutline(id, filled)
		}
	}
	return nil
}

func applyFill(original *raster.BGR, p FillParams, cm vectordata.ColorMap, mm vectordata.ModeMap, mode int, out *MaskSet) error {
	mm2 := modeMask(mm, mode)
	var backOutlineMask *raster.Gray

	for id, name := range cm.Names {
		mask := cleanedMask(cm, id, p.MinSize, p.OpeningRadius)
		colMask := out.FilledMasks[id]
		restricted := mask.And(mm2)
		if colMask != nil {
			colMask = colMask.Or(restricted)
		} else {
			colMask = restricted
		}
		if p.ClosingRadius > 0 {
			colMask = raster.Close(colMask, ellipse(p.ClosingRadius))
		}
		uneroded := colMask.Clone()
		switch {
		case p.ErosionRadius > 0:
			colMask = raster.Dilate(colMask, ellipse(p.ErosionRadius))
		case p.ErosionRadius < 0:
			colMask = raster.Erode(colMask, ellipse(-p.ErosionRadius))
		}

		if name == "white" {
			if p.BackOutline != "" {
				whiteMask := colorMaskOf(cm, id)
				backOutlineMask = whiteMask.Not().And(mm2)
			}
			continue
		}

		out.FilledMasks[id] = colMask
		if p.OutlineMode {
			out.orOutline(id, uneroded.And(mm2))
		}
	}

	if p.BackOutline != "" && backOutlineMask != nil {
		for id, name := range cm.Names {
			if name == p.BackOutline {
				out.orOutline(id, backOutlineMask)
			}
		}
	}
	if p.CannyMode != "" {
		cannyMask := raster.Canny(raster.ToGray(original), float64(p.LowThreshold), float64(p.HighThreshold))
		for id, name := range cm.Names {
			if name == p.CannyMode {
				out.orEdge(id, cannyMask.And(mm2))
			}
		}
	}
	if p.ColorEdges != "" {
		edgeMask := ExtractEdgeFromGroupMap(cm)
		for id, name := range cm.Names {
			if name == p.ColorEdges {
				out.orEdge(id, edgeMask.And(mm2))
			}
		}
	}
	return nil
}

// ExtractEdgeFromGroupMap returns the boundary between distinct
// ColorMap regions: dilate and erode the raw id-plane by a 2x2 kernel
// and mark every pixel where they differ. Grounded on
// extractEdgeFromGroupMap.
func ExtractEdgeFromGroupMap(cm vectordata.ColorMap) *raster.Gray {
	ids := raster.NewGray(cm.Width, cm.Height)
	for i, v := range cm.IDs {
		ids.Pix[i] = uint8(v)
	}
	se := raster.RectElement(0)
	se.Offsets = append(se.Offsets, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1})
	dilated := raster.Dilate(ids, se)
	eroded := raster.Erode(ids, se)

	out := raster.NewGray(cm.Width, cm.Height)
	for i := range out.Pix {
		d, e := int(dilated.Pix[i]), int(eroded.Pix[i])
		diff := d - e
		if diff < 0 {
			diff = -diff
		}
		if diff > 0 {
			out.Pix[i] = 255
		}
	}
	return out
}
