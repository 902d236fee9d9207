// Package vectordata defines the shared geometry and color types that
// flow through the colormap, converter, vectorize, planner, and optimize
// stages.
package vectordata

import "math"

// Point is a single 2-D coordinate in the pipeline's working space
// (pixel units until planner.Plan rescales to paper millimeters).
type Point struct {
	X, Y float64
}

// Tolerance is the single shared epsilon used for all float comparisons
// on Point values throughout this module, replacing the original C++
// implementation's accidental use of == on floats.
const Tolerance = 1e-4

// Equal reports whether p and q are within Tolerance of each other on
// both axes.
func (p Point) Equal(q Point) bool {
	dx := p.X - q.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - q.Y
	if dy < 0 {
		dy = -dy
	}
	return dx < Tolerance && dy < Tolerance
}

// Polyline is an ordered sequence of points. Closed adds the edge from
// the last point back to the first (Length and Render draw it). The path
// optimizer does not read Closed: it receives only the points and may
// reverse any polyline.
type Polyline struct {
	Points []Point
	Closed bool
}

// Length returns the polyline's total edge length.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl.Points); i++ {
		total += distance(pl.Points[i-1], pl.Points[i])
	}
	if pl.Closed && len(pl.Points) > 1 {
		total += distance(pl.Points[len(pl.Points)-1], pl.Points[0])
	}
	return total
}

func distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Contour is a closed boundary extracted from a filled mask. Contours
// are never reversed or reclassified as open by the optimizer.
type Contour struct {
	Points []Point
}

// HatchLine is a single straight-line segment produced by hatch-fill
// sampling; hatch lines are never simplified or merged across colors.
type HatchLine struct {
	A, B Point
}

// VectorData is the working geometry set threaded through the
// converter, vectorize, and planner stages, keyed per color id.
type VectorData struct {
	Width, Height int

	Polylines  map[int][]Polyline
	Contours   map[int][]Contour
	HatchLines map[int][]HatchLine

	ColorNames  map[int]string
	ColorValues map[int][3]uint8 // BGR
}

// NewVectorData returns an empty VectorData sized width x height.
func NewVectorData(width, height int) VectorData {
	return VectorData{
		Width:       width,
		Height:      height,
		Polylines:   make(map[int][]Polyline),
		Contours:    make(map[int][]Contour),
		HatchLines:  make(map[int][]HatchLine),
		ColorNames:  make(map[int]string),
		ColorValues: make(map[int][3]uint8),
	}
}

// Clone returns a deep copy, so a holder of the copy never observes a
// later mutation of v. The cmd/penplot stages clone their image input
// before submission but pass VectorData as is.
func (v VectorData) Clone() VectorData {
	out := NewVectorData(v.Width, v.Height)
	for id, pls := range v.Polylines {
		cp := make([]Polyline, len(pls))
		for i, pl := range pls {
			pts := make([]Point, len(pl.Points))
			copy(pts, pl.Points)
			cp[i] = Polyline{Points: pts, Closed: pl.Closed}
		}
		out.Polylines[id] = cp
	}
	for id, cs := range v.Contours {
		cp := make([]Contour, len(cs))
		for i, c := range cs {
			pts := make([]Point, len(c.Points))
			copy(pts, c.Points)
			cp[i] = Contour{Points: pts}
		}
		out.Contours[id] = cp
	}
	for id, hs := range v.HatchLines {
		cp := make([]HatchLine, len(hs))
		copy(cp, hs)
		out.HatchLines[id] = cp
	}
	for id, n := range v.ColorNames {
		out.ColorNames[id] = n
	}
	for id, c := range v.ColorValues {
		out.ColorValues[id] = c
	}
	return out
}

// Merge adds src's geometry into v, appending polylines/contours/hatch
// lines per color id. Color names and values are only filled in where v
// does not already have an entry for that id, matching the original's
// mergeVectorData semantics.
func (v *VectorData) Merge(src VectorData) {
	for id, pls := range src.Polylines {
		v.Polylines[id] = append(v.Polylines[id], pls...)
	}
	for id, cs := range src.Contours {
		v.Contours[id] = append(v.Contours[id], cs...)
	}
	for id, hs := range src.HatchLines {
		v.HatchLines[id] = append(v.HatchLines[id], hs...)
	}
	for id, n := range src.ColorNames {
		if _, ok := v.ColorNames[id]; !ok {
			v.ColorNames[id] = n
		}
	}
	for id, c := range src.ColorValues {
		if _, ok := v.ColorValues[id]; !ok {
			v.ColorValues[id] = c
		}
	}
}

// BoundingBox computes the bounding rectangle across all polylines,
// contours, and hatch lines in v. If v is entirely empty, it returns the
// zero rectangle (0,0)-(0,0), matching getRectVectorData's fallback.
func (v VectorData) BoundingBox() (minX, minY, maxX, maxY float64) {
	first := true
	consider := func(p Point) {
		if first {
			minX, maxX = p.X, p.X
			minY, maxY = p.Y, p.Y
			first = false
			return
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	for _, pls := range v.Polylines {
		for _, pl := range pls {
			for _, p := range pl.Points {
				consider(p)
			}
		}
	}
	for _, cs := range v.Contours {
		for _, c := range cs {
			for _, p := range c.Points {
				consider(p)
			}
		}
	}
	for _, hs := range v.HatchLines {
		for _, h := range hs {
			consider(h.A)
			consider(h.B)
		}
	}
	if first {
		return 0, 0, 0, 0
	}
	return
}
