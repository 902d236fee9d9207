package vectorize

import (
	"math"

	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

// SubdividePolyline inserts N-1 evenly spaced midpoints into every edge
// of polyline (including the closing edge, if closed). For open
// polylines the final vertex is always re-emitted; for closed polylines
// it is not, since the subdivided closing edge already reaches back to
// the first vertex. Grounded on subdividePolyline.
func SubdividePolyline(points []vectordata.Point, n int, closed bool) []vectordata.Point {
	if len(points) < 2 || n < 1 {
		return points
	}
	var out []vectordata.Point
	for i := 0; i < len(points)-1; i++ {
		p1, p2 := points[i], points[i+1]
		for j := 0; j < n; j++ {
			t := float64(j) / float64(n)
			out = append(out, lerp(p1, p2, t))
		}
	}
	if closed {
		p1, p2 := points[len(points)-1], points[0]
		for j := 0; j < n; j++ {
			t := float64(j) / float64(n)
			out = append(out, lerp(p1, p2, t))
		}
	} else {
		out = append(out, points[len(points)-1])
	}
	return out
}

func lerp(a, b vectordata.Point, t float64) vectordata.Point {
	return vectordata.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}

// SubdividePolylines applies SubdividePolyline to every polyline.
func SubdividePolylines(polylines [][]vectordata.Point, n int, closed bool) [][]vectordata.Point {
	out := make([][]vectordata.Point, len(polylines))
	for i, pl := range polylines {
		out[i] = SubdividePolyline(pl, n, closed)
	}
	return out
}

// douglasPeucker simplifies points (assumed open) to within epsilon,
// keeping the first and last point always.
func douglasPeucker(points []vectordata.Point, epsilon float64) []vectordata.Point {
	if len(points) < 3 {
		return points
	}
	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < len(points)-1; i++ {
		d := perpDistance(points[i], points[0], points[len(points)-1])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist <= epsilon {
		return []vectordata.Point{points[0], points[len(points)-1]}
	}
	left := douglasPeucker(points[:maxIdx+1], epsilon)
	right := douglasPeucker(points[maxIdx:], epsilon)
	return append(left[:len(left)-1], right...)
}

func perpDistance(p, a, b vectordata.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 && dy == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	num := math.Abs(dy*p.X - dx*p.Y + b.X*a.Y - b.Y*a.X)
	den := math.Hypot(dx, dy)
	return num / den
}

// SimplifyPolylines runs Douglas-Peucker over every polyline in
// contours, at the given epsilon. With closed set, each vertex list is
// simplified as given, as one open chain. With closed unset, a polyline
// whose first and last points coincide has its repeated last point
// dropped, is simplified as an open chain, and is closed again so the
// result still begins and ends at the same point;
// 2-point polylines bypass simplification entirely. Grounded on
// simplifyPolylines.
func SimplifyPolylines(contours [][]vectordata.Point, epsilon float64, closed bool) [][]vectordata.Point {
	var simplified [][]vectordata.Point
	for _, c := range contours {
		switch {
		case len(c) < 2:
			continue
		case len(c) == 2:
			simplified = append(simplified, c)
			continue
		}

		var approx []vectordata.Point
		if closed {
			approx = douglasPeucker(c, epsilon)
		} else if c[0].Equal(c[len(c)-1]) {
			open := c[:len(c)-1]
			ap := douglasPeucker(open, epsilon)
			ap = append(ap, ap[0])
			approx = ap
		} else {
			approx = douglasPeucker(c, epsilon)
		}
		simplified = append(simplified, approx)
	}
	return simplified
}

// TriangleArea returns the area of the triangle formed by three points,
// the importance metric Visvalingam-Whyatt simplification minimizes.
func TriangleArea(p1, p2, p3 vectordata.Point) float64 {
	return math.Abs(p1.X*(p2.Y-p3.Y)+p2.X*(p3.Y-p1.Y)+p3.X*(p1.Y-p2.Y)) / 2
}

// SimplifyPolylineVW runs Visvalingam-Whyatt simplification: repeatedly
// removes the vertex contributing the smallest triangle area with its
// neighbors until the smallest remaining area exceeds minAreaTolerance.
// Offered as an equivalent alternative to Douglas-Peucker per the
// original's commented-out simplifyPolylinesVW call; SimplifyVectorData
// uses Douglas-Peucker by default, matching the original's active code
// path.
func SimplifyPolylineVW(points []vectordata.Point, minAreaTolerance float64) []vectordata.Point {
	if len(points) <= 2 {
		return points
	}
	type node struct {
		pt         vectordata.Point
		prev, next int
		alive      bool
		importance float64
	}
	nodes := make([]node, len(points))
	for i, p := range points {
		nodes[i] = node{pt: p, prev: i - 1, next: i + 1, alive: true}
	}
	nodes[0].next = 1
	nodes[len(nodes)-1].prev = len(nodes) - 2

	recalc := func(i int) {
		n := &nodes[i]
		if n.prev < 0 || n.next >= len(nodes) {
			n.importance = math.Inf(1)
			return
		}
		n.importance = TriangleArea(nodes[n.prev].pt, n.pt, nodes[n.next].pt)
	}
	for i := 1; i < len(nodes)-1; i++ {
		recalc(i)
	}

	for {
		minIdx := -1
		minArea := math.Inf(1)
		for i := 1; i < len(nodes)-1; i++ {
			if nodes[i].alive && nodes[i].importance < minArea {
				minArea = nodes[i].importance
				minIdx = i
			}
		}
		if minIdx < 0 || minArea >= minAreaTolerance {
			break
		}
		p, n := nodes[minIdx].prev, nodes[minIdx].next
		nodes[minIdx].alive = false
		nodes[p].next = n
		nodes[n].prev = p
		if p != 0 && nodes[p].prev >= 0 {
			recalc(p)
		}
		if n != len(nodes)-1 && nodes[n].next < len(nodes) {
			recalc(n)
		}
	}

	var out []vectordata.Point
	for i := range nodes {
		if nodes[i].alive {
			out = append(out, nodes[i].pt)
		}
	}
	return out
}

// SimplifyPolylinesVW applies SimplifyPolylineVW to every polyline.
func SimplifyPolylinesVW(polylines [][]vectordata.Point, minAreaTolerance float64) [][]vectordata.Point {
	out := make([][]vectordata.Point, len(polylines))
	for i, pl := range polylines {
		out[i] = SimplifyPolylineVW(pl, minAreaTolerance)
	}
	return out
}

// simplificationEpsilon is the Douglas-Peucker tolerance
// SimplifyVectorData uses, matching the original's final pass.
const simplificationEpsilon = 0.86

// SimplifyVectorData applies subdivide-then-Douglas-Peucker to every
// color's polylines and contours; hatch lines are left untouched, as in
// the original's simplifyVectorData.
func SimplifyVectorData(data vectordata.VectorData) vectordata.VectorData {
	out := vectordata.NewVectorData(data.Width, data.Height)
	for id, pls := range data.Polylines {
		var pts [][]vectordata.Point
		for _, pl := range pls {
			pts = append(pts, pl.Points)
		}
		simplified := SimplifyPolylines(SubdividePolylines(pts, 2, false), simplificationEpsilon, false)
		for _, s := range simplified {
			out.Polylines[id] = append(out.Polylines[id], vectordata.Polyline{Points: s})
		}
	}
	for id, cs := range data.Contours {
		var pts [][]vectordata.Point
		for _, c := range cs {
			pts = append(pts, c.Points)
		}
		simplified := SimplifyPolylines(SubdividePolylines(pts, 2, true), simplificationEpsilon, true)
		for _, s := range simplified {
			out.Contours[id] = append(out.Contours[id], vectordata.Contour{Points: s})
		}
	}
	for id, hs := range data.HatchLines {
		out.HatchLines[id] = append(out.HatchLines[id], hs...)
	}
	for id, n := range data.ColorNames {
		out.ColorNames[id] = n
	}
	for id, c := range data.ColorValues {
		out.ColorValues[id] = c
	}
	return out
}
