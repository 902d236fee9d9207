package vectorize

import (
	"math"

	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

// RemovePolylineJitter removes single-vertex "jitter" spikes: a vertex
// whose turn direction alternates sign from both its neighbors (i.e. it
// is a short zig-zag), and whose two adjacent edges are both shorter
// than epsilon, is dropped. Closed and open polylines are handled
// separately because closed polylines wrap their neighbor index and
// never need special first/last-vertex casing, while open polylines do.
// Grounded on removePolylineJitter.
func RemovePolylineJitter(points []vectordata.Point, closed bool, epsilon float64) []vectordata.Point {
	if closed {
		return removeJitterClosed(points, epsilon)
	}
	return removeJitterOpen(points, epsilon)
}

func cross(v1, v2 vectordata.Point) float64 {
	return v1.X*v2.Y - v1.Y*v2.X
}

func sub(a, b vectordata.Point) vectordata.Point {
	return vectordata.Point{X: a.X - b.X, Y: a.Y - b.Y}
}

func norm(p vectordata.Point) float64 {
	return math.Hypot(p.X, p.Y)
}

func removeJitterClosed(points []vectordata.Point, epsilon float64) []vectordata.Point {
	n := len(points)
	if n < 5 {
		return points
	}
	clockwise := make([]bool, n)
	for i := 0; i < n; i++ {
		v1 := sub(points[i], points[(i-1+n)%n])
		v2 := sub(points[(i+1)%n], points[i])
		clockwise[i] = cross(v1, v2) < 0
	}

	toRemove := make([]bool, n)
	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		next := (i + 1) % n
		if clockwise[prev] != clockwise[i] && clockwise[i] != clockwise[next] {
			dist0 := norm(sub(points[i], points[prev]))
			dist1 := norm(sub(points[next], points[i]))
			if dist0 < epsilon && dist1 < epsilon {
				toRemove[i] = true
			}
		}
	}

	var out []vectordata.Point
	for i, p := range points {
		if !toRemove[i] {
			out = append(out, p)
		}
	}
	return out
}

func removeJitterOpen(points []vectordata.Point, epsilon float64) []vectordata.Point {
	n := len(points)
	if n < 4 {
		return points
	}
	clockwise := make([]bool, n-2)
	for i := 1; i < n-1; i++ {
		v1 := sub(points[i], points[i-1])
		v2 := sub(points[i+1], points[i])
		clockwise[i-1] = cross(v1, v2) < 0
	}

	toRemove := make([]bool, n)
	for i := 2; i < n-2; i++ {
		if clockwise[i-2] != clockwise[i-1] && clockwise[i-1] != clockwise[i] {
			dist0 := norm(sub(points[i], points[i-1]))
			dist1 := norm(sub(points[i+1], points[i]))
			if dist0 < epsilon && dist1 < epsilon {
				toRemove[i] = true
			}
		}
	}
	if clockwise[0] != clockwise[1] {
		dist0 := norm(sub(points[1], points[0]))
		dist1 := norm(sub(points[2], points[1]))
		if dist0 < epsilon && dist1 < epsilon {
			toRemove[1] = true
		}
	}
	if clockwise[n-3] != clockwise[n-4] {
		dist0 := norm(sub(points[n-2], points[n-3]))
		dist1 := norm(sub(points[n-1], points[n-2]))
		if dist0 < epsilon && dist1 < epsilon {
			toRemove[n-2] = true
		}
	}

	var out []vectordata.Point
	for i, p := range points {
		if !toRemove[i] {
			out = append(out, p)
		}
	}
	return out
}

// RemovePolylinesJitter applies RemovePolylineJitter to every polyline.
func RemovePolylinesJitter(polylines [][]vectordata.Point, closed bool, epsilon float64) [][]vectordata.Point {
	out := make([][]vectordata.Point, len(polylines))
	for i, pl := range polylines {
		out[i] = RemovePolylineJitter(pl, closed, epsilon)
	}
	return out
}

// PolylineLength returns the total edge length of points, including the
// closing edge back to the first point if closed is true.
func PolylineLength(points []vectordata.Point, closed bool) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += norm(sub(points[i], points[i-1]))
	}
	if closed && len(points) > 0 {
		total += norm(sub(points[0], points[len(points)-1]))
	}
	return total
}

// RemoveShortPolylines filters out every polyline shorter than
// minLength.
func RemoveShortPolylines(polylines [][]vectordata.Point, minLength float64, closed bool) [][]vectordata.Point {
	var out [][]vectordata.Point
	for _, pl := range polylines {
		if PolylineLength(pl, closed) >= minLength {
			out = append(out, pl)
		}
	}
	return out
}
