package vectorize

import (
	"testing"

	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

func TestRemovePolylineJitterOpenRemovesShortZigzag(t *testing.T) {
	// A straight line with a small zig-zag (0.3 px up, then down) at indices 2 and 3.
	pts := []vectordata.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0.3}, {X: 2.5, Y: -0.3}, {X: 3, Y: 0}, {X: 4, Y: 0},
	}
	out := RemovePolylineJitter(pts, false, 2.0)
	if len(out) >= len(pts) {
		t.Errorf("expected jitter removal to shorten the polyline, got %d of %d points", len(out), len(pts))
	}
}

func TestRemovePolylineJitterShortPolylinesUntouched(t *testing.T) {
	pts := []vectordata.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	out := RemovePolylineJitter(pts, false, 1.0)
	if len(out) != len(pts) {
		t.Errorf("expected polylines shorter than 4 points to pass through unchanged, got %d of %d", len(out), len(pts))
	}
}

func TestRemovePolylineJitterClosedShortUntouched(t *testing.T) {
	pts := []vectordata.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	out := RemovePolylineJitter(pts, true, 1.0)
	if len(out) != len(pts) {
		t.Errorf("expected closed polylines shorter than 5 points to pass through unchanged, got %d of %d", len(out), len(pts))
	}
}

func TestPolylineLengthOpenVsClosed(t *testing.T) {
	pts := []vectordata.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}}
	open := PolylineLength(pts, false)
	closed := PolylineLength(pts, true)
	if open != 7 {
		t.Errorf("expected open length 7, got %v", open)
	}
	if closed <= open {
		t.Errorf("expected closed length to exceed open length, got closed=%v open=%v", closed, open)
	}
}

func TestRemoveShortPolylinesFiltersBelowThreshold(t *testing.T) {
	in := [][]vectordata.Point{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},   // length 1
		{{X: 0, Y: 0}, {X: 10, Y: 0}}, // length 10
	}
	out := RemoveShortPolylines(in, 5, false)
	if len(out) != 1 {
		t.Fatalf("expected 1 polyline to survive the length threshold, got %d", len(out))
	}
	if out[0][1].X != 10 {
		t.Errorf("expected the long polyline to survive, got %+v", out[0])
	}
}
