package vectorize

import (
	"testing"

	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

func p(x, y float64) vectordata.Point { return vectordata.Point{X: x, Y: y} }

func TestMergePolylinesJoinsEndToStart(t *testing.T) {
	in := [][]vectordata.Point{
		{p(0, 0), p(1, 0)},
		{p(1, 0), p(2, 0)},
	}
	out, merged := MergePolylines(in)
	if !merged {
		t.Fatalf("expected a merge to happen")
	}
	if len(out) != 1 || len(out[0]) != 3 {
		t.Fatalf("expected 1 merged 3-point polyline, got %+v", out)
	}
}

func TestMergePolylinesJoinsEndToEndViaReverse(t *testing.T) {
	in := [][]vectordata.Point{
		{p(0, 0), p(1, 0)},
		{p(2, 0), p(1, 0)},
	}
	out, merged := MergePolylines(in)
	if !merged {
		t.Fatalf("expected a merge to happen (end-to-end reversal case)")
	}
	if len(out) != 1 || len(out[0]) != 3 {
		t.Fatalf("expected 1 merged 3-point polyline, got %+v", out)
	}
}

func TestMergePolylinesNoSharedEndpointsNoMerge(t *testing.T) {
	in := [][]vectordata.Point{
		{p(0, 0), p(1, 0)},
		{p(5, 5), p(6, 6)},
	}
	out, merged := MergePolylines(in)
	if merged {
		t.Fatalf("expected no merge for disjoint polylines")
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 polylines unchanged, got %d", len(out))
	}
}

func TestClassifyLinesMovesClosedLoopToContours(t *testing.T) {
	lines := [][]vectordata.Point{
		{p(0, 0), p(1, 0), p(1, 1), p(0, 0)},
		{p(5, 5), p(6, 6)},
	}
	remaining, contours := ClassifyLines(lines, nil)
	if len(contours) != 1 || len(contours[0]) != 3 {
		t.Fatalf("expected closed loop to become a 3-point contour (duplicate closing vertex dropped), got %+v", contours)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected the open line to remain, got %d", len(remaining))
	}
}

func TestSpliceContoursInsertsOpenPolylineIntoContour(t *testing.T) {
	contour := []vectordata.Point{p(0, 0), p(10, 0), p(10, 10), p(0, 10)}
	polyline := []vectordata.Point{p(0, 0), p(-5, -5)}

	outPolylines, outContours, mergedAny := SpliceContours([][]vectordata.Point{polyline}, [][]vectordata.Point{contour})
	if !mergedAny {
		t.Fatalf("expected the open polyline to splice into the contour")
	}
	if len(outContours) != 0 {
		t.Fatalf("expected the contour to be consumed by splicing, got %d remaining", len(outContours))
	}
	if len(outPolylines) != 1 {
		t.Fatalf("expected 1 spliced polyline, got %d", len(outPolylines))
	}
}

func TestOptimizeVectorDataMergesAndClassifies(t *testing.T) {
	polylines := [][]vectordata.Point{
		{p(0, 0), p(1, 0)},
		{p(1, 0), p(1, 1)},
		{p(1, 1), p(0, 1)},
		{p(0, 1), p(0, 0)},
	}
	outPolylines, outContours := OptimizeVectorData(polylines, nil)
	if len(outContours) != 1 {
		t.Fatalf("expected the 4 chained segments to merge into 1 closed contour, got %d contours and %d polylines", len(outContours), len(outPolylines))
	}
}
