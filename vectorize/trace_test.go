package vectorize

import (
	"testing"

	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
)

func TestExtractPolylinesTracesStraightLine(t *testing.T) {
	mask := raster.NewGray(10, 5)
	for x := 1; x < 9; x++ {
		mask.Set(x, 2, 255)
	}
	polys := ExtractPolylines(mask)
	if len(polys) != 1 {
		t.Fatalf("expected 1 traced polyline, got %d", len(polys))
	}
	if len(polys[0]) != 8 {
		t.Fatalf("expected 8-pixel trace, got %d points", len(polys[0]))
	}
}

func TestExtractPolylinesEmptyMaskYieldsNothing(t *testing.T) {
	mask := raster.NewGray(5, 5)
	polys := ExtractPolylines(mask)
	if len(polys) != 0 {
		t.Fatalf("expected no polylines from an empty mask, got %d", len(polys))
	}
}

func TestPriorityRowNoHistoryIsRowZero(t *testing.T) {
	if got := priorityRow(-1, -1); got != 0 {
		t.Errorf("expected row 0 with no history, got %d", got)
	}
}

func TestPriorityRowSameDirectionTwiceIsRowPlusOne(t *testing.T) {
	if got := priorityRow(3, 3); got != 4 {
		t.Errorf("expected row 4 for repeated direction 3, got %d", got)
	}
}

// TestExtractPolylinesLeaksDirectionHistoryAcrossHalfTraces pins the
// original's last_2_dir scoping: direction history from the seed's first
// half-trace (k=0) must carry into its second half-trace (k=1), not reset
// to "no history". The seed traces east three times (to (6,5), (7,5) and
// (8,5); (8,5) keeps k=0 from turning into (6,6), which also touches
// (7,5)), leaving last0=last1=0 (heading "east") when k=0 dead-ends. That
// leaked state selects directionPriority row 1 for k=1's first step, which
// ranks southeast (6,6) ahead of southwest (4,6) when due south is
// unavailable — a fresh (-1,-1) start would use row 0, which ranks
// southwest first. With southeast taken, the first polyline is
// (8,5),(7,5),(6,5),(5,5),(6,6) plus (7,5) re-attached at its tail, and
// the decoy (4,6) is left for a second seed; a per-k reset would swap
// which of (6,6) and (4,6) the first polyline holds.
func TestExtractPolylinesLeaksDirectionHistoryAcrossHalfTraces(t *testing.T) {
	mask := raster.NewGray(12, 12)
	mask.Set(5, 5, 255) // seed
	mask.Set(6, 5, 255) // k=0 first step (east)
	mask.Set(7, 5, 255) // k=0 second step (east)
	mask.Set(8, 5, 255) // k=0 third step (east), then dead-ends
	mask.Set(4, 6, 255) // southwest decoy: picked only if history resets
	mask.Set(6, 6, 255) // southeast: picked only if last0=last1=0 leaks in

	polys := ExtractPolylines(mask)
	if len(polys) != 2 {
		t.Fatalf("expected 2 traced polylines (the seed's trace, then the decoy joined to the seed), got %d", len(polys))
	}
	poly := polys[0]
	if len(poly) != 6 {
		t.Fatalf("expected a 6-point first trace (leaked history selects the SE neighbor, then (7,5) re-attaches at the tail), got %d points: %v", len(poly), poly)
	}
	if poly[4] != (intPoint{6, 6}) {
		t.Errorf("expected k=1's first step to take the southeast neighbor (6,6), got %v", poly)
	}
	for _, p := range poly {
		if p == (intPoint{4, 6}) {
			t.Errorf("southwest decoy (4,6) should only be reached if direction history incorrectly resets between half-traces, got %v", poly)
		}
	}
}

func TestExtractPolylinesTracesLShape(t *testing.T) {
	mask := raster.NewGray(10, 10)
	for x := 1; x < 6; x++ {
		mask.Set(x, 1, 255)
	}
	for y := 1; y < 6; y++ {
		mask.Set(5, y, 255)
	}
	polys := ExtractPolylines(mask)
	if len(polys) != 1 {
		t.Fatalf("expected a single connected L-shaped trace, got %d polylines", len(polys))
	}
}
