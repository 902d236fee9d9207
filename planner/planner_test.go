package planner

import (
	"math"
	"testing"

	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

func squareData(w, h int) vectordata.VectorData {
	return vectordata.VectorData{
		Width:  w,
		Height: h,
		Polylines: map[int][]vectordata.Polyline{
			0: {{Points: []vectordata.Point{{X: 0, Y: 0}, {X: float64(w), Y: float64(h)}}}},
		},
		ColorNames:  map[int]string{0: "black"},
		ColorValues: map[int][3]uint8{0: {0, 0, 0}},
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cases := []Config{
		{PaperWidthMM: 0, PaperHeightMM: 100, SizePercent: 100},
		{PaperWidthMM: 100, PaperHeightMM: 100, MarginMM: 60, SizePercent: 100},
		{PaperWidthMM: 100, PaperHeightMM: 100, SizePercent: 0},
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected error, got nil", i)
		}
	}
}

func TestPlanFitsWithinDrawableArea(t *testing.T) {
	data := squareData(100, 100)
	cfg := Config{PaperWidthMM: 200, PaperHeightMM: 300, MarginMM: 10, SizePercent: 100}
	out, err := Plan(data, cfg)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	minX, minY, maxX, maxY := out.BoundingBox()
	if minX < float64(cfg.MarginMM)-1e-6 || minY < float64(cfg.MarginMM)-1e-6 {
		t.Errorf("geometry escapes top/left margin: min=(%v,%v)", minX, minY)
	}
	if maxX > float64(cfg.PaperWidthMM-cfg.MarginMM)+1e-6 || maxY > float64(cfg.PaperHeightMM-cfg.MarginMM)+1e-6 {
		t.Errorf("geometry escapes bottom/right margin: max=(%v,%v)", maxX, maxY)
	}
}

func TestPlanSizePercentShrinksOutput(t *testing.T) {
	data := squareData(100, 100)
	cfg100 := Config{PaperWidthMM: 200, PaperHeightMM: 200, MarginMM: 0, SizePercent: 100}
	cfg50 := Config{PaperWidthMM: 200, PaperHeightMM: 200, MarginMM: 0, SizePercent: 50}

	full, err := Plan(data, cfg100)
	if err != nil {
		t.Fatalf("Plan(100%%) error: %v", err)
	}
	half, err := Plan(data, cfg50)
	if err != nil {
		t.Fatalf("Plan(50%%) error: %v", err)
	}

	fMinX, fMinY, fMaxX, fMaxY := full.BoundingBox()
	hMinX, hMinY, hMaxX, hMaxY := half.BoundingBox()

	fullDiag := math.Hypot(fMaxX-fMinX, fMaxY-fMinY)
	halfDiag := math.Hypot(hMaxX-hMinX, hMaxY-hMinY)
	if halfDiag >= fullDiag {
		t.Errorf("expected 50%% plan to be smaller than 100%%: half=%v full=%v", halfDiag, fullDiag)
	}
}

func TestAddBorderInsertsRectContour(t *testing.T) {
	data := squareData(100, 100)
	cfg := Config{PaperWidthMM: 200, PaperHeightMM: 200, MarginMM: 10, SizePercent: 100, AddBorder: true}
	out, err := Plan(data, cfg)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(out.Contours[0]) == 0 {
		t.Fatalf("expected a border contour to be added")
	}
}

func TestPlanDoubleModeMergesTwoCopies(t *testing.T) {
	data := squareData(50, 50)
	cfg := Config{PaperWidthMM: 200, PaperHeightMM: 200, MarginMM: 10, SizePercent: 100, DoubleMode: true}
	out, err := Plan(data, cfg)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(out.Polylines[0]) != 2 {
		t.Fatalf("expected double mode to produce 2 copies of the source polyline, got %d", len(out.Polylines[0]))
	}
}
