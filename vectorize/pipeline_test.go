package vectorize

import (
	"testing"

	"github.com/hssscienceclubpr/pen-plotter-2025/converter"
	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
)

func TestResolveSubstituteFallsBackWhenNoMatch(t *testing.T) {
	names := map[int]string{0: "black", 1: "red"}
	if got := resolveSubstitute(names, 0, ""); got != 0 {
		t.Errorf("expected empty substitute to return colorID unchanged, got %d", got)
	}
	if got := resolveSubstitute(names, 0, "nonexistent"); got != 0 {
		t.Errorf("expected unmatched substitute name to fall back to colorID, got %d", got)
	}
	if got := resolveSubstitute(names, 0, "red"); got != 1 {
		t.Errorf("expected substitute 'red' to resolve to id 1, got %d", got)
	}
}

func TestSettingForFallsBackToWildcard(t *testing.T) {
	settings := map[string]HatchLineSetting{
		"_":   {Mode: "x"},
		"red": {Mode: "|"},
	}
	if s, ok := settingFor(settings, "red"); !ok || s.Mode != "|" {
		t.Errorf("expected exact match for 'red', got %+v ok=%v", s, ok)
	}
	if s, ok := settingFor(settings, "blue"); !ok || s.Mode != "x" {
		t.Errorf("expected wildcard fallback for 'blue', got %+v ok=%v", s, ok)
	}
}

func TestRunProducesHatchLinesFromFilledMask(t *testing.T) {
	ms := &converter.MaskSet{
		Width: 30, Height: 30,
		EdgeMasks:    map[int]*raster.Gray{},
		FilledMasks:  map[int]*raster.Gray{},
		OutlineMasks: map[int]*raster.Gray{},
		ColorNames:   map[int]string{0: "black"},
		ColorValues:  map[int][3]uint8{0: {0, 0, 0}},
	}
	filled := raster.NewGray(30, 30)
	for y := 5; y < 25; y++ {
		for x := 5; x < 25; x++ {
			filled.Set(x, y, 255)
		}
	}
	ms.FilledMasks[0] = filled

	data := Run(ms, DefaultPipelineConfig())
	if len(data.HatchLines[0]) == 0 {
		t.Fatalf("expected hatch lines to be generated for the filled mask")
	}
	if data.ColorNames[0] != "black" {
		t.Errorf("expected color name to carry through, got %q", data.ColorNames[0])
	}
}

func TestRunProducesPolylinesFromEdgeMask(t *testing.T) {
	ms := &converter.MaskSet{
		Width: 30, Height: 30,
		EdgeMasks:    map[int]*raster.Gray{},
		FilledMasks:  map[int]*raster.Gray{},
		OutlineMasks: map[int]*raster.Gray{},
		ColorNames:   map[int]string{0: "black"},
		ColorValues:  map[int][3]uint8{0: {0, 0, 0}},
	}
	edge := raster.NewGray(30, 30)
	for x := 5; x < 25; x++ {
		edge.Set(x, 15, 255)
	}
	ms.EdgeMasks[0] = edge

	data := Run(ms, DefaultPipelineConfig())
	total := 0
	for _, pl := range data.Polylines[0] {
		total += len(pl.Points)
	}
	for _, c := range data.Contours[0] {
		total += len(c.Points)
	}
	if total == 0 {
		t.Fatalf("expected a traced-and-simplified polyline from a straight edge mask")
	}
}
