package converter

import (
	"testing"

	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

func twoColorMap() vectordata.ColorMap {
	// 4x4 image: left half color 0 ("black"), right half color 1 ("white").
	ids := make([]int, 16)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x >= 2 {
				ids[y*4+x] = 1
			}
		}
	}
	return vectordata.ColorMap{
		Width: 4, Height: 4,
		IDs:    ids,
		Names:  map[int]string{0: "black", 1: "white"},
		Values: map[int][3]uint8{0: {0, 0, 0}, 1: {255, 255, 255}},
	}
}

func allZeroModeMap(w, h int) vectordata.ModeMap {
	return vectordata.NewModeMap(w, h)
}

func TestApplyEdgeSkipsWhiteAndFillsEdgeMask(t *testing.T) {
	cm := twoColorMap()
	mm := allZeroModeMap(cm.Width, cm.Height)
	out := NewMaskSet(cm)

	c := Converter{Kind: KindEdge, Edge: EdgeParams{MinSize: 0, OpeningRadius: 0}}
	orig := raster.NewBGR(cm.Width, cm.Height)
	if err := c.Apply(orig, cm, mm, 0, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, ok := out.EdgeMasks[0]; !ok {
		t.Errorf("expected an edge mask for color 0 (black)")
	}
	if _, ok := out.EdgeMasks[1]; ok {
		t.Errorf("expected no edge mask for color 1 (white), it should be skipped")
	}
}

func TestApplyFillRoutesBackOutlineFromWhite(t *testing.T) {
	cm := twoColorMap()
	mm := allZeroModeMap(cm.Width, cm.Height)
	out := NewMaskSet(cm)

	c := Converter{Kind: KindFill, Fill: FillParams{BackOutline: "black"}}
	orig := raster.NewBGR(cm.Width, cm.Height)
	if err := c.Apply(orig, cm, mm, 0, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, ok := out.OutlineMasks[0]; !ok {
		t.Errorf("expected back_outline to route into the 'black' color's outline mask")
	}
}

func TestApplyRejectsSizeMismatch(t *testing.T) {
	cm := twoColorMap()
	mm := allZeroModeMap(cm.Width, cm.Height)
	out := NewMaskSet(cm)
	c := Converter{Kind: KindEdge}
	wrongSize := raster.NewBGR(1, 1)
	if err := c.Apply(wrongSize, cm, mm, 0, out); err == nil {
		t.Fatalf("expected error for mismatched original image size")
	}
}

func TestChainRunAppliesInOrder(t *testing.T) {
	cm := twoColorMap()
	mm := allZeroModeMap(cm.Width, cm.Height)
	out := NewMaskSet(cm)
	orig := raster.NewBGR(cm.Width, cm.Height)

	chain := Chain{
		{Kind: KindEdge, Edge: EdgeParams{}},
		{Kind: KindOutline, Outline: OutlineParams{}},
	}
	if err := chain.Run(orig, cm, mm, 0, out); err != nil {
		t.Fatalf("Chain.Run failed: %v", err)
	}
	if len(out.EdgeMasks) == 0 || len(out.OutlineMasks) == 0 {
		t.Errorf("expected both converters in the chain to have run")
	}
}

func TestExtractEdgeFromGroupMapFindsBoundary(t *testing.T) {
	cm := twoColorMap()
	edges := ExtractEdgeFromGroupMap(cm)
	// The boundary between color 0 and color 1 sits around x=1,2.
	found := false
	for y := 0; y < cm.Height; y++ {
		if edges.At(1, y) == 255 || edges.At(2, y) == 255 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a nonzero edge near the color boundary")
	}
}
