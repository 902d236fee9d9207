package converter

import (
	"testing"

	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
)

func TestClassifyPixelsSeparatesSolidBlockAsFilled(t *testing.T) {
	g := raster.NewGray(20, 20)
	for y := 4; y < 16; y++ {
		for x := 4; x < 16; x++ {
			g.Set(x, y, 255)
		}
	}
	lines, filled := ClassifyPixels(g, 2)

	filledCount, lineCount := 0, 0
	for _, v := range filled.Pix {
		if v == 255 {
			filledCount++
		}
	}
	for _, v := range lines.Pix {
		if v == 255 {
			lineCount++
		}
	}
	if filledCount == 0 {
		t.Errorf("expected a large solid block to classify mostly as filled")
	}
	if filledCount <= lineCount {
		t.Errorf("expected filled pixel count (%d) to dominate line pixel count (%d) for a solid block", filledCount, lineCount)
	}
}

func TestClassifyPixelsKeepsThinLineAsLine(t *testing.T) {
	g := raster.NewGray(20, 20)
	for x := 2; x < 18; x++ {
		g.Set(x, 10, 255)
	}
	lines, filled := ClassifyPixels(g, 2)

	lineCount, filledCount := 0, 0
	for _, v := range lines.Pix {
		if v == 255 {
			lineCount++
		}
	}
	for _, v := range filled.Pix {
		if v == 255 {
			filledCount++
		}
	}
	if lineCount == 0 {
		t.Errorf("expected a thin single-pixel-wide line to classify as line pixels")
	}
}

func TestClassifyPixelsReclassifiesTinySpecksAsFilled(t *testing.T) {
	// A long thin line plus an isolated 3x3 speck: Zhang-Suen thins the
	// speck to its single center pixel, a skeleton of area<4, so the whole
	// speck should be re-labeled back into filled rather than surviving as
	// a tiny line component.
	g := raster.NewGray(40, 40)
	for x := 2; x < 38; x++ {
		g.Set(x, 5, 255)
	}
	g.Set(20, 30, 255)
	g.Set(21, 30, 255)
	g.Set(22, 30, 255)
	g.Set(20, 31, 255)
	g.Set(21, 31, 255)
	g.Set(22, 31, 255)
	g.Set(20, 32, 255)
	g.Set(21, 32, 255)
	g.Set(22, 32, 255)

	lines, filled := ClassifyPixels(g, 2)

	if lines.At(20, 30) != 0 || lines.At(21, 30) != 0 || lines.At(20, 31) != 0 || lines.At(21, 31) != 0 {
		t.Errorf("expected isolated speck pixels reclassified out of lines")
	}
	if filled.At(20, 30) == 0 && filled.At(21, 30) == 0 && filled.At(20, 31) == 0 && filled.At(21, 31) == 0 {
		t.Errorf("expected isolated speck pixels reclassified into filled")
	}

	longLineCount := 0
	for x := 2; x < 38; x++ {
		if lines.At(x, 5) != 0 {
			longLineCount++
		}
	}
	if longLineCount == 0 {
		t.Errorf("expected the long thin line to remain classified as line pixels")
	}
}

func TestNeighborCountAtEdgesIsClamped(t *testing.T) {
	g := raster.NewGray(3, 3)
	for i := range g.Pix {
		g.Pix[i] = 255
	}
	counts := neighborCount(g, 1)
	// Corner pixel (0,0) has only 3 neighbors within the image bounds.
	if counts[0] != 3 {
		t.Errorf("expected corner neighbor count 3, got %d", counts[0])
	}
	// Center pixel (1,1) has all 8 neighbors set.
	if counts[1*3+1] != 8 {
		t.Errorf("expected center neighbor count 8, got %d", counts[1*3+1])
	}
}
