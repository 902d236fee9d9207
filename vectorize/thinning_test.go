package vectorize

import (
	"testing"

	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
)

func TestNWGThinReducesSolidBlockToSkeleton(t *testing.T) {
	mask := raster.NewGray(12, 12)
	for y := 3; y < 9; y++ {
		for x := 3; x < 9; x++ {
			mask.Set(x, y, 255)
		}
	}
	thinned := NWGThin(mask)

	var original, after int
	for _, v := range mask.Pix {
		if v == 255 {
			original++
		}
	}
	for _, v := range thinned.Pix {
		if v == 255 {
			after++
		}
	}
	if after == 0 {
		t.Fatalf("expected thinning to keep at least a skeleton, got 0 foreground pixels")
	}
	if after >= original {
		t.Errorf("expected thinning to shrink the foreground pixel count: before=%d after=%d", original, after)
	}
}

func TestCleanThinnedIsIdempotentOnAlreadyThinMask(t *testing.T) {
	mask := raster.NewGray(10, 10)
	for x := 2; x < 8; x++ {
		mask.Set(x, 5, 255)
	}
	cleaned := CleanThinned(mask)
	twice := CleanThinned(cleaned)
	for i := range cleaned.Pix {
		if cleaned.Pix[i] != twice.Pix[i] {
			t.Fatalf("expected CleanThinned to be idempotent at pixel %d", i)
		}
	}
}
