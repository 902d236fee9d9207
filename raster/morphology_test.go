package raster

import "testing"

func TestDilateGrowsSinglePixel(t *testing.T) {
	g := NewGray(5, 5)
	g.Set(2, 2, 255)

	out := Dilate(g, RectElement(1))

	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if out.At(x, y) == 0 {
				t.Errorf("expected (%d,%d) set after dilate, got 0", x, y)
			}
		}
	}
	if out.At(0, 0) != 0 {
		t.Errorf("expected (0,0) untouched, got %d", out.At(0, 0))
	}
}

func TestErodeShrinksBlock(t *testing.T) {
	g := NewGray(5, 5)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			g.Set(x, y, 255)
		}
	}

	out := Erode(g, RectElement(1))

	if out.At(2, 2) == 0 {
		t.Errorf("expected center pixel to survive erosion")
	}
	if out.At(1, 1) != 0 {
		t.Errorf("expected corner pixel removed by erosion, got %d", out.At(1, 1))
	}
}

func TestOpenRemovesIsolatedSpeck(t *testing.T) {
	g := NewGray(10, 10)
	g.Set(5, 5, 255)

	out := Open(g, EllipseElement(1))

	for _, v := range out.Pix {
		if v != 0 {
			t.Fatalf("expected isolated speck removed by opening, found nonzero pixel")
		}
	}
}

func TestCloseFillsSmallHole(t *testing.T) {
	g := NewGray(7, 7)
	for y := 1; y <= 5; y++ {
		for x := 1; x <= 5; x++ {
			g.Set(x, y, 255)
		}
	}
	g.Set(3, 3, 0)

	out := Close(g, RectElement(1))

	if out.At(3, 3) == 0 {
		t.Errorf("expected hole at (3,3) filled by closing")
	}
}
