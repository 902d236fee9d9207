package raster

import "github.com/hssscienceclubpr/pen-plotter-2025/internal/pool"

// zsSubIter applies one Zhang-Suen sub-iteration (1 or 2) to img (0/1
// convention) and returns whether any pixel was marked for removal. Unlike
// thinningStep's NWG LUT, the Zhang-Suen conditions are evaluated directly
// per pixel since there is no shared table between the two sub-iterations.
func zsSubIter(img *Gray, sub int) (marker *Gray, modified bool) {
	buf := pool.Get(img.Width * img.Height)
	for i := range buf {
		buf[i] = 0
	}
	marker = &Gray{Pix: buf, Stride: img.Width, Width: img.Width, Height: img.Height}
	var anyModified int32

	ParallelRows(img.Height-2, func(y0, y1 int) {
		localModified := false
		for y := y0 + 1; y < y1+1; y++ {
			for x := 1; x < img.Width-1; x++ {
				if img.At(x, y) == 0 {
					continue
				}
				p2 := img.At(x, y-1)
				p3 := img.At(x+1, y-1)
				p4 := img.At(x+1, y)
				p5 := img.At(x+1, y+1)
				p6 := img.At(x, y+1)
				p7 := img.At(x-1, y+1)
				p8 := img.At(x-1, y)
				p9 := img.At(x-1, y-1)
				n := [8]uint8{p2, p3, p4, p5, p6, p7, p8, p9}

				b := 0
				for _, v := range n {
					b += int(v)
				}
				if b < 2 || b > 6 {
					continue
				}

				a := 0
				for k := 0; k < 7; k++ {
					if n[k] == 0 && n[k+1] == 1 {
						a++
					}
				}
				if n[7] == 0 && n[0] == 1 {
					a++
				}
				if a != 1 {
					continue
				}

				var cond1, cond2 bool
				if sub == 1 {
					cond1 = p2*p4*p6 == 0
					cond2 = p4*p6*p8 == 0
				} else {
					cond1 = p2*p4*p8 == 0
					cond2 = p2*p6*p8 == 0
				}
				if cond1 && cond2 {
					marker.Set(x, y, 1)
					localModified = true
				}
			}
		}
		if localModified {
			anyModified = 1
		}
	})
	return marker, anyModified != 0
}

// ZhangSuenThin runs the classic Zhang-Suen two-sub-iteration thinning
// algorithm to a fixed point. Grounded on the original's
// cv::ximgproc::thinning(..., THINNING_ZHANGSUEN) call, used for the
// LineAndFill converter's speck-reclassification step rather than
// NWG (Thin), since the two algorithms produce different skeletons and
// this step's output (which specks get re-labeled back into filled)
// depends on the skeleton's small-component topology.
func ZhangSuenThin(mask *Gray) *Gray {
	img := NewGray(mask.Width, mask.Height)
	for i, v := range mask.Pix {
		if v != 0 {
			img.Pix[i] = 1
		}
	}

	for {
		modifiedAny := false
		if marker, mod := zsSubIter(img, 1); mod {
			thinSubtract(img, marker)
			modifiedAny = true
			pool.Put(marker.Pix)
		} else {
			pool.Put(marker.Pix)
		}
		if marker, mod := zsSubIter(img, 2); mod {
			thinSubtract(img, marker)
			modifiedAny = true
			pool.Put(marker.Pix)
		} else {
			pool.Put(marker.Pix)
		}
		if !modifiedAny {
			break
		}
	}

	out := NewGray(mask.Width, mask.Height)
	for i, v := range img.Pix {
		if v != 0 {
			out.Pix[i] = 255
		}
	}
	return out
}
