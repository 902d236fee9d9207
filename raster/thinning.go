package raster

import (
	"sync/atomic"

	"github.com/hssscienceclubpr/pen-plotter-2025/internal/pool"
)

// nwgLUT is a 512-entry lookup table keyed by a pixel's 3x3 neighborhood
// bit pattern (bit k = neighbor k, LSB-first, row-major prev/curr/next),
// built once per thinning sub-step per createNWGLUT.
type nwgLUT [512]uint8

func buildNWGLUT(step int) nwgLUT {
	var lut nwgLUT
	for code := 0; code < 512; code++ {
		var p [9]uint8
		for k := 0; k < 9; k++ {
			p[k] = uint8((code >> k) & 1)
		}
		if p[4] == 0 {
			continue
		}
		n := [8]uint8{p[1], p[2], p[5], p[8], p[7], p[6], p[3], p[0]}

		a := 0
		for k := 0; k < 7; k++ {
			if n[k] == 0 && n[k+1] == 1 {
				a++
			}
		}
		if n[7] == 0 && n[0] == 1 {
			a++
		}

		b := 0
		for _, v := range n {
			b += int(v)
		}

		if a == 1 && b >= 2 && b <= 6 {
			var cond1, cond2 bool
			if step == 0 {
				cond1 = n[0]*n[2]*n[4] == 0
				cond2 = n[2]*n[4]*n[6] == 0
			} else {
				cond1 = n[0]*n[2]*n[6] == 0
				cond2 = n[0]*n[4]*n[6] == 0
			}
			if cond1 && cond2 {
				lut[code] = 1
			}
		}
	}
	return lut
}

var (
	thinLUTA = buildNWGLUT(0)
	thinLUTB = buildNWGLUT(1)
)

// thinningStep applies lut to every foreground pixel of img (values 0/1)
// and returns the removal marker plus whether any pixel was marked. The
// marker's backing buffer comes from internal/pool since thinningStep runs
// once per sub-step per fixed-point iteration and the marker is discarded
// by the caller before the next call.
// Grounded on thinningStepParallel: row-parallel LUT application with a
// shared "was anything modified" flag.
func thinningStep(img *Gray, lut nwgLUT) (marker *Gray, modified bool) {
	buf := pool.Get(img.Width * img.Height)
	for i := range buf {
		buf[i] = 0
	}
	marker = &Gray{Pix: buf, Stride: img.Width, Width: img.Width, Height: img.Height}
	var anyModified int32 // 0/1, set atomically by any worker that marked a pixel

	ParallelRows(img.Height-2, func(y0, y1 int) {
		localModified := false
		for y := y0 + 1; y < y1+1; y++ {
			for x := 1; x < img.Width-1; x++ {
				if img.At(x, y) == 0 {
					continue
				}
				code := 0
				bit := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if img.At(x+dx, y+dy) != 0 {
							code |= 1 << bit
						}
						bit++
					}
				}
				if lut[code] != 0 {
					marker.Set(x, y, 1)
					localModified = true
				}
			}
		}
		if localModified {
			atomic.StoreInt32(&anyModified, 1)
		}
	})
	return marker, atomic.LoadInt32(&anyModified) != 0
}

// Thin runs the two-sub-step NWG thinning algorithm to a fixed point,
// iterating Step A then Step B until neither removes a pixel. Input and
// output use 0/255 convention; Otsu-style binarization is the caller's
// responsibility upstream (masks arriving here are already binary 0/255
// from the converter stage, so no re-thresholding is applied here,
// unlike the original's NWGThinningLUTParallel which receives arbitrary
// grayscale and Otsu-thresholds it first).
func Thin(mask *Gray) *Gray {
	img := NewGray(mask.Width, mask.Height)
	for i, v := range mask.Pix {
		if v != 0 {
			img.Pix[i] = 1
		}
	}

	for {
		modifiedAny := false
		if marker, mod := thinningStep(img, thinLUTA); mod {
			thinSubtract(img, marker)
			modifiedAny = true
			pool.Put(marker.Pix)
		} else {
			pool.Put(marker.Pix)
		}
		if marker, mod := thinningStep(img, thinLUTB); mod {
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

func thinSubtract(img, marker *Gray) {
	for i := range img.Pix {
		if marker.Pix[i] != 0 {
			img.Pix[i] = 0
		}
	}
}

// CleanThinned fills "missing corner" gaps: a background pixel whose
// four orthogonal neighbors have exactly 3 set and whose four diagonal
// neighbors are all unset is turned on. Grounded on clean_thinned.
func CleanThinned(thinned *Gray) *Gray {
	out := thinned.Clone()
	w, h := thinned.Width, thinned.Height
	ParallelRows(h-2, func(y0, y1 int) {
		for y := y0 + 1; y < y1+1; y++ {
			for x := 1; x < w-1; x++ {
				if thinned.At(x, y) != 0 {
					continue
				}
				count4 := boolInt(thinned.At(x, y-1) != 0) + boolInt(thinned.At(x-1, y) != 0) +
					boolInt(thinned.At(x+1, y) != 0) + boolInt(thinned.At(x, y+1) != 0)
				count8 := boolInt(thinned.At(x-1, y-1) != 0) + boolInt(thinned.At(x+1, y-1) != 0) +
					boolInt(thinned.At(x-1, y+1) != 0) + boolInt(thinned.At(x+1, y+1) != 0)
				if count4 == 3 && count8 == 0 {
					out.Set(x, y, 255)
				}
			}
		}
	})
	return out
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
