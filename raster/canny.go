package raster

import "math"

// Canny runs the classic Canny edge detector: Gaussian pre-smoothing,
// Sobel gradients, non-maximum suppression, and double-threshold
// hysteresis. low and high are the hysteresis thresholds on gradient
// magnitude.
func Canny(g *Gray, low, high float64) *Gray {
	smoothed := Gaussian(g, 1.4)

	gx := sobel(smoothed, true)
	gy := sobel(smoothed, false)

	mag := make([]float64, g.Width*g.Height)
	dir := make([]float64, g.Width*g.Height)
	for i := range mag {
		mag[i] = math.Hypot(gx[i], gy[i])
		dir[i] = math.Atan2(gy[i], gx[i])
	}

	suppressed := nonMaxSuppress(g.Width, g.Height, mag, dir)
	return hysteresis(g.Width, g.Height, suppressed, low, high)
}

// sobel computes the horizontal (gx) or vertical (gy) Sobel gradient.
// Hand-rolled: bild's effects package exposes convolution kernels for
// visual filters, not raw signed gradient planes, so the 3x3 kernel
// application is done directly here.
func sobel(g *Gray, horizontal bool) []float64 {
	var kernel [3][3]float64
	if horizontal {
		kernel = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	} else {
		kernel = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
	}

	out := make([]float64, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			var sum float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					nx, ny := x+kx, y+ky
					if nx < 0 {
						nx = 0
					}
					if nx >= g.Width {
						nx = g.Width - 1
					}
					if ny < 0 {
						ny = 0
					}
					if ny >= g.Height {
						ny = g.Height - 1
					}
					sum += float64(g.At(nx, ny)) * kernel[ky+1][kx+1]
				}
			}
			out[y*g.Width+x] = sum
		}
	}
	return out
}

func nonMaxSuppress(width, height int, mag, dir []float64) []float64 {
	out := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			angle := dir[i] * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}
			var n1, n2 float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				n1, n2 = mag[i-1], mag[i+1]
			case angle < 67.5:
				n1, n2 = mag[i-width+1], mag[i+width-1]
			case angle < 112.5:
				n1, n2 = mag[i-width], mag[i+width]
			default:
				n1, n2 = mag[i-width-1], mag[i+width+1]
			}
			if mag[i] >= n1 && mag[i] >= n2 {
				out[i] = mag[i]
			}
		}
	}
	return out
}

func hysteresis(width, height int, mag []float64, low, high float64) *Gray {
	const strong, weak = 255, 128
	state := make([]uint8, width*height)
	for i, m := range mag {
		switch {
		case m >= high:
			state[i] = strong
		case m >= low:
			state[i] = weak
		}
	}

	out := NewGray(width, height)
	var stack []int
	for i, s := range state {
		if s == strong {
			out.Pix[i] = 255
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				ni := ny*width + nx
				if state[ni] == weak && out.Pix[ni] == 0 {
					out.Pix[ni] = 255
					stack = append(stack, ni)
				}
			}
		}
	}
	return out
}
