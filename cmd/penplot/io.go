package main

import (
	"encoding/gob"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/hssscienceclubpr/pen-plotter-2025/internal/pipeline"
	"github.com/hssscienceclubpr/pen-plotter-2025/perr"
	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
)

// runStage submits compute(in) to a one-shot pipeline.Stage and blocks
// until it completes, the CLI's synchronous stand-in for the foreground
// draw loop's is_calculating/is_newest_available polling: each subcommand
// invocation is exactly one submission, so staleness only bites if compute
// itself tries to Submit again before the first finishes.
func runStage[In, Out any](in In, compute func(In) (Out, error)) (Out, error) {
	st := pipeline.NewStage(compute)
	if err := st.Submit(in); err != nil {
		var zero Out
		return zero, err
	}
	for st.IsCalculating() {
		time.Sleep(time.Millisecond)
	}
	out, err, ok := st.Result()
	if !ok {
		var zero Out
		return zero, perr.StaleRequest
	}
	return out, err
}

// loadGob decodes a gob-encoded value of type T from path.
func loadGob[T any](path string) (T, error) {
	var out T
	f, err := os.Open(path)
	if err != nil {
		return out, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&out); err != nil {
		return out, fmt.Errorf("decoding %s: %w", path, err)
	}
	return out, nil
}

// saveGob gob-encodes v to path, replacing any existing file.
func saveGob[T any](path string, v T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// loadBGR decodes path via image.Decode (registered formats: PNG, JPEG,
// GIF, BMP) and converts the result to raster.BGR, the pipeline's own
// source-image representation.
func loadBGR(path string) (*raster.BGR, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := img.Bounds()
	out := raster.NewBGR(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*out.Width + x) * 3
			out.Pix[i+0] = uint8(bl >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(r >> 8)
		}
	}
	return out, nil
}
