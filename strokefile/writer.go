// Package strokefile reads and writes the line-oriented stroke file
// format optimize.DrawPath is serialized to for the plotter, plus the
// shell sub-language for ad hoc hatch-line overrides. Grounded on
// original_source/lppe/gui/optimizer.cpp's write_path_to_file and
// gui/shell_manager.cpp.
package strokefile

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/hssscienceclubpr/pen-plotter-2025/optimize"
	"github.com/hssscienceclubpr/pen-plotter-2025/perr"
)

// maxColors is the stroke file format's hard cap on distinct colors per
// file, matching write_path_to_file's 64-color limit.
const maxColors = 64

// WritePath serializes path in the grammar:
//
//	N
//	color 0 name
//	...
//	color (N-1) name
//	color 0 data
//	...
//	color (N-1) data
//
// where a color's data is its paths' points (one "x y" pair per line),
// separated by a bare "n" between paths and terminated by a bare "e".
// Only colors with at least one path are written. Grounded on
// write_path_to_file.
func WritePath(w io.Writer, path optimize.DrawPath) error {
	if len(path.Paths) == 0 {
		return fmt.Errorf("strokefile: no paths to write: %w", perr.InvalidInput)
	}
	if len(path.ColorNames) == 0 {
		return fmt.Errorf("strokefile: no color names available: %w", perr.InvalidInput)
	}
	if len(path.ColorNames) > maxColors {
		return fmt.Errorf("strokefile: too many colors to write (max %d): %w", maxColors, perr.InvalidInput)
	}

	var validIDs []int
	for colorID, paths := range path.Paths {
		if len(paths) > 0 {
			validIDs = append(validIDs, colorID)
		}
	}
	sort.Ints(validIDs)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(validIDs))
	for _, colorID := range validIDs {
		fmt.Fprintln(bw, path.ColorNames[colorID])
	}
	for _, colorID := range validIDs {
		paths := path.Paths[colorID]
		for i, pts := range paths {
			for _, p := range pts {
				fmt.Fprintf(bw, "%g %g\n", p.X, p.Y)
			}
			if i+1 < len(paths) {
				fmt.Fprintln(bw, "n")
			}
		}
		fmt.Fprintln(bw, "e")
	}
	return bw.Flush()
}
