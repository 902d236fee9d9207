package strokefile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hssscienceclubpr/pen-plotter-2025/optimize"
	"github.com/hssscienceclubpr/pen-plotter-2025/perr"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

type lineSource func() (line string, num int, ok bool)

// ParsePath reads the grammar WritePath produces: a color count, that
// many color names, then that many color data blocks (each a sequence
// of "x y" point lines, "n" path separators, terminated by "e"). Color
// ids are assigned 0..N-1 in file order.
func ParsePath(r io.Reader) (optimize.DrawPath, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	next := lineSource(func() (string, int, bool) {
		if !scanner.Scan() {
			return "", lineNo, false
		}
		lineNo++
		return scanner.Text(), lineNo, true
	})

	header, hline, ok := next()
	if !ok {
		return optimize.DrawPath{}, perr.NewParseError(hline, "missing color count header")
	}
	n, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || n < 0 {
		return optimize.DrawPath{}, perr.NewParseError(hline, "invalid color count %q", header)
	}
	if n > maxColors {
		return optimize.DrawPath{}, perr.NewParseError(hline, "too many colors (max %d)", maxColors)
	}

	names := make([]string, n)
	for i := 0; i < n; i++ {
		line, ln, ok := next()
		if !ok {
			return optimize.DrawPath{}, perr.NewParseError(ln, "unexpected end of file reading color name %d", i)
		}
		names[i] = line
	}

	out := optimize.DrawPath{
		Paths:      make(map[int][][]vectordata.Point),
		ColorNames: make(map[int]string),
	}
	for i, name := range names {
		out.ColorNames[i] = name
	}

	for i := 0; i < n; i++ {
		paths, err := parseColorBlock(next, i)
		if err != nil {
			return optimize.DrawPath{}, err
		}
		out.Paths[i] = paths
	}

	if err := scanner.Err(); err != nil {
		return optimize.DrawPath{}, fmt.Errorf("strokefile: reading: %w", err)
	}
	return out, nil
}

func parseColorBlock(next lineSource, colorIndex int) ([][]vectordata.Point, error) {
	var paths [][]vectordata.Point
	var current []vectordata.Point
	for {
		line, ln, ok := next()
		if !ok {
			return nil, perr.NewParseError(ln, "unexpected end of file reading data for color %d", colorIndex)
		}
		trimmed := strings.TrimSpace(line)
		switch trimmed {
		case "n":
			paths = append(paths, current)
			current = nil
			continue
		case "e":
			if len(current) > 0 {
				paths = append(paths, current)
			}
			return paths, nil
		}
		var x, y float64
		if _, err := fmt.Sscanf(trimmed, "%g %g", &x, &y); err != nil {
			return nil, perr.NewParseError(ln, "invalid point %q", line)
		}
		current = append(current, vectordata.Point{X: x, Y: y})
	}
}
