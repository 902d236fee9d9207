// Package colormap builds a per-pixel ColorMap from a source image,
// implementing the Binary, Multi, and Achro+Multi modes.
package colormap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hssscienceclubpr/pen-plotter-2025/perr"
)

// ParseHex parses a 6-hex-digit color, tolerating an optional leading
// "#" or "0x" prefix, and returns its BGR triple. It returns an error
// wrapping perr.InvalidInput if the string is not exactly 6 hex digits
// after stripping the prefix, matching hex2BGR's validation.
func ParseHex(hex string) ([3]uint8, error) {
	s := hex
	switch {
	case strings.HasPrefix(s, "#"):
		s = s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s = s[2:]
	}
	if len(s) != 6 {
		return [3]uint8{}, fmt.Errorf("color %q: %w (want exactly 6 hex digits)", hex, perr.InvalidInput)
	}
	r, err := strconv.ParseUint(s[0:2], 16, 8)
	if err != nil {
		return [3]uint8{}, fmt.Errorf("color %q: %w", hex, perr.InvalidInput)
	}
	g, err := strconv.ParseUint(s[2:4], 16, 8)
	if err != nil {
		return [3]uint8{}, fmt.Errorf("color %q: %w", hex, perr.InvalidInput)
	}
	b, err := strconv.ParseUint(s[4:6], 16, 8)
	if err != nil {
		return [3]uint8{}, fmt.Errorf("color %q: %w", hex, perr.InvalidInput)
	}
	return [3]uint8{uint8(b), uint8(g), uint8(r)}, nil
}
