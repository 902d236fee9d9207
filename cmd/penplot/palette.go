package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

// parsePalette parses a comma-separated "name:RRGGBB" list into a
// vectordata.Palette, converting each hex triplet to this module's BGR
// byte order.
func parsePalette(spec string) (vectordata.Palette, error) {
	if spec == "" {
		return nil, nil
	}
	var out vectordata.Palette
	for _, entry := range strings.Split(spec, ",") {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("palette entry %q: expected name:RRGGBB", entry)
		}
		name := strings.TrimSpace(parts[0])
		hex := strings.TrimSpace(parts[1])
		if len(hex) != 6 {
			return nil, fmt.Errorf("palette entry %q: color must be 6 hex digits", entry)
		}
		r, err := strconv.ParseUint(hex[0:2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", entry, err)
		}
		g, err := strconv.ParseUint(hex[2:4], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", entry, err)
		}
		b, err := strconv.ParseUint(hex[4:6], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", entry, err)
		}
		out = append(out, vectordata.PaletteEntry{Name: name, BGR: [3]uint8{uint8(b), uint8(g), uint8(r)}})
	}
	return out, nil
}

func parseFloatList(spec string) ([]float64, error) {
	if spec == "" {
		return nil, nil
	}
	var out []float64
	for _, s := range strings.Split(spec, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out = append(out, v)
	}
	return out, nil
}
