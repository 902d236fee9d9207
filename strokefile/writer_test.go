package strokefile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hssscienceclubpr/pen-plotter-2025/optimize"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

func TestWritePathRoundTripsThroughParsePath(t *testing.T) {
	path := optimize.DrawPath{
		Paths: map[int][][]vectordata.Point{
			0: {
				{{X: 0, Y: 0}, {X: 1, Y: 2}},
				{{X: 3, Y: 4}, {X: 5, Y: 6}, {X: 7, Y: 8}},
			},
			1: {
				{{X: 10, Y: 10}},
			},
		},
		ColorNames: map[int]string{0: "black", 1: "red"},
	}

	var buf bytes.Buffer
	if err := WritePath(&buf, path); err != nil {
		t.Fatalf("WritePath failed: %v", err)
	}

	got, err := ParsePath(&buf)
	if err != nil {
		t.Fatalf("ParsePath failed: %v", err)
	}
	if len(got.Paths) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(got.Paths))
	}
	if len(got.Paths[0]) != 2 || len(got.Paths[0][1]) != 3 {
		t.Fatalf("unexpected color 0 shape: %+v", got.Paths[0])
	}
	if got.ColorNames[1] != "red" {
		t.Fatalf("expected color 1 name 'red', got %q", got.ColorNames[1])
	}
}

func TestWritePathSkipsEmptyColors(t *testing.T) {
	path := optimize.DrawPath{
		Paths: map[int][][]vectordata.Point{
			0: {{{X: 0, Y: 0}}},
			1: {},
		},
		ColorNames: map[int]string{0: "black", 1: "red"},
	}
	var buf bytes.Buffer
	if err := WritePath(&buf, path); err != nil {
		t.Fatalf("WritePath failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "1" {
		t.Fatalf("expected color count 1 since color 1 is empty, got %q", lines[0])
	}
}

func TestWritePathRejectsNoPaths(t *testing.T) {
	path := optimize.DrawPath{Paths: map[int][][]vectordata.Point{}, ColorNames: map[int]string{0: "black"}}
	var buf bytes.Buffer
	if err := WritePath(&buf, path); err == nil {
		t.Fatalf("expected error writing path with no paths")
	}
}
