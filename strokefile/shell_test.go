package strokefile

import (
	"testing"

	"github.com/hssscienceclubpr/pen-plotter-2025/vectorize"
)

func TestRunCommandsSetsModeSpacingAndSubstitute(t *testing.T) {
	settings := map[string]vectorize.HatchLineSetting{}
	RunCommands([]string{"hatch red x 8 blue"}, settings)

	s, ok := settings["red"]
	if !ok {
		t.Fatalf("expected a setting for 'red' to be created")
	}
	if s.Mode != "x" {
		t.Errorf("expected mode 'x', got %q", s.Mode)
	}
	if s.Spacing != 8 {
		t.Errorf("expected spacing 8, got %d", s.Spacing)
	}
	if s.SubstituteColor != "blue" {
		t.Errorf("expected substitute_color 'blue', got %q", s.SubstituteColor)
	}
}

func TestRunCommandsIgnoresOutOfRangeSpacing(t *testing.T) {
	settings := map[string]vectorize.HatchLineSetting{"red": {Mode: "/", Spacing: 4}}
	RunCommands([]string{"hatch red 5000"}, settings)
	if settings["red"].Spacing != 4 {
		t.Errorf("expected spacing to remain 4 for out-of-range value, got %d", settings["red"].Spacing)
	}
}

func TestRunCommandsIgnoresUnrecognizedOrMalformedLines(t *testing.T) {
	settings := map[string]vectorize.HatchLineSetting{}
	RunCommands([]string{"", "unknown command", "hatch onlyone"}, settings)
	if len(settings) != 0 {
		t.Errorf("expected no settings created from malformed/unrecognized lines, got %+v", settings)
	}
}

func TestIsInteger(t *testing.T) {
	cases := map[string]bool{
		"123": true, "-5": true, "+5": true, "": false, "12a": false, "-": false,
	}
	for in, want := range cases {
		if got := isInteger(in); got != want {
			t.Errorf("isInteger(%q) = %v, want %v", in, got, want)
		}
	}
}
