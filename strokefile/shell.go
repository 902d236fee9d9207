package strokefile

import (
	"strconv"
	"strings"

	"github.com/hssscienceclubpr/pen-plotter-2025/vectorize"
)

// hatchModeTokens is the set of valid hatch mode characters a shell
// command may set, matching runAllCommands' inline check.
var hatchModeTokens = map[string]bool{
	"/": true, "-": true, "\\": true, "|": true, "+": true, "x": true,
}

// RunCommands interprets each line of a shell script against settings,
// mutating it in place. The only recognized command today is:
//
//	hatch <color> [mode] [spacing] [substitute_color]
//
// where mode/spacing/substitute_color may appear in any order and any
// subset; spacing must parse as an integer in [1, 1000] to take effect.
// Unrecognized commands and malformed "hatch" invocations (fewer than 2
// arguments) are silently skipped, matching runAllCommands.
func RunCommands(lines []string, settings map[string]vectorize.HatchLineSetting) {
	for _, cmd := range lines {
		args := strings.Fields(cmd)
		if len(args) == 0 {
			continue
		}
		if args[0] != "hatch" || len(args) <= 2 {
			continue
		}

		key := args[1]
		setting := settings[key]
		for _, value := range args[2:] {
			switch {
			case hatchModeTokens[value]:
				setting.Mode = value
			case isInteger(value):
				spacing, _ := strconv.Atoi(value)
				if spacing >= 1 && spacing <= 1000 {
					setting.Spacing = spacing
				}
			default:
				setting.SubstituteColor = value
			}
		}
		settings[key] = setting
	}
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' || s[0] == '+' {
		start = 1
	}
	if start == len(s) {
		return false
	}
	for _, r := range s[start:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
