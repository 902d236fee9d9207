// Command penplot drives the pen-plotter pipeline end to end: decode an
// image, build a colormap, run mask-to-geometry converters, vectorize,
// plan the output onto a sheet of paper, optimize stroke order, and emit
// a stroke file. Each stage is also available as its own subcommand,
// reading and writing gob-encoded intermediate artifacts so stages can
// be run independently.
package main

import (
	"fmt"
	"os"

	// Blank-imported so image.Decode recognizes these formats; decoding
	// itself is out of the pipeline's scope (spec Non-goals), this is
	// CLI plumbing only.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logLevel string

func main() {
	root := &cobra.Command{
		Use:   "penplot",
		Short: "Turn a raster image into pen-plotter stroke paths",
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		newColormapCmd(),
		newConvertCmd(),
		newVectorizeCmd(),
		newPlanCmd(),
		newOptimizeCmd(),
		newRunCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "penplot: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a zerolog.Logger writing to stderr at the level
// selected by --log-level. Each subcommand builds its own and logs
// through it; it is not installed as a global logger, and the library
// packages do not log.
func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}
