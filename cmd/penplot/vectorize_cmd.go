package main

import (
	"github.com/hssscienceclubpr/pen-plotter-2025/converter"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectorize"
	"github.com/spf13/cobra"
)

func newVectorizeCmd() *cobra.Command {
	var (
		inputPath      string
		outputPath     string
		hatchSpacing   int
		hatchAngle     float64
		minSize        int
		jitterEpsilon  float64
		minPolylineLen float64
	)

	cmd := &cobra.Command{
		Use:   "vectorize",
		Short: "Turn a MaskSet into VectorData (hatch, thin, trace, contours, stitch, simplify)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			log.Debug().Str("stage", "vectorize").Msg("starting")

			ms, err := loadGob[*converter.MaskSet](inputPath)
			if err != nil {
				return err
			}

			cfg := vectorize.DefaultPipelineConfig()
			cfg.HatchLineSpacing = hatchSpacing
			cfg.HatchLineAngle = hatchAngle
			cfg.MinSize = minSize
			cfg.JitterEpsilon = jitterEpsilon
			cfg.MinPolylineLen = minPolylineLen

			data, err := runStage(ms, func(ms *converter.MaskSet) (vectordata.VectorData, error) {
				return vectorize.Run(ms, cfg), nil
			})
			if err != nil {
				return err
			}
			if err := saveGob(outputPath, data); err != nil {
				return err
			}
			log.Debug().Str("stage", "vectorize").Int("polylines", countPolylines(data)).Msg("done")
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "in", "maskset.gob", "input MaskSet path")
	cmd.Flags().StringVar(&outputPath, "out", "vectordata.gob", "output VectorData path")
	cmd.Flags().IntVar(&hatchSpacing, "hatch-spacing", 4, "default hatch line spacing in pixels")
	cmd.Flags().Float64Var(&hatchAngle, "hatch-angle", 135, "default hatch line angle in degrees")
	cmd.Flags().IntVar(&minSize, "min-size", 10, "minimum filled-region size to hatch")
	cmd.Flags().Float64Var(&jitterEpsilon, "jitter-epsilon", 2, "jitter-removal distance threshold")
	cmd.Flags().Float64Var(&minPolylineLen, "min-polyline-len", 2, "minimum traced polyline length to keep")

	return cmd
}

func countPolylines(data vectordata.VectorData) int {
	n := 0
	for _, pls := range data.Polylines {
		n += len(pls)
	}
	return n
}
