package main

import (
	"github.com/hssscienceclubpr/pen-plotter-2025/planner"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	var (
		inputPath        string
		outputPath       string
		paperWidthMM     int
		paperHeightMM    int
		marginMM         int
		directionDegrees int
		allowDrift       bool
		sizePercent      int
		doubleMode       bool
		addBorder        bool
		borderColorName  string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Fit VectorData onto a physical sheet (recenter, rotate, scale, border)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			log.Debug().Str("stage", "plan").Msg("starting")

			data, err := loadGob[vectordata.VectorData](inputPath)
			if err != nil {
				return err
			}

			cfg := planner.Config{
				PaperWidthMM: paperWidthMM, PaperHeightMM: paperHeightMM, MarginMM: marginMM,
				DirectionDegrees: directionDegrees, AllowCenterDrift: allowDrift, SizePercent: sizePercent,
				DoubleMode: doubleMode, AddBorder: addBorder, BorderColorName: borderColorName,
			}
			planned, err := runStage(data, func(data vectordata.VectorData) (vectordata.VectorData, error) {
				return planner.Plan(data, cfg)
			})
			if err != nil {
				log.Warn().Err(err).Msg("plan failed")
				return err
			}
			if err := saveGob(outputPath, planned); err != nil {
				return err
			}
			log.Debug().Str("stage", "plan").Msg("done")
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "in", "vectordata.gob", "input VectorData path")
	cmd.Flags().StringVar(&outputPath, "out", "planned.gob", "output VectorData path")
	cmd.Flags().IntVar(&paperWidthMM, "paper-width", 210, "paper width in mm")
	cmd.Flags().IntVar(&paperHeightMM, "paper-height", 297, "paper height in mm")
	cmd.Flags().IntVar(&marginMM, "margin", 10, "paper margin in mm")
	cmd.Flags().IntVar(&directionDegrees, "direction", 0, "clockwise rotation in degrees before fitting")
	cmd.Flags().BoolVar(&allowDrift, "allow-center-drift", false, "allow the geometry's center to drift off the paper center when fitting")
	cmd.Flags().IntVar(&sizePercent, "size-percent", 100, "final scale percentage, 1-100")
	cmd.Flags().BoolVar(&doubleMode, "double", false, "lay out two copies, rotated 90 degrees and scaled by sqrt(1/2), in the upper and lower halves")
	cmd.Flags().BoolVar(&addBorder, "border", false, "draw a margin rectangle (and midline in double mode)")
	cmd.Flags().StringVar(&borderColorName, "border-color", "", "color name to draw the border in (default: \"black\" if present)")

	return cmd
}
