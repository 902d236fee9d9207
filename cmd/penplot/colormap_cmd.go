package main

import (
	"fmt"

	"github.com/hssscienceclubpr/pen-plotter-2025/colormap"
	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
	"github.com/spf13/cobra"
)

func newColormapCmd() *cobra.Command {
	var (
		inputPath    string
		outputPath   string
		mode         string
		threshold    uint8
		paletteSpec  string
		achroColors  string
		achroThresh  string
		achroSens    float64
	)

	cmd := &cobra.Command{
		Use:   "colormap",
		Short: "Build a ColorMap from a source image",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			log.Debug().Str("stage", "colormap").Msg("starting")

			img, err := loadBGR(inputPath)
			if err != nil {
				return err
			}

			cfg, err := buildColormapConfig(mode, threshold, paletteSpec, achroColors, achroThresh, achroSens)
			if err != nil {
				log.Warn().Err(err).Msg("invalid configuration")
				return err
			}

			cm, err := runStage(img.Clone(), func(img *raster.BGR) (vectordata.ColorMap, error) {
				return colormap.Build(img, cfg)
			})
			if err != nil {
				log.Warn().Err(err).Msg("colormap build failed")
				return err
			}
			if err := saveGob(outputPath, cm); err != nil {
				return err
			}
			log.Debug().Str("stage", "colormap").Msg("done")
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "source image path (required)")
	cmd.Flags().StringVar(&outputPath, "out", "colormap.gob", "output ColorMap path")
	cmd.Flags().StringVar(&mode, "mode", "binary", "colormap mode: binary, multi, achro")
	cmd.Flags().Uint8Var(&threshold, "threshold", 128, "binary mode grayscale threshold")
	cmd.Flags().StringVar(&paletteSpec, "palette", "", "comma-separated name:RRGGBB entries (multi/achro modes)")
	cmd.Flags().StringVar(&achroColors, "achro-colors", "", "comma-separated name:RRGGBB achromatic tiers (achro mode, 2-4 entries)")
	cmd.Flags().StringVar(&achroThresh, "achro-thresholds", "", "comma-separated ascending lightness thresholds (achro mode)")
	cmd.Flags().Float64Var(&achroSens, "achro-sensitivity", 0.2, "achromatic saturation sensitivity (achro mode)")
	cmd.MarkFlagRequired("input")

	return cmd
}

func buildColormapConfig(mode string, threshold uint8, paletteSpec, achroColors, achroThresh string, achroSens float64) (colormap.Config, error) {
	cfg := colormap.Config{Threshold: threshold, AchroSensitivity: achroSens}

	palette, err := parsePalette(paletteSpec)
	if err != nil {
		return cfg, err
	}
	cfg.Palette = palette

	switch mode {
	case "binary":
		cfg.Mode = colormap.Binary
	case "multi":
		cfg.Mode = colormap.Multi
	case "achro":
		cfg.Mode = colormap.AchroMulti
		tiers, err := parsePalette(achroColors)
		if err != nil {
			return cfg, err
		}
		cfg.AchroColors = tiers
		thresholds, err := parseFloatList(achroThresh)
		if err != nil {
			return cfg, err
		}
		cfg.AchroThresholds = thresholds
	default:
		return cfg, fmt.Errorf("unknown colormap mode %q", mode)
	}
	return cfg, nil
}
