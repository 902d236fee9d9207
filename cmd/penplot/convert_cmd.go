package main

import (
	"fmt"

	"github.com/hssscienceclubpr/pen-plotter-2025/converter"
	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var (
		colormapPath string
		imagePath    string
		modeMapPath  string
		outputPath   string
		kind         string
		minSize      int
		openingR     int
		closingR     int
		erosionR     int
		lineRadius   int
		outlineMode  bool
		cannyMode    string
		cannyLow     int
		cannyHigh    int
		colorEdges   string
		backOutline  string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Run a mask-to-geometry converter over a ColorMap, producing a MaskSet",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			log.Debug().Str("stage", "convert").Msg("starting")

			cm, err := loadGob[vectordata.ColorMap](colormapPath)
			if err != nil {
				return err
			}
			img, err := loadBGR(imagePath)
			if err != nil {
				return err
			}

			var mm vectordata.ModeMap
			if modeMapPath != "" {
				mm, err = loadGob[vectordata.ModeMap](modeMapPath)
				if err != nil {
					return err
				}
			} else {
				mm = vectordata.NewModeMap(cm.Width, cm.Height)
			}

			c, err := buildConverter(kind, minSize, openingR, closingR, erosionR, lineRadius, outlineMode, cannyMode, cannyLow, cannyHigh, colorEdges, backOutline)
			if err != nil {
				log.Warn().Err(err).Msg("invalid configuration")
				return err
			}

			chain := converter.Chain{c}
			ms, err := runStage(img.Clone(), func(img *raster.BGR) (*converter.MaskSet, error) {
				ms := converter.NewMaskSet(cm)
				if err := chain.Run(img, cm, mm, 0, ms); err != nil {
					return nil, err
				}
				return ms, nil
			})
			if err != nil {
				log.Warn().Err(err).Msg("convert failed")
				return err
			}
			if err := saveGob(outputPath, ms); err != nil {
				return err
			}
			log.Debug().Str("stage", "convert").Msg("done")
			return nil
		},
	}

	cmd.Flags().StringVar(&colormapPath, "colormap", "", "input ColorMap gob path (required)")
	cmd.Flags().StringVar(&imagePath, "image", "", "source image, for Fill's canny/color-edges side channels (required)")
	cmd.Flags().StringVar(&modeMapPath, "mode-map", "", "input ModeMap gob path (default: all pixels mode 0)")
	cmd.Flags().StringVar(&outputPath, "out", "maskset.gob", "output MaskSet path")
	cmd.Flags().StringVar(&kind, "kind", "edge", "converter kind: edge, fill, lineandfill, outline")
	cmd.Flags().IntVar(&minSize, "min-size", 4, "minimum connected-component size to keep")
	cmd.Flags().IntVar(&openingR, "opening-radius", 0, "morphological opening radius")
	cmd.Flags().IntVar(&closingR, "closing-radius", 0, "fill converter: closing radius")
	cmd.Flags().IntVar(&erosionR, "erosion-radius", 0, "fill converter: positive dilates, negative erodes")
	cmd.Flags().IntVar(&lineRadius, "line-radius", 2, "lineandfill converter: line/fill classification radius")
	cmd.Flags().BoolVar(&outlineMode, "outline-mode", false, "fill/lineandfill converter: also emit an outline mask")
	cmd.Flags().StringVar(&cannyMode, "canny-color", "", "fill converter: color name to route Canny edges into")
	cmd.Flags().IntVar(&cannyLow, "canny-low", 50, "fill converter: Canny low threshold")
	cmd.Flags().IntVar(&cannyHigh, "canny-high", 150, "fill converter: Canny high threshold")
	cmd.Flags().StringVar(&colorEdges, "color-edges", "", "fill converter: color name to route group-map edges into")
	cmd.Flags().StringVar(&backOutline, "back-outline", "", "fill converter: color name to route the inverse-of-white outline into")
	cmd.MarkFlagRequired("colormap")
	cmd.MarkFlagRequired("image")

	return cmd
}

func buildConverter(kind string, minSize, openingR, closingR, erosionR, lineRadius int, outlineMode bool, cannyMode string, cannyLow, cannyHigh int, colorEdges, backOutline string) (converter.Converter, error) {
	switch kind {
	case "edge":
		return converter.Converter{Kind: converter.KindEdge, Edge: converter.EdgeParams{MinSize: minSize, OpeningRadius: openingR}}, nil
	case "fill":
		return converter.Converter{Kind: converter.KindFill, Fill: converter.FillParams{
			MinSize: minSize, OpeningRadius: openingR, ClosingRadius: closingR, ErosionRadius: erosionR,
			OutlineMode: outlineMode, CannyMode: cannyMode, LowThreshold: cannyLow, HighThreshold: cannyHigh,
			ColorEdges: colorEdges, BackOutline: backOutline,
		}}, nil
	case "lineandfill":
		return converter.Converter{Kind: converter.KindLineAndFill, LineAndFill: converter.LineAndFillParams{
			Radius: lineRadius, MinSize: minSize, OpeningRadius: openingR, OutlineMode: outlineMode,
		}}, nil
	case "outline":
		return converter.Converter{Kind: converter.KindOutline, Outline: converter.OutlineParams{MinSize: minSize, OpeningRadius: openingR}}, nil
	default:
		return converter.Converter{}, fmt.Errorf("unknown converter kind %q", kind)
	}
}
