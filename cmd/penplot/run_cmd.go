package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/hssscienceclubpr/pen-plotter-2025/colormap"
	"github.com/hssscienceclubpr/pen-plotter-2025/converter"
	"github.com/hssscienceclubpr/pen-plotter-2025/optimize"
	"github.com/hssscienceclubpr/pen-plotter-2025/planner"
	"github.com/hssscienceclubpr/pen-plotter-2025/raster"
	"github.com/hssscienceclubpr/pen-plotter-2025/strokefile"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectorize"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		inputPath    string
		outputPath   string
		previewPath  string
		colormapMode string
		threshold    uint8
		paletteSpec  string
		converterKind string
		minSize      int
		openingR     int
		lineRadius   int
		hatchSpacing int
		hatchAngle   float64
		jitterEps    float64
		minPolyline  float64
		paperWidthMM int
		paperHeightMM int
		marginMM     int
		sizePercent  int
		strategy     string
		n            int
		beamWidth    int
		beamTopK     int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline end to end: image -> stroke file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			log.Info().Str("input", inputPath).Msg("starting pipeline")

			img, err := loadBGR(inputPath)
			if err != nil {
				return err
			}

			cmCfg, err := buildColormapConfig(colormapMode, threshold, paletteSpec, "", "", 0.2)
			if err != nil {
				return err
			}
			cmColormap, err := runStage(img.Clone(), func(img *raster.BGR) (vectordata.ColorMap, error) {
				return colormap.Build(img, cmCfg)
			})
			if err != nil {
				log.Warn().Err(err).Msg("colormap stage failed")
				return err
			}
			log.Debug().Int("colors", len(cmColormap.Names)).Msg("colormap built")

			conv, err := buildConverter(converterKind, minSize, openingR, 0, 0, lineRadius, false, "", 50, 150, "", "")
			if err != nil {
				return err
			}
			mm := vectordata.NewModeMap(cmColormap.Width, cmColormap.Height)
			chain := converter.Chain{conv}
			ms, err := runStage(img.Clone(), func(img *raster.BGR) (*converter.MaskSet, error) {
				ms := converter.NewMaskSet(cmColormap)
				if err := chain.Run(img, cmColormap, mm, 0, ms); err != nil {
					return nil, err
				}
				return ms, nil
			})
			if err != nil {
				log.Warn().Err(err).Msg("convert stage failed")
				return err
			}

			vecCfg := vectorize.DefaultPipelineConfig()
			vecCfg.HatchLineSpacing = hatchSpacing
			vecCfg.HatchLineAngle = hatchAngle
			vecCfg.JitterEpsilon = jitterEps
			vecCfg.MinPolylineLen = minPolyline
			data, err := runStage(ms, func(ms *converter.MaskSet) (vectordata.VectorData, error) {
				return vectorize.Run(ms, vecCfg), nil
			})
			if err != nil {
				return err
			}
			log.Debug().Int("polylines", countPolylines(data)).Msg("vectorized")

			planCfg := planner.Config{
				PaperWidthMM: paperWidthMM, PaperHeightMM: paperHeightMM, MarginMM: marginMM, SizePercent: sizePercent,
			}
			planned, err := runStage(data, func(data vectordata.VectorData) (vectordata.VectorData, error) {
				return planner.Plan(data, planCfg)
			})
			if err != nil {
				log.Warn().Err(err).Msg("plan stage failed")
				return err
			}

			strat, err := buildStrategy(strategy, n, beamWidth, beamTopK)
			if err != nil {
				return err
			}
			drawPath, err := runStage(toUnoptimizedPath(planned), func(input optimize.UnoptimizedPath) (optimize.DrawPath, error) {
				return optimize.Optimize(input, strat), nil
			})
			if err != nil {
				return err
			}
			log.Debug().Msg(optimize.Analyze(drawPath).String())

			out, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outputPath, err)
			}
			if err := strokefile.WritePath(out, drawPath); err != nil {
				out.Close()
				os.Remove(outputPath)
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			if previewPath != "" {
				if err := writePreview(previewPath, planned); err != nil {
					return err
				}
			}

			log.Info().Str("output", outputPath).Msg("pipeline complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "source image path (required)")
	cmd.Flags().StringVar(&outputPath, "out", "output.stroke", "output stroke file path")
	cmd.Flags().StringVar(&previewPath, "preview", "", "optional PNG preview of the planned VectorData")
	cmd.Flags().StringVar(&colormapMode, "colormap-mode", "binary", "colormap mode: binary, multi, achro")
	cmd.Flags().Uint8Var(&threshold, "threshold", 128, "binary mode grayscale threshold")
	cmd.Flags().StringVar(&paletteSpec, "palette", "", "comma-separated name:RRGGBB entries (multi/achro modes)")
	cmd.Flags().StringVar(&converterKind, "converter", "edge", "converter kind: edge, fill, lineandfill, outline")
	cmd.Flags().IntVar(&minSize, "min-size", 4, "minimum connected-component size to keep")
	cmd.Flags().IntVar(&openingR, "opening-radius", 0, "morphological opening radius")
	cmd.Flags().IntVar(&lineRadius, "line-radius", 2, "lineandfill converter: line/fill classification radius")
	cmd.Flags().IntVar(&hatchSpacing, "hatch-spacing", 4, "default hatch line spacing in pixels")
	cmd.Flags().Float64Var(&hatchAngle, "hatch-angle", 135, "default hatch line angle in degrees")
	cmd.Flags().Float64Var(&jitterEps, "jitter-epsilon", 2, "jitter-removal distance threshold")
	cmd.Flags().Float64Var(&minPolyline, "min-polyline-len", 2, "minimum traced polyline length to keep")
	cmd.Flags().IntVar(&paperWidthMM, "paper-width", 210, "paper width in mm")
	cmd.Flags().IntVar(&paperHeightMM, "paper-height", 297, "paper height in mm")
	cmd.Flags().IntVar(&marginMM, "margin", 10, "paper margin in mm")
	cmd.Flags().IntVar(&sizePercent, "size-percent", 100, "final scale percentage, 1-100")
	cmd.Flags().StringVar(&strategy, "strategy", "greedy", "ordering strategy: greedy, beam")
	cmd.Flags().IntVar(&n, "n", 3, "greedy strategy: lookahead depth")
	cmd.Flags().IntVar(&beamWidth, "beam-width", 12, "beam strategy: beam width")
	cmd.Flags().IntVar(&beamTopK, "beam-topk", 8, "beam strategy: candidates considered per expansion")
	cmd.MarkFlagRequired("input")

	return cmd
}

func writePreview(path string, data vectordata.VectorData) error {
	img := vectordata.Render(data, 1)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encoding preview: %w", err)
	}
	return f.Close()
}
