package main

import (
	"fmt"
	"os"

	"github.com/hssscienceclubpr/pen-plotter-2025/optimize"
	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
	"github.com/spf13/cobra"
)

func newOptimizeCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		strategy   string
		n          int
		width      int
		topK       int
		report     bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Order VectorData's polylines/contours into a DrawPath (greedy n-lookahead or beam search)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			log.Debug().Str("stage", "optimize").Msg("starting")

			data, err := loadGob[vectordata.VectorData](inputPath)
			if err != nil {
				return err
			}

			strat, err := buildStrategy(strategy, n, width, topK)
			if err != nil {
				log.Warn().Err(err).Msg("invalid configuration")
				return err
			}

			input := toUnoptimizedPath(data)
			out, err := runStage(input, func(input optimize.UnoptimizedPath) (optimize.DrawPath, error) {
				return optimize.Optimize(input, strat), nil
			})
			if err != nil {
				return err
			}
			if err := saveGob(outputPath, out); err != nil {
				return err
			}
			if report {
				fmt.Fprint(os.Stderr, optimize.Analyze(out).String())
			}
			log.Debug().Str("stage", "optimize").Msg("done")
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "in", "planned.gob", "input VectorData path")
	cmd.Flags().StringVar(&outputPath, "out", "drawpath.gob", "output DrawPath path")
	cmd.Flags().StringVar(&strategy, "strategy", "greedy", "ordering strategy: greedy, beam")
	cmd.Flags().IntVar(&n, "n", 3, "greedy strategy: lookahead depth")
	cmd.Flags().IntVar(&width, "beam-width", 12, "beam strategy: beam width")
	cmd.Flags().IntVar(&topK, "beam-topk", 8, "beam strategy: candidates considered per expansion")
	cmd.Flags().BoolVar(&report, "report", false, "print a travel-distance report to stderr")

	return cmd
}

func buildStrategy(name string, n, width, topK int) (optimize.Strategy, error) {
	switch name {
	case "greedy":
		return optimize.Strategy{Kind: optimize.KindGreedy, N: n}, nil
	case "beam":
		return optimize.Strategy{Kind: optimize.KindBeam, Width: width, TopK: topK}, nil
	default:
		return optimize.Strategy{}, fmt.Errorf("unknown optimize strategy %q", name)
	}
}

// toUnoptimizedPath flattens VectorData's hatch lines into degenerate
// 2-point polylines (order within a hatch family is not semantically
// meaningful, only total travel is) and carries polylines/contours
// through unchanged.
func toUnoptimizedPath(data vectordata.VectorData) optimize.UnoptimizedPath {
	out := optimize.UnoptimizedPath{
		Polylines:  make(map[int][][]vectordata.Point),
		Contours:   make(map[int][][]vectordata.Point),
		ColorNames: data.ColorNames,
	}
	for id, pls := range data.Polylines {
		for _, pl := range pls {
			out.Polylines[id] = append(out.Polylines[id], pl.Points)
		}
	}
	for id, cs := range data.Contours {
		for _, c := range cs {
			out.Contours[id] = append(out.Contours[id], c.Points)
		}
	}
	for id, hs := range data.HatchLines {
		for _, h := range hs {
			out.Polylines[id] = append(out.Polylines[id], []vectordata.Point{h.A, h.B})
		}
	}
	return out
}
