// Package optimize orders a color's open polylines and closed contours
// into a single pen-down/pen-up draw path, minimizing travel distance
// between pieces of geometry. Grounded on
// original_source/lppe/optimizer/optimizer.cpp.
package optimize

import (
	"math"
	"sort"

	"github.com/hssscienceclubpr/pen-plotter-2025/vectordata"
)

// UnoptimizedPath is the per-color geometry Optimize consumes, mirroring
// unoptimized_path.
type UnoptimizedPath struct {
	Polylines  map[int][][]vectordata.Point
	Contours   map[int][][]vectordata.Point
	ColorNames map[int]string
}

// DrawPath is the per-color ordered sequence of pen-down strokes
// Optimize produces, mirroring draw_path.
type DrawPath struct {
	Paths      map[int][][]vectordata.Point
	ColorNames map[int]string
}

// Kind tags which Strategy variant is in effect.
type Kind int

const (
	KindGreedy Kind = iota
	KindBeam
)

// Strategy is the closed sum type selecting an ordering algorithm,
// replacing the Optimizer class's commented-out-alternative-calls
// pattern with an explicit choice.
type Strategy struct {
	Kind  Kind
	N     int // Greedy: lookahead depth, default 3
	Width int // Beam: beam width, default 12
	TopK  int // Beam: candidates expanded per beam node, default 8
}

// DefaultGreedy returns the n-lookahead greedy strategy with the
// original's active default (n=3), matching Optimizer::optimize_greedy.
func DefaultGreedy() Strategy { return Strategy{Kind: KindGreedy, N: 3} }

// DefaultBeam returns the beam-search strategy with the original's
// active defaults (beam_width=12, top_k=8), matching
// Optimizer::optimize_beam_search.
func DefaultBeam() Strategy { return Strategy{Kind: KindBeam, Width: 12, TopK: 8} }

// Optimize orders every color's geometry into a DrawPath per strategy.
func Optimize(input UnoptimizedPath, strategy Strategy) DrawPath {
	switch strategy.Kind {
	case KindBeam:
		width, topK := strategy.Width, strategy.TopK
		if width <= 0 {
			width = 12
		}
		if topK <= 0 {
			topK = 8
		}
		return beamSearch(input, width, topK)
	default:
		n := strategy.N
		if n <= 0 {
			n = 3
		}
		return greedyNLookahead(input, n)
	}
}

func distance(a, b vectordata.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Hypot(dx, dy)
}

// candidatesFor collects one color's open polylines (as-is) followed by
// its contours (closed if not already, by re-appending the first
// point), matching every optimizer variant's candidate-gathering step.
func candidatesFor(input UnoptimizedPath, colorID int) [][]vectordata.Point {
	var candidates [][]vectordata.Point
	for _, pts := range input.Polylines[colorID] {
		if len(pts) >= 2 {
			candidates = append(candidates, pts)
		}
	}
	for _, pts := range input.Contours[colorID] {
		if len(pts) < 2 {
			continue
		}
		closed := append([]vectordata.Point(nil), pts...)
		if !pts[0].Equal(pts[len(pts)-1]) {
			closed = append(closed, pts[0])
		}
		candidates = append(candidates, closed)
	}
	return candidates
}

func reversed(pts []vectordata.Point) []vectordata.Point {
	out := make([]vectordata.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// greedyNLookahead picks, for each color, the candidate whose first
// n-step greedy run (from that candidate as the start) accumulates the
// least travel distance, then discards that lookahead run and restarts
// a fresh, unbounded greedy pass from just the winning start candidate.
// This "pick best start, then restart from scratch" behavior is
// preserved literally from greedy_optimize_nlookahead: it is not
// equivalent to simply running greedy from the best start once (the
// lookahead's own choices are thrown away), but that is exactly what
// the original does.
func greedyNLookahead(input UnoptimizedPath, n int) DrawPath {
	out := DrawPath{Paths: make(map[int][][]vectordata.Point), ColorNames: input.ColorNames}

	for colorID := range input.ColorNames {
		candidates := candidatesFor(input, colorID)
		if len(candidates) == 0 {
			continue
		}

		bestStart := 0
		bestLength := math.Inf(1)

		for startIdx := range candidates {
			used := make([]bool, len(candidates))
			used[startIdx] = true
			currentEnd := candidates[startIdx][len(candidates[startIdx])-1]
			total := 0.0

			steps := n
			if steps > len(candidates) {
				steps = len(candidates)
			}
			for step := 1; step < steps; step++ {
				minDist := math.Inf(1)
				nextIdx := -1
				reverse := false
				for i, pts := range candidates {
					if used[i] || len(pts) == 0 {
						continue
					}
					dFront := distance(currentEnd, pts[0])
					dBack := distance(currentEnd, pts[len(pts)-1])
					if dFront < minDist {
						minDist, nextIdx, reverse = dFront, i, false
					}
					if dBack < minDist {
						minDist, nextIdx, reverse = dBack, i, true
					}
				}
				if nextIdx < 0 {
					break
				}
				next := candidates[nextIdx]
				if reverse {
					next = reversed(next)
				}
				used[nextIdx] = true
				currentEnd = next[len(next)-1]
				total += minDist
			}

			if total < bestLength {
				bestLength = total
				bestStart = startIdx
			}
		}

		seq := [][]vectordata.Point{candidates[bestStart]}
		used := make([]bool, len(candidates))
		used[bestStart] = true
		currentEnd := candidates[bestStart][len(candidates[bestStart])-1]

		for {
			minDist := math.Inf(1)
			nextIdx := -1
			reverse := false
			for i, pts := range candidates {
				if used[i] || len(pts) == 0 {
					continue
				}
				dFront := distance(currentEnd, pts[0])
				dBack := distance(currentEnd, pts[len(pts)-1])
				if dFront < minDist {
					minDist, nextIdx, reverse = dFront, i, false
				}
				if dBack < minDist {
					minDist, nextIdx, reverse = dBack, i, true
				}
			}
			if nextIdx < 0 {
				break
			}
			next := candidates[nextIdx]
			if reverse {
				next = reversed(next)
			}
			seq = append(seq, next)
			used[nextIdx] = true
			currentEnd = next[len(next)-1]
		}

		out.Paths[colorID] = seq
	}

	return out
}

// beamSearch orders each color's candidates via beam search, keeping
// the Width lowest-total-length partial sequences at every step and
// expanding each by only its TopK nearest unused candidates. Grounded
// on beam_search_optimize_fast.
type beamNode struct {
	seq         [][]vectordata.Point
	used        []bool
	currentEnd  vectordata.Point
	totalLength float64
}

type candInfo struct {
	idx     int
	reverse bool
	dist    float64
}

func beamSearch(input UnoptimizedPath, width, topK int) DrawPath {
	out := DrawPath{Paths: make(map[int][][]vectordata.Point), ColorNames: input.ColorNames}

	for colorID := range input.ColorNames {
		candidates := candidatesFor(input, colorID)
		if len(candidates) == 0 {
			out.Paths[colorID] = nil
			continue
		}

		initial := beamNode{
			seq:        [][]vectordata.Point{candidates[0]},
			used:       make([]bool, len(candidates)),
			currentEnd: candidates[0][len(candidates[0])-1],
		}
		initial.used[0] = true
		beam := []beamNode{initial}

		for step := 1; step < len(candidates); step++ {
			var nextBeam []beamNode

			for _, node := range beam {
				var dists []candInfo
				for i, pts := range candidates {
					if node.used[i] || len(pts) == 0 {
						continue
					}
					dFront := distance(node.currentEnd, pts[0])
					dBack := distance(node.currentEnd, pts[len(pts)-1])
					if dFront <= dBack {
						dists = append(dists, candInfo{i, false, dFront})
					} else {
						dists = append(dists, candInfo{i, true, dBack})
					}
				}
				sort.Slice(dists, func(a, b int) bool { return dists[a].dist < dists[b].dist })

				limit := topK
				if limit > len(dists) {
					limit = len(dists)
				}
				for j := 0; j < limit; j++ {
					c := dists[j]
					chosen := candidates[c.idx]
					if c.reverse {
						chosen = reversed(chosen)
					}
					newUsed := append([]bool(nil), node.used...)
					newUsed[c.idx] = true
					newNode := beamNode{
						seq:         append(append([][]vectordata.Point(nil), node.seq...), chosen),
						used:        newUsed,
						currentEnd:  chosen[len(chosen)-1],
						totalLength: node.totalLength + c.dist,
					}
					nextBeam = append(nextBeam, newNode)
				}
			}

			sort.Slice(nextBeam, func(a, b int) bool { return nextBeam[a].totalLength < nextBeam[b].totalLength })
			if len(nextBeam) > width {
				nextBeam = nextBeam[:width]
			}
			beam = nextBeam
		}

		if len(beam) > 0 {
			var ordered [][]vectordata.Point
			for _, pts := range beam[0].seq {
				if len(pts) >= 2 {
					ordered = append(ordered, pts)
				}
			}
			out.Paths[colorID] = ordered
		} else {
			out.Paths[colorID] = nil
		}
	}

	return out
}

