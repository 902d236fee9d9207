// Package pipeline provides Stage, a generic background-worker wrapper for
// long-running computations: colormap generation, a converter chain,
// vectorization, optimization. Each submission hands its input to compute
// as given (callers clone mutable inputs before Submit), publishes its
// result atomically under a single lock,
// and discards results superseded by a later submission before they
// finished. Cancellation is cooperative-by-replacement, never mid-flight.
package pipeline

import "sync"

// Stage runs compute on a background goroutine per Submit. Only one
// computation may be in flight at a time; callers must check
// IsCalculating before Submit. A result that finishes after a newer
// submission has started is discarded rather than published.
type Stage[In, Out any] struct {
	compute func(In) (Out, error)

	mu          sync.Mutex
	gen         uint64
	calculating bool
	lastOut     Out
	lastErr     error
	hasResult   bool
}

// NewStage builds a Stage around compute. compute receives the exact value
// passed to Submit; callers supplying mutable inputs (rasters, VectorData)
// are responsible for cloning before Submit if the original must stay
// theirs, the same deep-copy-at-submission discipline the original
// implementation layered on top of its deep-copy-on-submit via the
// input type's own Clone method.
func NewStage[In, Out any](compute func(In) (Out, error)) *Stage[In, Out] {
	return &Stage[In, Out]{compute: compute}
}

// IsCalculating reports whether a computation is currently running.
func (s *Stage[In, Out]) IsCalculating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calculating
}

// Submit starts compute(in) on a background goroutine. It returns an error
// if a computation is already in flight; the caller is expected to have
// checked IsCalculating first, this is a belt-and-suspenders guard against
// misuse, not an enforced queue.
func (s *Stage[In, Out]) Submit(in In) error {
	s.mu.Lock()
	if s.calculating {
		s.mu.Unlock()
		return errCalculating
	}
	s.calculating = true
	s.gen++
	myGen := s.gen
	s.mu.Unlock()

	go func() {
		out, err := s.compute(in)

		s.mu.Lock()
		defer s.mu.Unlock()
		if myGen != s.gen {
			// Superseded by a later Submit; this result is stale, drop it.
			return
		}
		s.lastOut, s.lastErr, s.hasResult = out, err, true
		s.calculating = false
	}()

	return nil
}

// Result returns the most recently published result. ok is false if no
// computation has ever completed, or if the only completed computation was
// superseded before being published (see Submit).
func (s *Stage[In, Out]) Result() (out Out, err error, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOut, s.lastErr, s.hasResult
}

type calculatingError struct{}

func (calculatingError) Error() string { return "pipeline: stage is already calculating" }

var errCalculating error = calculatingError{}
