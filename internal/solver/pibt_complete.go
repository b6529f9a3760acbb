package solver

import (
	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

// PIBTComplete wraps PIBT in an outer loop that re-seeds priorities after
// every failed attempt, trading PIBT's speed for eventual completeness
// (spec.md §4.6): given enough re-seeds, some priority ordering resolves
// any residual deadlock, so this terminates successfully whenever a
// solution exists and the overall time budget allows enough attempts.
type PIBTComplete struct {
	*Base
	// MaxAttempts bounds how many re-seeded PIBT runs are tried before
	// giving up; 0 means keep retrying until OverCompTime.
	MaxAttempts int
}

// NewPIBTComplete constructs a PIBT_COMPLETE solver.
func NewPIBTComplete(seed uint64, maxCompTimeMS, maxAttempts int) *PIBTComplete {
	return &PIBTComplete{Base: NewBase(seed, maxCompTimeMS), MaxAttempts: maxAttempts}
}

func (s *PIBTComplete) Name() string { return "PIBT_COMPLETE" }

func (s *PIBTComplete) Solve(p *grid.Problem) error {
	s.StartClock()

	var lastErr error = errNoSolution
	for attempt := 0; s.MaxAttempts == 0 || attempt < s.MaxAttempts; attempt++ {
		if s.OverCompTime() {
			return errTimedOut
		}

		inner := NewPIBT(s.Seed+uint64(attempt)*0x9E3779B97F4A7C15, 0)
		remaining := s.MaxCompTime - s.ElapsedTime()
		if s.MaxCompTime > 0 && remaining <= 0 {
			return errTimedOut
		}
		if s.MaxCompTime > 0 {
			inner.MaxCompTime = remaining
		}
		inner.StartClock()

		err := inner.Solve(p)
		if err == nil {
			s.MarkSolved(inner.Solution())
			return nil
		}
		lastErr = err
	}
	return lastErr
}
