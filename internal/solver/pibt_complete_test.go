package solver

import (
	"testing"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

func TestPIBTCompleteSolvesCrossingAgents(t *testing.T) {
	g := grid.NewGraph(passableRows([]string{
		"@@.@@",
		"@@.@@",
		".....",
		"@@.@@",
		"@@.@@",
	}))
	starts := []*grid.Node{g.At(2, 0), g.At(0, 2)}
	goals := []*grid.Node{g.At(2, 4), g.At(4, 2)}
	p, err := grid.NewProblem(g, starts, goals, false, 50, 0)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}

	s := NewPIBTComplete(5, 5000, 8)
	if err := s.Solve(p); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if err := s.Solution().Validate(p); err != nil {
		t.Fatalf("invalid plan: %v", err)
	}
}
