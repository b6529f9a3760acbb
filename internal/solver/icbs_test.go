package solver

import (
	"testing"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

func TestICBSSolvesCrossingAgents(t *testing.T) {
	p := crossProblem(t)
	ic := NewICBS(1, 5000, 10000)
	if err := ic.Solve(p); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !ic.Succeed() {
		t.Fatalf("expected success")
	}
	if err := ic.Solution().Validate(p); err != nil {
		t.Fatalf("invalid plan: %v", err)
	}
}

func TestICBSSingleAgentDirect(t *testing.T) {
	g := grid.NewGraph(passableRows([]string{"....."}))
	p, err := grid.NewProblem(g, []*grid.Node{g.At(0, 0)}, []*grid.Node{g.At(4, 0)}, false, 10, 0)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	ic := NewICBS(1, 5000, 1000)
	if err := ic.Solve(p); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if ic.Solution().SOC(p.Goals) != 4 {
		t.Fatalf("SOC = %d, want 4", ic.Solution().SOC(p.Goals))
	}
}

func TestICBSThreeAgentsInAWideCorridor(t *testing.T) {
	// a two-row corridor lets agents step aside to let an opposing agent
	// pass, giving ICBS's cardinal/bypass machinery real conflicts to
	// resolve without forcing an unsolvable head-on deadlock.
	g := grid.NewGraph(passableRows([]string{
		".......",
		".......",
	}))
	starts := []*grid.Node{g.At(0, 0), g.At(6, 0), g.At(3, 1)}
	goals := []*grid.Node{g.At(6, 0), g.At(0, 0), g.At(3, 0)}
	p, err := grid.NewProblem(g, starts, goals, false, 30, 0)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	ic := NewICBS(2, 5000, 10000)
	if err := ic.Solve(p); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if err := ic.Solution().Validate(p); err != nil {
		t.Fatalf("invalid plan: %v", err)
	}
}
