package solver

import (
	"testing"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

func TestECBSSolvesCrossingAgents(t *testing.T) {
	p := crossProblem(t)
	e := NewECBS(1, 5000, 10000, 1.5)
	if err := e.Solve(p); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !e.Succeed() {
		t.Fatalf("expected success")
	}
	if err := e.Solution().Validate(p); err != nil {
		t.Fatalf("invalid plan: %v", err)
	}
}

func TestECBSBoundOneMatchesOptimalSOC(t *testing.T) {
	g := grid.NewGraph(passableRows([]string{"....."}))
	p, err := grid.NewProblem(g, []*grid.Node{g.At(0, 0)}, []*grid.Node{g.At(4, 0)}, false, 10, 0)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	e := NewECBS(1, 5000, 1000, 1.0)
	if err := e.Solve(p); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if soc := e.Solution().SOC(p.Goals); soc != 4 {
		t.Fatalf("SOC = %d, want 4 (w=1 should match optimal)", soc)
	}
}

func TestNewECBSClampsSubOneBound(t *testing.T) {
	e := NewECBS(1, 1000, 100, 0.5)
	if e.W != 1 {
		t.Fatalf("W = %f, want clamped to 1", e.W)
	}
}
