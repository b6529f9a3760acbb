package unlabeled

import (
	"testing"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

func unlabeledProblem(t *testing.T, g *grid.Graph, starts, goals []*grid.Node) *grid.Problem {
	t.Helper()
	p, err := grid.NewProblem(g, starts, goals, true, 50, 0)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	return p
}

func TestGoalSwapperCoversGoalSet(t *testing.T) {
	g := grid.NewGraph(passableRows([]string{"....."}))
	starts := []*grid.Node{g.At(0, 0), g.At(4, 0)}
	goals := []*grid.Node{g.At(4, 0), g.At(0, 0)}
	p := unlabeledProblem(t, g, starts, goals)

	s := NewGoalSwapper(1, 5000)
	if err := s.Solve(p); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !s.Succeed() {
		t.Fatalf("expected success")
	}
	if err := s.Solution().Validate(p); err != nil {
		t.Fatalf("invalid plan: %v", err)
	}
}

func TestNaiveGoalSwapperCoversGoalSet(t *testing.T) {
	g := grid.NewGraph(passableRows([]string{"....."}))
	starts := []*grid.Node{g.At(0, 0), g.At(4, 0)}
	goals := []*grid.Node{g.At(4, 0), g.At(0, 0)}
	p := unlabeledProblem(t, g, starts, goals)

	s := NewNaiveGoalSwapper(1, 5000)
	if err := s.Solve(p); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if err := s.Solution().Validate(p); err != nil {
		t.Fatalf("invalid plan: %v", err)
	}
}

func TestNextStepMovesTowardGoal(t *testing.T) {
	g := grid.NewGraph(passableRows([]string{"....."}))
	v, goal := g.At(1, 0), g.At(4, 0)
	n := nextStep(g, v, goal)
	if n != g.At(2, 0) {
		t.Fatalf("nextStep should advance toward goal, got node at different position")
	}
}

func TestNextStepAtGoalStays(t *testing.T) {
	g := grid.NewGraph(passableRows([]string{"..."}))
	v := g.At(1, 0)
	if n := nextStep(g, v, v); n != v {
		t.Fatalf("nextStep at goal should return goal itself")
	}
}
