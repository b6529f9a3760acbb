package mapf

import (
	"testing"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

func line3() *grid.Graph {
	return grid.NewGraph([][]bool{{true, true, true}})
}

func TestPathCostAndPadding(t *testing.T) {
	g := line3()
	a, b, c := g.At(0, 0), g.At(1, 0), g.At(2, 0)
	p := Path{a, b, c}

	if p.Cost(c) != 2 {
		t.Fatalf("Cost() = %d, want 2", p.Cost(c))
	}
	if p.At(5) != c {
		t.Fatalf("At(5) should pad with the final node")
	}
	if p.Makespan() != 2 {
		t.Fatalf("Makespan() = %d, want 2", p.Makespan())
	}

	atGoal := Path{c}
	if atGoal.Cost(c) != 0 {
		t.Fatalf("a path starting at goal should cost 0, got %d", atGoal.Cost(c))
	}
}

func TestPlanValidateDetectsSwapConflict(t *testing.T) {
	g := line3()
	a, b := g.At(0, 0), g.At(1, 0)

	p, err := grid.NewProblem(g, []*grid.Node{a, b}, []*grid.Node{b, a}, false, 5, 0)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}

	plan := Plan{
		Config{a, b},
		Config{b, a}, // agents swap across the same edge: illegal
	}
	if err := plan.Validate(p); err == nil {
		t.Fatalf("Validate() should reject a swap conflict")
	}
}

func TestPlanValidateAccepts(t *testing.T) {
	g := line3()
	a, c := g.At(0, 0), g.At(2, 0)
	b := g.At(1, 0)

	p, err := grid.NewProblem(g, []*grid.Node{a}, []*grid.Node{c}, false, 5, 0)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}

	plan := Plan{Config{a}, Config{b}, Config{c}}
	if err := plan.Validate(p); err != nil {
		t.Fatalf("Validate() rejected a legal plan: %v", err)
	}
}
