package search

import (
	"testing"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/libcbs"
)

func corridor(n int) *grid.Graph {
	row := make([]bool, n)
	for i := range row {
		row[i] = true
	}
	return grid.NewGraph([][]bool{row})
}

func TestSpaceTimeAStarFindsShortestPath(t *testing.T) {
	g := corridor(5)
	start, goal := g.At(0, 0), g.At(4, 0)

	p := SpaceTimeAStar(g, 0, start, goal, nil, 20, 42)
	if p == nil {
		t.Fatalf("expected a path")
	}
	if p.Cost(goal) != 4 {
		t.Fatalf("Cost() = %d, want 4", p.Cost(goal))
	}
	if p[0] != start || p[len(p)-1] != goal {
		t.Fatalf("path must start at start and end at goal")
	}
}

func TestSpaceTimeAStarHonorsVertexConstraint(t *testing.T) {
	g := corridor(3)
	start, goal := g.At(0, 0), g.At(2, 0)
	mid := g.At(1, 0)

	cs := libcbs.Constraints{{Agent: 0, V: mid, T: 1}}
	p := SpaceTimeAStar(g, 0, start, goal, cs, 10, 1)
	if p == nil {
		t.Fatalf("expected a (longer, waiting) path to still exist")
	}
	if p.At(1) == mid {
		t.Fatalf("path must not occupy the forbidden vertex at t=1")
	}
	if p.At(len(p)-1) != goal {
		t.Fatalf("path must still reach goal")
	}
}

func TestSpaceTimeAStarHonorsEdgeConstraint(t *testing.T) {
	g := corridor(2)
	a, b := g.At(0, 0), g.At(1, 0)

	cs := libcbs.Constraints{{Agent: 0, IsEdge: true, U: a, V: b, T: 0}}
	p := SpaceTimeAStar(g, 0, a, b, cs, 10, 7)
	if p == nil {
		t.Fatalf("expected a path that avoids departing a->b at t=0")
	}
	if p.At(1) == b {
		t.Fatalf("path must not depart a for b at t=0")
	}
}

func TestSpaceTimeAStarNoPathWithinBudget(t *testing.T) {
	g := corridor(5)
	start, goal := g.At(0, 0), g.At(4, 0)
	if p := SpaceTimeAStar(g, 0, start, goal, nil, 2, 1); p != nil {
		t.Fatalf("expected no path within a maxTimestep shorter than the shortest distance")
	}
}

func TestSpaceTimeAStarDeterministic(t *testing.T) {
	g := corridor(6)
	start, goal := g.At(0, 0), g.At(5, 0)

	p1 := SpaceTimeAStar(g, 0, start, goal, nil, 20, 99)
	p2 := SpaceTimeAStar(g, 0, start, goal, nil, 20, 99)
	if len(p1) != len(p2) {
		t.Fatalf("same seed should yield identical-length paths")
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("same seed should yield identical paths at index %d", i)
		}
	}
}
