package search

import (
	"testing"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
)

func TestFocalSpaceTimeAStarMatchesPlainAStarWithNoOtherPaths(t *testing.T) {
	g := corridor(5)
	start, goal := g.At(0, 0), g.At(4, 0)

	p := FocalSpaceTimeAStar(g, 0, start, goal, nil, nil, 1.0, 20, 42)
	if p == nil {
		t.Fatalf("expected a path")
	}
	if p.Cost(goal) != 4 {
		t.Fatalf("Cost() = %d, want 4", p.Cost(goal))
	}
}

func TestFocalSpaceTimeAStarPrefersConflictFreeDetourWithinBound(t *testing.T) {
	// A 3x2 grid: the direct route from (0,0) to (2,0) runs through (1,0),
	// which another agent occupies for the entire horizon, so taking it
	// always costs one conflict. Going the long way around via the second
	// row costs two extra steps (4 instead of 2) but zero conflicts. At
	// w=2 the detour's f (4) is within w*fMin (2*2=4), so the bound makes
	// room for the focal search to prefer it over the shorter, colliding
	// route.
	g := grid.NewGraph([][]bool{
		{true, true, true},
		{true, true, true},
	})
	start, goal := g.At(0, 0), g.At(2, 0)
	blocked := g.At(1, 0)

	other := mapf.Path{blocked, blocked, blocked, blocked, blocked}
	otherPaths := mapf.Paths{nil, other}

	p := FocalSpaceTimeAStar(g, 0, start, goal, nil, otherPaths, 2.0, 20, 7)
	if p == nil {
		t.Fatalf("expected a path")
	}
	if p.Cost(goal) != 4 {
		t.Fatalf("Cost() = %d, want 4 (the conflict-free detour)", p.Cost(goal))
	}
	for _, v := range p {
		if v == blocked {
			t.Fatalf("path must avoid the permanently occupied vertex %v", blocked)
		}
	}
}

func TestFocalSpaceTimeAStarHonorsMaxTimestep(t *testing.T) {
	g := corridor(5)
	start, goal := g.At(0, 0), g.At(4, 0)
	if p := FocalSpaceTimeAStar(g, 0, start, goal, nil, nil, 1.5, 2, 1); p != nil {
		t.Fatalf("expected no path within a maxTimestep shorter than the shortest distance")
	}
}
