package libcbs

import (
	"testing"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

func corridor(n int) *grid.Graph {
	row := make([]bool, n)
	for i := range row {
		row[i] = true
	}
	return grid.NewGraph([][]bool{row})
}

func TestBuildMDDValidAtShortestCost(t *testing.T) {
	g := corridor(5)
	start, goal := g.At(0, 0), g.At(4, 0)
	c := g.PathDist(start, goal)

	m := Build(g, 0, start, goal, c, nil)
	if !m.Valid {
		t.Fatalf("MDD at shortest-path cost should be valid")
	}
	path := m.Path()
	if len(path) != c+1 || path[0] != start || path[c] != goal {
		t.Fatalf("Path() = %v, want a length-%d path from start to goal", path, c+1)
	}
}

func TestBuildMDDInvalidBelowShortestCost(t *testing.T) {
	g := corridor(5)
	start, goal := g.At(0, 0), g.At(4, 0)
	c := g.PathDist(start, goal)

	m := Build(g, 0, start, goal, c-1, nil)
	if m.Valid {
		t.Fatalf("MDD below the shortest-path cost must be invalid")
	}
}

func TestBuildMDDPrunesBlockedVertex(t *testing.T) {
	g := corridor(3)
	start, goal := g.At(0, 0), g.At(2, 0)
	mid := g.At(1, 0)

	// in a 3-cell corridor the only length-2 path passes through mid;
	// forbidding it at t=1 must invalidate the MDD.
	cs := Constraints{{Agent: 0, V: mid, T: 1}}
	m := Build(g, 0, start, goal, 2, cs)
	if m.Valid {
		t.Fatalf("blocking the only path's middle vertex should invalidate the MDD")
	}
}

func TestIsMandatory(t *testing.T) {
	g := corridor(3)
	start, goal := g.At(0, 0), g.At(2, 0)
	m := Build(g, 0, start, goal, 2, nil)
	if !m.Valid {
		t.Fatalf("expected a valid MDD")
	}
	mid := g.At(1, 0)
	if !m.IsMandatory(1, mid) {
		t.Fatalf("in a 3-cell corridor the middle cell is mandatory at t=1")
	}
}
