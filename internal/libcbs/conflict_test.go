package libcbs

import (
	"testing"

	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
)

func TestFindFirstConflictVertex(t *testing.T) {
	g := corridor(3)
	a, b, c := g.At(0, 0), g.At(1, 0), g.At(2, 0)

	paths := mapf.Paths{
		{a, b, c},
		{c, b, a}, // meets agent 0 head-on at b, t=1 - both move into b, so no swap at t=0->1
	}
	conf := FindFirstConflict(paths)
	if conf == nil {
		t.Fatalf("expected a conflict")
	}
	if conf.IsEdge || conf.V != b || conf.T != 1 {
		t.Fatalf("agents meeting at b at t=1 should report a vertex conflict there, got %+v", conf)
	}
}

func TestFindFirstConflictSwap(t *testing.T) {
	g := corridor(2)
	a, b := g.At(0, 0), g.At(1, 0)

	paths := mapf.Paths{
		{a, b},
		{b, a},
	}
	conf := FindFirstConflict(paths)
	if conf == nil || !conf.IsEdge {
		t.Fatalf("expected a swap conflict, got %+v", conf)
	}
	if conf.Agent1 != 0 || conf.Agent2 != 1 {
		t.Fatalf("conflict should name agents 0 and 1 in order, got %d,%d", conf.Agent1, conf.Agent2)
	}
}

func TestFindFirstConflictNone(t *testing.T) {
	g := corridor(4)
	a, b, c, d := g.At(0, 0), g.At(1, 0), g.At(2, 0), g.At(3, 0)

	paths := mapf.Paths{
		{a, b},
		{d, c},
	}
	if conf := FindFirstConflict(paths); conf != nil {
		t.Fatalf("expected no conflict, got %+v", conf)
	}
}

func TestConflictBranchVertex(t *testing.T) {
	g := corridor(3)
	v := g.At(1, 0)
	conf := &Conflict{Agent1: 0, Agent2: 1, V: v, T: 2}
	cs := conf.Branch()
	if cs[0].Agent != 0 || cs[0].V != v || cs[0].T != 2 || cs[0].IsEdge {
		t.Fatalf("branch[0] malformed: %+v", cs[0])
	}
	if cs[1].Agent != 1 || cs[1].V != v || cs[1].T != 2 || cs[1].IsEdge {
		t.Fatalf("branch[1] malformed: %+v", cs[1])
	}
}

func TestConflictBranchEdge(t *testing.T) {
	g := corridor(2)
	a, b := g.At(0, 0), g.At(1, 0)
	conf := &Conflict{Agent1: 0, Agent2: 1, IsEdge: true, A: a, B: b, T: 3}
	cs := conf.Branch()
	if !cs[0].IsEdge || cs[0].U != a || cs[0].V != b || cs[0].T != 3 {
		t.Fatalf("branch[0] malformed: %+v", cs[0])
	}
	if !cs[1].IsEdge || cs[1].U != b || cs[1].V != a || cs[1].T != 3 {
		t.Fatalf("branch[1] malformed: %+v", cs[1])
	}
}
