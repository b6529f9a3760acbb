package search

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/libcbs"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
)

// focalNode is SpaceTimeAStar's searchNode plus the conflict count of the
// path prefix start..s against otherPaths - the secondary key the low-level
// focal search minimizes within the w*fMin envelope.
type focalNode struct {
	s         state
	g         int
	h         int
	conflicts int
	parent    *focalNode
	index     int
}

func (n *focalNode) f() int { return n.g + n.h }

// focalOpenHeap is ordered by f exactly like astar.go's openHeap - it is
// where w*fMin is read from, and every node eligible for the FOCAL subset
// is read out of it.
type focalOpenHeap struct {
	nodes []*focalNode
	seed  uint64
}

func (h *focalOpenHeap) Len() int { return len(h.nodes) }
func (h *focalOpenHeap) Less(i, j int) bool {
	a, b := h.nodes[i], h.nodes[j]
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	if a.s.t != b.s.t {
		return a.s.t > b.s.t
	}
	return tieBreak(h.seed, a.s.v.ID, a.s.t) < tieBreak(h.seed, b.s.v.ID, b.s.t)
}
func (h *focalOpenHeap) Swap(i, j int) {
	h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
	h.nodes[i].index, h.nodes[j].index = i, j
}
func (h *focalOpenHeap) Push(x any) {
	n := x.(*focalNode)
	n.index = len(h.nodes)
	h.nodes = append(h.nodes, n)
}
func (h *focalOpenHeap) Pop() any {
	old := h.nodes
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	h.nodes = old[:n-1]
	return x
}

// focalSubsetHeap orders the w*fMin-bounded FOCAL subset by conflict count,
// f as a tie-break - the same OPEN/FOCAL split ecbs.go runs at the high
// level (ecbsOpenHeap/ecbsFocalHeap), rebuilt here per expansion instead of
// per high-level node.
type focalSubsetHeap []*focalNode

func (h focalSubsetHeap) Len() int { return len(h) }
func (h focalSubsetHeap) Less(i, j int) bool {
	if h[i].conflicts != h[j].conflicts {
		return h[i].conflicts < h[j].conflicts
	}
	return h[i].f() < h[j].f()
}
func (h focalSubsetHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *focalSubsetHeap) Push(x any)   { *h = append(*h, x.(*focalNode)) }
func (h *focalSubsetHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// FocalSpaceTimeAStar is ECBS's low level (spec.md §4.4): same state space
// and cost model as SpaceTimeAStar, but it expands the lowest-conflict node
// among every OPEN node within w times the current minimum f, instead of
// always the lowest-f node. otherPaths is the rest of the high-level node's
// joint plan (nil entries, for not-yet-planned agents, contribute no
// conflicts). w == 1 degenerates to plain lowest-f expansion, i.e.
// SpaceTimeAStar.
func FocalSpaceTimeAStar(g *grid.Graph, agent int, start, goal *grid.Node, constraints libcbs.Constraints, otherPaths mapf.Paths, w float64, maxTimestep int, seed uint64) mapf.Path {
	own := constraints.For(agent)
	lastGoalT := own.MaxTimeAt(agent, goal)

	open := &focalOpenHeap{seed: seed}
	heap.Init(open)
	startNode := &focalNode{s: state{v: start, t: 0}, g: 0, h: g.PathDist(start, goal)}
	heap.Push(open, startNode)

	best := make(map[state]int)
	best[startNode.s] = 0

	for open.Len() > 0 {
		fMin := open.nodes[0].f()
		bound := int(w * float64(fMin))

		focal := &focalSubsetHeap{}
		heap.Init(focal)
		for _, n := range open.nodes {
			if n.f() <= bound {
				heap.Push(focal, n)
			}
		}

		cur := heap.Pop(focal).(*focalNode)
		heap.Remove(open, cur.index)

		if g2, ok := best[cur.s]; ok && g2 < cur.g {
			continue // stale heap entry
		}

		if cur.s.v == goal && cur.s.t >= lastGoalT {
			return reconstructFocal(cur)
		}
		if cur.s.t >= maxTimestep {
			continue
		}

		candidates := append([]*grid.Node{cur.s.v}, cur.s.v.Neighbors()...)
		for _, nb := range candidates {
			if libcbs.Blocked(own, agent, cur.s.v, nb, cur.s.t) {
				continue
			}
			ns := state{v: nb, t: cur.s.t + 1}
			ng := cur.g + 1
			if prev, ok := best[ns]; ok && prev <= ng {
				continue
			}
			best[ns] = ng
			heap.Push(open, &focalNode{
				s:         ns,
				g:         ng,
				h:         g.PathDist(nb, goal),
				conflicts: cur.conflicts + transitionConflicts(agent, cur.s.v, nb, cur.s.t, otherPaths),
				parent:    cur,
			})
		}
	}

	return nil
}

func reconstructFocal(n *focalNode) mapf.Path {
	var path mapf.Path
	for cur := n; cur != nil; cur = cur.parent {
		path = append(mapf.Path{cur.s.v}, path...)
	}
	return path
}

// transitionConflicts counts, across every other agent's current path, how
// many vertex or swap conflicts the single transition from->to at time
// t->t+1 introduces.
func transitionConflicts(agent int, from, to *grid.Node, t int, otherPaths mapf.Paths) int {
	count := 0
	for j, other := range otherPaths {
		if j == agent || other == nil {
			continue
		}
		if to == other.At(t+1) {
			count++
		}
		if from == other.At(t+1) && to == other.At(t) && from != to {
			count++
		}
	}
	return count
}
