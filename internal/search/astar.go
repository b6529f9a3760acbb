// Package search implements single-agent constrained shortest paths:
// space-time A* (spec.md §4.1), the low level every high-level solver
// (CBS/ECBS) or MDD-threshold fallback (ICBS) ultimately bottoms out in.
package search

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/libcbs"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
)

// state is a (node, timestep) pair: space-time A*'s search state.
type state struct {
	v *grid.Node
	t int
}

type searchNode struct {
	s      state
	g      int
	h      int
	parent *searchNode
	index  int
}

func (n *searchNode) f() int { return n.g + n.h }

// openHeap orders by: lower f, lower h, higher timestep, then a seeded
// pseudo-random tie value — spec.md §4.1's tie-break order, load-bearing
// for reproducible exploration (spec.md §9 Open Questions).
type openHeap struct {
	nodes []*searchNode
	seed  uint64
}

func (h *openHeap) Len() int { return len(h.nodes) }
func (h *openHeap) Less(i, j int) bool {
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
func (h *openHeap) Swap(i, j int) {
	h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
	h.nodes[i].index, h.nodes[j].index = i, j
}
func (h *openHeap) Push(x any) {
	n := x.(*searchNode)
	n.index = len(h.nodes)
	h.nodes = append(h.nodes, n)
}
func (h *openHeap) Pop() any {
	old := h.nodes
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	h.nodes = old[:n-1]
	return x
}

// tieBreak is a deterministic pseudo-random value seeded by the solver's
// seed and the (node id, timestep) pair, via splitmix64.
func tieBreak(seed uint64, id grid.NodeID, t int) uint64 {
	x := seed ^ (uint64(id) * 0x9E3779B97F4A7C15) ^ (uint64(uint32(t)) << 32)
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}

// SpaceTimeAStar finds a minimum-cost path for agent from start to goal
// honoring constraints, or nil if none exists within maxTimestep. seed
// drives the reproducible tie-break; the same seed on the same inputs
// always yields the same path.
func SpaceTimeAStar(g *grid.Graph, agent int, start, goal *grid.Node, constraints libcbs.Constraints, maxTimestep int, seed uint64) mapf.Path {
	own := constraints.For(agent)
	lastGoalT := own.MaxTimeAt(agent, goal)

	open := &openHeap{seed: seed}
	heap.Init(open)
	startNode := &searchNode{s: state{v: start, t: 0}, g: 0, h: g.PathDist(start, goal)}
	heap.Push(open, startNode)

	best := make(map[state]int)
	best[startNode.s] = 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchNode)
		if g2, ok := best[cur.s]; ok && g2 < cur.g {
			continue // stale heap entry
		}

		if cur.s.v == goal && cur.s.t >= lastGoalT {
			return reconstruct(cur)
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
			heap.Push(open, &searchNode{
				s:      ns,
				g:      ng,
				h:      g.PathDist(nb, goal),
				parent: cur,
			})
		}
	}

	return nil
}

func reconstruct(n *searchNode) mapf.Path {
	var path mapf.Path
	for cur := n; cur != nil; cur = cur.parent {
		path = append(mapf.Path{cur.s.v}, path...)
	}
	return path
}
