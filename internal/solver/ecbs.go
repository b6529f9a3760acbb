package solver

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/libcbs"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
	"github.com/elektrokombinacija/mapf-solver/internal/search"
)

// ECBS is bounded-suboptimal CBS (spec.md §4.4): a two-queue OPEN/FOCAL
// focal search where OPEN orders by SOC lower bound and FOCAL - the subset
// of OPEN within w times the current minimum - orders by conflict count, a
// cheap proxy for how much further expansion a node is likely to need.
type ECBS struct {
	*Base
	MaxHighLevelNodes int
	// W is the suboptimality bound: returned solutions cost at most W
	// times optimal SOC. W == 1 degenerates to plain CBS.
	W float64
}

// NewECBS constructs an ECBS solver with suboptimality bound w.
func NewECBS(seed uint64, maxCompTimeMS, maxHighLevelNodes int, w float64) *ECBS {
	if w < 1 {
		w = 1
	}
	return &ECBS{Base: NewBase(seed, maxCompTimeMS), MaxHighLevelNodes: maxHighLevelNodes, W: w}
}

func (e *ECBS) Name() string { return "ECBS" }

type ecbsNode struct {
	constraints libcbs.Constraints
	paths       mapf.Paths
	fMin        int // SOC lower bound
	numConflict int // focal-set secondary ordering key
	index       int
}

type ecbsOpenHeap []*ecbsNode

func (h ecbsOpenHeap) Len() int           { return len(h) }
func (h ecbsOpenHeap) Less(i, j int) bool { return h[i].fMin < h[j].fMin }
func (h ecbsOpenHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *ecbsOpenHeap) Push(x any) {
	n := x.(*ecbsNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *ecbsOpenHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

type ecbsFocalHeap []*ecbsNode

func (h ecbsFocalHeap) Len() int           { return len(h) }
func (h ecbsFocalHeap) Less(i, j int) bool { return h[i].numConflict < h[j].numConflict }
func (h ecbsFocalHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *ecbsFocalHeap) Push(x any)        { *h = append(*h, x.(*ecbsNode)) }
func (h *ecbsFocalHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

func (e *ECBS) Solve(p *grid.Problem) error {
	e.StartClock()

	root := &ecbsNode{paths: make(mapf.Paths, p.N)}
	if !e.planAll(p, root) {
		return errNoInitialPaths
	}
	root.fMin = root.paths.SOC(p.Goals)
	root.numConflict = len(libcbs.FindAllConflicts(root.paths))

	open := &ecbsOpenHeap{}
	heap.Init(open)
	heap.Push(open, root)

	for open.Len() > 0 {
		if e.OverCompTime() {
			return errTimedOut
		}
		if e.NodeExpanded(e.MaxHighLevelNodes) {
			return errNodeBudgetExceeded
		}

		fMinBest := (*open)[0].fMin
		bound := int(e.W * float64(fMinBest))

		focal := &ecbsFocalHeap{}
		heap.Init(focal)
		for _, n := range *open {
			if n.fMin <= bound {
				heap.Push(focal, n)
			}
		}

		var node *ecbsNode
		if focal.Len() > 0 {
			node = heap.Pop(focal).(*ecbsNode)
			e.removeFromOpen(open, node)
		} else {
			node = heap.Pop(open).(*ecbsNode)
		}

		conflict := libcbs.FindFirstConflict(node.paths)
		if conflict == nil {
			e.MarkSolved(mapf.PlanFromPaths(node.paths))
			return nil
		}

		branch := conflict.Branch()
		for _, con := range branch {
			child := &ecbsNode{
				constraints: append(append(libcbs.Constraints{}, node.constraints...), con),
				paths:       append(mapf.Paths{}, node.paths...),
			}
			if e.replan(p, child, con.Agent) {
				child.fMin = child.paths.SOC(p.Goals)
				child.numConflict = len(libcbs.FindAllConflicts(child.paths))
				heap.Push(open, child)
			}
		}
	}

	return errNoSolution
}

func (e *ECBS) removeFromOpen(open *ecbsOpenHeap, target *ecbsNode) {
	for i, n := range *open {
		if n == target {
			heap.Remove(open, i)
			return
		}
	}
}

func (e *ECBS) planAll(p *grid.Problem, node *ecbsNode) bool {
	for i := 0; i < p.N; i++ {
		path := search.FocalSpaceTimeAStar(p.Graph, i, p.Starts[i], p.Goals[i], node.constraints, node.paths, e.W, p.MaxTimestep, e.Seed)
		if path == nil {
			return false
		}
		node.paths[i] = path
	}
	return true
}

func (e *ECBS) replan(p *grid.Problem, node *ecbsNode, agent int) bool {
	path := search.FocalSpaceTimeAStar(p.Graph, agent, p.Starts[agent], p.Goals[agent], node.constraints, node.paths, e.W, p.MaxTimestep, e.Seed)
	if path == nil {
		return false
	}
	node.paths[agent] = path
	return true
}
