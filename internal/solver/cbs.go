package solver

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/libcbs"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
	"github.com/elektrokombinacija/mapf-solver/internal/search"
)

// CBS implements plain Conflict-Based Search (spec.md §4.2): a high-level
// search over a constraint tree, branching on the first discovered conflict,
// re-planning only the newly constrained agent's path at each child.
type CBS struct {
	*Base
	MaxHighLevelNodes int
}

// NewCBS constructs a CBS solver seeded and time-bounded like every other
// solver in this package.
func NewCBS(seed uint64, maxCompTimeMS, maxHighLevelNodes int) *CBS {
	return &CBS{Base: NewBase(seed, maxCompTimeMS), MaxHighLevelNodes: maxHighLevelNodes}
}

func (c *CBS) Name() string { return "CBS" }

type cbsNode struct {
	constraints libcbs.Constraints
	paths       mapf.Paths
	cost        int
	index       int
}

type cbsHeap []*cbsNode

func (h cbsHeap) Len() int           { return len(h) }
func (h cbsHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }
func (h cbsHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *cbsHeap) Push(x any) {
	n := x.(*cbsNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *cbsHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// Solve runs CBS to completion, timeout, or node-budget exhaustion.
func (c *CBS) Solve(p *grid.Problem) error {
	c.StartClock()

	root := &cbsNode{}
	root.paths = make(mapf.Paths, p.N)
	if !c.planAll(p, root) {
		return errNoInitialPaths
	}
	root.cost = root.paths.SOC(p.Goals)

	open := &cbsHeap{}
	heap.Init(open)
	heap.Push(open, root)

	for open.Len() > 0 {
		if c.OverCompTime() {
			return errTimedOut
		}
		if c.NodeExpanded(c.MaxHighLevelNodes) {
			return errNodeBudgetExceeded
		}

		node := heap.Pop(open).(*cbsNode)
		conflict := libcbs.FindFirstConflict(node.paths)
		if conflict == nil {
			c.MarkSolved(mapf.PlanFromPaths(node.paths))
			return nil
		}

		branch := conflict.Branch()
		for _, con := range branch {
			child := &cbsNode{
				constraints: append(append(libcbs.Constraints{}, node.constraints...), con),
				paths:       append(mapf.Paths{}, node.paths...),
			}
			if c.replan(p, child, con.Agent) {
				child.cost = child.paths.SOC(p.Goals)
				heap.Push(open, child)
			}
		}
	}

	return errNoSolution
}

// planAll plans every agent's initial, unconstrained path.
func (c *CBS) planAll(p *grid.Problem, node *cbsNode) bool {
	for i := 0; i < p.N; i++ {
		path := search.SpaceTimeAStar(p.Graph, i, p.Starts[i], p.Goals[i], node.constraints, p.MaxTimestep, c.Seed)
		if path == nil {
			return false
		}
		node.paths[i] = path
	}
	return true
}

// replan re-plans only agent's path against node.constraints, leaving every
// other agent's path untouched (spec.md §4.2's core CBS invariant).
func (c *CBS) replan(p *grid.Problem, node *cbsNode, agent int) bool {
	path := search.SpaceTimeAStar(p.Graph, agent, p.Starts[agent], p.Goals[agent], node.constraints, p.MaxTimestep, c.Seed)
	if path == nil {
		return false
	}
	node.paths[agent] = path
	return true
}
