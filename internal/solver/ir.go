package solver

import (
	"container/heap"
	"sort"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/libcbs"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
	"github.com/elektrokombinacija/mapf-solver/internal/search"
)

// IR is Iterative Refinement (spec.md §4.7): starting from a fast initial
// plan, repeatedly freezes all but a small window of agents and re-solves
// just that window with a restricted CBS/ICBS variant, keeping the result
// only if it strictly lowers SOC.
type IR struct {
	*Base
	// WindowSize is |S|, the modification-list size per refinement round.
	WindowSize int
	// UseICBS selects ICBS_REFINE over CBS_REFINE as the sub-solver.
	UseICBS bool
	// SubNodeBudget bounds high-level nodes per refinement sub-solve.
	SubNodeBudget int
}

// NewIR constructs an IR solver seeded from an internal PIBT run for P0.
func NewIR(seed uint64, maxCompTimeMS, windowSize int, useICBS bool) *IR {
	if windowSize < 1 {
		windowSize = 2
	}
	return &IR{
		Base:          NewBase(seed, maxCompTimeMS),
		WindowSize:    windowSize,
		UseICBS:       useICBS,
		SubNodeBudget: 2000,
	}
}

func (r *IR) Name() string { return "IR" }

func (r *IR) Solve(p *grid.Problem) error {
	r.StartClock()

	p0 := NewPIBT(r.Seed, 0)
	remaining := r.MaxCompTime
	if remaining > 0 {
		p0.MaxCompTime = remaining
	}
	p0.StartClock()
	if err := p0.Solve(p); err != nil {
		return err
	}
	paths := p0.Solution().ToPaths()

	order := slackOrder(paths, p.Goals)

	improved := true
	for improved {
		improved = false
		for start := 0; start < len(order); start += r.WindowSize {
			if r.OverCompTime() {
				r.MarkSolved(mapf.PlanFromPaths(paths))
				return nil
			}

			end := start + r.WindowSize
			if end > len(order) {
				end = len(order)
			}
			S := order[start:end]
			mutable := make(map[int]bool, len(S))
			for _, a := range S {
				mutable[a] = true
			}

			refined, ok := r.refine(p, paths, mutable)
			if !ok {
				continue
			}
			if refined.SOC(p.Goals) < paths.SOC(p.Goals) {
				paths = refined
				improved = true
			}
		}
	}

	r.MarkSolved(mapf.PlanFromPaths(paths))
	return nil
}

// slackOrder ranks agents by descending individual path cost, used as a
// proxy for the agents likeliest to sit in the plan's worst neighborhoods
// (spec.md §4.7 step 1). The cost is not compared with the agent's
// shortest possible path.
func slackOrder(paths mapf.Paths, goals []*grid.Node) []int {
	order := make([]int, len(paths))
	for i := range order {
		order[i] = i
	}
	cost := make([]int, len(paths))
	for i, p := range paths {
		cost[i] = p.Cost(goals[i])
	}
	sort.Slice(order, func(i, j int) bool { return cost[order[i]] > cost[order[j]] })
	return order
}

// refine is CBS_REFINE / ICBS_REFINE (spec.md §4.7): a CBS high-level
// search rooted at incumbent, where only agents in mutable are ever
// re-planned; conflicts that land on a frozen agent simply prune that
// branch, since frozen paths are implicit walls. UseICBS selects the
// MDD-based, prioritized-conflict sub-solver (ICBS_REFINE) over plain
// first-conflict CBS (CBS_REFINE).
func (r *IR) refine(p *grid.Problem, incumbent mapf.Paths, mutable map[int]bool) (mapf.Paths, bool) {
	if r.UseICBS {
		return r.refineICBS(p, incumbent, mutable)
	}
	return r.refineCBS(p, incumbent, mutable)
}

func (r *IR) refineCBS(p *grid.Problem, incumbent mapf.Paths, mutable map[int]bool) (mapf.Paths, bool) {
	root := &cbsNode{paths: append(mapf.Paths{}, incumbent...)}
	root.cost = root.paths.SOC(p.Goals)

	open := &cbsHeap{}
	heap.Init(open)
	heap.Push(open, root)

	nodes := 0
	for open.Len() > 0 {
		if r.OverCompTime() {
			return nil, false
		}
		nodes++
		if r.SubNodeBudget > 0 && nodes > r.SubNodeBudget {
			return nil, false
		}

		node := heap.Pop(open).(*cbsNode)
		conflict := libcbs.FindFirstConflict(node.paths)
		if conflict == nil {
			return node.paths, true
		}

		branch := conflict.Branch()
		anyMutable := false
		for _, con := range branch {
			if !mutable[con.Agent] {
				continue
			}
			anyMutable = true
			child := &cbsNode{
				constraints: append(append(libcbs.Constraints{}, node.constraints...), con),
				paths:       append(mapf.Paths{}, node.paths...),
			}
			path := search.SpaceTimeAStar(p.Graph, con.Agent, p.Starts[con.Agent], p.Goals[con.Agent], child.constraints, p.MaxTimestep, r.Seed)
			if path == nil {
				continue
			}
			child.paths.Set(con.Agent, path)
			child.cost = child.paths.SOC(p.Goals)
			heap.Push(open, child)
		}
		if !anyMutable {
			// both sides of the conflict are frozen: the window can't
			// resolve it, this branch of the search is a dead end.
			continue
		}
	}

	return nil, false
}

type irNode struct {
	constraints libcbs.Constraints
	paths       mapf.Paths
	mdds        []*libcbs.MDD
	cost        int
	index       int
}

type irHeap []*irNode

func (h irHeap) Len() int           { return len(h) }
func (h irHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }
func (h irHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *irHeap) Push(x any) {
	n := x.(*irNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *irHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// refineICBS mirrors ICBS.Solve's body, restricted to the window: MDDs back
// every agent (frozen included, so GetPrioritizedConflict can classify
// conflicts touching a frozen path), but the cost-growth loop below only
// ever rebuilds a mutable agent's MDD - a frozen agent's MDD exists purely for
// classification and is never regrown.
func (r *IR) refineICBS(p *grid.Problem, incumbent mapf.Paths, mutable map[int]bool) (mapf.Paths, bool) {
	root := &irNode{
		paths: append(mapf.Paths{}, incumbent...),
		mdds:  make([]*libcbs.MDD, len(incumbent)),
	}
	for i, path := range incumbent {
		root.mdds[i] = libcbs.Build(p.Graph, i, p.Starts[i], p.Goals[i], path.Cost(p.Goals[i]), nil)
	}
	root.cost = root.paths.SOC(p.Goals)

	open := &irHeap{}
	heap.Init(open)
	heap.Push(open, root)

	const threshold = 20
	nodes := 0
	for open.Len() > 0 {
		if r.OverCompTime() {
			return nil, false
		}
		nodes++
		if r.SubNodeBudget > 0 && nodes > r.SubNodeBudget {
			return nil, false
		}

		node := heap.Pop(open).(*irNode)
		conflict := libcbs.GetPrioritizedConflict(node.paths, node.mdds)
		if conflict == nil {
			return node.paths, true
		}

		anyMutable := false
		for _, con := range conflict {
			if !mutable[con.Agent] {
				continue
			}
			anyMutable = true

			child := &irNode{
				constraints: append(append(libcbs.Constraints{}, node.constraints...), con),
				paths:       append(mapf.Paths{}, node.paths...),
				mdds:        append([]*libcbs.MDD{}, node.mdds...),
			}
			agentConstraints := child.constraints.For(con.Agent)
			c := node.mdds[con.Agent].C
			var built *libcbs.MDD
			for newC := c; newC <= c+threshold; newC++ {
				if r.OverCompTime() {
					break
				}
				candidate := libcbs.Build(p.Graph, con.Agent, p.Starts[con.Agent], p.Goals[con.Agent], newC, agentConstraints)
				if candidate.Valid {
					built = candidate
					break
				}
			}
			if built == nil {
				continue
			}
			child.mdds[con.Agent] = built
			child.paths.Set(con.Agent, built.Path())
			child.cost = child.paths.SOC(p.Goals)
			heap.Push(open, child)
		}
		if !anyMutable {
			continue
		}
	}

	return nil, false
}
