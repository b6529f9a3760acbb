package solver

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/libcbs"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
)

// ICBS is Improved CBS (spec.md §4.3): an MDD-based low level, prioritized
// conflict selection (cardinal first), bypass, and lazy evaluation of
// high-level nodes whose lower-bound SOC cannot yet beat the tree's
// current minimum.
type ICBS struct {
	*Base
	MaxHighLevelNodes int
	// Threshold bounds how many cost increments constrainedPath tries
	// before giving up on an agent whose MDD cannot yet be built long
	// enough; MDDs cannot themselves prove non-existence of a path, so
	// this value stands in for it (spec.md §9 Open Question). 20 matches
	// the original implementation's constant, never observed to miss a
	// real path in practice.
	Threshold int

	lazyTable map[int][]*icbsNode
	lazyLB    int
}

// NewICBS constructs an ICBS solver with the default MDD cost-increment
// Threshold of 20.
func NewICBS(seed uint64, maxCompTimeMS, maxHighLevelNodes int) *ICBS {
	return &ICBS{
		Base:              NewBase(seed, maxCompTimeMS),
		MaxHighLevelNodes: maxHighLevelNodes,
		Threshold:         20,
		lazyTable:         make(map[int][]*icbsNode),
		lazyLB:            -1,
	}
}

func (ic *ICBS) Name() string { return "ICBS" }

type icbsNode struct {
	constraints libcbs.Constraints
	paths       mapf.Paths
	mdds        []*libcbs.MDD
	soc         int
	index       int
}

type icbsHeap []*icbsNode

func (h icbsHeap) Len() int           { return len(h) }
func (h icbsHeap) Less(i, j int) bool { return h[i].soc < h[j].soc }
func (h icbsHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *icbsHeap) Push(x any) {
	n := x.(*icbsNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *icbsHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

func (ic *ICBS) Solve(p *grid.Problem) error {
	ic.StartClock()

	root := ic.buildRoot(p)
	if root == nil {
		return errNoInitialPaths
	}

	open := &icbsHeap{}
	heap.Init(open)
	heap.Push(open, root)

	for open.Len() > 0 {
		if ic.OverCompTime() {
			return errTimedOut
		}
		if ic.NodeExpanded(ic.MaxHighLevelNodes) {
			return errNodeBudgetExceeded
		}

		top := (*open)[0]
		conflict := libcbs.GetPrioritizedConflict(top.paths, top.mdds)
		if conflict == nil {
			ic.MarkSolved(mapf.PlanFromPaths(top.paths))
			return nil
		}

		if ic.findBypass(p, top, conflict) {
			continue
		}

		heap.Pop(open)
		for _, con := range conflict {
			if child := ic.expand(p, top, con); child != nil {
				heap.Push(open, child)
			}
		}

		if open.Len() == 0 || (ic.lazyLB > 0 && (*open)[0].soc >= ic.lazyLB) {
			for _, n := range ic.runLazyEval(p) {
				heap.Push(open, n)
			}
			if ic.OverCompTime() {
				return errTimedOut
			}
		}
	}

	return errNoSolution
}

func (ic *ICBS) buildRoot(p *grid.Problem) *icbsNode {
	root := &icbsNode{
		paths: make(mapf.Paths, p.N),
		mdds:  make([]*libcbs.MDD, p.N),
	}
	for i := 0; i < p.N; i++ {
		path, mdd := ic.initialAgentPlan(p, i)
		if path == nil {
			return nil
		}
		root.paths[i] = path
		root.mdds[i] = mdd
	}
	root.soc = root.paths.SOC(p.Goals)
	return root
}

// initialAgentPlan builds an unconstrained path and its exact-cost MDD by
// growing cost from the graph distance until the MDD is valid (it always
// will be by cost == shortest-path distance, since no constraints yet
// restrict motion).
func (ic *ICBS) initialAgentPlan(p *grid.Problem, agent int) (mapf.Path, *libcbs.MDD) {
	c := p.Graph.PathDist(p.Starts[agent], p.Goals[agent])
	if c >= grid.Inf {
		return nil, nil
	}
	for {
		mdd := libcbs.Build(p.Graph, agent, p.Starts[agent], p.Goals[agent], c, nil)
		if mdd.Valid {
			return mdd.Path(), mdd
		}
		c++
		if c > p.MaxTimestep {
			return nil, nil
		}
	}
}

// expand creates the child node branching on con: it rebuilds only the
// constrained agent's MDD/path (spec.md §4.3's low-level contract), and
// falls back to lazy evaluation when that cannot yet be proven impossible.
func (ic *ICBS) expand(p *grid.Problem, parent *icbsNode, con *libcbs.Constraint) *icbsNode {
	child := &icbsNode{
		constraints: append(append(libcbs.Constraints{}, parent.constraints...), con),
		paths:       append(mapf.Paths{}, parent.paths...),
		mdds:        append([]*libcbs.MDD{}, parent.mdds...),
	}

	path := ic.constrainedPath(p, child, con)
	if path == nil {
		return nil
	}
	child.paths.Set(con.Agent, path)
	child.soc = child.paths.SOC(p.Goals)
	return child
}

// constrainedPath is ICBS's MDD-based low level: it first tries the
// current MDD's cost bound, defers to the lazy-eval table if the
// just-branched constraint's timestep already exceeds that bound, and
// otherwise grows the bound up to Threshold steps looking for a valid MDD.
func (ic *ICBS) constrainedPath(p *grid.Problem, node *icbsNode, con *libcbs.Constraint) mapf.Path {
	agent := con.Agent
	agentConstraints := node.constraints.For(agent)
	cur := node.mdds[agent]
	c := cur.C

	mdd := libcbs.Build(p.Graph, agent, p.Starts[agent], p.Goals[agent], c, agentConstraints)
	if mdd.Valid {
		node.mdds[agent] = mdd
		return mdd.Path()
	}

	// Only the constraint that triggered this re-plan can justify a lazy
	// defer: an older, already-subsumed constraint with a larger T would
	// inflate lbSOC and hide a cheaper solution (matches runLazyEval's use
	// of the newest constraint, not the historical max across agentConstraints).
	if con.T > c {
		lbSOC := node.soc - c + con.T + 1
		ic.registerLazyEval(lbSOC, node)
		return nil
	}

	for newC := c + 1; newC <= c+ic.Threshold; newC++ {
		if ic.OverCompTime() {
			break
		}
		candidate := libcbs.Build(p.Graph, agent, p.Starts[agent], p.Goals[agent], newC, agentConstraints)
		if candidate.Valid {
			node.mdds[agent] = candidate
			return candidate.Path()
		}
	}
	return nil
}

func (ic *ICBS) registerLazyEval(lbSOC int, node *icbsNode) {
	ic.lazyTable[lbSOC] = append(ic.lazyTable[lbSOC], node)
	if ic.lazyLB == -1 || lbSOC < ic.lazyLB {
		ic.lazyLB = lbSOC
	}
}

// runLazyEval resolves every node deferred at the tree's current lower
// bound, growing the constrained agent's MDD cost until a valid one is
// found, and returns the now-viable nodes for re-insertion into OPEN.
func (ic *ICBS) runLazyEval(p *grid.Problem) []*icbsNode {
	nodes, ok := ic.lazyTable[ic.lazyLB]
	if !ok {
		return nil
	}

	for _, node := range nodes {
		if ic.OverCompTime() {
			break
		}
		last := node.constraints[len(node.constraints)-1]
		agent := last.Agent
		agentConstraints := node.constraints.For(agent)
		for c := last.T + 1; ; c++ {
			if ic.OverCompTime() {
				break
			}
			mdd := libcbs.Build(p.Graph, agent, p.Starts[agent], p.Goals[agent], c, agentConstraints)
			if mdd.Valid {
				node.mdds[agent] = mdd
				node.paths.Set(agent, mdd.Path())
				node.soc = node.paths.SOC(p.Goals)
				break
			}
		}
	}

	delete(ic.lazyTable, ic.lazyLB)
	ic.lazyLB = -1
	for lb := range ic.lazyTable {
		if ic.lazyLB == -1 || lb < ic.lazyLB {
			ic.lazyLB = lb
		}
	}
	return nodes
}

// findBypass looks for a same-cost alternative path for either constrained
// agent that honors that agent's branch constraint and has strictly fewer
// conflicts in total than its current path, avoiding a branch entirely
// (spec.md §4.3).
func (ic *ICBS) findBypass(p *grid.Problem, node *icbsNode, constraints libcbs.Constraints) bool {
	for _, c := range constraints {
		mdd := node.mdds[c.Agent]
		raw := mdd.PathHonoring(c)
		if raw == nil {
			continue
		}
		candidate := mapf.Path(raw)
		old := node.paths.Get(c.Agent)
		cnumOld := node.paths.CountConflict(c.Agent, old)
		cnumNew := node.paths.CountConflict(c.Agent, candidate)
		if cnumOld <= cnumNew {
			continue
		}
		node.paths.Set(c.Agent, candidate)
		node.soc = node.paths.SOC(p.Goals)
		return true
	}
	return false
}
