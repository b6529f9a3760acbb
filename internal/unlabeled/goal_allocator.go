// Package unlabeled implements the unlabeled-MAPF goal-assignment and
// online goal-swap machinery (spec.md §4.8-§4.9): any agent may occupy any
// goal, so before (or instead of) running a labeled solver, agents must
// first be paired with a goal.
package unlabeled

import (
	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

// Allocate computes an assignment π: agents -> goals minimizing
// Σ pathDist(start_i, goal_π(i)) (spec.md §4.8, Testable Property #8: no
// other permutation has a lower total). The true graph distance for every
// (agent, goal) pair is computed once into a cost matrix (Graph.PathDist
// memoizes per-source BFS, so this is N BFS runs, not N²) and handed to
// assignMinCost, a Hungarian/Kuhn's-style minimum-cost bipartite matching:
// unlike committing greedily to the cheapest edge seen so far, the
// augmenting-path search can still reassign an already-matched agent if
// doing so frees up a cheaper completion elsewhere, which is what
// guarantees global optimality.
func Allocate(g *grid.Graph, starts, goals []*grid.Node) []*grid.Node {
	n := len(starts)
	cost := make([][]int, n)
	for i := 0; i < n; i++ {
		cost[i] = make([]int, n)
		for j := 0; j < n; j++ {
			cost[i][j] = g.PathDist(starts[i], goals[j])
		}
	}

	perm := assignMinCost(cost)

	result := make([]*grid.Node, n)
	for i, j := range perm {
		result[i] = goals[j]
	}
	return result
}
