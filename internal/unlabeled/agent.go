package unlabeled

import "github.com/elektrokombinacija/mapf-solver/internal/grid"

// agent is the mutable per-timestep record both swap rules operate on:
// current position V and currently-assigned goal G, which may change
// mid-run when a swap is beneficial.
type agent struct {
	ID int
	V  *grid.Node
	G  *grid.Node
}

// nextStep returns the neighbor of v one step closer to goal along a
// shortest path, breaking ties by lowest node id for determinism. Returns
// v itself if v == goal.
func nextStep(g *grid.Graph, v, goal *grid.Node) *grid.Node {
	if v == goal {
		return v
	}
	d := g.PathDist(v, goal)
	var best *grid.Node
	for _, nb := range v.Neighbors() {
		if g.PathDist(nb, goal) >= d {
			continue
		}
		if best == nil || nb.ID < best.ID {
			best = nb
		}
	}
	if best == nil {
		return v // no progress possible, stay
	}
	return best
}
