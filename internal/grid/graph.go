package grid

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
)

// Inf represents an unreachable pathDist, per spec: pathDist(u,v) = Inf iff
// disconnected.
const Inf = math.MaxInt32

// Graph is the set of passable nodes of a 4-connected grid plus a
// lazily-computed all-pairs unweighted distance cache. Created with a
// Problem, destroyed with it; there is no cross-problem sharing.
type Graph struct {
	Width, Height int

	byCoord map[[2]int]*Node
	nodes   []*Node // stable order, index == int(NodeID)

	core *core.Graph // unweighted adjacency of passable cells, for bfs.BFS

	distFrom map[NodeID][]int // distFrom[s][t] = pathDist(s, t); computed on first use per source
}

// nodeVertexID is the vertex identifier a Node is registered under in the
// core.Graph backing this Graph's BFS queries.
func nodeVertexID(n *Node) string {
	return fmt.Sprintf("%d", n.ID)
}

// NewGraph builds a Graph from a row-major passability grid: grid[y][x] is
// true when the cell is passable. Width/Height are grid[0] length / len(grid).
func NewGraph(passable [][]bool) *Graph {
	g := &Graph{
		byCoord:  make(map[[2]int]*Node),
		distFrom: make(map[NodeID][]int),
	}
	if len(passable) == 0 {
		return g
	}
	g.Height = len(passable)
	g.Width = len(passable[0])

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x < len(passable[y]) && passable[y][x] {
				n := &Node{ID: NodeID(len(g.nodes)), X: x, Y: y}
				g.nodes = append(g.nodes, n)
				g.byCoord[[2]int{x, y}] = n
			}
		}
	}

	// wire 4-connected adjacency: north, south, west, east
	deltas := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for _, n := range g.nodes {
		for _, d := range deltas {
			if nb, ok := g.byCoord[[2]int{n.X + d[0], n.Y + d[1]}]; ok {
				n.neighbors = append(n.neighbors, nb)
			}
		}
	}

	// Mirror the passable adjacency into an unweighted core.Graph: this is
	// what bfsFrom hands to bfs.BFS rather than walking n.neighbors itself.
	cg := core.NewGraph()
	for _, n := range g.nodes {
		_ = cg.AddVertex(nodeVertexID(n))
	}
	for _, n := range g.nodes {
		for _, nb := range n.neighbors {
			if !cg.HasEdge(nodeVertexID(n), nodeVertexID(nb)) {
				_, _ = cg.AddEdge(nodeVertexID(n), nodeVertexID(nb), 0)
			}
		}
	}
	g.core = cg

	return g
}

// At returns the Node at (x, y), or nil if out of bounds or blocked.
func (g *Graph) At(x, y int) *Node {
	return g.byCoord[[2]int{x, y}]
}

// Node returns the node with the given id, or nil if out of range.
func (g *Graph) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// NumNodes returns the number of passable cells.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Nodes returns every passable node, in stable NodeID order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// PathDist returns the unweighted shortest-path distance between u and v,
// or Inf if they are disconnected. The all-pairs table is filled lazily,
// one BFS per distinct source node ever queried.
func (g *Graph) PathDist(u, v *Node) int {
	if u == nil || v == nil {
		return Inf
	}
	row, ok := g.distFrom[u.ID]
	if !ok {
		row = g.bfsFrom(u)
		g.distFrom[u.ID] = row
	}
	return row[v.ID]
}

func (g *Graph) bfsFrom(src *Node) []int {
	dist := make([]int, len(g.nodes))
	for i := range dist {
		dist[i] = Inf
	}

	result, err := bfs.BFS(g.core, nodeVertexID(src))
	if err != nil {
		// src is always a vertex of g.core (it came from g.nodes), so the
		// only way BFS fails here is a library invariant violation.
		panic(fmt.Sprintf("grid: bfs over passable cells: %v", err))
	}
	for _, n := range g.nodes {
		if d, ok := result.Depth[nodeVertexID(n)]; ok {
			dist[n.ID] = d
		}
	}
	return dist
}

// ManhattanDist is the obstacle-blind grid distance, a lower bound on
// PathDist. Neither single-agent search nor GoalAllocator uses it: both
// work from PathDist.
func ManhattanDist(u, v *Node) int {
	dx := u.X - v.X
	if dx < 0 {
		dx = -dx
	}
	dy := u.Y - v.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
