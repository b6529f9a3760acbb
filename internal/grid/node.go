// Package grid defines the 4-connected grid topology MAPF solvers plan on.
package grid

// NodeID is a stable, dense identifier for a passable cell.
type NodeID int

// Node is a passable grid cell. Graph owns all Nodes; every other package
// holds Nodes as non-owning handles (a *Node is never copied or mutated
// after Graph construction).
type Node struct {
	ID NodeID
	X  int
	Y  int

	neighbors []*Node
}

// Neighbors returns the (up to 4) passable cells reachable in one step.
// Order is stable (insertion order: north, south, west, east) so search
// tie-breaking is reproducible.
func (n *Node) Neighbors() []*Node {
	return n.neighbors
}

// HasNeighbor reports whether m is directly reachable from n.
func (n *Node) HasNeighbor(m *Node) bool {
	for _, nb := range n.neighbors {
		if nb == m {
			return true
		}
	}
	return false
}
