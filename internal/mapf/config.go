package mapf

import "github.com/elektrokombinacija/mapf-solver/internal/grid"

// Config is the joint position of all N agents at one timestep: an ordered
// sequence of node handles with no two entries equal.
type Config []*grid.Node

// VertexConflictFree reports whether no two agents share a cell.
func (c Config) VertexConflictFree() bool {
	seen := make(map[*grid.Node]bool, len(c))
	for _, v := range c {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Equal reports whether c and other name the same node per agent, in order.
func (c Config) Equal(other Config) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// CoversSet reports whether c occupies exactly the node set goals, with no
// regard to which agent sits on which goal (unlabeled-MAPF termination).
func (c Config) CoversSet(goals []*grid.Node) bool {
	if len(c) != len(goals) {
		return false
	}
	occupied := make(map[*grid.Node]bool, len(c))
	for _, v := range c {
		occupied[v] = true
	}
	for _, g := range goals {
		if !occupied[g] {
			return false
		}
	}
	return len(occupied) == len(goals)
}
