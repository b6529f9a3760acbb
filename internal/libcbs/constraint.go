// Package libcbs holds the constraint/conflict algebra and the MDD shared
// by CBS, ICBS, and ECBS: spec.md's "LibCBS" component.
package libcbs

import "github.com/elektrokombinacija/mapf-solver/internal/grid"

// Constraint forbids one agent from occupying a vertex at a timestep
// (vertex constraint), or from traversing an edge at a timestep (edge
// constraint: agent must not depart U for V at time T, i.e. must not be at
// U at T and V at T+1).
type Constraint struct {
	Agent int
	V     *grid.Node
	T     int

	IsEdge bool
	U      *grid.Node // edge "from" endpoint; zero value for vertex constraints
}

// Constraints is a set of Constraint, typically all constraints
// accumulated along one branch of a CBS/ICBS constraint tree.
type Constraints []*Constraint

// For returns the subset of cs that bind agent.
func (cs Constraints) For(agent int) Constraints {
	var out Constraints
	for _, c := range cs {
		if c.Agent == agent {
			out = append(out, c)
		}
	}
	return out
}

// MaxTime returns the largest T across constraints bound to agent, or -1
// if agent has none.
func (cs Constraints) MaxTime(agent int) int {
	max := -1
	for _, c := range cs {
		if c.Agent == agent && c.T > max {
			max = c.T
		}
	}
	return max
}

// MaxTimeAt returns the largest T across constraints bound to agent that
// mention v (as a vertex constraint's V, or an edge constraint's
// departure/arrival endpoint), or -1 if none do. Used to decide how long
// a single-agent search must keep validating a path after first reaching
// goal (spec.md §4.1).
func (cs Constraints) MaxTimeAt(agent int, v *grid.Node) int {
	max := -1
	for _, c := range cs {
		if c.Agent != agent {
			continue
		}
		if c.V == v || (c.IsEdge && c.U == v) {
			if c.T > max {
				max = c.T
			}
		}
	}
	return max
}

// Blocked reports whether agent is forbidden from departing u at time t
// and arriving at v at time t+1, under cs. Vertex constraints bind the
// arrival timestep t+1; edge constraints bind the departure timestep t.
func Blocked(cs Constraints, agent int, u, v *grid.Node, t int) bool {
	for _, c := range cs {
		if c.Agent != agent {
			continue
		}
		if c.IsEdge {
			if c.T == t && c.U == u && c.V == v {
				return true
			}
			continue
		}
		if c.T == t+1 && c.V == v {
			return true
		}
	}
	return false
}
