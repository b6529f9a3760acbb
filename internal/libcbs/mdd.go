package libcbs

import "github.com/elektrokombinacija/mapf-solver/internal/grid"

// MDD is the layered DAG of every node an agent can occupy at each
// timestep 0..C such that a path of exactly length C from Start to Goal
// passes through it (spec.md §3's MDD). Layer 0 = {Start}; layer C =
// {Goal}. MDDs are treated as immutable once built: there is no in-place
// update, and re-planning under new constraints calls Build again for a
// fresh MDD, matching the copy-on-write discipline spec.md §9 calls for.
type MDD struct {
	Agent int
	C     int
	Start *grid.Node
	Goal  *grid.Node

	layer []map[*grid.Node]bool        // layer[t] = set of nodes present at timestep t
	next  []map[*grid.Node][]*grid.Node // next[t][v] = allowed successors in layer t+1

	Valid bool
}

// Build constructs the MDD for agent from start to goal at cost bound c,
// honoring constraints (spec.md §4.3: built directly at a given cost, or
// incrementally as ICBS raises c).
func Build(g *grid.Graph, agent int, start, goal *grid.Node, c int, constraints Constraints) *MDD {
	m := &MDD{Agent: agent, C: c, Start: start, Goal: goal}
	m.layer = make([]map[*grid.Node]bool, c+1)
	m.next = make([]map[*grid.Node][]*grid.Node, c) // next[t] connects layer t to t+1

	// candidate membership: v is reachable at exactly timestep t (via waits)
	// iff dist(start,v) <= t, and can still reach goal in exactly c-t steps
	// iff dist(v,goal) <= c-t.
	for t := 0; t <= c; t++ {
		m.layer[t] = make(map[*grid.Node]bool)
		for _, v := range g.Nodes() {
			if g.PathDist(start, v) <= t && g.PathDist(v, goal) <= c-t {
				m.layer[t][v] = true
			}
		}
	}

	for t := 0; t < c; t++ {
		m.next[t] = make(map[*grid.Node][]*grid.Node)
		for v := range m.layer[t] {
			candidates := append([]*grid.Node{v}, v.Neighbors()...) // wait + move
			for _, w := range candidates {
				if !m.layer[t+1][w] {
					continue
				}
				if Blocked(constraints, agent, v, w, t) {
					continue
				}
				m.next[t][v] = append(m.next[t][v], w)
			}
		}
	}

	m.prune()
	return m
}

// prune repeatedly discards nodes that lost every forward or backward
// edge, until the structure is stable, then sets Valid.
func (m *MDD) prune() {
	for {
		changed := false

		// forward: a node in layer t>0 needs an incoming edge from t-1.
		for t := 1; t <= m.C; t++ {
			for v := range m.layer[t] {
				if !hasIncoming(m.next[t-1], v) {
					delete(m.layer[t], v)
					changed = true
				}
			}
		}
		// backward: a node in layer t<C needs an outgoing edge to t+1.
		for t := 0; t < m.C; t++ {
			for v := range m.layer[t] {
				if len(m.next[t][v]) == 0 {
					delete(m.layer[t], v)
					changed = true
				}
			}
		}
		// drop now-dangling successors pointing at removed nodes.
		for t := 0; t < m.C; t++ {
			for v, succ := range m.next[t] {
				if !m.layer[t][v] {
					delete(m.next[t], v)
					changed = true
					continue
				}
				kept := succ[:0]
				for _, w := range succ {
					if m.layer[t+1][w] {
						kept = append(kept, w)
					}
				}
				if len(kept) != len(succ) {
					changed = true
				}
				m.next[t][v] = kept
			}
		}

		if !changed {
			break
		}
	}

	m.Valid = m.layer[0][m.Start] && m.layer[m.C][m.Goal]
}

func hasIncoming(next map[*grid.Node][]*grid.Node, v *grid.Node) bool {
	for _, succs := range next {
		for _, w := range succs {
			if w == v {
				return true
			}
		}
	}
	return false
}

// LayerSize returns the number of nodes present in layer t after pruning.
func (m *MDD) LayerSize(t int) int {
	if t < 0 || t >= len(m.layer) {
		return 0
	}
	return len(m.layer[t])
}

// IsMandatory reports whether v is the unique node in layer t: every
// cost-C path must pass through it.
func (m *MDD) IsMandatory(t int, v *grid.Node) bool {
	return m.LayerSize(t) == 1 && m.layer[t][v]
}

// IsMandatoryEdge reports whether the edge u (layer t) -> v (layer t+1) is
// the only way to cross from t to t+1.
func (m *MDD) IsMandatoryEdge(t int, u, v *grid.Node) bool {
	return m.IsMandatory(t, u) && m.IsMandatory(t+1, v)
}

// Path extracts any single path of length C from Start to Goal through
// the pruned MDD, or nil if !Valid.
func (m *MDD) Path() []*grid.Node {
	return m.pathAvoiding(nil)
}

// PathHonoring extracts any path honoring one additional constraint not
// baked into the MDD, without mutating m (used by ICBS's bypass search).
func (m *MDD) PathHonoring(extra *Constraint) []*grid.Node {
	return m.pathAvoiding(extra)
}

func (m *MDD) pathAvoiding(extra *Constraint) []*grid.Node {
	if !m.Valid {
		return nil
	}
	path := make([]*grid.Node, m.C+1)
	cur := m.Start
	path[0] = cur
	for t := 0; t < m.C; t++ {
		var next *grid.Node
		for _, w := range m.next[t][cur] {
			if extra != nil && extra.Agent == m.Agent {
				if extra.IsEdge && extra.T == t && extra.U == cur && extra.V == w {
					continue
				}
				if !extra.IsEdge && extra.T == t+1 && extra.V == w {
					continue
				}
			}
			next = w
			break
		}
		if next == nil {
			return nil
		}
		path[t+1] = next
		cur = next
	}
	return path
}
