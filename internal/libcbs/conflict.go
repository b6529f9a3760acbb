package libcbs

import (
	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
)

// ConflictKind classifies a conflict by how forcefully its resolution
// raises SOC, per ICBS (spec.md §4.3).
type ConflictKind int

const (
	NonCardinal ConflictKind = iota
	SemiCardinal
	Cardinal
)

// Conflict is a pair of constraints on two agents derived from a joint
// path violation. For a vertex conflict, both agents occupy V at T. For a
// swap (edge) conflict, agent1 moves A->B and agent2 moves B->A across the
// transition T -> T+1.
type Conflict struct {
	Agent1, Agent2 int
	V              *grid.Node // vertex conflicts only
	A, B           *grid.Node // edge conflicts only: agent1 A->B, agent2 B->A
	T              int

	IsEdge bool
	Kind   ConflictKind
}

// Branch materializes the one-constraint-per-agent pair a CBS/ICBS high
// level node branches on.
func (c *Conflict) Branch() [2]*Constraint {
	if !c.IsEdge {
		return [2]*Constraint{
			{Agent: c.Agent1, V: c.V, T: c.T},
			{Agent: c.Agent2, V: c.V, T: c.T},
		}
	}
	return [2]*Constraint{
		{Agent: c.Agent1, IsEdge: true, U: c.A, V: c.B, T: c.T},
		{Agent: c.Agent2, IsEdge: true, U: c.B, V: c.A, T: c.T},
	}
}

// sortedAgentPairs returns (i, j) with i < j for all n agents, in the
// canonical "topmost agent pair by id" order spec.md §4.2 requires.
func sortedAgentPairs(n int) [][2]int {
	var pairs [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

// FindFirstConflict returns the first conflict in paths: smallest
// timestep, then topmost agent pair by id. Returns nil if paths is
// conflict-free.
func FindFirstConflict(paths mapf.Paths) *Conflict {
	makespan := paths.Makespan()
	pairs := sortedAgentPairs(len(paths))
	for t := 0; t < makespan; t++ {
		for _, pr := range pairs {
			i, j := pr[0], pr[1]
			if c := conflictAt(paths, i, j, t); c != nil {
				return c
			}
		}
	}
	// vertex conflicts can also occur at the terminal timestep with no
	// following transition to check for a swap.
	for _, pr := range pairs {
		i, j := pr[0], pr[1]
		if paths[i].At(makespan) == paths[j].At(makespan) {
			return &Conflict{Agent1: i, Agent2: j, V: paths[i].At(makespan), T: makespan}
		}
	}
	return nil
}

// FindAllConflicts returns every vertex and swap conflict in paths,
// ordered by timestep then agent pair.
func FindAllConflicts(paths mapf.Paths) []*Conflict {
	var out []*Conflict
	makespan := paths.Makespan()
	pairs := sortedAgentPairs(len(paths))
	for t := 0; t < makespan; t++ {
		for _, pr := range pairs {
			i, j := pr[0], pr[1]
			if c := conflictAt(paths, i, j, t); c != nil {
				out = append(out, c)
			}
		}
	}
	for _, pr := range pairs {
		i, j := pr[0], pr[1]
		if paths[i].At(makespan) == paths[j].At(makespan) {
			out = append(out, &Conflict{Agent1: i, Agent2: j, V: paths[i].At(makespan), T: makespan})
		}
	}
	return out
}

func conflictAt(paths mapf.Paths, i, j, t int) *Conflict {
	vi, vj := paths[i].At(t), paths[j].At(t)
	if vi == vj {
		return &Conflict{Agent1: i, Agent2: j, V: vi, T: t}
	}
	ni, nj := paths[i].At(t+1), paths[j].At(t+1)
	if vi == nj && vj == ni && vi != ni {
		// agent i goes vi->ni(==vj), agent j goes vj->nj(==vi): a swap.
		return &Conflict{
			Agent1: i, Agent2: j,
			IsEdge: true, A: vi, B: vj, T: t,
		}
	}
	return nil
}
