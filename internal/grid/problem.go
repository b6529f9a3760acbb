package grid

import "fmt"

// Problem is an immutable MAPF instance: a graph, N agent starts, and
// either N labeled goals (one per agent) or an unlabeled goal pool of
// size N (any agent may occupy any goal).
type Problem struct {
	Graph *Graph

	N          int
	Starts     []*Node
	Goals      []*Node // labeled: Goals[i] is agent i's goal; unlabeled: a pool
	Unlabeled  bool

	MaxTimestep int
	MaxCompTime int // milliseconds
}

// NewProblem validates and constructs a Problem. starts and goals must both
// have length N and reference passable nodes of g.
func NewProblem(g *Graph, starts, goals []*Node, unlabeled bool, maxTimestep, maxCompTimeMS int) (*Problem, error) {
	n := len(starts)
	if len(goals) != n {
		return nil, fmt.Errorf("grid: %d starts but %d goals", n, len(goals))
	}
	for i, s := range starts {
		if s == nil {
			return nil, fmt.Errorf("grid: start %d is not a passable node", i)
		}
	}
	for i, gl := range goals {
		if gl == nil {
			return nil, fmt.Errorf("grid: goal %d is not a passable node", i)
		}
	}
	return &Problem{
		Graph:       g,
		N:           n,
		Starts:      starts,
		Goals:       goals,
		Unlabeled:   unlabeled,
		MaxTimestep: maxTimestep,
		MaxCompTime: maxCompTimeMS,
	}, nil
}

// Goal returns agent i's goal in the labeled case. Callers in unlabeled
// mode must instead consult an assignment (the per-agent goals returned by
// internal/unlabeled.Allocate).
func (p *Problem) Goal(i int) *Node {
	if p.Unlabeled {
		panic("grid: Problem.Goal called on an unlabeled instance; use an Assignment")
	}
	return p.Goals[i]
}
