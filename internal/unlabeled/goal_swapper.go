package unlabeled

import (
	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
	"github.com/elektrokombinacija/mapf-solver/internal/solver"
)

// GoalSwapper is NaiveGoalSwapper's occupancy-indexed sibling (spec.md
// §4.9): the same one-step-or-swap rule, but blocker lookup is an O(1)
// map keyed by node instead of a linear scan over every agent, so each
// timestep costs O(A) total rather than O(A²).
type GoalSwapper struct {
	*solver.Base
}

// NewGoalSwapper constructs a GoalSwapper solver.
func NewGoalSwapper(seed uint64, maxCompTimeMS int) *GoalSwapper {
	return &GoalSwapper{Base: solver.NewBase(seed, maxCompTimeMS)}
}

func (s *GoalSwapper) Name() string { return "GoalSwapper" }

func (s *GoalSwapper) Solve(p *grid.Problem) error {
	s.StartClock()

	goals := Allocate(p.Graph, p.Starts, p.Goals)
	agents := make([]*agent, p.N)
	occupant := make(map[*grid.Node]*agent, p.N)
	for i := range agents {
		a := &agent{ID: i, V: p.Starts[i], G: goals[i]}
		agents[i] = a
		occupant[a.V] = a
	}

	plan := mapf.Plan{snapshot(agents)}

	for t := 0; t < p.MaxTimestep; t++ {
		if s.OverCompTime() {
			return errTimedOutUnlabeled
		}

		for _, a := range agents {
			if a.V == a.G {
				continue
			}
			u := nextStep(p.Graph, a.V, a.G)

			blocker, occupied := occupant[u]
			if !occupied {
				delete(occupant, a.V)
				a.V = u
				occupant[u] = a
				continue
			}
			if blocker.V == blocker.G {
				a.G, blocker.G = blocker.G, a.G
			}
		}

		plan = append(plan, snapshot(agents))

		if allAtGoal(agents) {
			s.MarkSolved(plan)
			return nil
		}
	}

	return errNoSolutionUnlabeled
}
