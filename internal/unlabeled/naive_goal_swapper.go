package unlabeled

import (
	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
	"github.com/elektrokombinacija/mapf-solver/internal/solver"
)

// NaiveGoalSwapper is the O(A) per-agent-per-step unlabeled MAPF rule
// (spec.md §4.9): each agent advances one step toward its goal along a
// shortest path; if that step is occupied by another agent already
// resting at its own goal, the two agents swap goal assignments instead
// of moving, so the blocker eventually has to move toward the newcomer's
// old goal. There is no completeness guarantee: dense instances can
// deadlock two agents each waiting on the other.
type NaiveGoalSwapper struct {
	*solver.Base
	// UseBFS warms the graph's distance cache for each agent's start and
	// assigned goal before the first timestep. Exposed to mirror the
	// original CLI's -use-bfs tunable; next steps are computed the same way
	// either way, since Graph.PathDist already memoizes per-source BFS.
	UseBFS bool
}

// NewNaiveGoalSwapper constructs a NaiveGoalSwapper solver.
func NewNaiveGoalSwapper(seed uint64, maxCompTimeMS int) *NaiveGoalSwapper {
	return &NaiveGoalSwapper{Base: solver.NewBase(seed, maxCompTimeMS)}
}

func (s *NaiveGoalSwapper) Name() string { return "NaiveGoalSwapper" }

func (s *NaiveGoalSwapper) Solve(p *grid.Problem) error {
	s.StartClock()

	goals := Allocate(p.Graph, p.Starts, p.Goals)
	agents := make([]*agent, p.N)
	for i := range agents {
		agents[i] = &agent{ID: i, V: p.Starts[i], G: goals[i]}
	}

	if s.UseBFS {
		for _, a := range agents {
			p.Graph.PathDist(a.V, a.G)
		}
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

			var blocker *agent
			for _, b := range agents {
				if b.V == u {
					blocker = b
					break
				}
			}
			if blocker == nil {
				a.V = u
				continue
			}
			if blocker.V == blocker.G {
				a.G, blocker.G = blocker.G, a.G
			}
			// else: blocked this step, stay in place.
		}

		plan = append(plan, snapshot(agents))

		if allAtGoal(agents) {
			s.MarkSolved(plan)
			return nil
		}
	}

	return errNoSolutionUnlabeled
}

func snapshot(agents []*agent) mapf.Config {
	cfg := make(mapf.Config, len(agents))
	for i, a := range agents {
		cfg[i] = a.V
	}
	return cfg
}

func allAtGoal(agents []*agent) bool {
	for _, a := range agents {
		if a.V != a.G {
			return false
		}
	}
	return true
}
