package mapf

import (
	"fmt"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

// Plan is a sequence of Configs, one per timestep: the output of every
// solver in this repository.
type Plan []Config

// Makespan is the index of the terminal config.
func (pl Plan) Makespan() int {
	if len(pl) == 0 {
		return 0
	}
	return len(pl) - 1
}

// SOC sums, per agent, the timestep of its final arrival at its goal (see
// Path.Cost). goals must have one entry per agent,
// in the labeled case goals[i]; in the unlabeled case the goal the plan
// actually ends agent i on (callers pass the realized per-agent goal,
// e.g. from the terminal config).
func (pl Plan) SOC(goals []*grid.Node) int {
	if len(pl) == 0 {
		return 0
	}
	n := len(pl[0])
	soc := 0
	for i := 0; i < n; i++ {
		cost := 0
		for t, cfg := range pl {
			if cfg[i] != goals[i] {
				cost = t + 1
			}
		}
		soc += cost
	}
	return soc
}

// PlanFromPaths assembles a Plan by reading each agent's position at every
// timestep up to the joint makespan, padding short paths by repetition.
func PlanFromPaths(ps Paths) Plan {
	makespan := ps.Makespan()
	plan := make(Plan, makespan+1)
	n := len(ps)
	for t := 0; t <= makespan; t++ {
		cfg := make(Config, n)
		for i, p := range ps {
			cfg[i] = p.At(t)
		}
		plan[t] = cfg
	}
	return plan
}

// ToPaths extracts each agent's path back out of a Plan.
func (pl Plan) ToPaths() Paths {
	if len(pl) == 0 {
		return nil
	}
	n := len(pl[0])
	paths := make(Paths, n)
	for i := 0; i < n; i++ {
		p := make(Path, len(pl))
		for t, cfg := range pl {
			p[t] = cfg[i]
		}
		paths[i] = p
	}
	return paths
}

// Validate checks every invariant spec.md §3/§8 requires of a successful
// plan: initial config equals starts; terminal config equals goals (or
// covers the goal set for unlabeled instances); every per-timestep
// transition is a stay-or-move-to-neighbor for every agent; no vertex or
// swap conflicts; makespan within budget.
func (pl Plan) Validate(p *grid.Problem) error {
	if len(pl) == 0 {
		if p.N == 0 {
			return nil
		}
		return fmt.Errorf("mapf: empty plan for %d agents", p.N)
	}
	if len(pl[0]) != p.N {
		return fmt.Errorf("mapf: config width %d != N %d", len(pl[0]), p.N)
	}

	start := pl[0]
	for i := 0; i < p.N; i++ {
		if start[i] != p.Starts[i] {
			return fmt.Errorf("mapf: agent %d does not start at its start node", i)
		}
	}

	terminal := pl[len(pl)-1]
	if p.Unlabeled {
		if !terminal.CoversSet(p.Goals) {
			return fmt.Errorf("mapf: terminal config does not cover the goal pool")
		}
	} else {
		for i := 0; i < p.N; i++ {
			if terminal[i] != p.Goals[i] {
				return fmt.Errorf("mapf: agent %d does not end at its goal", i)
			}
		}
	}

	if pl.Makespan() > p.MaxTimestep {
		return fmt.Errorf("mapf: makespan %d exceeds max timestep %d", pl.Makespan(), p.MaxTimestep)
	}

	for t := 0; t < len(pl)-1; t++ {
		cur, next := pl[t], pl[t+1]
		if !cur.VertexConflictFree() {
			return fmt.Errorf("mapf: vertex conflict at timestep %d", t)
		}
		for i := 0; i < p.N; i++ {
			if next[i] != cur[i] && !cur[i].HasNeighbor(next[i]) {
				return fmt.Errorf("mapf: agent %d makes an illegal move at timestep %d", i, t)
			}
		}
		for i := 0; i < p.N; i++ {
			for j := i + 1; j < p.N; j++ {
				if cur[i] == next[j] && cur[j] == next[i] && cur[i] != next[i] {
					return fmt.Errorf("mapf: swap conflict between agents %d and %d at timestep %d", i, j, t)
				}
			}
		}
	}
	if !terminal.VertexConflictFree() {
		return fmt.Errorf("mapf: vertex conflict at terminal timestep %d", len(pl)-1)
	}

	return nil
}
