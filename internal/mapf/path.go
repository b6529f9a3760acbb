// Package mapf holds the per-agent and joint sequence types (Config, Path,
// Paths, Plan) shared by every solver, and their validation against a
// grid.Problem.
package mapf

import "github.com/elektrokombinacija/mapf-solver/internal/grid"

// Path is one agent's ordered sequence of node handles [v0, v1, ..., vT].
type Path []*grid.Node

// Makespan is the last timestep index of this path on its own.
func (p Path) Makespan() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// At returns the node occupied at timestep t, padding by repetition of the
// last node for t beyond the path's own length (joint-plan alignment).
func (p Path) At(t int) *grid.Node {
	if len(p) == 0 {
		return nil
	}
	if t < 0 {
		t = 0
	}
	if t >= len(p) {
		t = len(p) - 1
	}
	return p[t]
}

// PadTo returns a copy of p extended to length t+1 by repeating its last
// node. It is a no-op (returns p unchanged) if p is already that long.
func (p Path) PadTo(t int) Path {
	if len(p) == 0 || t <= p.Makespan() {
		return p
	}
	last := p[len(p)-1]
	padded := make(Path, t+1)
	copy(padded, p)
	for i := len(p); i <= t; i++ {
		padded[i] = last
	}
	return padded
}

// Cost is the timestep of the agent's final arrival at goal: one more than
// the greatest t such that p[t] != goal (0 if the agent is at goal for its
// entire path). This is the quantity summed by SOC, per spec: "costly" path
// length (used to align joint plans) may exceed Cost by trailing
// wait-at-goal steps.
func (p Path) Cost(goal *grid.Node) int {
	cost := 0
	for t, v := range p {
		if v != goal {
			cost = t + 1
		}
	}
	return cost
}
