package solver

import (
	"sort"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
)

// PIBT is the priority-inheritance single-step joint-move rule (spec.md
// §4.5): decentralized, fast, and not complete on its own — deadlocks are
// avoided probabilistically via the seeded tie-break, not guaranteed away.
type PIBT struct {
	*Base
}

// NewPIBT constructs a PIBT solver.
func NewPIBT(seed uint64, maxCompTimeMS int) *PIBT {
	return &PIBT{Base: NewBase(seed, maxCompTimeMS)}
}

func (s *PIBT) Name() string { return "PIBT" }

func (s *PIBT) Solve(p *grid.Problem) error {
	s.StartClock()

	n := p.N
	tie := make([]float64, n)
	for i := range tie {
		tie[i] = s.Rng.Float64()
	}

	cur := append([]*grid.Node{}, p.Starts...)
	plan := mapf.Plan{append(mapf.Config{}, cur...)}

	for t := 0; t < p.MaxTimestep; t++ {
		if s.OverCompTime() {
			return errTimedOut
		}
		if atGoals(cur, p.Goals) {
			break
		}

		next := make([]*grid.Node, n)
		decided := make([]bool, n)
		inStack := make([]bool, n)

		for _, a := range priorityOrder(cur, p, tie) {
			if decided[a] {
				continue
			}
			priorityInheritance(s, a, -1, cur, next, decided, inStack, p, tie)
		}

		cur = next
		plan = append(plan, append(mapf.Config{}, cur...))
	}

	if !atGoals(cur, p.Goals) {
		return errNoSolution
	}
	s.MarkSolved(plan)
	return nil
}

func atGoals(cur []*grid.Node, goals []*grid.Node) bool {
	for i, v := range cur {
		if v != goals[i] {
			return false
		}
	}
	return true
}

// priorityOrder ranks agents farthest-from-goal first, ties broken by each
// agent's fixed per-run tie token (spec.md §4.5 step 1).
func priorityOrder(cur []*grid.Node, p *grid.Problem, tie []float64) []int {
	order := make([]int, p.N)
	for i := range order {
		order[i] = i
	}
	dist := make([]int, p.N)
	for i := range dist {
		dist[i] = p.Graph.PathDist(cur[i], p.Goals[i])
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if dist[a] != dist[b] {
			return dist[a] > dist[b]
		}
		return tie[a] < tie[b]
	})
	return order
}

// priorityInheritance implements spec.md §4.5 step 3: agent a tries its
// candidate moves in ascending goal-distance order (randomized tie-break
// per call), recursing into whichever undecided blocker occupies its
// preferred candidate. Returns whether a successfully committed a move.
func priorityInheritance(s *PIBT, a, parent int, cur, next []*grid.Node, decided, inStack []bool, p *grid.Problem, tie []float64) bool {
	inStack[a] = true
	defer func() { inStack[a] = false }()

	candidates := append([]*grid.Node{cur[a]}, cur[a].Neighbors()...)
	goal := p.Goals[a]
	rnd := make([]float64, len(candidates))
	for i := range rnd {
		rnd[i] = s.Rng.Float64()
	}
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := p.Graph.PathDist(candidates[i], goal), p.Graph.PathDist(candidates[j], goal)
		if di != dj {
			return di < dj
		}
		return rnd[i] < rnd[j]
	})

	for _, u := range candidates {
		if occupiedByDecided(u, next, decided) {
			continue
		}
		if causesSwap(a, u, cur, next, decided) {
			continue
		}
		if b := undecidedAgentAt(a, u, cur, decided); b != -1 {
			if inStack[b] {
				continue // would cycle back into an ancestor call
			}
			// b must actually vacate u; if it committed to staying there,
			// u is taken and a tries its next candidate.
			if priorityInheritance(s, b, a, cur, next, decided, inStack, p, tie) && next[b] != u {
				next[a] = u
				decided[a] = true
				return true
			}
			continue
		}
		next[a] = u
		decided[a] = true
		return true
	}

	if parent != -1 {
		return false
	}
	next[a] = cur[a]
	decided[a] = true
	return true
}

func occupiedByDecided(u *grid.Node, next []*grid.Node, decided []bool) bool {
	for j, d := range decided {
		if d && next[j] == u {
			return true
		}
	}
	return false
}

// causesSwap reports whether some already-decided agent b is moving from u
// to a's current vertex, which together with a moving to u would be a swap.
func causesSwap(a int, u *grid.Node, cur, next []*grid.Node, decided []bool) bool {
	for j, d := range decided {
		if d && cur[j] == u && next[j] == cur[a] {
			return true
		}
	}
	return false
}

func undecidedAgentAt(a int, u *grid.Node, cur []*grid.Node, decided []bool) int {
	for j, v := range cur {
		if j != a && !decided[j] && v == u {
			return j
		}
	}
	return -1
}
