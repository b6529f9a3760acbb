package mapf

import "github.com/elektrokombinacija/mapf-solver/internal/grid"

// Paths is the vector of all N agents' Path values, conceptually padded by
// repetition of each path's last node to a common makespan.
type Paths []Path

// Get returns agent i's path.
func (ps Paths) Get(i int) Path {
	return ps[i]
}

// Set replaces agent i's path.
func (ps Paths) Set(i int, p Path) {
	ps[i] = p
}

// Makespan is the max over agents of each path's own makespan.
func (ps Paths) Makespan() int {
	m := 0
	for _, p := range ps {
		if ms := p.Makespan(); ms > m {
			m = ms
		}
	}
	return m
}

// SOC is Σ_i Cost(path_i, goals[i]).
func (ps Paths) SOC(goals []*grid.Node) int {
	soc := 0
	for i, p := range ps {
		soc += p.Cost(goals[i])
	}
	return soc
}

// CountConflict returns the number of vertex + swap conflicts between
// candidate (a would-be path for agent i) and the other N-1 agents'
// current paths in ps, across their joint makespan.
func (ps Paths) CountConflict(i int, candidate Path) int {
	count := 0
	for j, other := range ps {
		if j == i {
			continue
		}
		makespan := candidate.Makespan()
		if om := other.Makespan(); om > makespan {
			makespan = om
		}
		for t := 0; t < makespan; t++ {
			v, s := conflictsAt(candidate, other, t)
			if v {
				count++
			}
			if s {
				count++
			}
		}
		// final timestep vertex check (loop above covers t..t+1 transitions,
		// so the very last timestep's vertex conflict needs its own check)
		if candidate.At(makespan) == other.At(makespan) {
			count++
		}
	}
	return count
}

// conflictsAt reports whether a and b vertex-conflict at timestep t, or
// swap-conflict across the transition t -> t+1.
func conflictsAt(a, b Path, t int) (vertex, swap bool) {
	aAt, bAt := a.At(t), b.At(t)
	if aAt == bAt {
		vertex = true
	}
	aNext, bNext := a.At(t+1), b.At(t+1)
	if aAt == bNext && bAt == aNext && aAt != aNext {
		swap = true
	}
	return
}
