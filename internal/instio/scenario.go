package instio

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

// GenerateScenario samples n distinct-start, distinct-goal coordinate
// pairs from g's passable cells (spec.md §6's -P mode), seeded for
// reproducibility.
func GenerateScenario(g *grid.Graph, n int, seed int64) ([][4]int, error) {
	rng := rand.New(rand.NewSource(seed))
	nodes := g.Nodes()
	if len(nodes) < n {
		return nil, fmt.Errorf("instio: map has only %d passable cells, need %d", len(nodes), n)
	}

	pick := func(taken map[*grid.Node]bool) *grid.Node {
		for {
			cand := nodes[rng.Intn(len(nodes))]
			if !taken[cand] {
				return cand
			}
		}
	}

	takenStart := make(map[*grid.Node]bool, n)
	takenGoal := make(map[*grid.Node]bool, n)
	pairs := make([][4]int, n)
	for i := 0; i < n; i++ {
		s := pick(takenStart)
		takenStart[s] = true
		gl := pick(takenGoal)
		takenGoal[gl] = true
		pairs[i] = [4]int{s.X, s.Y, gl.X, gl.Y}
	}
	return pairs, nil
}

// WriteScenario writes a scenario file: one "xs ys xg yg" line per agent.
func WriteScenario(path string, pairs [][4]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("instio: creating scenario file: %w", err)
	}
	defer f.Close()
	for _, p := range pairs {
		if _, err := fmt.Fprintf(f, "%d %d %d %d\n", p[0], p[1], p[2], p[3]); err != nil {
			return fmt.Errorf("instio: writing scenario file: %w", err)
		}
	}
	return nil
}
