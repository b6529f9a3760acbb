// Command mapfgen generates deterministic grid-MAPF instances: an ASCII
// map file and an instance file. For random problems the instance file has
// no coordinate block and no scenario file is written. It follows the same
// flag-driven, seeded-generation shape as the
// benchmark instance generator this tool was adapted from.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

func main() {
	var (
		outDir      = flag.String("out", ".", "output directory")
		name        = flag.String("name", "instance", "base name for generated files")
		width       = flag.Int("width", 16, "map width")
		height      = flag.Int("height", 16, "map height")
		agents      = flag.Int("agents", 8, "agent count")
		obstacleDen = flag.Float64("obstacle-density", 0.1, "fraction of cells blocked")
		seed        = flag.Int64("seed", 1, "rng seed")
		maxTimestep = flag.Int("max-timestep", 200, "per-instance max_timestep")
		maxCompTime = flag.Int("max-comp-time", 30000, "per-instance max_comp_time (ms)")
		randomProb  = flag.Bool("random-problem", true, "omit coordinates from the instance file (no scenario file is written)")
	)
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "mapfgen:", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	grid := generateGrid(*width, *height, *obstacleDen, rng)

	mapPath := filepath.Join(*outDir, *name+".map")
	if err := writeMap(mapPath, grid); err != nil {
		fmt.Fprintln(os.Stderr, "mapfgen:", err)
		os.Exit(1)
	}

	instPath := filepath.Join(*outDir, *name+".instance")
	f, err := os.Create(instPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mapfgen:", err)
		os.Exit(1)
	}
	defer f.Close()

	fmt.Fprintf(f, "map_file=%s\n", mapPath)
	fmt.Fprintf(f, "agents=%d\n", *agents)
	fmt.Fprintf(f, "seed=%d\n", *seed)
	if *randomProb {
		fmt.Fprintf(f, "random_problem=1\n")
	} else {
		fmt.Fprintf(f, "random_problem=0\n")
	}
	fmt.Fprintf(f, "max_timestep=%d\n", *maxTimestep)
	fmt.Fprintf(f, "max_comp_time=%d\n", *maxCompTime)
	fmt.Fprintln(f)

	if !*randomProb {
		pairs, err := sampleDistinctPairs(grid, *agents, rng)
		if err != nil {
			fmt.Fprintln(os.Stderr, "mapfgen:", err)
			os.Exit(1)
		}
		for _, p := range pairs {
			fmt.Fprintf(f, "%d %d %d %d\n", p[0], p[1], p[2], p[3])
		}
	}

	fmt.Printf("wrote %s and %s\n", mapPath, instPath)
}

// generateGrid builds a width x height passability grid, blocking cells
// independently at the requested density.
func generateGrid(width, height int, density float64, rng *rand.Rand) [][]bool {
	grid := make([][]bool, height)
	for y := range grid {
		grid[y] = make([]bool, width)
		for x := range grid[y] {
			grid[y][x] = rng.Float64() >= density
		}
	}
	return grid
}

func writeMap(path string, grid [][]bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, row := range grid {
		line := make([]byte, len(row))
		for x, passable := range row {
			if passable {
				line[x] = '.'
			} else {
				line[x] = '@'
			}
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func sampleDistinctPairs(grid [][]bool, n int, rng *rand.Rand) ([][4]int, error) {
	var passable [][2]int
	for y, row := range grid {
		for x, ok := range row {
			if ok {
				passable = append(passable, [2]int{x, y})
			}
		}
	}
	if len(passable) < n {
		return nil, fmt.Errorf("grid has only %d passable cells, need %d", len(passable), n)
	}

	pick := func(taken map[[2]int]bool) [2]int {
		for {
			c := passable[rng.Intn(len(passable))]
			if !taken[c] {
				return c
			}
		}
	}

	takenStart := make(map[[2]int]bool, n)
	takenGoal := make(map[[2]int]bool, n)
	pairs := make([][4]int, n)
	for i := 0; i < n; i++ {
		s := pick(takenStart)
		takenStart[s] = true
		g := pick(takenGoal)
		takenGoal[g] = true
		pairs[i] = [4]int{s[0], s[1], g[0], g[1]}
	}
	return pairs, nil
}
