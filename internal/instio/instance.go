package instio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

// Instance is the parsed contents of an instance file (spec.md §6), before
// the start/goal coordinates have been resolved against a loaded map.
type Instance struct {
	MapFile       string
	Agents        int
	Seed          int64
	RandomProblem bool
	MaxTimestep   int
	MaxCompTime   int

	// StartGoal holds one (xs,ys,xg,yg) quadruple per agent; empty when
	// RandomProblem is true, in which case the scenario block below (or a
	// companion -P generated scenario file) supplies them instead.
	StartGoal [][4]int
}

// LoadInstance reads and parses an instance file at path.
func LoadInstance(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("instio: opening instance file: %w", err)
	}
	defer f.Close()
	return ParseInstance(f)
}

// ParseInstance reads the key=value header followed by the optional
// per-agent coordinate block.
func ParseInstance(f *os.File) (*Instance, error) {
	inst := &Instance{}
	sc := bufio.NewScanner(f)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break // blank line ends the header, coordinate block follows
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("instio: malformed header line %q", line)
		}
		if err := inst.setField(k, v); err != nil {
			return nil, err
		}
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("instio: malformed coordinate line %q", line)
		}
		var quad [4]int
		for i, tok := range fields {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("instio: coordinate %q is not an integer: %w", tok, err)
			}
			quad[i] = n
		}
		inst.StartGoal = append(inst.StartGoal, quad)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("instio: reading instance file: %w", err)
	}

	if !inst.RandomProblem && len(inst.StartGoal) != inst.Agents {
		return nil, fmt.Errorf("instio: declared %d agents but found %d coordinate lines", inst.Agents, len(inst.StartGoal))
	}
	return inst, nil
}

func (inst *Instance) setField(key, value string) error {
	switch key {
	case "map_file":
		inst.MapFile = value
	case "agents":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("instio: agents: %w", err)
		}
		inst.Agents = n
	case "seed":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("instio: seed: %w", err)
		}
		inst.Seed = n
	case "random_problem":
		inst.RandomProblem = value == "1"
	case "max_timestep":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("instio: max_timestep: %w", err)
		}
		inst.MaxTimestep = n
	case "max_comp_time":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("instio: max_comp_time: %w", err)
		}
		inst.MaxCompTime = n
	default:
		return fmt.Errorf("instio: unknown instance field %q", key)
	}
	return nil
}

// ToProblem resolves the instance's map file and coordinates into a
// grid.Problem. scenario supplies start/goal pairs when RandomProblem is
// true and the instance file itself carried none.
func (inst *Instance) ToProblem(scenario [][4]int, unlabeled bool) (*grid.Problem, error) {
	g, err := LoadMap(inst.MapFile)
	if err != nil {
		return nil, err
	}

	pairs := inst.StartGoal
	if inst.RandomProblem {
		pairs = scenario
	}
	if len(pairs) != inst.Agents {
		return nil, fmt.Errorf("instio: need %d start/goal pairs, have %d", inst.Agents, len(pairs))
	}

	starts := make([]*grid.Node, inst.Agents)
	goals := make([]*grid.Node, inst.Agents)
	for i, p := range pairs {
		starts[i] = g.At(p[0], p[1])
		goals[i] = g.At(p[2], p[3])
		if starts[i] == nil || goals[i] == nil {
			return nil, fmt.Errorf("instio: agent %d references an impassable or out-of-bounds cell", i)
		}
	}

	return grid.NewProblem(g, starts, goals, unlabeled, inst.MaxTimestep, inst.MaxCompTime)
}
