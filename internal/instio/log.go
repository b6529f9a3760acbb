package instio

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
)

// RunInfo is everything WriteLog needs to report (spec.md §6's log format).
type RunInfo struct {
	RunID       string
	Instance    string
	Agents      int
	MapFile     string
	Solver      string
	Solved      bool
	SOC         int
	Makespan    int
	CompTimeMS  int64
	Starts      []*grid.Node
	Goals       []*grid.Node
	Plan        mapf.Plan
}

// NewRunInfo stamps a fresh run-scoped identifier via a random (v4) UUID,
// so repeated runs over the same instance remain distinguishable in
// aggregated logs even when solver and instance name collide.
func NewRunInfo() RunInfo {
	return RunInfo{RunID: uuid.NewString()}
}

// WriteLog writes info to path in the text key=value format, or as JSON
// when path ends in ".json".
func WriteLog(path string, info RunInfo) error {
	if strings.HasSuffix(path, ".json") {
		return writeLogJSON(path, info)
	}
	return writeLogText(path, info)
}

func writeLogText(path string, info RunInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("instio: creating log file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "run_id=%s\n", info.RunID)
	fmt.Fprintf(f, "instance=%s\n", info.Instance)
	fmt.Fprintf(f, "agents=%d\n", info.Agents)
	fmt.Fprintf(f, "map_file=%s\n", info.MapFile)
	fmt.Fprintf(f, "solver=%s\n", info.Solver)
	fmt.Fprintf(f, "solved=%t\n", info.Solved)
	fmt.Fprintf(f, "soc=%d\n", info.SOC)
	fmt.Fprintf(f, "makespan=%d\n", info.Makespan)
	fmt.Fprintf(f, "comp_time=%d\n", info.CompTimeMS)

	fmt.Fprint(f, "starts:")
	for _, n := range info.Starts {
		fmt.Fprintf(f, "(%d,%d),", n.X, n.Y)
	}
	fmt.Fprintln(f)

	fmt.Fprint(f, "goals:")
	for _, n := range info.Goals {
		fmt.Fprintf(f, "(%d,%d),", n.X, n.Y)
	}
	fmt.Fprintln(f)

	fmt.Fprintln(f, "solution:")
	for t, cfg := range info.Plan {
		fmt.Fprintf(f, "%d:", t)
		for _, n := range cfg {
			fmt.Fprintf(f, "(%d,%d),", n.X, n.Y)
		}
		fmt.Fprintln(f)
	}
	return nil
}

// jsonCoord and jsonLog mirror RunInfo in a form encoding/json can
// round-trip without needing custom (Un)MarshalJSON methods on grid.Node.
type jsonCoord struct{ X, Y int }

type jsonLog struct {
	RunID      string        `json:"run_id"`
	Instance   string        `json:"instance"`
	Agents     int           `json:"agents"`
	MapFile    string        `json:"map_file"`
	Solver     string        `json:"solver"`
	Solved     bool          `json:"solved"`
	SOC        int           `json:"soc"`
	Makespan   int           `json:"makespan"`
	CompTimeMS int64         `json:"comp_time_ms"`
	Starts     []jsonCoord   `json:"starts"`
	Goals      []jsonCoord   `json:"goals"`
	Solution   [][]jsonCoord `json:"solution"`
}

func writeLogJSON(path string, info RunInfo) error {
	jl := jsonLog{
		RunID: info.RunID, Instance: info.Instance, Agents: info.Agents,
		MapFile: info.MapFile, Solver: info.Solver, Solved: info.Solved,
		SOC: info.SOC, Makespan: info.Makespan, CompTimeMS: info.CompTimeMS,
	}
	for _, n := range info.Starts {
		jl.Starts = append(jl.Starts, jsonCoord{n.X, n.Y})
	}
	for _, n := range info.Goals {
		jl.Goals = append(jl.Goals, jsonCoord{n.X, n.Y})
	}
	for _, cfg := range info.Plan {
		var row []jsonCoord
		for _, n := range cfg {
			row = append(row, jsonCoord{n.X, n.Y})
		}
		jl.Solution = append(jl.Solution, row)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("instio: creating log file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jl); err != nil {
		return fmt.Errorf("instio: encoding log as json: %w", err)
	}
	return nil
}
