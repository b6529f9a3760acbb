package instio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
)

func sampleRunInfo() RunInfo {
	g := grid.NewGraph([][]bool{{true, true, true}})
	a, b, c := g.At(0, 0), g.At(1, 0), g.At(2, 0)
	info := NewRunInfo()
	info.Instance = "test.instance"
	info.Agents = 1
	info.MapFile = "test.map"
	info.Solver = "CBS"
	info.Solved = true
	info.SOC = 2
	info.Makespan = 2
	info.CompTimeMS = 5
	info.Starts = []*grid.Node{a}
	info.Goals = []*grid.Node{c}
	info.Plan = mapf.Plan{mapf.Config{a}, mapf.Config{b}, mapf.Config{c}}
	return info
}

func TestWriteLogText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.log")
	info := sampleRunInfo()
	if err := WriteLog(path, info); err != nil {
		t.Fatalf("WriteLog: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"solver=CBS", "solved=true", "soc=2", "makespan=2",
		"starts:(0,0),", "goals:(2,0),", "solution:", "0:(0,0),", "2:(2,0),",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("log text missing %q; full text:\n%s", want, text)
		}
	}
}

func TestWriteLogJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	info := sampleRunInfo()
	if err := WriteLog(path, info); err != nil {
		t.Fatalf("WriteLog: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var jl jsonLog
	if err := json.Unmarshal(data, &jl); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if jl.Solver != "CBS" || !jl.Solved || jl.SOC != 2 || jl.Makespan != 2 {
		t.Fatalf("decoded log mismatch: %+v", jl)
	}
	if len(jl.Solution) != 3 {
		t.Fatalf("expected 3 timesteps in solution, got %d", len(jl.Solution))
	}
}
