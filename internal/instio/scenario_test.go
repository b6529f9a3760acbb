package instio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateScenarioDistinctStartsAndGoals(t *testing.T) {
	g, err := ParseMap(strings.NewReader(".....\n.....\n.....\n"))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}

	pairs, err := GenerateScenario(g, 4, 42)
	if err != nil {
		t.Fatalf("GenerateScenario: %v", err)
	}
	if len(pairs) != 4 {
		t.Fatalf("expected 4 pairs, got %d", len(pairs))
	}

	starts := make(map[[2]int]bool)
	goals := make(map[[2]int]bool)
	for _, p := range pairs {
		s := [2]int{p[0], p[1]}
		gl := [2]int{p[2], p[3]}
		if starts[s] {
			t.Fatalf("duplicate start %v", s)
		}
		if goals[gl] {
			t.Fatalf("duplicate goal %v", gl)
		}
		starts[s] = true
		goals[gl] = true
	}
}

func TestGenerateScenarioRejectsTooFewCells(t *testing.T) {
	g, err := ParseMap(strings.NewReader("..\n"))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if _, err := GenerateScenario(g, 5, 1); err == nil {
		t.Fatalf("expected an error when the map has fewer passable cells than agents")
	}
}

func TestGenerateScenarioDeterministic(t *testing.T) {
	g, err := ParseMap(strings.NewReader(".....\n.....\n"))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	a, err := GenerateScenario(g, 3, 5)
	if err != nil {
		t.Fatalf("GenerateScenario: %v", err)
	}
	b, err := GenerateScenario(g, 3, 5)
	if err != nil {
		t.Fatalf("GenerateScenario: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed should reproduce the same scenario, pair %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestWriteScenarioRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.scen")
	pairs := [][4]int{{0, 0, 1, 1}, {2, 2, 3, 3}}
	if err := WriteScenario(path, pairs); err != nil {
		t.Fatalf("WriteScenario: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "0 0 1 1\n2 2 3 3\n"
	if string(data) != want {
		t.Fatalf("scenario file = %q, want %q", string(data), want)
	}
}
