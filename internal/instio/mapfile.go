// Package instio reads and writes the plain-text instance/map/scenario
// file formats (spec.md §6) and the dual text+JSON solver log format.
package instio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
)

// LoadMap reads an ASCII grid map: '.' or 'G' are passable, '@' or 'T' are
// blocked, one row per line.
func LoadMap(path string) (*grid.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("instio: opening map file: %w", err)
	}
	defer f.Close()
	return ParseMap(f)
}

// ParseMap reads the ASCII grid format from r.
func ParseMap(r io.Reader) (*grid.Graph, error) {
	var rows [][]bool
	sc := bufio.NewScanner(r)
	width := -1
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		row := make([]bool, len(line))
		for x, ch := range line {
			switch ch {
			case '.', 'G':
				row[x] = true
			case '@', 'T':
				row[x] = false
			default:
				return nil, fmt.Errorf("instio: unrecognized map glyph %q", ch)
			}
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return nil, fmt.Errorf("instio: map row width mismatch: got %d, want %d", len(row), width)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("instio: reading map file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("instio: empty map")
	}
	return grid.NewGraph(rows), nil
}
