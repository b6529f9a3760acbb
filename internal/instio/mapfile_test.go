package instio

import (
	"strings"
	"testing"
)

func TestParseMapBasic(t *testing.T) {
	g, err := ParseMap(strings.NewReader("..@\n...\n@..\n"))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if g.NumNodes() != 7 {
		t.Fatalf("NumNodes() = %d, want 7", g.NumNodes())
	}
	if g.At(2, 0) != nil {
		t.Fatalf("(2,0) should be blocked")
	}
	if g.At(0, 2) != nil {
		t.Fatalf("(0,2) should be blocked")
	}
}

func TestParseMapGoalAndTreeGlyphs(t *testing.T) {
	g, err := ParseMap(strings.NewReader("G.T\n"))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if g.At(0, 0) == nil || g.At(1, 0) == nil {
		t.Fatalf("'G' and '.' should both be passable")
	}
	if g.At(2, 0) != nil {
		t.Fatalf("'T' should be blocked")
	}
}

func TestParseMapRejectsUnknownGlyph(t *testing.T) {
	if _, err := ParseMap(strings.NewReader("..x\n")); err == nil {
		t.Fatalf("expected an error for an unrecognized glyph")
	}
}

func TestParseMapRejectsRaggedRows(t *testing.T) {
	if _, err := ParseMap(strings.NewReader("...\n..\n")); err == nil {
		t.Fatalf("expected an error for mismatched row widths")
	}
}

func TestParseMapRejectsEmpty(t *testing.T) {
	if _, err := ParseMap(strings.NewReader("")); err == nil {
		t.Fatalf("expected an error for an empty map")
	}
}
