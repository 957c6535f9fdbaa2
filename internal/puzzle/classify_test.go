package puzzle

import "testing"

func TestClassifyMateDepth(t *testing.T) {
	r := Record{
		ID:     "abc",
		Moves:  []string{"e2e4", "e7e5", "d1h5", "b8c6", "h5f7"},
		Themes: []string{"mate", "mateIn2", "middlegame"},
	}
	c := Classify(r)
	if !c.IsMate {
		t.Fatalf("expected mate puzzle")
	}
	if c.MateDepth != 2 {
		t.Fatalf("expected mate depth 2, got %d", c.MateDepth)
	}
	if c.PlyCount != 4 {
		t.Fatalf("expected ply count 4, got %d", c.PlyCount)
	}
}

func TestClassifyMateWithoutDepthTag(t *testing.T) {
	c := Classify(Record{Themes: []string{"mate", "endgame"}, Moves: []string{"a", "b"}})
	if !c.IsMate {
		t.Fatalf("expected mate puzzle")
	}
	if c.HasMateDepth() {
		t.Fatalf("expected unknown mate depth, got %d", c.MateDepth)
	}
}

func TestClassifyIgnoresMalformedDepthTags(t *testing.T) {
	for _, theme := range []string{"mateIn", "mateInX", "mateIn0", "mateIn-1"} {
		c := Classify(Record{Themes: []string{"mate", theme}})
		if c.HasMateDepth() {
			t.Fatalf("expected %q to yield unknown depth, got %d", theme, c.MateDepth)
		}
	}
}

func TestClassifyNonMate(t *testing.T) {
	c := Classify(Record{Themes: []string{"fork", "short"}, Moves: []string{"a", "b", "c"}})
	if c.IsMate || c.HasMateDepth() {
		t.Fatalf("expected tactical classification, got %+v", c)
	}
	if c.PlyCount != 2 {
		t.Fatalf("expected ply count 2, got %d", c.PlyCount)
	}
}

func TestClassifyEmptyMoves(t *testing.T) {
	if c := Classify(Record{}); c.PlyCount != 0 {
		t.Fatalf("expected ply count 0 for empty moves, got %d", c.PlyCount)
	}
}
