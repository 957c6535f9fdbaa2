package report

import (
	"strings"
	"testing"

	"puzzlebook/internal/puzzle"
)

func TestSummaryTable(t *testing.T) {
	records := []puzzle.Record{
		{ID: "00sHx", Rating: 1760, Themes: []string{"mate", "mateIn2"}, Moves: []string{"a", "b", "c", "d"}},
		{ID: "00sJ9", Rating: 2671, Themes: []string{"fork", "middlegame"}, Moves: []string{"a", "b", "c", "d", "e"}},
		{ID: "zzzzz", Themes: []string{"mate"}, Moves: []string{"a", "b"}},
	}
	var buf strings.Builder
	if err := Summary(&buf, records); err != nil {
		t.Fatalf("summary: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "RATING") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "mate-in-2") {
		t.Fatalf("expected mate kind in row: %q", lines[1])
	}
	if !strings.Contains(lines[2], "tactical/4-ply") {
		t.Fatalf("expected tactical kind in row: %q", lines[2])
	}
	if !strings.Contains(lines[3], "-") || !strings.Contains(lines[3], "mate") {
		t.Fatalf("expected unrated mate row: %q", lines[3])
	}
}
