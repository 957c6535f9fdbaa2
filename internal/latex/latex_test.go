package latex

import (
	"strings"
	"testing"

	"puzzlebook/internal/puzzle"
)

func sample() puzzle.Record {
	return puzzle.Record{
		ID:     "00sHx",
		FEN:    "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Moves:  []string{"e2e4", "e7e5", "d1h5", "b8c6", "h5f7"},
		Rating: 1760,
		Themes: []string{"mate", "mateIn2", "short"},
	}
}

func TestRenderContainsDocumentSkeleton(t *testing.T) {
	out := Render(Document{Title: "Mate-in-2 Chess Puzzles"}, []puzzle.Record{sample()})
	for _, want := range []string{
		`\documentclass[12pt,a4paper]{article}`,
		`\usepackage{xskak}`,
		`\title{Mate-in-2 Chess Puzzles}`,
		`\subsection*{Puzzle 1}`,
		`\chessboard`,
		`\section*{Solutions}`,
		`\end{document}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output", want)
		}
	}
}

func TestRenderAppliesSetupMove(t *testing.T) {
	out := Render(Document{Title: "t"}, []puzzle.Record{sample()})
	// e2e4 has been applied; the diagram FEN shows the pawn on e4 and black
	// to move.
	if !strings.Contains(out, `\fenboard{rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1}`) {
		t.Fatalf("setup move not applied:\n%s", out)
	}
	if !strings.Contains(out, "Black to move and checkmate in 2") {
		t.Fatalf("missing caption in output")
	}
}

func TestRenderSolutionExcludesSetupMove(t *testing.T) {
	out := Render(Document{Title: "t"}, []puzzle.Record{sample()})
	if !strings.Contains(out, `\textbf{Puzzle 1:} e7e5, d1h5, b8c6, h5f7`) {
		t.Fatalf("unexpected solution line:\n%s", out)
	}
	if strings.Contains(out, "e2e4, e7e5") {
		t.Fatalf("setup move leaked into solution")
	}
}

func TestRenderRatingsToggle(t *testing.T) {
	shown := Render(Document{Title: "t", ShowRatings: true}, []puzzle.Record{sample()})
	if !strings.Contains(shown, "Rating: 1760") {
		t.Fatalf("expected rating line when ShowRatings is set")
	}
	hidden := Render(Document{Title: "t"}, []puzzle.Record{sample()})
	if strings.Contains(hidden, "Rating: 1760") {
		t.Fatalf("rating printed despite ShowRatings=false")
	}
}

func TestRenderPageBreaks(t *testing.T) {
	records := make([]puzzle.Record, 5)
	for i := range records {
		rec := sample()
		rec.ID = rec.ID + string(rune('a'+i))
		records[i] = rec
	}
	out := Render(Document{Title: "t"}, records)
	if got := strings.Count(out, `\newpage`); got != 3 {
		// One before the puzzles, one after the fourth diagram, one before
		// the solutions.
		t.Fatalf("expected 3 page breaks, got %d", got)
	}
}

func TestEscape(t *testing.T) {
	if got := Escape("Qf7#"); got != `Qf7\#` {
		t.Fatalf("unexpected escape: %q", got)
	}
	if got := Escape("50% & more_fun"); got != `50\% \& more\_fun` {
		t.Fatalf("unexpected escape: %q", got)
	}
}
