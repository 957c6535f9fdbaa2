// Package latex renders a composed puzzle set as a printable LaTeX
// worksheet with diagrams and a solutions page.
package latex

import (
	"fmt"
	"strings"

	"puzzlebook/internal/fen"
	"puzzlebook/internal/puzzle"
)

const diagramsPerPage = 4

// Document holds the presentation options for one worksheet.
type Document struct {
	Title string
	// ShowRatings prints each puzzle's rating under its diagram.
	ShowRatings bool
}

// Render produces the complete LaTeX source for the puzzle set.
//
// Corpus positions are stored before the opponent's setup move; each diagram
// shows the position after it, with the solution reduced to the solver's
// line. Solutions are printed in coordinate notation.
func Render(doc Document, records []puzzle.Record) string {
	lines := []string{
		`\documentclass[12pt,a4paper]{article}`,
		`\usepackage[utf8]{inputenc}`,
		`\usepackage{xskak}`,
		`\usepackage{chessboard}`,
		`\usepackage{geometry}`,
		`\usepackage{multicol}`,
		`\usepackage{titlesec}`,
		`\usepackage{fancyhdr}`,
		`\usepackage{lastpage}`,
		`\usepackage{enumitem}`,
		``,
		`\geometry{margin=1in}`,
		`\setlength{\parindent}{0pt}`,
		`\setlength{\parskip}{6pt}`,
		``,
		`\pagestyle{fancy}`,
		`\fancyhf{}`,
		`\fancyhead[L]{\slshape ` + Escape(doc.Title) + `}`,
		`\fancyhead[R]{\slshape Page \thepage\ of \pageref{LastPage}}`,
		`\renewcommand{\headrulewidth}{0.4pt}`,
		`\renewcommand{\footrulewidth}{0.4pt}`,
		``,
		`\title{` + Escape(doc.Title) + `}`,
		`\author{}`,
		`\date{\today}`,
		``,
		`\begin{document}`,
		``,
		`\maketitle`,
		``,
		`\section*{Instructions}`,
		fmt.Sprintf("This document contains %d chess puzzles from the Lichess puzzle database.", len(records)),
		`For each position, find the best continuation for the side to move.`,
		`Solutions are provided on the last page.`,
		``,
		`\newpage`,
		`\section*{Puzzles}`,
		``,
	}

	for i, rec := range records {
		lines = append(lines, renderPuzzle(doc, i+1, rec)...)
		if (i+1)%diagramsPerPage == 0 && i+1 < len(records) {
			lines = append(lines, `\newpage`)
		}
	}

	lines = append(lines,
		`\newpage`,
		`\section*{Solutions}`,
		``,
	)
	for i, rec := range records {
		lines = append(lines,
			fmt.Sprintf(`\textbf{Puzzle %d:} %s`, i+1, Escape(strings.Join(solutionMoves(rec), ", "))),
			``,
		)
	}

	lines = append(lines, `\end{document}`)
	return strings.Join(lines, "\n") + "\n"
}

func renderPuzzle(doc Document, number int, rec puzzle.Record) []string {
	displayFEN, whiteToMove := displayPosition(rec)

	caption := sideLabel(whiteToMove) + " to move"
	if c := puzzle.Classify(rec); c.IsMate && c.HasMateDepth() {
		caption = fmt.Sprintf("%s and checkmate in %d", caption, c.MateDepth)
	}

	meta := fmt.Sprintf(`\small{Puzzle ID: %s}`, Escape(rec.ID))
	if doc.ShowRatings && rec.HasRating() {
		meta += fmt.Sprintf(` \quad Rating: %d`, rec.Rating)
	}

	return []string{
		fmt.Sprintf(`\subsection*{Puzzle %d}`, number),
		`\begin{center}`,
		`\newgame`,
		fmt.Sprintf(`\fenboard{%s}`, displayFEN),
		`\chessboard`,
		`\end{center}`,
		`\begin{center}`,
		fmt.Sprintf(`\textbf{%s}`, caption),
		``,
		meta,
		`\end{center}`,
		``,
		`\vspace{1cm}`,
		``,
	}
}

// displayPosition applies the setup move to the corpus FEN. A record whose
// setup move cannot be applied keeps its raw position rather than being
// dropped this late in the pipeline.
func displayPosition(rec puzzle.Record) (string, bool) {
	board, err := fen.AfterSetupMove(rec.FEN, rec.Moves)
	if err != nil {
		white := strings.Contains(rec.FEN, " w ")
		return rec.FEN, white
	}
	return board.String(), board.WhiteToMove()
}

// solutionMoves returns the solver's line, excluding the setup move.
func solutionMoves(rec puzzle.Record) []string {
	if len(rec.Moves) <= 1 {
		return rec.Moves
	}
	return rec.Moves[1:]
}

func sideLabel(whiteToMove bool) string {
	if whiteToMove {
		return "White"
	}
	return "Black"
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`#`, `\#`,
	`%`, `\%`,
	`&`, `\&`,
	`$`, `\$`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
)

// Escape escapes LaTeX special characters in user-provided text.
func Escape(s string) string {
	return latexEscaper.Replace(s)
}
