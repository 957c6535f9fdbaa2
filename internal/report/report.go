// Package report prints a terminal summary of a composed puzzle set.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"puzzlebook/internal/puzzle"
)

const fallbackWidth = 100

// Summary writes a table of the selected puzzles: index, id, rating, kind,
// and themes, truncated to the terminal width.
func Summary(w io.Writer, records []puzzle.Record) error {
	headers := []string{"#", "ID", "RATING", "KIND", "THEMES"}
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		rating := "-"
		if rec.HasRating() {
			rating = strconv.Itoa(rec.Rating)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.ID,
			rating,
			kind(rec),
			strings.Join(rec.Themes, " "),
		})
	}

	maxWidth := terminalWidth(w)
	for _, line := range formatTable(headers, rows, map[int]bool{0: true, 2: true}) {
		if runewidth.StringWidth(line) > maxWidth {
			line = runewidth.Truncate(line, maxWidth, "…")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func kind(rec puzzle.Record) string {
	c := puzzle.Classify(rec)
	switch {
	case c.IsMate && c.HasMateDepth():
		return fmt.Sprintf("mate-in-%d", c.MateDepth)
	case c.IsMate:
		return "mate"
	default:
		return fmt.Sprintf("tactical/%d-ply", c.PlyCount)
	}
}

func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return fallbackWidth
	}
	if !term.IsTerminal(int(file.Fd())) {
		return fallbackWidth
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(headers, widths, rightAlignCols))
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := runewidth.StringWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}
