// Package corpus streams puzzle records from a Lichess puzzle-database CSV.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"puzzlebook/internal/puzzle"
	"puzzlebook/internal/selection"
)

// Column layout of the Lichess puzzle CSV:
// PuzzleId,FEN,Moves,Rating,RatingDeviation,Popularity,NbPlays,Themes,GameUrl,OpeningTags
const (
	colID = iota
	colFEN
	colMoves
	colRating
	colRatingDeviation
	colPopularity
	colPlayCount
	colThemes

	minFields = colThemes + 1
)

// Tally accumulates malformed-row counts across corpus passes.
type Tally struct {
	Skipped int
}

// Stream lazily reads one record per call. It is finite and non-restartable;
// open a new Stream for each pass over the corpus.
type Stream struct {
	reader  *csv.Reader
	closer  io.Closer
	tally   *Tally
	started bool
	skipped int
}

// Open opens the CSV file at path for streaming.
func Open(path string) (*Stream, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	s := NewStream(file)
	s.closer = file
	return s, nil
}

// NewStream wraps an in-memory or already-open CSV source.
func NewStream(r io.Reader) *Stream {
	reader := csv.NewReader(r)
	// Rows in the wild are occasionally ragged; per-row validation decides
	// what to skip.
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true
	return &Stream{reader: reader}
}

// Opener returns a fresh-stream factory for the composition engine, which
// scans the corpus once per selection mode. A non-nil tally collects the
// malformed-row count across all passes.
func Opener(path string, tally *Tally) selection.OpenFunc {
	return func() (selection.Source, error) {
		s, err := Open(path)
		if err != nil {
			return nil, err
		}
		s.tally = tally
		return s, nil
	}
}

// Next returns the next well-formed record, skipping malformed rows with an
// internal tally. It returns io.EOF when the corpus is exhausted.
func (s *Stream) Next() (puzzle.Record, error) {
	for {
		row, err := s.reader.Read()
		if errors.Is(err, io.EOF) {
			return puzzle.Record{}, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			s.skip()
			continue
		}
		if err != nil {
			return puzzle.Record{}, fmt.Errorf("failed to read corpus row: %w", err)
		}
		if !s.started {
			s.started = true
			if isHeader(row) {
				continue
			}
		}
		rec, ok := parseRow(row)
		if !ok {
			s.skip()
			continue
		}
		return rec, nil
	}
}

func (s *Stream) skip() {
	s.skipped++
	if s.tally != nil {
		s.tally.Skipped++
	}
}

// Skipped returns how many malformed rows were dropped so far.
func (s *Stream) Skipped() int {
	return s.skipped
}

// Close closes the underlying file, if any.
func (s *Stream) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(row[colID], "puzzleid")
}

func parseRow(row []string) (puzzle.Record, bool) {
	if len(row) < minFields {
		return puzzle.Record{}, false
	}
	id := strings.TrimSpace(row[colID])
	fen := strings.TrimSpace(row[colFEN])
	moves := strings.Fields(row[colMoves])
	if id == "" || fen == "" || len(moves) == 0 {
		return puzzle.Record{}, false
	}
	return puzzle.Record{
		ID:         id,
		FEN:        fen,
		Moves:      moves,
		Rating:     atoiOrZero(row[colRating]),
		Themes:     strings.Fields(row[colThemes]),
		Popularity: atoiOrZero(row[colPopularity]),
		PlayCount:  atoiOrZero(row[colPlayCount]),
	}, true
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
