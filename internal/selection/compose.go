package selection

import (
	"io"

	"puzzlebook/internal/puzzle"
)

// Composition is the engine's final product: an ordered, duplicate-free
// sequence of puzzles plus any shortfall warnings.
type Composition struct {
	Puzzles  []puzzle.Record
	Warnings []ShortfallWarning
}

// Compose resolves the active modes, splits the target count across them,
// selects per mode, merges, and orders the result.
//
// With two modes the corpus is scanned once per mode, independently. The
// second mode's draw excludes ids already taken by the first, so a record
// matching both filters is kept under the first mode and the second mode
// draws a replacement from its remaining pool; when that pool is exhausted
// the deficit counts toward the second mode's shortfall. Quotas are strict:
// a shortfall in one mode is never backfilled from the other mode's surplus.
func Compose(open OpenFunc, req Request) (Composition, error) {
	if err := req.Validate(); err != nil {
		return Composition{}, err
	}

	quotas := req.quotas()
	exclude := make(map[string]struct{})
	var merged []puzzle.Record
	var warnings []ShortfallWarning

	for i, mode := range req.Modes {
		src, err := open()
		if err != nil {
			return Composition{}, err
		}
		filter := Filter{MinRating: req.MinRating, MaxRating: req.MaxRating, Mode: mode}
		// Each mode gets its own derived seed so its draw does not depend on
		// how many records the other mode consumed from the generator.
		res, err := Select(src, filter, quotas[i], req.Seed+int64(i), exclude)
		if closer, ok := src.(io.Closer); ok {
			// Best-effort close of file-backed sources.
			_ = closer.Close()
		}
		if err != nil {
			return Composition{}, err
		}
		for _, rec := range res.Chosen {
			exclude[rec.ID] = struct{}{}
		}
		merged = append(merged, res.Chosen...)
		if res.Shortfall > 0 {
			warnings = append(warnings, ShortfallWarning{
				Mode:      mode,
				Requested: quotas[i],
				Obtained:  len(res.Chosen),
			})
		}
	}

	if len(merged) == 0 {
		return Composition{}, ErrEmptyResult
	}
	return Composition{
		Puzzles:  Order(merged, req.Progressive),
		Warnings: warnings,
	}, nil
}
