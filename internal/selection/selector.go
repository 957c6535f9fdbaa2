package selection

import (
	"errors"
	"io"
	"math/rand"

	"puzzlebook/internal/puzzle"
)

// Source is a finite, non-restartable stream of corpus records. Next returns
// io.EOF when the stream is exhausted.
type Source interface {
	Next() (puzzle.Record, error)
}

// OpenFunc opens a fresh pass over the corpus. Compose scans once per mode;
// the passes are independent and share no cursor.
type OpenFunc func() (Source, error)

// Result is the outcome of one Select call.
type Result struct {
	// Chosen holds up to quota records. Their order is unspecified; Order is
	// solely responsible for the final sequence.
	Chosen []puzzle.Record
	// Matched counts distinct records that passed the filter.
	Matched int
	// Shortfall is how many requested records the corpus could not provide.
	Shortfall int
}

// Select streams records through the filter, deduplicates by id (first
// occurrence wins), and draws up to quota records as a seeded uniform sample
// without replacement. Records whose id is in exclude are skipped; the
// caller uses this to keep a second mode's draw disjoint from the first.
func Select(src Source, f Filter, quota int, seed int64, exclude map[string]struct{}) (Result, error) {
	rng := rand.New(rand.NewSource(seed))
	seen := make(map[string]struct{})
	chosen := make([]puzzle.Record, 0, quota)
	matched := 0

	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, err
		}
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}
		if _, skip := exclude[rec.ID]; skip {
			continue
		}
		if !f.Match(rec, puzzle.Classify(rec)) {
			continue
		}
		matched++
		// Reservoir sampling keeps the draw uniform over all matches in a
		// single pass.
		if len(chosen) < quota {
			chosen = append(chosen, rec)
			continue
		}
		if j := rng.Intn(matched); j < quota {
			chosen[j] = rec
		}
	}

	res := Result{Chosen: chosen, Matched: matched}
	if len(chosen) < quota {
		res.Shortfall = quota - len(chosen)
	}
	return res, nil
}
