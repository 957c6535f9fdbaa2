package selection

import (
	"sort"

	"puzzlebook/internal/puzzle"
)

// Order arranges the composed set. With progressive=false the arrival order
// is preserved unchanged. With progressive=true the set is sorted by
// ascending rating, ties broken by id; records without a rating sort last.
// The input slice is not modified.
func Order(puzzles []puzzle.Record, progressive bool) []puzzle.Record {
	out := append([]puzzle.Record(nil), puzzles...)
	if !progressive {
		return out
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasRating() != b.HasRating() {
			return a.HasRating()
		}
		if a.Rating != b.Rating {
			return a.Rating < b.Rating
		}
		return a.ID < b.ID
	})
	return out
}
