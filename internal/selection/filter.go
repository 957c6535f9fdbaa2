package selection

import "puzzlebook/internal/puzzle"

// Filter is the compound predicate applied to every streamed record: rating
// band membership AND one mode predicate. Filters are pure and
// order-independent; a record's verdict never depends on its position in the
// stream.
type Filter struct {
	// MinRating and MaxRating bound the rating band, inclusive. Zero means
	// unbounded on that side.
	MinRating int
	MaxRating int
	Mode      Mode
}

// Match reports whether a classified record passes the filter.
func (f Filter) Match(r puzzle.Record, c puzzle.Classification) bool {
	if f.MinRating > 0 && r.Rating < f.MinRating {
		return false
	}
	if f.MaxRating > 0 && r.Rating > f.MaxRating {
		return false
	}
	return f.Mode.Match(r, c)
}
