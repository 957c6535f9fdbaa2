// Package puzzle defines the puzzle record model and its classification.
package puzzle

// Record is one puzzle row from the corpus. Records are read-only facts:
// the engine filters and reorders references to them but never mutates one.
type Record struct {
	ID         string
	FEN        string
	Moves      []string
	Rating     int
	Themes     []string
	Popularity int
	PlayCount  int
}

// HasTheme reports whether the record carries the given theme tag.
func (r Record) HasTheme(theme string) bool {
	for _, t := range r.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

// HasRating reports whether the record carries a usable rating.
// The corpus encodes "no rating" as a non-positive value.
func (r Record) HasRating() bool {
	return r.Rating > 0
}
