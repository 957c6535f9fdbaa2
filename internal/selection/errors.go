package selection

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest wraps all request validation failures. Validation fails
// fast, before any corpus scan.
var ErrInvalidRequest = errors.New("invalid selection request")

// ErrEmptyResult is returned when zero records matched any active filter.
// It is distinct from a shortfall, which is a partial (and successful)
// result, so the caller can abort instead of rendering an empty document.
var ErrEmptyResult = errors.New("no puzzles matched the selection criteria")

func invalidRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// ShortfallWarning reports that the corpus had fewer matching records than
// requested for one mode. Shortfalls are recovered internally and reported,
// never escalated as errors.
type ShortfallWarning struct {
	Mode      Mode
	Requested int
	Obtained  int
}

// String formats the warning for user-visible reporting.
func (w ShortfallWarning) String() string {
	return fmt.Sprintf("only %d of %d requested %s puzzles available", w.Obtained, w.Requested, w.Mode)
}
