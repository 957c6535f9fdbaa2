package selection

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Ratio holds proportional weights between the first and second mode of a
// request. The weights need not sum to 100; "7:3" and "70:30" are equivalent.
type Ratio struct {
	A int
	B int
}

// ParseRatio parses a "p:q" ratio string.
func ParseRatio(s string) (Ratio, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Ratio{}, fmt.Errorf("invalid ratio %q: expected p:q", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid ratio %q: %w", s, err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid ratio %q: %w", s, err)
	}
	if a < 0 || b < 0 || a+b == 0 {
		return Ratio{}, fmt.Errorf("invalid ratio %q: weights must be non-negative and not both zero", s)
	}
	return Ratio{A: a, B: b}, nil
}

// Request is the validated user intent for one composition. It is immutable
// from the engine's point of view; Compose never modifies it.
type Request struct {
	// Count is the target number of puzzles N.
	Count int `validate:"gt=0"`
	// MinRating and MaxRating bound the rating band, inclusive; zero means
	// unbounded on that side.
	MinRating int `validate:"gte=0"`
	MaxRating int `validate:"gte=0"`
	// Modes holds one or two active selection modes, at most one per family.
	// With two modes, Modes[0] receives Ratio.A and Modes[1] receives
	// Ratio.B.
	Modes []Mode
	// Ratio splits Count between two modes. Nil with a single mode.
	Ratio *Ratio
	// Progressive orders the final set by ascending rating.
	Progressive bool
	// ShowRatings is passed through to the renderer.
	ShowRatings bool
	// Seed makes sampling reproducible. The caller picks it; repeated calls
	// with the same corpus snapshot, request, and seed yield identical
	// output.
	Seed int64
}

// Validate checks the request before any corpus scan.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return invalidRequestf("%v", err)
	}
	if r.MinRating > 0 && r.MaxRating > 0 && r.MinRating > r.MaxRating {
		return invalidRequestf("min rating %d exceeds max rating %d", r.MinRating, r.MaxRating)
	}
	if len(r.Modes) == 0 {
		return invalidRequestf("no selection mode given")
	}
	if len(r.Modes) > 2 {
		return invalidRequestf("at most two selection modes may be combined")
	}
	perFamily := map[Family]int{}
	for _, mode := range r.Modes {
		perFamily[mode.Family()]++
	}
	for family, n := range perFamily {
		if n > 1 {
			return invalidRequestf("multiple %s-family modes given", family)
		}
	}
	if r.Ratio != nil && len(r.Modes) != 2 {
		return invalidRequestf("ratio given without two modes")
	}
	return nil
}

// quotas splits Count across the active modes. The remainder after rounding
// is assigned to the second mode so the quotas always sum to exactly Count.
func (r Request) quotas() []int {
	if len(r.Modes) == 1 {
		return []int{r.Count}
	}
	ratio := Ratio{A: 1, B: 1}
	if r.Ratio != nil {
		ratio = *r.Ratio
	}
	first := int(math.Round(float64(r.Count) * float64(ratio.A) / float64(ratio.A+ratio.B)))
	return []int{first, r.Count - first}
}
