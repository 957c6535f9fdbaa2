package puzzle

import (
	"strconv"
	"strings"
)

// MateTag is the literal theme tag marking a mate puzzle.
const MateTag = "mate"

const mateDepthPrefix = "mateIn"

// Classification holds facts derived from a record. It is computed, never stored.
type Classification struct {
	// PlyCount is the solution length in half-moves. The first move of a
	// record is the opponent's setup move and is excluded.
	PlyCount int
	// IsMate reports whether the record carries the "mate" theme tag.
	IsMate bool
	// MateDepth is the number of full moves to forced mate, taken from the
	// mateInK theme tag. Zero means unknown: a record can be tagged "mate"
	// without a depth tag, and such records are excluded from depth-specific
	// selection modes.
	MateDepth int
}

// HasMateDepth reports whether a mate depth could be resolved.
func (c Classification) HasMateDepth() bool {
	return c.MateDepth > 0
}

// Classify derives the classification for a record. It is deterministic and
// has no side effects; the same record always classifies the same way.
func Classify(r Record) Classification {
	c := Classification{}
	if len(r.Moves) > 0 {
		c.PlyCount = len(r.Moves) - 1
	}
	for _, theme := range r.Themes {
		if theme == MateTag {
			c.IsMate = true
			continue
		}
		if depth, ok := parseMateDepth(theme); ok {
			c.MateDepth = depth
		}
	}
	return c
}

// parseMateDepth extracts K from a mateInK tag.
func parseMateDepth(theme string) (int, bool) {
	suffix, ok := strings.CutPrefix(theme, mateDepthPrefix)
	if !ok || suffix == "" {
		return 0, false
	}
	depth, err := strconv.Atoi(suffix)
	if err != nil || depth <= 0 {
		return 0, false
	}
	return depth, true
}
