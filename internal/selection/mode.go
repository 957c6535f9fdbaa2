// Package selection implements the puzzle selection and composition engine:
// selection modes, compound filters, seeded sampling, ordering, and the
// orchestration of mixed-mode requests.
package selection

import (
	"fmt"
	"sort"
	"strings"

	"puzzlebook/internal/puzzle"
)

// Family groups selection modes. A request may carry at most one mode per
// family; the two families can be mixed with a ratio.
type Family int

const (
	// FamilyMate covers modes keyed on mate depth.
	FamilyMate Family = iota
	// FamilyTactical covers modes keyed on ply count or theme tags.
	FamilyTactical
)

// String returns the family name used in messages.
func (f Family) String() string {
	if f == FamilyMate {
		return "mate"
	}
	return "tactical"
}

// Mode is one selection criterion. The set of implementations is closed:
// MateExact, MateMix, MateLessThan, PlyExact, PlyLessThan, and ThemeSet.
type Mode interface {
	// Family reports which mode family this criterion belongs to.
	Family() Family
	// Match reports whether a classified record satisfies the criterion.
	// Match is pure: it depends only on the record and its classification.
	Match(r puzzle.Record, c puzzle.Classification) bool
	// String returns a short label for warnings and titles.
	String() string

	isMode()
}

// MateExact selects mate puzzles with exactly the given depth.
type MateExact struct {
	Depth int
}

func (m MateExact) Family() Family { return FamilyMate }

func (m MateExact) Match(_ puzzle.Record, c puzzle.Classification) bool {
	return c.IsMate && c.HasMateDepth() && c.MateDepth == m.Depth
}

func (m MateExact) String() string { return fmt.Sprintf("mate-in-%d", m.Depth) }

func (MateExact) isMode() {}

// MateMix selects mate puzzles whose depth is in the given set.
type MateMix struct {
	Depths []int
}

func (m MateMix) Family() Family { return FamilyMate }

func (m MateMix) Match(_ puzzle.Record, c puzzle.Classification) bool {
	if !c.IsMate || !c.HasMateDepth() {
		return false
	}
	for _, d := range m.Depths {
		if c.MateDepth == d {
			return true
		}
	}
	return false
}

func (m MateMix) String() string {
	depths := append([]int(nil), m.Depths...)
	sort.Ints(depths)
	parts := make([]string, len(depths))
	for i, d := range depths {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "mate-in-{" + strings.Join(parts, ",") + "}"
}

func (MateMix) isMode() {}

// MateLessThan selects mate puzzles with depth up to and including Depth.
type MateLessThan struct {
	Depth int
}

func (m MateLessThan) Family() Family { return FamilyMate }

func (m MateLessThan) Match(_ puzzle.Record, c puzzle.Classification) bool {
	return c.IsMate && c.HasMateDepth() && c.MateDepth <= m.Depth
}

func (m MateLessThan) String() string { return fmt.Sprintf("mate-in-up-to-%d", m.Depth) }

func (MateLessThan) isMode() {}

// PlyExact selects puzzles whose solution is exactly Ply half-moves.
type PlyExact struct {
	Ply int
}

func (m PlyExact) Family() Family { return FamilyTactical }

func (m PlyExact) Match(_ puzzle.Record, c puzzle.Classification) bool {
	return c.PlyCount == m.Ply
}

func (m PlyExact) String() string { return fmt.Sprintf("%d-ply", m.Ply) }

func (PlyExact) isMode() {}

// PlyLessThan selects puzzles whose solution is between one full move
// (2 ply) and Ply half-moves, inclusive.
type PlyLessThan struct {
	Ply int
}

func (m PlyLessThan) Family() Family { return FamilyTactical }

func (m PlyLessThan) Match(_ puzzle.Record, c puzzle.Classification) bool {
	return c.PlyCount >= 2 && c.PlyCount <= m.Ply
}

func (m PlyLessThan) String() string { return fmt.Sprintf("up-to-%d-ply", m.Ply) }

func (PlyLessThan) isMode() {}

// ThemeSet selects puzzles tagged with any of the given themes.
type ThemeSet struct {
	Themes []string
}

func (m ThemeSet) Family() Family { return FamilyTactical }

func (m ThemeSet) Match(r puzzle.Record, _ puzzle.Classification) bool {
	for _, theme := range m.Themes {
		if r.HasTheme(theme) {
			return true
		}
	}
	return false
}

func (m ThemeSet) String() string { return "themes(" + strings.Join(m.Themes, ",") + ")" }

func (ThemeSet) isMode() {}
