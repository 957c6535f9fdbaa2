// Package themes holds the catalog of tactical puzzle themes.
package themes

import (
	"fmt"
	"sort"
	"strings"
)

// Tactical maps each supported tactical theme to its description.
var Tactical = map[string]string{
	"fork":         "A piece attacks two or more enemy pieces simultaneously",
	"pin":          "A piece is unable to move because it would expose a more valuable piece to capture",
	"discovery":    "Moving one piece reveals an attack from another piece",
	"skewer":       "Similar to a pin, but the more valuable piece is in front",
	"sacrifice":    "Giving up material for a tactical advantage",
	"attraction":   "Forcing an enemy piece to move to a disadvantageous square",
	"deflection":   "Forcing an enemy piece away from a key defensive square",
	"interference": "Blocking an enemy piece's line of attack or defense",
	"xRayAttack":   "Attacking through an intervening piece",
	"zugzwang":     "The opponent must make a move that weakens their position",
	"trappedPiece": "A piece has no safe squares to move to",
	"hangingPiece": "A piece that can be captured without immediate compensation",
}

// Names returns the supported theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Tactical))
	for name := range Tactical {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse validates a comma-separated theme list against the catalog.
func Parse(list string) ([]string, error) {
	var themes []string
	var unknown []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := Tactical[part]; !ok {
			unknown = append(unknown, part)
			continue
		}
		themes = append(themes, part)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown themes: %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(Names(), ", "))
	}
	if len(themes) == 0 {
		return nil, fmt.Errorf("theme list is empty")
	}
	return themes, nil
}

// Describe returns the description of a theme, or a fallback for unknown tags.
func Describe(theme string) string {
	if desc, ok := Tactical[theme]; ok {
		return desc
	}
	return "Unknown theme"
}
