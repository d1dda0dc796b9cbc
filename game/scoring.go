package game

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultFixedPoints is awarded in fixed mode when neither the food nor
// the rule carries a value.
const DefaultFixedPoints = 3

// CalcPoints returns the points a food is worth under rule. In fixed mode
// the per-food override wins over the rule value, which wins over
// DefaultFixedPoints. In name-length mode the NFC-normalized name is
// counted in runes, so "からあげ" is worth 4 regardless of encoding.
// Never negative.
func CalcPoints(rule Rule, name string, fixed *int) int {
	if rule.Scoring == ScoringNameLength {
		return utf8.RuneCountInString(norm.NFC.String(name))
	}
	switch {
	case fixed != nil:
		return max(0, *fixed)
	case rule.FixedPointValue != nil:
		return max(0, *rule.FixedPointValue)
	}
	return DefaultFixedPoints
}
