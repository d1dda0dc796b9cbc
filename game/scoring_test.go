package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCalcPoints(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		food  string
		fixed *int
		want  int
	}{
		{"fixed uses rule value", Rule{Scoring: ScoringFixed, FixedPointValue: IntPtr(5)}, "anything", nil, 5},
		{"fixed override wins", Rule{Scoring: ScoringFixed}, "x", IntPtr(9), 9},
		{"fixed override wins over rule value", Rule{Scoring: ScoringFixed, FixedPointValue: IntPtr(5)}, "x", IntPtr(1), 1},
		{"fixed default", Rule{Scoring: ScoringFixed}, "x", nil, DefaultFixedPoints},
		{"zero-value mode is fixed", Rule{}, "ラーメン", nil, DefaultFixedPoints},
		{"explicit zero override", Rule{Scoring: ScoringFixed}, "x", IntPtr(0), 0},
		{"negative override clamps", Rule{Scoring: ScoringFixed}, "x", IntPtr(-4), 0},
		{"negative rule value clamps", Rule{Scoring: ScoringFixed, FixedPointValue: IntPtr(-1)}, "x", nil, 0},
		{"name length counts codepoints", Rule{Scoring: ScoringNameLength}, "からあげ", nil, 4},
		{"name length ignores override", Rule{Scoring: ScoringNameLength}, "udon", IntPtr(9), 4},
		{"name length of empty name", Rule{Scoring: ScoringNameLength}, "", nil, 0},
		{"name length mixed scripts", Rule{Scoring: ScoringNameLength}, "冷奴ok", nil, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalcPoints(tt.rule, tt.food, tt.fixed))
		})
	}
}

func TestCalcPoints_DecomposedKanaCountsOnce(t *testing.T) {
	// GIVEN "からあげ" with "げ" written as け + combining dakuten
	decomposed := "からあ\u3051\u3099"
	assert.Equal(t, 5, len([]rune(decomposed)), "precondition: five runes before normalization")

	// THEN each visible character counts once
	assert.Equal(t, 4, CalcPoints(Rule{Scoring: ScoringNameLength}, decomposed, nil))
}

func TestParseScoring(t *testing.T) {
	for _, in := range []string{"fixed", "FIXED", " fixed "} {
		got, err := ParseScoring(in)
		assert.NoError(t, err)
		assert.Equal(t, ScoringFixed, got)
	}
	for _, in := range []string{"name-length", "nameLen", "name_length"} {
		got, err := ParseScoring(in)
		assert.NoError(t, err)
		assert.Equal(t, ScoringNameLength, got)
	}
	_, err := ParseScoring("random")
	assert.Error(t, err)
}

func TestScoring_DecodeUnknown(t *testing.T) {
	// GIVEN a stored rule with a mode this version does not know
	var r Rule
	require.NoError(t, json.Unmarshal([]byte(`{"pointTarget":10,"scoring":"random"}`), &r))

	// THEN it decodes as fixed and the rest of the rule is kept
	assert.Equal(t, ScoringFixed, r.Scoring)
	assert.Equal(t, 10, r.PointTarget)

	// AND a YAML document with the same mode is rejected
	var y Rule
	assert.Error(t, yaml.Unmarshal([]byte("scoring: random\n"), &y))
	require.NoError(t, yaml.Unmarshal([]byte("scoring: nameLen\n"), &y))
	assert.Equal(t, ScoringNameLength, y.Scoring)
}
