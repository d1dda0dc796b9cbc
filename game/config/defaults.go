package config

import (
	"strconv"
	"strings"

	"github.com/gochijan/gochijan/game"
)

const (
	// DefaultPointTarget is used when the target is missing or not a number.
	DefaultPointTarget = 50
	// NewFoodName is the placeholder name of a freshly added food.
	NewFoodName = "新メニュー"
)

// DefaultConfig is the first-run preset: three foods per hand.
func DefaultConfig() game.Config {
	food := func(id, name string, pool game.Hand, pts int) game.Food {
		return game.Food{ID: id, Name: name, Pool: pool, Enabled: true, Points: game.IntPtr(pts)}
	}
	return game.Config{
		Players: game.Players{P1Name: "P1", P2Name: "P2"},
		Rule: game.Rule{
			PointTarget:     DefaultPointTarget,
			Scoring:         game.ScoringFixed,
			FixedPointValue: game.IntPtr(game.DefaultFixedPoints),
		},
		Foods: []game.Food{
			food("r-1", "おにぎり", game.Rock, 3),
			food("r-2", "からあげ", game.Rock, 4),
			food("r-3", "フライドポテト", game.Rock, 5),
			food("s-1", "サラダ", game.Scissors, 3),
			food("s-2", "冷奴", game.Scissors, 2),
			food("s-3", "枝豆", game.Scissors, 2),
			food("p-1", "ラーメン", game.Paper, 5),
			food("p-2", "アイス", game.Paper, 2),
			food("p-3", "うどん", game.Paper, 3),
		},
		Strategy: game.SharedPool,
	}
}

// NormalizePointTarget maps 0 to DefaultPointTarget and anything else
// below 1 to 1.
func NormalizePointTarget(n int) int {
	if n == 0 {
		return DefaultPointTarget
	}
	return max(1, n)
}

// NormalizeFixedPoint clamps a fixed point value at 0.
func NormalizeFixedPoint(n int) int {
	return max(0, n)
}

// Normalize applies the target and fixed point rules to a configuration
// that came from a file or from storage rather than through the setters.
func Normalize(cfg game.Config) game.Config {
	cfg.Rule.PointTarget = NormalizePointTarget(cfg.Rule.PointTarget)
	if cfg.Rule.FixedPointValue != nil {
		cfg.Rule.FixedPointValue = game.IntPtr(NormalizeFixedPoint(*cfg.Rule.FixedPointValue))
	}
	return cfg
}

// ParsePointTarget reads a target typed by the user. Non-numeric input
// yields DefaultPointTarget.
func ParsePointTarget(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultPointTarget
	}
	return NormalizePointTarget(n)
}

// ParseFixedPoint reads a fixed point value typed by the user. Non-numeric
// input yields game.DefaultFixedPoints.
func ParseFixedPoint(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return game.DefaultFixedPoints
	}
	return NormalizeFixedPoint(n)
}
