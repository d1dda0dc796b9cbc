package game

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// === Hands ===

// Hand is one of the three janken moves. Hands only label preview slots;
// the players decide who won a round themselves.
type Hand string

const (
	Rock     Hand = "rock"
	Scissors Hand = "scissors"
	Paper    Hand = "paper"
)

// Hands lists the slots in preview order.
var Hands = [3]Hand{Rock, Scissors, Paper}

// Index returns the slot index of h, or -1 for an unknown hand.
func (h Hand) Index() int {
	for i, v := range Hands {
		if v == h {
			return i
		}
	}
	return -1
}

// Valid reports whether h is one of the three hands.
func (h Hand) Valid() bool { return h.Index() >= 0 }

// ParseHand accepts a hand name case-insensitively, plus the romanized
// janken names (gu, choki, pa).
func ParseHand(s string) (Hand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock", "gu", "guu":
		return Rock, nil
	case "scissors", "choki":
		return Scissors, nil
	case "paper", "pa", "paa":
		return Paper, nil
	}
	return "", fmt.Errorf("unknown hand %q", s)
}

// === Players ===

// PlayerID identifies one of the two seats in a match.
type PlayerID string

const (
	P1 PlayerID = "p1"
	P2 PlayerID = "p2"
)

func (p PlayerID) index() int {
	switch p {
	case P1:
		return 0
	case P2:
		return 1
	}
	return -1
}

// ParsePlayer accepts "p1"/"p2" (also "1"/"2").
func ParsePlayer(s string) (PlayerID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p1", "1":
		return P1, nil
	case "p2", "2":
		return P2, nil
	}
	return "", fmt.Errorf("unknown player %q", s)
}

// === Scoring modes ===

// Scoring selects how a food's point value is computed.
type Scoring string

const (
	ScoringFixed      Scoring = "fixed"
	ScoringNameLength Scoring = "name-length"
)

// ParseScoring accepts both current names and the legacy "nameLen" value
// found in older saved configurations.
func ParseScoring(s string) (Scoring, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return ScoringFixed, nil
	case "name-length", "namelen", "name_length":
		return ScoringNameLength, nil
	}
	return "", fmt.Errorf("unknown scoring mode %q", s)
}

// UnmarshalText decodes saved blobs. Either spelling is accepted and an
// unknown mode decodes as ScoringFixed, so one bad value does not discard
// the rest of the configuration.
func (s *Scoring) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = ""
		return nil
	}
	v, err := ParseScoring(string(b))
	if err != nil {
		logrus.Warnf("%v, scoring as %s", err, ScoringFixed)
		v = ScoringFixed
	}
	*s = v
	return nil
}

// UnmarshalYAML decodes hand-edited documents, where an unknown mode is an
// error.
func (s *Scoring) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw == "" {
		*s = ""
		return nil
	}
	v, err := ParseScoring(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// === Configuration snapshot ===

// Food is one entry of the draw pool. Points overrides the rule's fixed
// value in fixed mode. Pool is only read by the partitioned strategy.
type Food struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Points  *int   `json:"points,omitempty" yaml:"points,omitempty"`
	Pool    Hand   `json:"pool,omitempty" yaml:"pool,omitempty"`
}

// Rule holds the scoring mode and the match target.
type Rule struct {
	PointTarget     int     `json:"pointTarget" yaml:"point_target"`
	Scoring         Scoring `json:"scoring" yaml:"scoring"`
	FixedPointValue *int    `json:"fixedPointValue,omitempty" yaml:"fixed_point_value,omitempty"`
}

// Players holds the display names of both seats.
type Players struct {
	P1Name string `json:"p1Name" yaml:"p1_name"`
	P2Name string `json:"p2Name" yaml:"p2_name"`
}

// Config is a full game configuration as edited by the player and
// persisted between sessions.
type Config struct {
	Players  Players         `json:"players" yaml:"players"`
	Rule     Rule            `json:"rule" yaml:"rule"`
	Foods    []Food          `json:"foods" yaml:"foods"`
	Strategy PreviewStrategy `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Rule.FixedPointValue = cloneInt(c.Rule.FixedPointValue)
	if c.Foods != nil {
		out.Foods = make([]Food, len(c.Foods))
		for i, f := range c.Foods {
			f.Points = cloneInt(f.Points)
			out.Foods[i] = f
		}
	}
	return out
}

// EnabledFoods returns the enabled foods in configuration order.
func (c Config) EnabledFoods() []Food {
	var out []Food
	for _, f := range c.Foods {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out
}

// PlayerScore is a seat's display name and accumulated points.
type PlayerScore struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// IntPtr returns a pointer to v, for optional point fields.
func IntPtr(v int) *int { return &v }

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
