package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ConfigSource supplies the live configuration. ok is false while no
// configuration has been loaded.
type ConfigSource interface {
	Config() (cfg Config, ok bool)
}

// Award is the undo record of the last confirmed turn.
type Award struct {
	Player PlayerID
	Points int
}

// MatchOption configures a Match.
type MatchOption func(*Match)

// WithSeedFunc replaces the round seed generator. Seeds should be unique per
// round; tests use this to make matches reproducible.
func WithSeedFunc(f func() string) MatchOption {
	return func(m *Match) { m.newSeed = f }
}

// Match is the scoring state of one game session. It is owned by the
// screen driving it and is not safe for concurrent use.
//
// Lifecycle: NewMatch -> StartMatch (ready) -> NewPreview -> ConfirmTurn ...
// Operations whose preconditions are unmet (no config, no rule, no preview)
// do nothing.
type Match struct {
	source  ConfigSource
	newSeed func() string

	ready     bool
	players   [2]PlayerScore
	rule      *Rule
	snapshot  Config
	preview   *RoundPreview
	lastAward *Award
}

// NewMatch creates an uninitialized match reading foods from src. src may
// be nil, in which case the configuration passed to StartMatch is used.
func NewMatch(src ConfigSource, opts ...MatchOption) *Match {
	m := &Match{
		source:  src,
		newSeed: defaultSeed,
		players: [2]PlayerScore{{Name: "P1"}, {Name: "P2"}},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// defaultSeed combines wall-clock millis with a random UUID so two rounds
// never share a seed.
func defaultSeed() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString())
}

// StartMatch takes player names and the rule from cfg, zeroes both scores
// and clears the preview and undo record.
func (m *Match) StartMatch(cfg Config) {
	snap := cfg.Clone()
	p1, p2 := snap.Players.P1Name, snap.Players.P2Name
	if p1 == "" {
		p1 = "P1"
	}
	if p2 == "" {
		p2 = "P2"
	}
	m.players = [2]PlayerScore{{Name: p1}, {Name: p2}}
	rule := snap.Rule
	m.rule = &rule
	m.snapshot = snap
	m.preview = nil
	m.lastAward = nil
	m.ready = true
	logrus.Debugf("match started: %s vs %s, target %d, scoring %s", p1, p2, rule.PointTarget, rule.Scoring)
}

// NewPreview draws a fresh preview with a new seed, replacing the current
// one. Foods come from the live configuration so that foods hidden during
// the previous round are excluded; points use the rule captured at
// StartMatch.
func (m *Match) NewPreview() {
	if !m.ready || m.rule == nil {
		return
	}
	cfg := m.snapshot
	if m.source != nil {
		if live, ok := m.source.Config(); ok {
			cfg = live
		}
	}
	cfg.Rule = *m.rule
	pv := GeneratePreview(m.newSeed(), cfg)
	m.preview = &pv
}

// ConfirmTurn awards winner the points on loserHand of the current preview
// (0 for an empty slot), records the award for Undo and advances to the
// next round.
func (m *Match) ConfirmTurn(winner PlayerID, loserHand Hand) {
	if m.preview == nil || m.rule == nil {
		return
	}
	idx := winner.index()
	if idx < 0 || !loserHand.Valid() {
		logrus.Warnf("confirm turn ignored: winner=%q hand=%q", winner, loserHand)
		return
	}
	pts := m.preview.Item(loserHand).Points
	m.players[idx].Points += pts
	m.lastAward = &Award{Player: winner, Points: pts}
	logrus.Debugf("award %s +%d on %s (now %d)", winner, pts, loserHand, m.players[idx].Points)
	m.NewPreview()
}

// Undo reverts the last award, never taking a score below zero. Only one
// level is kept; the preview is not restored.
func (m *Match) Undo() {
	if m.lastAward == nil {
		return
	}
	p := &m.players[m.lastAward.Player.index()]
	p.Points = max(0, p.Points-m.lastAward.Points)
	logrus.Debugf("undo %s -%d (now %d)", m.lastAward.Player, m.lastAward.Points, p.Points)
	m.lastAward = nil
}

// ResetMatch zeroes both scores and clears the preview and undo record.
// Player names are kept.
func (m *Match) ResetMatch() {
	m.players[0].Points = 0
	m.players[1].Points = 0
	m.preview = nil
	m.lastAward = nil
}

// Rematch restarts with cfg and draws the first preview.
func (m *Match) Rematch(cfg Config) {
	m.ResetMatch()
	m.StartMatch(cfg)
	m.NewPreview()
}

// IsReady reports whether StartMatch has been called.
func (m *Match) IsReady() bool { return m.ready }

// Players returns both seats in p1, p2 order.
func (m *Match) Players() [2]PlayerScore { return m.players }

// Player returns one seat. Unknown IDs yield the zero value.
func (m *Match) Player(id PlayerID) PlayerScore {
	i := id.index()
	if i < 0 {
		return PlayerScore{}
	}
	return m.players[i]
}

// Rule returns the rule captured at StartMatch.
func (m *Match) Rule() (Rule, bool) {
	if m.rule == nil {
		return Rule{}, false
	}
	return *m.rule, true
}

// Preview returns the current preview, if one has been drawn.
func (m *Match) Preview() (RoundPreview, bool) {
	if m.preview == nil {
		return RoundPreview{}, false
	}
	return *m.preview, true
}

// LastAward returns the undo record, if any.
func (m *Match) LastAward() (Award, bool) {
	if m.lastAward == nil {
		return Award{}, false
	}
	return *m.lastAward, true
}

// Winner reports the winning seat once either score has reached the
// target. The higher score wins; a tie is reported as P2.
func (m *Match) Winner() (PlayerID, bool) {
	if m.rule == nil {
		return "", false
	}
	t := m.rule.PointTarget
	if t <= 0 {
		return "", false
	}
	if m.players[0].Points < t && m.players[1].Points < t {
		return "", false
	}
	if m.players[0].Points > m.players[1].Points {
		return P1, true
	}
	return P2, true
}
