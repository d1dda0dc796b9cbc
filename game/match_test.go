package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqSeeds returns a seed function yielding prefix-1, prefix-2, ...
func seqSeeds(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// liveConfig is a mutable ConfigSource and FoodToggler for tests.
type liveConfig struct {
	cfg    Config
	loaded bool
}

func (l *liveConfig) Config() (Config, bool) { return l.cfg.Clone(), l.loaded }

func (l *liveConfig) ToggleFood(id string, enabled bool) {
	for i := range l.cfg.Foods {
		if l.cfg.Foods[i].ID == id {
			l.cfg.Foods[i].Enabled = enabled
		}
	}
}

func singleFoodConfig() Config {
	return Config{
		Players: Players{P1Name: "Aki", P2Name: "Ren"},
		Rule:    Rule{PointTarget: 6, Scoring: ScoringFixed},
		Foods:   []Food{{ID: "a", Name: "a", Enabled: true, Points: IntPtr(3)}},
	}
}

func TestMatch_EndToEnd_ConfirmAndUndo(t *testing.T) {
	// GIVEN one food worth 3 and a target of 6
	cfg := singleFoodConfig()
	m := NewMatch(nil, WithSeedFunc(seqSeeds("e2e")))

	// WHEN the match starts and a preview is drawn
	m.StartMatch(cfg)
	m.NewPreview()

	// THEN "a" is on all three hands worth 3
	pv, ok := m.Preview()
	require.True(t, ok)
	for _, h := range Hands {
		require.NotNil(t, pv.Item(h).Food)
		assert.Equal(t, "a", pv.Item(h).Food.ID)
		assert.Equal(t, 3, pv.Item(h).Points)
	}

	// WHEN p1 wins against rock
	m.ConfirmTurn(P1, Rock)
	assert.Equal(t, 3, m.Player(P1).Points)
	assert.Equal(t, 0, m.Player(P2).Points)

	// AND the award is undone
	m.Undo()
	assert.Equal(t, 0, m.Player(P1).Points)
}

func TestMatch_StartMatch(t *testing.T) {
	m := NewMatch(nil)
	assert.False(t, m.IsReady())
	_, ok := m.Rule()
	assert.False(t, ok)

	m.StartMatch(singleFoodConfig())

	assert.True(t, m.IsReady())
	assert.Equal(t, [2]PlayerScore{{Name: "Aki"}, {Name: "Ren"}}, m.Players())
	rule, ok := m.Rule()
	require.True(t, ok)
	assert.Equal(t, 6, rule.PointTarget)
	_, ok = m.Preview()
	assert.False(t, ok, "StartMatch must not draw a preview")
	_, ok = m.LastAward()
	assert.False(t, ok)
}

func TestMatch_StartMatch_DefaultNames(t *testing.T) {
	m := NewMatch(nil)
	m.StartMatch(Config{Rule: Rule{PointTarget: 10}})
	assert.Equal(t, "P1", m.Player(P1).Name)
	assert.Equal(t, "P2", m.Player(P2).Name)
}

func TestMatch_StartMatch_ClearsPreviousState(t *testing.T) {
	m := NewMatch(nil, WithSeedFunc(seqSeeds("s")))
	m.StartMatch(singleFoodConfig())
	m.NewPreview()
	m.ConfirmTurn(P2, Paper)

	m.StartMatch(singleFoodConfig())

	assert.Equal(t, 0, m.Player(P2).Points)
	_, ok := m.Preview()
	assert.False(t, ok)
	_, ok = m.LastAward()
	assert.False(t, ok)
}

func TestMatch_OperationsBeforeStart_AreNoOps(t *testing.T) {
	m := NewMatch(nil)

	m.NewPreview()
	m.ConfirmTurn(P1, Rock)
	m.Undo()
	m.ResetMatch()

	_, ok := m.Preview()
	assert.False(t, ok)
	assert.Equal(t, 0, m.Player(P1).Points)
	_, found := m.Winner()
	assert.False(t, found)
}

func TestMatch_ConfirmWithoutPreview_IsNoOp(t *testing.T) {
	m := NewMatch(nil)
	m.StartMatch(singleFoodConfig())

	m.ConfirmTurn(P1, Rock)

	assert.Equal(t, 0, m.Player(P1).Points)
	_, ok := m.LastAward()
	assert.False(t, ok)
}

func TestMatch_ConfirmTurn_InvalidInput_IsNoOp(t *testing.T) {
	m := NewMatch(nil, WithSeedFunc(seqSeeds("inv")))
	m.StartMatch(singleFoodConfig())
	m.NewPreview()
	before, _ := m.Preview()

	m.ConfirmTurn("p3", Rock)
	m.ConfirmTurn(P1, "lizard")

	after, _ := m.Preview()
	assert.Equal(t, before.Seed, after.Seed, "rejected turns must not advance the round")
	assert.Equal(t, [2]PlayerScore{{Name: "Aki"}, {Name: "Ren"}}, m.Players())
}

func TestMatch_ConfirmTurn_AdvancesRound(t *testing.T) {
	m := NewMatch(nil, WithSeedFunc(seqSeeds("adv")))
	m.StartMatch(singleFoodConfig())
	m.NewPreview()
	pv, _ := m.Preview()
	assert.Equal(t, "adv-1", pv.Seed)

	m.ConfirmTurn(P2, Scissors)

	pv, _ = m.Preview()
	assert.Equal(t, "adv-2", pv.Seed)
	award, ok := m.LastAward()
	require.True(t, ok)
	assert.Equal(t, Award{Player: P2, Points: 3}, award)
}

func TestMatch_ConfirmTurn_EmptySlotAwardsZero(t *testing.T) {
	// GIVEN no enabled foods
	cfg := singleFoodConfig()
	cfg.Foods[0].Enabled = false
	m := NewMatch(nil, WithSeedFunc(seqSeeds("z")))
	m.StartMatch(cfg)
	m.NewPreview()

	m.ConfirmTurn(P1, Paper)

	assert.Equal(t, 0, m.Player(P1).Points)
	award, ok := m.LastAward()
	require.True(t, ok)
	assert.Equal(t, Award{Player: P1, Points: 0}, award)
}

func TestMatch_ConfirmTurn_UsesLoserHandPoints(t *testing.T) {
	// GIVEN three foods with different fixed values
	cfg := Config{
		Rule: Rule{PointTarget: 50, Scoring: ScoringFixed},
		Foods: []Food{
			{ID: "one", Name: "one", Enabled: true, Points: IntPtr(1)},
			{ID: "two", Name: "two", Enabled: true, Points: IntPtr(2)},
			{ID: "four", Name: "four", Enabled: true, Points: IntPtr(4)},
		},
	}
	m := NewMatch(nil, WithSeedFunc(seqSeeds("hand")))
	m.StartMatch(cfg)
	m.NewPreview()
	pv, _ := m.Preview()
	want := pv.Item(Paper).Points

	m.ConfirmTurn(P1, Paper)

	assert.Equal(t, want, m.Player(P1).Points)
}

func TestMatch_Undo_OnlyOnce(t *testing.T) {
	m := NewMatch(nil, WithSeedFunc(seqSeeds("u")))
	m.StartMatch(singleFoodConfig())
	m.NewPreview()
	m.ConfirmTurn(P1, Rock)
	m.ConfirmTurn(P1, Rock)
	require.Equal(t, 6, m.Player(P1).Points)

	m.Undo()
	m.Undo()

	assert.Equal(t, 3, m.Player(P1).Points, "second undo must be a no-op")
}

func TestMatch_Undo_DoesNotRestorePreview(t *testing.T) {
	m := NewMatch(nil, WithSeedFunc(seqSeeds("p")))
	m.StartMatch(singleFoodConfig())
	m.NewPreview()
	m.ConfirmTurn(P2, Rock)

	m.Undo()

	pv, ok := m.Preview()
	require.True(t, ok)
	assert.Equal(t, "p-2", pv.Seed, "undo reverses the score only")
}

func TestMatch_NewConfirmOverwritesUndoRecord(t *testing.T) {
	m := NewMatch(nil, WithSeedFunc(seqSeeds("o")))
	m.StartMatch(singleFoodConfig())
	m.NewPreview()
	m.ConfirmTurn(P1, Rock)
	m.ConfirmTurn(P2, Rock)

	m.Undo()

	assert.Equal(t, 3, m.Player(P1).Points, "only the latest award is undoable")
	assert.Equal(t, 0, m.Player(P2).Points)
}

func TestMatch_Undo_AfterReset_NeverNegative(t *testing.T) {
	m := NewMatch(nil, WithSeedFunc(seqSeeds("r")))
	m.StartMatch(singleFoodConfig())
	m.NewPreview()
	m.ConfirmTurn(P1, Rock)

	m.ResetMatch()
	m.Undo()

	assert.Equal(t, 0, m.Player(P1).Points)
	assert.Equal(t, 0, m.Player(P2).Points)
}

func TestMatch_ResetMatch_KeepsNames(t *testing.T) {
	m := NewMatch(nil, WithSeedFunc(seqSeeds("k")))
	m.StartMatch(singleFoodConfig())
	m.NewPreview()
	m.ConfirmTurn(P1, Rock)

	m.ResetMatch()

	assert.Equal(t, [2]PlayerScore{{Name: "Aki"}, {Name: "Ren"}}, m.Players())
	_, ok := m.Preview()
	assert.False(t, ok)
	_, ok = m.LastAward()
	assert.False(t, ok)
	assert.True(t, m.IsReady())
}

func TestMatch_CompletionDetectedFromScores(t *testing.T) {
	// GIVEN a target of 10 and every food worth 3
	cfg := singleFoodConfig()
	cfg.Rule.PointTarget = 10
	m := NewMatch(nil, WithSeedFunc(seqSeeds("c")))
	m.StartMatch(cfg)
	m.NewPreview()
	rule, _ := m.Rule()

	turns := 0
	for m.Player(P1).Points < rule.PointTarget {
		_, done := m.Winner()
		require.False(t, done, "finished before the target at %d points", m.Player(P1).Points)
		m.ConfirmTurn(P1, Scissors)
		turns++
	}

	// THEN four turns of 3 reach 12 >= 10
	assert.Equal(t, 4, turns)
	assert.Equal(t, 12, m.Player(P1).Points)
	winner, done := m.Winner()
	assert.True(t, done)
	assert.Equal(t, P1, winner)
}

func TestMatch_Winner_TieReportsP2(t *testing.T) {
	cfg := singleFoodConfig()
	cfg.Rule.PointTarget = 3
	m := NewMatch(nil, WithSeedFunc(seqSeeds("t")))
	m.StartMatch(cfg)
	m.NewPreview()
	m.ConfirmTurn(P1, Rock)
	m.ConfirmTurn(P2, Rock)

	winner, done := m.Winner()
	assert.True(t, done)
	assert.Equal(t, P2, winner)
}

func TestMatch_HiddenFoodExcludedFromNextPreview(t *testing.T) {
	// GIVEN a live config with exactly three foods
	src := &liveConfig{loaded: true, cfg: Config{
		Rule:  Rule{PointTarget: 50, Scoring: ScoringFixed},
		Foods: makeFoods(3),
	}}
	m := NewMatch(src, WithSeedFunc(seqSeeds("h")))
	m.StartMatch(src.cfg)
	m.NewPreview()
	pv, _ := m.Preview()
	hidden := pv.Item(Rock).Food.ID

	// WHEN the rock food is hidden
	cmd, ok := pv.Hide(hidden)
	require.True(t, ok)
	cmd.Apply(src)

	// THEN the current preview still shows it
	current, _ := m.Preview()
	assert.Equal(t, hidden, current.Item(Rock).Food.ID)

	// AND the next round never draws it
	for i := 0; i < 20; i++ {
		m.ConfirmTurn(P1, Paper)
		next, _ := m.Preview()
		for _, item := range next.ByHand {
			require.NotNil(t, item.Food)
			assert.NotEqual(t, hidden, item.Food.ID)
		}
	}
}

func TestMatch_RuleFixedAtStart(t *testing.T) {
	// GIVEN the live rule changes to name-length mid-match
	src := &liveConfig{loaded: true, cfg: singleFoodConfig()}
	m := NewMatch(src, WithSeedFunc(seqSeeds("rule")))
	m.StartMatch(src.cfg)
	src.cfg.Rule.Scoring = ScoringNameLength
	src.cfg.Foods[0].Name = "からあげ"

	m.NewPreview()

	// THEN points still follow the rule captured at StartMatch
	pv, _ := m.Preview()
	assert.Equal(t, 3, pv.Item(Rock).Points)
	assert.Equal(t, "からあげ", pv.Item(Rock).Food.Name)
}

func TestMatch_UnloadedSourceFallsBackToSnapshot(t *testing.T) {
	src := &liveConfig{loaded: false}
	m := NewMatch(src, WithSeedFunc(seqSeeds("snap")))
	m.StartMatch(singleFoodConfig())

	m.NewPreview()

	pv, ok := m.Preview()
	require.True(t, ok)
	require.NotNil(t, pv.Item(Rock).Food)
	assert.Equal(t, "a", pv.Item(Rock).Food.ID)
}

func TestMatch_Rematch(t *testing.T) {
	m := NewMatch(nil, WithSeedFunc(seqSeeds("re")))
	m.StartMatch(singleFoodConfig())
	m.NewPreview()
	m.ConfirmTurn(P1, Rock)

	m.Rematch(singleFoodConfig())

	assert.Equal(t, 0, m.Player(P1).Points)
	_, ok := m.Preview()
	assert.True(t, ok, "rematch draws the first preview")
	_, ok = m.LastAward()
	assert.False(t, ok)
}

func TestMatch_DefaultSeedsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s := defaultSeed()
		assert.False(t, seen[s], "duplicate seed %s", s)
		seen[s] = true
	}
}

func TestMatch_SnapshotNotAliased(t *testing.T) {
	cfg := singleFoodConfig()
	m := NewMatch(nil, WithSeedFunc(seqSeeds("alias")))
	m.StartMatch(cfg)
	cfg.Foods[0].Enabled = false

	m.NewPreview()

	pv, _ := m.Preview()
	assert.NotNil(t, pv.Item(Rock).Food, "StartMatch must copy the configuration")
}
