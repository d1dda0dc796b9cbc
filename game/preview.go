package game

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// PreviewStrategy selects how foods are assigned to the three hands.
type PreviewStrategy string

const (
	// SharedPool draws all hands from one pool of enabled foods. With three
	// or more foods the hands never repeat a food within a round.
	SharedPool PreviewStrategy = "shared"
	// PartitionedPools draws each hand from the enabled foods assigned to
	// that hand's pool.
	PartitionedPools PreviewStrategy = "partitioned"
)

// ValidPreviewStrategies is the set of recognized strategy names.
// The empty name means SharedPool.
var ValidPreviewStrategies = map[string]bool{"": true, "shared": true, "partitioned": true}

// ParsePreviewStrategy validates a strategy name.
func ParsePreviewStrategy(s string) (PreviewStrategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !ValidPreviewStrategies[s] {
		return "", fmt.Errorf("unknown preview strategy %q", s)
	}
	if s == "" {
		return SharedPool, nil
	}
	return PreviewStrategy(s), nil
}

// PreviewFood is the part of a Food shown on a preview slot.
type PreviewFood struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PreviewItem is one hand's candidate. Food is nil when the pool was empty,
// in which case Points is 0.
type PreviewItem struct {
	Food   *PreviewFood `json:"food,omitempty"`
	Points int          `json:"points"`
}

// RoundPreview holds the candidates for one round, indexed like Hands.
type RoundPreview struct {
	Seed     string          `json:"seed"`
	Strategy PreviewStrategy `json:"strategy"`
	ByHand   [3]PreviewItem  `json:"byHand"`
}

// Item returns the candidate for h. Unknown hands yield an empty item.
func (p RoundPreview) Item(h Hand) PreviewItem {
	i := h.Index()
	if i < 0 {
		return PreviewItem{}
	}
	return p.ByHand[i]
}

// DisableFoodCommand asks the configuration owner to disable a food. The
// preview that produced it is left untouched; the food disappears from the
// next generated preview.
type DisableFoodCommand struct {
	FoodID string
}

// FoodToggler is implemented by configuration owners.
type FoodToggler interface {
	ToggleFood(id string, enabled bool)
}

// Apply runs the command against t.
func (c DisableFoodCommand) Apply(t FoodToggler) {
	t.ToggleFood(c.FoodID, false)
}

// Hide returns the command that hides foodID from future rounds. ok is
// false when the food is not on this preview.
func (p RoundPreview) Hide(foodID string) (cmd DisableFoodCommand, ok bool) {
	for _, item := range p.ByHand {
		if item.Food != nil && item.Food.ID == foodID {
			return DisableFoodCommand{FoodID: foodID}, true
		}
	}
	return DisableFoodCommand{}, false
}

// HideHand is Hide for whatever food is on hand h.
func (p RoundPreview) HideHand(h Hand) (DisableFoodCommand, bool) {
	item := p.Item(h)
	if item.Food == nil {
		return DisableFoodCommand{}, false
	}
	return DisableFoodCommand{FoodID: item.Food.ID}, true
}

// GeneratePreview draws a preview from cfg's enabled foods. The same seed
// and configuration always produce the same preview.
func GeneratePreview(seed string, cfg Config) RoundPreview {
	strategy := cfg.Strategy
	if !ValidPreviewStrategies[string(strategy)] {
		logrus.Warnf("unknown preview strategy %q, using %q", strategy, SharedPool)
		strategy = ""
	}
	if strategy == "" {
		strategy = SharedPool
	}

	rng := NewPartitionedRNG(seed)
	var picked [3]*Food
	switch strategy {
	case PartitionedPools:
		picked = pickPartitioned(rng, cfg.Foods)
	default:
		picked = pickShared(rng, cfg.EnabledFoods())
	}

	pv := RoundPreview{Seed: seed, Strategy: strategy}
	for i, f := range picked {
		if f == nil {
			continue
		}
		pv.ByHand[i] = PreviewItem{
			Food:   &PreviewFood{ID: f.ID, Name: f.Name},
			Points: CalcPoints(cfg.Rule, f.Name, f.Points),
		}
	}
	logrus.Debugf("preview seed=%q strategy=%s rock=%s scissors=%s paper=%s",
		seed, strategy, slotLabel(pv.ByHand[0]), slotLabel(pv.ByHand[1]), slotLabel(pv.ByHand[2]))
	return pv
}

// pickShared fills the three slots from one pool. Three or more foods are
// shuffled (Fisher-Yates) and the first three taken; fewer are drawn with
// replacement, one independent sub-seeded draw per slot.
func pickShared(rng *PartitionedRNG, enabled []Food) [3]*Food {
	var out [3]*Food
	n := len(enabled)
	switch {
	case n == 0:
		return out
	case n >= 3:
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		r := rng.ForSubsystem(SubsystemShuffle)
		for i := n - 1; i > 0; i-- {
			j := r.Intn(i + 1)
			order[i], order[j] = order[j], order[i]
		}
		for i := range out {
			out[i] = &enabled[order[i]]
		}
	default:
		for i := range out {
			out[i] = &enabled[rng.ForSubsystem(SubsystemSlot(i)).Intn(n)]
		}
	}
	return out
}

// pickPartitioned draws each hand uniformly from the enabled foods in that
// hand's pool. Foods without a pool are never drawn.
func pickPartitioned(rng *PartitionedRNG, foods []Food) [3]*Food {
	var out [3]*Food
	for i, h := range Hands {
		var pool []*Food
		for j := range foods {
			if foods[j].Enabled && foods[j].Pool == h {
				pool = append(pool, &foods[j])
			}
		}
		if len(pool) == 0 {
			continue
		}
		out[i] = pool[rng.ForSubsystem(SubsystemHand(h)).Intn(len(pool))]
	}
	return out
}

func slotLabel(item PreviewItem) string {
	if item.Food == nil {
		return "-"
	}
	return fmt.Sprintf("%s(%d)", item.Food.ID, item.Points)
}
