// Package config owns the editable game configuration: the last used
// configuration, three template slots and every editing operation.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gochijan/gochijan/game"
	"github.com/gochijan/gochijan/game/kv"
)

const (
	KeyLast      = "cfg:last"
	KeyTemplates = "cfg:templates"

	// NumTemplateSlots is the number of named template slots.
	NumTemplateSlots = 3
)

var (
	ErrInvalidSlot = errors.New("template slot out of range")
	ErrEmptySlot   = errors.New("template slot is empty")
	ErrNoConfig    = errors.New("no configuration loaded")
)

// Templates holds the saved template slots; nil marks an empty slot.
type Templates [NumTemplateSlots]*game.Config

// FoodPatch lists the fields UpdateFood changes. Nil fields are left alone.
type FoodPatch struct {
	Name    *string
	Enabled *bool
	Points  *int
	Pool    *game.Hand
}

// Store holds the configuration being edited and persists it through a
// kv.Store. Mutators are no-ops until a configuration is loaded.
// Not safe for concurrent use.
type Store struct {
	kv           kv.Store
	config       *game.Config
	templates    Templates
	hasAnyConfig bool
}

// NewStore returns an empty Store backed by s. Call Hydrate to load.
func NewStore(s kv.Store) *Store {
	return &Store{kv: s}
}

// Hydrate loads the last used configuration and the templates. Without a
// saved configuration the store stays empty unless withDefault is set, in
// which case DefaultConfig is installed.
func (s *Store) Hydrate(ctx context.Context, withDefault bool) error {
	last, err := kv.GetJSON[*game.Config](ctx, s.kv, KeyLast, nil)
	if err != nil {
		return fmt.Errorf("hydrating config: %w", err)
	}
	tmpls, err := kv.GetJSON(ctx, s.kv, KeyTemplates, Templates{})
	if err != nil {
		return fmt.Errorf("hydrating templates: %w", err)
	}

	for i, t := range tmpls {
		if t != nil {
			c := Normalize(*t)
			tmpls[i] = &c
		}
	}
	s.templates = tmpls
	switch {
	case last != nil:
		c := Normalize(*last)
		s.config = &c
	case withDefault:
		def := DefaultConfig()
		s.config = &def
	default:
		s.config = nil
	}
	s.hasAnyConfig = last != nil || withDefault
	logrus.Debugf("config hydrated: saved=%v default=%v templates=%d", last != nil, last == nil && withDefault, s.countTemplates())
	return nil
}

func (s *Store) countTemplates() int {
	n := 0
	for _, t := range s.templates {
		if t != nil {
			n++
		}
	}
	return n
}

// Config returns a copy of the current configuration.
func (s *Store) Config() (game.Config, bool) {
	if s.config == nil {
		return game.Config{}, false
	}
	return s.config.Clone(), true
}

// HasAnyConfig reports whether a saved or default configuration exists.
func (s *Store) HasAnyConfig() bool { return s.hasAnyConfig }

// Templates returns copies of the template slots.
func (s *Store) Templates() Templates {
	var out Templates
	for i, t := range s.templates {
		if t != nil {
			c := t.Clone()
			out[i] = &c
		}
	}
	return out
}

// Replace installs a normalized copy of cfg as the current configuration.
func (s *Store) Replace(cfg game.Config) {
	c := Normalize(cfg.Clone())
	s.config = &c
	s.hasAnyConfig = true
}

// UseLastConfig installs DefaultConfig when nothing is loaded.
func (s *Store) UseLastConfig() {
	if s.config == nil {
		s.Replace(DefaultConfig())
	}
}

// LoadTemplate makes the template in slot the current configuration.
func (s *Store) LoadTemplate(slot int) error {
	if slot < 0 || slot >= NumTemplateSlots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	tpl := s.templates[slot]
	if tpl == nil {
		return fmt.Errorf("%w: %d", ErrEmptySlot, slot)
	}
	s.Replace(*tpl)
	return nil
}

// SaveTemplate copies the current configuration into slot and persists
// all slots.
func (s *Store) SaveTemplate(ctx context.Context, slot int) error {
	if slot < 0 || slot >= NumTemplateSlots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if s.config == nil {
		return ErrNoConfig
	}
	next := s.templates
	c := s.config.Clone()
	next[slot] = &c
	if err := kv.SetJSON(ctx, s.kv, KeyTemplates, next); err != nil {
		return err
	}
	s.templates = next
	return nil
}

// SaveAsLast persists the current configuration as the last used one.
func (s *Store) SaveAsLast(ctx context.Context) error {
	if s.config == nil {
		return ErrNoConfig
	}
	if err := kv.SetJSON(ctx, s.kv, KeyLast, s.config); err != nil {
		return err
	}
	s.hasAnyConfig = true
	return nil
}

// === Mutators ===

// SetPlayerName renames one seat.
func (s *Store) SetPlayerName(who game.PlayerID, name string) {
	if s.config == nil {
		return
	}
	switch who {
	case game.P1:
		s.config.Players.P1Name = name
	case game.P2:
		s.config.Players.P2Name = name
	}
}

// SetPointTarget sets the match target; see NormalizePointTarget.
func (s *Store) SetPointTarget(n int) {
	if s.config == nil {
		return
	}
	s.config.Rule.PointTarget = NormalizePointTarget(n)
}

// SetScoring switches the scoring mode.
func (s *Store) SetScoring(mode game.Scoring) {
	if s.config == nil {
		return
	}
	s.config.Rule.Scoring = mode
}

// SetFixedPoint sets the rule's fixed point value, clamped at 0.
func (s *Store) SetFixedPoint(n int) {
	if s.config == nil {
		return
	}
	s.config.Rule.FixedPointValue = game.IntPtr(NormalizeFixedPoint(n))
}

// SetStrategy selects the preview strategy.
func (s *Store) SetStrategy(strategy game.PreviewStrategy) {
	if s.config == nil {
		return
	}
	s.config.Strategy = strategy
}

// FoodsByPool returns copies of the foods assigned to pool.
func (s *Store) FoodsByPool(pool game.Hand) []game.Food {
	if s.config == nil {
		return nil
	}
	var out []game.Food
	for _, f := range s.config.Clone().Foods {
		if f.Pool == pool {
			out = append(out, f)
		}
	}
	return out
}

// AddFood appends a placeholder food to pool and returns it.
func (s *Store) AddFood(pool game.Hand) (game.Food, bool) {
	if s.config == nil {
		return game.Food{}, false
	}
	f := game.Food{
		ID:      fmt.Sprintf("%s-%s", pool, uuid.NewString()),
		Name:    NewFoodName,
		Pool:    pool,
		Enabled: true,
		Points:  game.IntPtr(game.DefaultFixedPoints),
	}
	s.config.Foods = append(s.config.Foods, f)
	return f, true
}

// UpdateFood applies patch to the food with id.
func (s *Store) UpdateFood(id string, patch FoodPatch) {
	if s.config == nil {
		return
	}
	for i := range s.config.Foods {
		f := &s.config.Foods[i]
		if f.ID != id {
			continue
		}
		if patch.Name != nil {
			f.Name = *patch.Name
		}
		if patch.Enabled != nil {
			f.Enabled = *patch.Enabled
		}
		if patch.Points != nil {
			f.Points = game.IntPtr(*patch.Points)
		}
		if patch.Pool != nil {
			f.Pool = *patch.Pool
		}
	}
}

// DeleteFood removes the food with id.
func (s *Store) DeleteFood(id string) {
	if s.config == nil {
		return
	}
	kept := s.config.Foods[:0:0]
	for _, f := range s.config.Foods {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.config.Foods = kept
}

// ToggleFood enables or disables the food with id.
func (s *Store) ToggleFood(id string, on bool) {
	s.UpdateFood(id, FoodPatch{Enabled: &on})
}

// Apply runs a command produced by a round preview.
func (s *Store) Apply(cmd game.DisableFoodCommand) {
	logrus.Debugf("hiding food %s", cmd.FoodID)
	cmd.Apply(s)
}

var (
	_ game.ConfigSource = (*Store)(nil)
	_ game.FoodToggler  = (*Store)(nil)
)
