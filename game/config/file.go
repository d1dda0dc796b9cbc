package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gochijan/gochijan/game"
)

// LoadFile reads a YAML configuration document. Unknown fields are errors
// so that typos in hand-edited files surface. A missing point target
// means DefaultPointTarget.
func LoadFile(path string) (game.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return game.Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg game.Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return game.Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return game.Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return Normalize(cfg), nil
}

// SaveFile writes cfg as a YAML document.
func SaveFile(path string, cfg game.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks names and identities in cfg.
func Validate(cfg game.Config) error {
	if !game.ValidPreviewStrategies[string(cfg.Strategy)] {
		return fmt.Errorf("unknown preview strategy %q", cfg.Strategy)
	}
	switch cfg.Rule.Scoring {
	case "", game.ScoringFixed, game.ScoringNameLength:
	default:
		return fmt.Errorf("unknown scoring mode %q", cfg.Rule.Scoring)
	}
	if cfg.Rule.PointTarget < 0 {
		return fmt.Errorf("point target must be non-negative, got %d", cfg.Rule.PointTarget)
	}
	seen := make(map[string]bool, len(cfg.Foods))
	for i, f := range cfg.Foods {
		if f.ID == "" {
			return fmt.Errorf("food %d (%q) has no id", i, f.Name)
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate food id %q", f.ID)
		}
		seen[f.ID] = true
		if f.Pool != "" && !f.Pool.Valid() {
			return fmt.Errorf("food %q: unknown pool %q", f.ID, f.Pool)
		}
		if f.Points != nil && *f.Points < 0 {
			return fmt.Errorf("food %q: negative points %d", f.ID, *f.Points)
		}
	}
	return nil
}
