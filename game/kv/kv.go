// Package kv persists versionless JSON blobs under string keys.
package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Store is a get/set-by-key byte store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// GetJSON decodes the JSON value stored at key. A missing key or a value
// that no longer decodes yields fallback; only storage failures are errors.
func GetJSON[T any](ctx context.Context, s Store, key string, fallback T) (T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return fallback, fmt.Errorf("reading %q: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return fallback, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logrus.Warnf("discarding undecodable value at %q: %v", key, err)
		return fallback, nil
	}
	return v, nil
}

// SetJSON stores v at key as JSON.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}
