package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blob struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// stores returns one of each implementation, closed at test end.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	mem := NewMemoryStore()
	t.Cleanup(func() {
		_ = sq.Close()
		_ = mem.Close()
	})
	return map[string]Store{"memory": mem, "sqlite": sq}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := s.Get(context.Background(), "nope")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, v)
		})
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "k", []byte(`1`)))
			require.NoError(t, s.Set(ctx, "k", []byte(`2`)))

			v, ok, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte(`2`), v)
		})
	}
}

func TestJSON_RoundTripAndFallback(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			fallback := blob{Name: "default"}

			// GIVEN nothing stored
			got, err := GetJSON(ctx, s, "cfg", fallback)
			require.NoError(t, err)
			assert.Equal(t, fallback, got)

			// WHEN a value is stored
			require.NoError(t, SetJSON(ctx, s, "cfg", blob{Name: "からあげ", Count: 4}))
			got, err = GetJSON(ctx, s, "cfg", fallback)
			require.NoError(t, err)
			assert.Equal(t, blob{Name: "からあげ", Count: 4}, got)

			// AND corrupted
			require.NoError(t, s.Set(ctx, "cfg", []byte(`{"name":`)))
			got, err = GetJSON(ctx, s, "cfg", fallback)
			require.NoError(t, err, "undecodable values fall back silently")
			assert.Equal(t, fallback, got)
		})
	}
}

func TestJSON_NullDecodesToZero(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, SetJSON(ctx, s, "slots", []*blob{nil, {Name: "x"}, nil}))

	got, err := GetJSON[[]*blob](ctx, s, "slots", nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Nil(t, got[0])
	assert.Equal(t, "x", got[1].Name)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "game.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, SetJSON(ctx, s, "cfg:last", blob{Name: "saved"}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := GetJSON(ctx, s, "cfg:last", blob{})
	require.NoError(t, err)
	assert.Equal(t, "saved", got.Name)
}

func TestSQLiteStore_InMemory(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), "a", []byte("b")))
	v, ok, err := s.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", string(v))
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'z'

	out, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(out))
	out[1] = 'z'
	again, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}
