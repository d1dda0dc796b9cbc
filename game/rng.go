package game

import (
	"hash/fnv"
	"math/rand"
	"strconv"
)

// === Subsystem Constants ===

const (
	// SubsystemShuffle drives the distinct-three shuffle of the shared pool.
	// It is seeded by the round seed directly.
	SubsystemShuffle = "shuffle"
)

// SubsystemSlot returns the subsystem name for an independent draw into
// slot i (shared pool with fewer than three foods).
func SubsystemSlot(i int) string {
	return strconv.Itoa(i)
}

// SubsystemHand returns the subsystem name for a per-hand pool draw.
func SubsystemHand(h Hand) string {
	return string(h)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances keyed by a
// string seed.
//
// Derivation formula:
//   - For SubsystemShuffle: fnv1a64(seed)
//   - For all other subsystems: fnv1a64(seed + ":" + name)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	seed       string
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG for a round seed.
func NewPartitionedRNG(seed string) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	key := p.seed
	if name != SubsystemShuffle {
		key = p.seed + ":" + name
	}

	rng := rand.New(rand.NewSource(fnv1a64(key)))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the round seed this PartitionedRNG was created from.
func (p *PartitionedRNG) Seed() string {
	return p.seed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
