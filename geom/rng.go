package geom

import "math/rand"

// RNG is a filter-owned random source. Spec §5 requires each filter to
// own its RNG and requires deterministic output for a fixed seed, so
// this wraps math/rand.Rand rather than the shared global source.
type RNG struct {
	r *rand.Rand
}

// NewRNG returns an RNG seeded deterministically with seed. Reproducing
// a prior run is the caller's responsibility, per spec §5.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a pseudo-random number in [0,1).
func (g *RNG) Float64() float64 { return g.r.Float64() }

// Intn returns a pseudo-random number in [0,n).
func (g *RNG) Intn(n int) int { return g.r.Intn(n) }

// Keep reports whether an item should be retained under random
// downsampling by the given fraction in [0,1].
func (g *RNG) Keep(fraction float64) bool { return g.r.Float64() < fraction }
