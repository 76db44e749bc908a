package slideshow

import (
	"math/rand/v2"
	"time"
)

// Env carries the collaborators scene objects share: a Clock for chat and
// gift timers and a random source for dialogue picks, gift rolls and layout
// jitter. A nil *Env behaves like NewEnv().
type Env struct {
	Clock Clock
	Rand  *rand.Rand
}

// NewEnv returns an Env backed by the system clock and a time-seeded PCG.
func NewEnv() *Env {
	seed := uint64(time.Now().UnixNano())
	return &Env{
		Clock: SystemClock{},
		Rand:  rand.New(rand.NewPCG(seed, seed>>17|1)),
	}
}

// NewTestEnv returns an Env with a ManualClock and a fixed seed.
func NewTestEnv(start time.Time, seed uint64) (*Env, *ManualClock) {
	clk := NewManualClock(start)
	return &Env{Clock: clk, Rand: rand.New(rand.NewPCG(seed, seed+1))}, clk
}

// Now returns the current time.
func (e *Env) Now() time.Time {
	if e == nil || e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

// Float64 returns a value in [0, 1).
func (e *Env) Float64() float64 {
	if e == nil || e.Rand == nil {
		return rand.Float64()
	}
	return e.Rand.Float64()
}

// IntN returns a value in [0, n). n must be positive.
func (e *Env) IntN(n int) int {
	if e == nil || e.Rand == nil {
		return rand.IntN(n)
	}
	return e.Rand.IntN(n)
}

// Between returns a value in [lo, hi).
func (e *Env) Between(lo, hi float64) float64 {
	return lo + e.Float64()*(hi-lo)
}

// Pick returns a random element of pool, or "" when pool is empty.
func (e *Env) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[e.IntN(len(pool))]
}

// rng exposes the random source for Range.Random.
func (e *Env) rng() *rand.Rand {
	if e == nil {
		return nil
	}
	return e.Rand
}
