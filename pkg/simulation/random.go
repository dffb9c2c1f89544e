package simulation

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// RandomProcess draws the stochastic quantities of the simulation. It is
// safe for concurrent use; a fixed seed yields a fixed sequence of draws.
type RandomProcess struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomProcess creates a random process seeded with seed
func NewRandomProcess(seed int64) *RandomProcess {
	return &RandomProcess{rng: rand.New(rand.NewSource(seed))}
}

// NextInterval returns an exponentially distributed duration with the given
// mean, computed by inversion as -ln(1-u) * mean.
func (r *RandomProcess) NextInterval(mean time.Duration) time.Duration {
	r.mu.Lock()
	u := r.rng.Float64()
	r.mu.Unlock()

	return time.Duration(-math.Log(1-u) * float64(mean))
}

// Bernoulli returns true with probability p
func (r *RandomProcess) Bernoulli(p float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() < p
}

// Intn returns a uniform integer in [0, n)
func (r *RandomProcess) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
