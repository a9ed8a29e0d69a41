package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/hepgo/event"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Uniform returns a pseudo-random number in [lo,hi).
func (r *RNG) Uniform(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// FourVector returns a vector with uniform spatial components in
// [-scale,scale) and a time component large enough to keep it timelike.
func (r *RNG) FourVector(scale float64) event.FourVector {
	r.mu.Lock()
	defer r.mu.Unlock()
	x := (r.rand.Float64()*2 - 1) * scale
	y := (r.rand.Float64()*2 - 1) * scale
	z := (r.rand.Float64()*2 - 1) * scale
	m := r.rand.Float64() * scale
	return event.NewFourVector(x, y, z, math.Sqrt(x*x+y*y+z*z+m*m))
}

// Split divides total into n parts with random positive weights. The parts
// sum to total component by component.
func (r *RNG) Split(total event.FourVector, n int) []event.FourVector {
	if n <= 0 {
		return nil
	}
	r.mu.Lock()
	fracs := make([]float64, n)
	var sum float64
	for i := range fracs {
		fracs[i] = 0.1 + r.rand.Float64()
		sum += fracs[i]
	}
	r.mu.Unlock()

	parts := make([]event.FourVector, n)
	rest := total
	for i := range n - 1 {
		parts[i] = total.Scale(fracs[i] / sum)
		rest = rest.Sub(parts[i])
	}
	parts[n-1] = rest
	return parts
}
