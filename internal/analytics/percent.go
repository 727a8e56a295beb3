package analytics

import (
	"math"
	"math/rand"
	"sync"
)

// Percentage returns value as a share of total, rounded to one decimal.
// A zero total yields 0.
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(value/total*1000) / 10
}

// roundTo rounds v to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// Jitter supplies the mock variation used where no measured value exists.
// Float64 returns a value in [0, 1).
type Jitter interface {
	Float64() float64
}

// FixedJitter always returns the same value.
type FixedJitter float64

// Float64 implements Jitter.
func (f FixedJitter) Float64() float64 { return float64(f) }

// MidpointJitter is the deterministic default.
const MidpointJitter = FixedJitter(0.5)

type seededJitter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *seededJitter) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// NewJitter returns MidpointJitter for seed 0 and a seeded random source otherwise.
func NewJitter(seed int64) Jitter {
	if seed == 0 {
		return MidpointJitter
	}
	return &seededJitter{rng: rand.New(rand.NewSource(seed))}
}
