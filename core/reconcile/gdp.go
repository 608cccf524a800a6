package reconcile

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// MultiplierMin is the inclusive lower bound of the GDP multiplier.
	MultiplierMin = 1000.0
	// MultiplierMax is the exclusive upper bound of the GDP multiplier.
	MultiplierMax = 2000.0
)

// MultiplierSource yields one GDP multiplier per country.
type MultiplierSource interface {
	Next() float64
}

// RandomMultiplier draws multipliers uniformly from [MultiplierMin, MultiplierMax).
type RandomMultiplier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomMultiplier returns a seeded multiplier source. Equal seeds yield equal sequences.
func NewRandomMultiplier(seed uint64) *RandomMultiplier {
	return &RandomMultiplier{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeededMultiplier returns a multiplier source seeded from the clock.
func NewTimeSeededMultiplier() *RandomMultiplier {
	return NewRandomMultiplier(uint64(time.Now().UnixNano()))
}

// Next returns the next multiplier.
func (m *RandomMultiplier) Next() float64 {
	m.mu.Lock()
	f := m.rng.Float64()
	m.mu.Unlock()

	v := MultiplierMin + f*(MultiplierMax-MultiplierMin)
	// f close to 1 can round up to the excluded bound
	if v >= MultiplierMax {
		v = math.Nextafter(MultiplierMax, MultiplierMin)
	}
	return v
}

// FixedMultiplier always yields the same value.
type FixedMultiplier float64

// Next returns the fixed value.
func (f FixedMultiplier) Next() float64 {
	return float64(f)
}

// EstimateGDP derives the estimated GDP of a country.
// A missing or non-positive rate yields 0.
func EstimateGDP(population int64, rate *float64, multiplier float64) float64 {
	if rate == nil || *rate <= 0 {
		return 0
	}
	return float64(population) * multiplier / *rate
}
