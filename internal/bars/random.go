package bars

import (
	"math/rand/v2"
	"time"
)

const (
	minRandomPeriod = 500 * time.Millisecond
	maxRandomPeriod = 900 * time.Millisecond
)

// RandomSource yields uniformly distributed values in [0, 1).
// *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a PCG-backed source. Tests pass a fixed seed.
func NewRandomSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func defaultRandomSource() RandomSource {
	return NewRandomSource(uint64(time.Now().UnixNano()))
}

// RandomPeriod draws an animation period uniformly from [0.5s, 0.9s).
func RandomPeriod(src RandomSource) time.Duration {
	span := float64(maxRandomPeriod - minRandomPeriod)
	return minRandomPeriod + time.Duration(src.Float64()*span)
}
