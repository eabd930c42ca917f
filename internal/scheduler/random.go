package scheduler

import (
	"math/rand"
	"time"
)

// RandomSource is the randomness consumed by the scheduler and the endless
// engine. *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRandom returns a time-seeded source for production use
func NewRandom() RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededRandom returns a reproducible source
func NewSeededRandom(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}
