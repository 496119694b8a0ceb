package analyzer

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource yields a pseudo-random integer in [0, n).
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource returns a RandomSource that is safe for concurrent use.
// A zero seed picks one from the clock.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// FixedSource always returns the same value, clamped into [0, n).
type FixedSource int

func (f FixedSource) Intn(n int) int {
	v := int(f)
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
