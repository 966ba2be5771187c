package composer

import (
	"math/rand"
	"sync"
)

// Selector picks one entry out of n candidate phrasings. Selection is a
// pluggable strategy so tests can pin it down: randomized phrasing is a
// seedable source, never a hidden runtime call.
type Selector interface {
	Pick(n int) int
}

// RoundRobinSelector cycles through candidates in order.
type RoundRobinSelector struct {
	mu   sync.Mutex
	next int
}

func NewRoundRobinSelector() *RoundRobinSelector {
	return &RoundRobinSelector{}
}

func (s *RoundRobinSelector) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.next % n
	s.next++
	return i
}

// SeededSelector picks pseudo-randomly from a supplied seed, so a fixed
// seed replays the same phrasing choices.
type SeededSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSeededSelector(seed int64) *SeededSelector {
	return &SeededSelector{rng: rand.New(rand.NewSource(seed))}
}

func (s *SeededSelector) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// FirstSelector always picks the first candidate. Useful default for
// fully deterministic deployments.
type FirstSelector struct{}

func (FirstSelector) Pick(n int) int { return 0 }
