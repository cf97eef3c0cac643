package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the shared random source for every random duty in the service:
// random suggestions, the pick among chat search results and the browse
// shuffle. A single Source is built at startup; tests construct a seeded one
// so picks are reproducible.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New() *Source {
	return NewSeeded(time.Now().UnixNano())
}

func NewSeeded(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, swap)
}
