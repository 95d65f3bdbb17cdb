package store

import (
	"sync"

	"github.com/google/go-cmp/cmp"
)

// memo caches the result of a pure function and recomputes it only when the
// input differs by value from the previous call.
type memo[In, Out any] struct {
	compute func(In) Out

	mu       sync.Mutex
	valid    bool
	lastIn   In
	lastOut  Out
	computed int
}

func newMemo[In, Out any](compute func(In) Out) *memo[In, Out] {
	return &memo[In, Out]{compute: compute}
}

func (m *memo[In, Out]) get(in In) Out {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && cmp.Equal(m.lastIn, in) {
		return m.lastOut
	}
	m.lastOut = m.compute(in)
	m.lastIn = in
	m.valid = true
	m.computed++
	return m.lastOut
}

func (m *memo[In, Out]) computations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.computed
}
