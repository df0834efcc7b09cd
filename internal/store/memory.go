// internal/store/memory.go
//
// In-memory implementation of the Store interface.
//
// Characteristics:
//   - Keeps results in insertion order in a slice.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process exits.

package store

import (
	"context"
	"sync"
)

// memory is a slice-backed Store implementation.
type memory struct {
	mu      sync.RWMutex // guards results
	results []Result     // oldest first
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

// Record appends r after validating it.
func (m *memory) Record(ctx context.Context, r Result) error {
	if err := validate(r); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

// Stats summarizes the stored results.
func (m *memory) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Stats
	won := make([]bool, 0, len(m.results))
	for _, r := range m.results {
		s.Played++
		if r.Won {
			s.Wins++
			s.Distribution[r.Guesses-1]++
		}
		won = append(won, r.Won)
	}
	s.CurrentStreak, s.MaxStreak = streaks(won)
	return s, nil
}

// Recent returns up to limit results, newest first.
func (m *memory) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Result, 0, limit)
	for i := len(m.results) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.results[i])
	}
	return out, nil
}
