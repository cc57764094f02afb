package index

import (
	"maps"
	"sync"
)

// Stats is a mutable mapping from stat name to count.
//
// Collaborators that bulk-populate the index record what they did here;
// the index itself never computes these values. Stats is safe for
// concurrent use.
type Stats struct {
	mu     sync.RWMutex
	values map[string]int64
}

// NewStats returns an empty mapping.
func NewStats() *Stats {
	return &Stats{values: make(map[string]int64)}
}

// Get returns the value of name, or zero if it was never set.
func (s *Stats) Get(name string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

// Set replaces the value of name.
func (s *Stats) Set(name string, value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

// Add increments name by delta and returns the new value.
func (s *Stats) Add(name string, delta int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] += delta
	return s.values[name]
}

// Snapshot returns a copy of every stat.
func (s *Stats) Snapshot() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Reset removes every stat.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.values)
}
