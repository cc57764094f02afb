package collect

import (
	"errors"
	"slices"
	"sort"
	"sync"
)

// Error values for collection store operations.
var (
	ErrNotFound          = errors.New("collection not found")
	ErrInvalidCollection = errors.New("invalid collection")
)

// Store keeps collections in memory.
type Store struct {
	mu          sync.RWMutex
	collections map[string]Collection
}

// NewStore creates an empty collection store.
func NewStore() *Store {
	return &Store{
		collections: make(map[string]Collection),
	}
}

// Put adds or replaces a collection.
func (s *Store) Put(c Collection) error {
	if c.ID == "" {
		return ErrInvalidCollection
	}
	c.Tabs = slices.Clone(c.Tabs)

	s.mu.Lock()
	s.collections[c.ID] = c
	s.mu.Unlock()
	return nil
}

// Get returns a collection by ID.
func (s *Store) Get(id string) (Collection, error) {
	s.mu.RLock()
	c, ok := s.collections[id]
	s.mu.RUnlock()

	if !ok {
		return Collection{}, ErrNotFound
	}
	c.Tabs = slices.Clone(c.Tabs)
	return c, nil
}

// Delete removes a collection. Deleting an unknown ID is not an error.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.collections, id)
	s.mu.Unlock()
}

// List returns every collection ordered by ID.
func (s *Store) List() []Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.collections))
	for id := range s.collections {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]Collection, 0, len(ids))
	for _, id := range ids {
		c := s.collections[id]
		c.Tabs = slices.Clone(c.Tabs)
		result = append(result, c)
	}
	return result
}

// IDsForURL returns the IDs of collections holding a tab with url, ordered
// by ID.
func (s *Store) IDsForURL(url string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, c := range s.collections {
		if containsURL(c.Tabs, url) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// ContainsURL reports whether any collection holds a tab with url.
func (s *Store) ContainsURL(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.collections {
		if containsURL(c.Tabs, url) {
			return true
		}
	}
	return false
}

func containsURL(tabs []Tab, url string) bool {
	return slices.ContainsFunc(tabs, func(t Tab) bool { return t.URL == url })
}
