package internal

import (
	"context"
	"sync"
	"time"

	"inventory-dashboard/internal/models"
	"inventory-dashboard/pkg/importer"
)

// Store holds the served collection. It is replaced wholesale, never edited.
type Store struct {
	mu    sync.RWMutex
	items []models.Item
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{items: []models.Item{}}
}

// Items returns the current collection. Callers must not modify it.
func (s *Store) Items() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Len returns the number of items held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace swaps in a new collection.
func (s *Store) Replace(items []models.Item) {
	if items == nil {
		items = []models.Item{}
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// LoadFrom reads src and replaces the collection on success.
func (s *Store) LoadFrom(ctx context.Context, src importer.Source) (importer.LoadSummary, time.Duration, error) {
	start := time.Now()
	items, summary, err := src.Load(ctx)
	elapsed := time.Since(start)
	if err != nil {
		return summary, elapsed, err
	}
	s.Replace(items)
	return summary, elapsed, nil
}
