package store

import (
	"sync"

	"github.com/ncuwatch/taoyuanwx/internal/models"
)

// Store holds the latest dataset snapshot. Readers get the snapshot that was
// current when they asked; a refresh swaps the pointer atomically under the
// lock and never mutates a published dataset.
type Store struct {
	mu     sync.RWMutex
	latest *models.Dataset
}

func New() *Store {
	return &Store{}
}

func (s *Store) Latest() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Store) Set(ds *models.Dataset) {
	s.mu.Lock()
	s.latest = ds
	s.mu.Unlock()
}
