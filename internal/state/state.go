package state

import (
	"sync"

	"studentboard/internal/dataset"
)

// AppState holds the loaded canonical table. The table itself is
// immutable after load; the lock only guards the pointer swap when a
// new file is loaded.
type AppState struct {
	mu sync.RWMutex

	table  *dataset.Table
	source string
}

// Global state instance
var State = &AppState{}

// SetTable installs a freshly loaded table and remembers its source.
func (s *AppState) SetTable(t *dataset.Table, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
	s.source = source
}

// Table returns the current table, or nil when nothing is loaded.
func (s *AppState) Table() *dataset.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Source returns where the current table came from.
func (s *AppState) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}
