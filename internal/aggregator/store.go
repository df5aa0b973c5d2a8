package aggregator

import (
	"sync"

	"github.com/simplifyx/scamguard/internal/model"
)

// Store holds the live risk state of every open page and linearizes
// updates to each one.
//
// With is the only way to mutate a state: the callback runs under the
// page's lock, so a read-modify-write of the total score and the
// alert-fired flag is atomic with respect to concurrent finding batches.
type Store interface {
	// Put installs a fresh state for the page, replacing any previous one.
	// A navigation always starts a new lifetime for its page identifier.
	Put(state *model.PageRiskState)

	// With runs fn under the page's lock. It reports false, without calling
	// fn, when the page is unknown.
	With(pageID string, fn func(state *model.PageRiskState)) bool

	// Delete removes the page's state. Deleting an unknown page is a no-op.
	Delete(pageID string)

	// Snapshot returns an immutable report of the page's current state.
	Snapshot(pageID string) (*model.RiskReport, bool)

	// Len returns the number of tracked pages.
	Len() int
}

// pageEntry pairs a state with the mutex that linearizes its updates.
type pageEntry struct {
	mu    sync.Mutex
	state *model.PageRiskState
}

// memStore is the in-memory Store used by the live pipeline.
type memStore struct {
	mu      sync.RWMutex
	entries map[string]*pageEntry
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() Store {
	return &memStore{entries: make(map[string]*pageEntry)}
}

// Put installs a fresh state for the page, replacing any previous one.
func (s *memStore) Put(state *model.PageRiskState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[state.PageID] = &pageEntry{state: state}
}

// With runs fn under the page's lock.
//
// The entry lock is taken while still resolving the entry under the map's
// read lock; a concurrent Put for the same page swaps in a new entry rather
// than mutating this one, so fn always sees a consistent state.
func (s *memStore) With(pageID string, fn func(state *model.PageRiskState)) bool {
	s.mu.RLock()
	entry, ok := s.entries[pageID]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.state)
	return true
}

// Delete removes the page's state.
func (s *memStore) Delete(pageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, pageID)
}

// Snapshot returns an immutable report of the page's current state.
func (s *memStore) Snapshot(pageID string) (*model.RiskReport, bool) {
	var report *model.RiskReport
	ok := s.With(pageID, func(state *model.PageRiskState) {
		report = state.Snapshot()
	})
	return report, ok
}

// Len returns the number of tracked pages.
func (s *memStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
