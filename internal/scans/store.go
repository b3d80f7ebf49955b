// Package scans keeps completed scan results in memory for the lifetime of
// the process. Nothing is persisted; a rescan simply stores a new result.
package scans

import (
	"sync"

	"github.com/google/uuid"

	"github.com/rodrigoplimafreire/ats-resume/internal/pipeline"
)

// DefaultCapacity bounds a MemoryStore when no capacity is given.
const DefaultCapacity = 50

// Store holds completed scan results.
type Store interface {
	// Put stores a result, replacing any earlier result with the same ID.
	Put(result *pipeline.ScanResult)
	// Get returns the result for id.
	Get(id uuid.UUID) (*pipeline.ScanResult, bool)
	// List returns summaries of all stored results in insertion order.
	List() []pipeline.Summary
	// Delete removes the result for id, reporting whether it existed.
	Delete(id uuid.UUID) bool
	// Len returns the number of stored results.
	Len() int
}

// MemoryStore is a bounded, concurrency-safe Store. When full, adding a scan
// evicts the oldest one.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	byID     map[uuid.UUID]*pipeline.ScanResult
	order    []uuid.UUID // insertion order, oldest first
}

// NewMemoryStore creates a MemoryStore holding at most capacity results.
// A non-positive capacity means DefaultCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{
		capacity: capacity,
		byID:     make(map[uuid.UUID]*pipeline.ScanResult, capacity),
	}
}

// Put stores a result, replacing any earlier result with the same ID.
func (s *MemoryStore) Put(result *pipeline.ScanResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[result.ID]; exists {
		s.byID[result.ID] = result
		return
	}

	if len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.byID, oldest)
	}

	s.byID[result.ID] = result
	s.order = append(s.order, result.ID)
}

// Get returns the result for id.
func (s *MemoryStore) Get(id uuid.UUID) (*pipeline.ScanResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.byID[id]
	return result, ok
}

// List returns summaries of all stored results in insertion order.
func (s *MemoryStore) List() []pipeline.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]pipeline.Summary, 0, len(s.order))
	for _, id := range s.order {
		if result, ok := s.byID[id]; ok {
			summaries = append(summaries, result.Summary())
		}
	}
	return summaries
}

// Delete removes the result for id, reporting whether it existed.
func (s *MemoryStore) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return false
	}

	delete(s.byID, id)
	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored results.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
