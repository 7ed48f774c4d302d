package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is a copy of a store's records at one point in time.
type Snapshot[T any] struct {
	Records             []T
	Loaded              bool // at least one successful fetch
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
	Generation          uint64 // bumped on every successful replace
}

// IsOffline reports whether the service has failed several fetches in a row.
func (s Snapshot[T]) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store holds the latest list fetched for one resource. The zero value is
// ready to use.
type Store[T any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[T]
}

// Update replaces the stored list. When err is non-nil the previous records
// are kept and only the error is recorded.
func (s *Store[T]) Update(records []T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Records = clone(records)
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.Generation++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Records = clone(s.snapshot.Records)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Records is shorthand for Snapshot().Records.
func (s *Store[T]) Records() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.snapshot.Records)
}

func clone[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
