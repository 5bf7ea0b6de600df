package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot describes the most recent load activity for the status bar.
type Snapshot struct {
	Stage               string // name of the last delivered stage
	Waiting             bool   // a fetch is in flight
	Attempts            int    // fetches started since attach
	LastUpdated         time.Time
	LastSuccess         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the source has failed several loads in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates from the load pipeline with reads
// from the renderer.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin records that a fetch was triggered and announced as stage.
func (s *Store) Begin(stage string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Stage = stage
	s.snapshot.Waiting = true
	s.snapshot.Attempts++
	s.snapshot.LastUpdated = time.Now()
}

// Finish records the outcome of a fetch. A nil err resets the failure count.
func (s *Store) Finish(stage string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.Stage = stage
	s.snapshot.Waiting = false
	s.snapshot.LastUpdated = now
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.LastSuccess = now
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
