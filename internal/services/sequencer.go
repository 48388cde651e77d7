package services

import "sync"

// Sequencer orders results per key. Begin stamps each request with a
// number that increases across all keys; Accept rejects a result once a
// later request on the same key has been applied.
type Sequencer struct {
	mu      sync.Mutex
	next    uint64
	applied map[string]uint64
	// removed holds keys whose delete was applied, until a fetch issued
	// after the delete settles.
	removed map[string]uint64
}

// NewSequencer creates an empty sequencer
func NewSequencer() *Sequencer {
	return &Sequencer{
		applied: make(map[string]uint64),
		removed: make(map[string]uint64),
	}
}

// Begin returns the sequence number for a new request on key
func (s *Sequencer) Begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// Accept reports whether a result stamped seq may still be applied for
// key, and records it as applied if so.
func (s *Sequencer) Accept(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied[key] {
		return false
	}
	s.applied[key] = seq
	return true
}

// Remove forgets key after its delete was applied at seq.
func (s *Sequencer) Remove(key string, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.applied, key)
	if seq > s.removed[key] {
		s.removed[key] = seq
	}
}

// AppliedAfter reports whether a result for key newer than seq has been
// applied.
func (s *Sequencer) AppliedAfter(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied[key] > seq
}

// RemovedAfter reports whether key was deleted by a request newer than seq.
func (s *Sequencer) RemovedAfter(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removed[key] > seq
}

// Settle drops removals that a snapshot taken at seq already reflects.
func (s *Sequencer) Settle(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, at := range s.removed {
		if at < seq {
			delete(s.removed, key)
		}
	}
}

