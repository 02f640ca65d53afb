// Package testutil holds deterministic name and session generators for tests.
package testutil

import (
	"fmt"
	"sync"
)

// SequenceSuffixer returns "000001", "000002", ... on successive calls.
//
// This makes generated setup, source and sink names predictable so tests and
// golden files can spell them out.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SequenceSuffixer struct {
	mu  sync.Mutex
	seq int
}

// NewSequenceSuffixer creates a suffixer whose first suffix is "000001".
func NewSequenceSuffixer() *SequenceSuffixer {
	return &SequenceSuffixer{}
}

// Suffix increments the counter and returns it zero-padded to six digits.
func (s *SequenceSuffixer) Suffix() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("%06d", s.seq)
}

// FixedSession generates the same journal session id every time.
//
// Thread-safety: FixedSession is stateless and safe for concurrent use.
type FixedSession struct {
	id string
}

// NewFixedSession creates a fixed session generator.
// If id is empty, Generate returns "test-session-default".
func NewFixedSession(id string) *FixedSession {
	if id == "" {
		id = "test-session-default"
	}
	return &FixedSession{id: id}
}

// Generate returns the fixed session id.
func (g *FixedSession) Generate() string {
	return g.id
}
