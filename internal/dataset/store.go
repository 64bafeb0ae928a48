package dataset

import "sync"

// Store holds the most recent upload result. Replace is wholesale: a new
// upload supersedes the previous dataset or error state atomically, so
// readers see either the old result or the new one, never a mix.
type Store struct {
	mu     sync.RWMutex
	latest *Result
}

// NewStore creates an empty result store.
func NewStore() *Store {
	return &Store{}
}

// Replace installs a new result, discarding whatever was there before.
func (s *Store) Replace(r *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = r
}

// Latest returns the most recent result, or nil if nothing has been
// uploaded yet.
func (s *Store) Latest() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
