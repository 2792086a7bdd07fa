// Package credential holds the elevation secret for the lifetime of one
// process session. The secret is acquired once from an external prompt
// collaborator, validated against the elevation mechanism before being
// trusted, and reused for every subsequent privileged operation. It lives
// in locked memory, is never persisted, and is destroyed on process exit.
package credential

import "sync"

// Session caches a single validated secret. The zero value is ready to use.
// Callers must only ever Store a secret that has already passed validation;
// a rejected secret is closed by its owner and never reaches the session.
type Session struct {
	mu     sync.Mutex
	secret *Secret
}

// NewSession creates an empty credential session
func NewSession() *Session {
	return &Session{}
}

// Cached returns the validated secret for this session, if one has been
// stored
func (s *Session) Cached() (*Secret, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.secret, s.secret != nil
}

// Store caches a validated secret for reuse. Any previously stored secret
// is closed first.
func (s *Session) Store(secret *Secret) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.secret != nil {
		s.secret.Close()
	}
	s.secret = secret
}

// Clear closes and drops the cached secret. Intended for process shutdown;
// there is no mid-session invalidation path.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.secret == nil {
		return nil
	}
	err := s.secret.Close()
	s.secret = nil
	return err
}
