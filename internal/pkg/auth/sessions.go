package auth

import (
	"sync"

	"github.com/emre/enrollhub/internal/pkg/apperrors"
)

// SessionRegistry tracks the session IDs of active logins so logout takes
// effect immediately instead of waiting for token expiry. A new login never
// requires a prior logout; each login simply registers another session.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]string // session ID -> student ID
}

// NewSessionRegistry creates an empty session registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]string)}
}

// Register records a session as active
func (r *SessionRegistry) Register(sessionID, studentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = studentID
}

// Revoke removes a session. Revoking an unknown session is a no-op, which
// makes logout idempotent.
func (r *SessionRegistry) Revoke(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Validate returns ErrSessionRevoked unless the session is still active
func (r *SessionRegistry) Validate(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return apperrors.ErrSessionRevoked
	}
	return nil
}
