package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired due to inactivity")
)

// Session is the explicit server-side session context. PIN verification and
// activity state live here instead of in ambient client storage.
type Session struct {
	ID            string
	UserID        string
	CreatedAt     time.Time
	LastSeen      time.Time
	PINVerifiedAt *time.Time
}

// Store keeps active sessions in memory and enforces the inactivity timeout.
type Store struct {
	mu                sync.RWMutex
	sessions          map[string]*Session
	inactivityTimeout time.Duration
	pinGrace          time.Duration
}

// NewStore creates a session store. inactivityTimeout bounds the gap between
// requests; pinGrace is how long a PIN verification stays valid.
func NewStore(inactivityTimeout, pinGrace time.Duration) *Store {
	return &Store{
		sessions:          make(map[string]*Session),
		inactivityTimeout: inactivityTimeout,
		pinGrace:          pinGrace,
	}
}

// Create registers a new session for a user and returns it.
func (s *Store) Create(userID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		LastSeen:  now,
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Touch records activity on a session. An expired session is removed and
// reported as expired; the caller must re-authenticate.
func (s *Store) Touch(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Since(sess.LastSeen) > s.inactivityTimeout {
		delete(s.sessions, id)
		return nil, ErrSessionExpired
	}
	sess.LastSeen = time.Now()
	return sess, nil
}

// MarkPINVerified records a successful PIN re-auth on the session.
func (s *Store) MarkPINVerified(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	now := time.Now()
	sess.PINVerifiedAt = &now
	return nil
}

// IsPINVerified reports whether the session has a PIN verification still
// inside the grace window.
func (s *Store) IsPINVerified(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || sess.PINVerifiedAt == nil {
		return false
	}
	return time.Since(*sess.PINVerifiedAt) <= s.pinGrace
}

// Revoke removes a session (logout).
func (s *Store) Revoke(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Sweep removes all sessions past the inactivity timeout and returns the
// IDs that were dropped, so callers can release any state keyed by them.
// Intended to run from the cron scheduler.
func (s *Store) Sweep() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for id, sess := range s.sessions {
		if time.Since(sess.LastSeen) > s.inactivityTimeout {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// ActiveCount returns the number of live sessions.
func (s *Store) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
