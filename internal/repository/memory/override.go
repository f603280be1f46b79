package memory

import (
	"sync"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/reconciliation"
)

// overrideStore keeps penalty overrides in process memory. Overrides are
// display-only and scoped to a UI session, so losing them on restart is the
// intended behavior.
type overrideStore struct {
	mu      sync.RWMutex
	ignored map[reconciliation.OverrideKey]struct{}
}

// IsIgnored implements reconciliation.OverrideStore.
func (s *overrideStore) IsIgnored(key reconciliation.OverrideKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ignored[key]
	return ok
}

// Toggle implements reconciliation.OverrideStore.
func (s *overrideStore) Toggle(key reconciliation.OverrideKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ignored[key]; ok {
		delete(s.ignored, key)
		return false
	}
	s.ignored[key] = struct{}{}
	return true
}

// ClearSession implements reconciliation.OverrideStore.
func (s *overrideStore) ClearSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.ignored {
		if key.SessionID == sessionID {
			delete(s.ignored, key)
		}
	}
}

func NewOverrideStore() reconciliation.OverrideStore {
	return &overrideStore{ignored: make(map[reconciliation.OverrideKey]struct{})}
}
