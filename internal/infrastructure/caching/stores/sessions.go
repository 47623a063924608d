package stores

import (
	"fmt"
	"sync"
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/session"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// SessionsStore holds the open editor sessions.
type SessionsStore struct {
	sessions    map[string]*session.EditorSession
	maxSessions int
	mu          sync.RWMutex
	logger      *logging.ChanneledLogger
}

// NewSessionsStore creates a store capped at maxSessions (no cap when <= 0).
func NewSessionsStore(maxSessions int, logger *logging.ChanneledLogger) *SessionsStore {
	return &SessionsStore{
		sessions:    make(map[string]*session.EditorSession),
		maxSessions: maxSessions,
		logger:      logger,
	}
}

// Get returns the session with the id.
func (ss *SessionsStore) Get(id string) (*session.EditorSession, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	s, ok := ss.sessions[id]
	return s, ok
}

// Put registers a session. It fails when the store is full.
func (ss *SessionsStore) Put(s *session.EditorSession) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, exists := ss.sessions[s.ID]; !exists && ss.maxSessions > 0 && len(ss.sessions) >= ss.maxSessions {
		return fmt.Errorf("editor session limit of %d reached", ss.maxSessions)
	}
	ss.sessions[s.ID] = s
	if ss.logger != nil {
		ss.logger.Cache().Debug("Editor session stored", "sessionId", s.ID, "pageId", s.PageID, "count", len(ss.sessions))
	}
	return nil
}

// Remove unregisters and returns the session.
func (ss *SessionsStore) Remove(id string) (*session.EditorSession, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.sessions[id]
	if ok {
		delete(ss.sessions, id)
	}
	return s, ok
}

// Expired unregisters and returns every session idle longer than ttl.
func (ss *SessionsStore) Expired(ttl time.Duration) []*session.EditorSession {
	ss.mu.RLock()
	var candidates []*session.EditorSession
	for _, s := range ss.sessions {
		candidates = append(candidates, s)
	}
	ss.mu.RUnlock()

	var expired []*session.EditorSession
	for _, s := range candidates {
		if !s.IsExpired(ttl) {
			continue
		}
		if removed, ok := ss.Remove(s.ID); ok {
			expired = append(expired, removed)
		}
	}
	return expired
}

// ForPage returns the sessions editing a page.
func (ss *SessionsStore) ForPage(pageID string) []*session.EditorSession {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	var out []*session.EditorSession
	for _, s := range ss.sessions {
		if s.PageID == pageID {
			out = append(out, s)
		}
	}
	return out
}

// All returns every open session.
func (ss *SessionsStore) All() []*session.EditorSession {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	out := make([]*session.EditorSession, 0, len(ss.sessions))
	for _, s := range ss.sessions {
		out = append(out, s)
	}
	return out
}

// Count returns the number of open sessions.
func (ss *SessionsStore) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}
