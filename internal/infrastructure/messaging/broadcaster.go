// Package messaging provides the in-process broadcaster behind the editor's live connections.
package messaging

import (
	"sync"

	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// Event types sent to live editor connections.
const (
	EventTree    = "tree_updated"
	EventStyles  = "styles_updated"
	EventHistory = "history_moved"
	EventSaved   = "saved"
	EventClosed  = "session_closed"
)

// EditorEvent is one notification about an editor session.
type EditorEvent struct {
	Type        string `json:"type"`
	SessionID   string `json:"sessionId"`
	Revision    int    `json:"revision"`
	ComponentID string `json:"componentId,omitempty"`
	CanUndo     bool   `json:"canUndo"`
	CanRedo     bool   `json:"canRedo"`
}

// EditorBroadcaster manages session-scoped client channels.
type EditorBroadcaster struct {
	sessions map[string][]chan EditorEvent // sessionId -> []channels
	mu       sync.Mutex
	logger   *logging.ChanneledLogger
}

var _ Broadcaster = (*EditorBroadcaster)(nil)

// NewEditorBroadcaster creates a broadcaster.
func NewEditorBroadcaster(logger *logging.ChanneledLogger) *EditorBroadcaster {
	return &EditorBroadcaster{
		sessions: make(map[string][]chan EditorEvent),
		logger:   logger,
	}
}

// AddClient registers a new client channel for the session.
func (b *EditorBroadcaster) AddClient(sessionID string) chan EditorEvent {
	ch := make(chan EditorEvent, 16)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[sessionID] = append(b.sessions[sessionID], ch)

	b.logger.HTTP().Debug("Live client registered", "sessionId", sessionID, "clients", len(b.sessions[sessionID]))
	return ch
}

// RemoveClient unregisters and closes a client channel. Unknown channels are ignored.
func (b *EditorBroadcaster) RemoveClient(ch chan EditorEvent, sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	clients, exists := b.sessions[sessionID]
	if !exists {
		return
	}
	remaining := make([]chan EditorEvent, 0, len(clients))
	for _, client := range clients {
		if client == ch {
			close(client)
			continue
		}
		remaining = append(remaining, client)
	}
	if len(remaining) == 0 {
		delete(b.sessions, sessionID)
	} else {
		b.sessions[sessionID] = remaining
	}
	b.logger.HTTP().Debug("Live client unregistered", "sessionId", sessionID)
}

// ConnectionCount returns the number of live clients on the session.
func (b *EditorBroadcaster) ConnectionCount(sessionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions[sessionID])
}

// Broadcast sends the event to every client of the session without blocking; full channels
// drop the event.
func (b *EditorBroadcaster) Broadcast(sessionID string, event EditorEvent) {
	event.SessionID = sessionID

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.sessions[sessionID] {
		select {
		case ch <- event:
		default:
			b.logger.HTTP().Warn("Live channel full, event dropped", "sessionId", sessionID, "type", event.Type)
		}
	}
}

// CloseSession sends a final closed event and disconnects every client of the session.
func (b *EditorBroadcaster) CloseSession(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.sessions[sessionID] {
		select {
		case ch <- EditorEvent{Type: EventClosed, SessionID: sessionID}:
		default:
		}
		close(ch)
	}
	delete(b.sessions, sessionID)
}
