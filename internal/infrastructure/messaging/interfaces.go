// Package messaging defines interfaces for real-time communication.
package messaging

// Broadcaster fans editor events out to the live connections of a session.
type Broadcaster interface {
	AddClient(sessionID string) chan EditorEvent
	RemoveClient(ch chan EditorEvent, sessionID string)
	ConnectionCount(sessionID string) int
	Broadcast(sessionID string, event EditorEvent)
	CloseSession(sessionID string)
}
