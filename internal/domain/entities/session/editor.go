// Package session holds the state of an open page editor.
package session

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/tree"
)

// EditorSession is one open editor on one page. Mu guards every field below it; callers lock
// it for the whole command so the tree and its history move together.
type EditorSession struct {
	ID      string
	PageID  string
	ThemeID string

	Mu       sync.Mutex
	Tree     []*builder.ComponentNode
	History  *tree.History
	Revision int
	// Pending is set while edits are waiting to be committed as one history entry.
	Pending bool
	// Unsaved is set while the tree differs from the persisted layout.
	Unsaved bool
	// ReleaseStylesheet drops the session's reference on its theme stylesheet.
	ReleaseStylesheet func()

	CreatedAt    time.Time
	LastAccessed time.Time
	closed       bool
}

// NewEditorSession opens a session on a copy of layout and records it as the first history entry.
func NewEditorSession(id, pageID, themeID string, layout []*builder.ComponentNode, historyLimit int) *EditorSession {
	now := time.Now().UTC()
	s := &EditorSession{
		ID:           id,
		PageID:       pageID,
		ThemeID:      themeID,
		Tree:         builder.CloneTree(layout),
		History:      tree.NewHistory(historyLimit),
		CreatedAt:    now,
		LastAccessed: now,
	}
	s.History.Push(s.Tree)
	return s
}

// Touch records activity. Callers hold Mu.
func (s *EditorSession) Touch() {
	s.LastAccessed = time.Now().UTC()
}

// IsExpired reports whether the session has been idle longer than ttl.
func (s *EditorSession) IsExpired(ttl time.Duration) bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return time.Since(s.LastAccessed) > ttl
}

// Close releases the stylesheet once and marks the session unusable. Callers hold Mu.
func (s *EditorSession) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.ReleaseStylesheet != nil {
		s.ReleaseStylesheet()
		s.ReleaseStylesheet = nil
	}
}

// Closed reports whether Close has run. Callers hold Mu.
func (s *EditorSession) Closed() bool {
	return s.closed
}
