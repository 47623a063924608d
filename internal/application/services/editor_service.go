package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/session"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/tree"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/stores"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/security"
)

// EditorService runs the editing commands of open editor sessions. Every command locks its
// session for its whole duration, so the tree, the history and the revision move together.
type EditorService struct {
	pages       *PageService
	themes      *ThemeService
	sessions    *stores.SessionsStore
	broadcaster messaging.Broadcaster
	limits      Limits
	delay       time.Duration
	logger      *logging.ChanneledLogger

	debouncers map[string]func(func())
	mu         sync.Mutex
}

// NewEditorService creates the editor service. Style edits arriving within delay of each other
// are committed as a single history entry.
func NewEditorService(pages *PageService, themes *ThemeService, sessions *stores.SessionsStore,
	broadcaster messaging.Broadcaster, limits Limits, delay time.Duration, logger *logging.ChanneledLogger) *EditorService {
	return &EditorService{
		pages:       pages,
		themes:      themes,
		sessions:    sessions,
		broadcaster: broadcaster,
		limits:      limits,
		delay:       delay,
		logger:      logger,
		debouncers:  make(map[string]func(func())),
	}
}

// SessionView is the client-facing state of an editor session.
type SessionView struct {
	SessionID    string                   `json:"sessionId"`
	PageID       string                   `json:"pageId"`
	ThemeID      string                   `json:"themeId,omitempty"`
	Revision     int                      `json:"revision"`
	Layout       []*builder.ComponentNode `json:"layout"`
	CanUndo      bool                     `json:"canUndo"`
	CanRedo      bool                     `json:"canRedo"`
	HistoryIndex int                      `json:"historyIndex"`
	HistoryLen   int                      `json:"historyLength"`
	Unsaved      bool                     `json:"unsaved"`
}

// FlatView is the flattened tree of a session at a revision.
type FlatView struct {
	SessionID string             `json:"sessionId"`
	Revision  int                `json:"revision"`
	Items     []builder.FlatItem `json:"items"`
}

// AddComponentRequest describes a node to insert. An empty ParentID inserts at the root; a nil
// Index appends.
type AddComponentRequest struct {
	ParentID string         `json:"parentId"`
	Index    *int           `json:"index"`
	Type     string         `json:"type" validate:"required,max=64"`
	Value    any            `json:"value"`
	Fields   map[string]any `json:"fields"`
	Styles   builder.Styles `json:"styles"`
}

// Open starts an editor session on a page and installs its theme stylesheet.
func (s *EditorService) Open(ctx context.Context, pageID string) (*SessionView, error) {
	page, err := s.pages.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	resolved, _, err := s.themes.ResolveForPage(ctx, page)
	if err != nil {
		return nil, err
	}

	sess := session.NewEditorSession(security.GenerateULID(), page.ID, themeIDOf(page), page.Layout, s.limits.HistoryLimit)
	sess.ReleaseStylesheet = s.themes.AcquireStylesheet(page, resolved)

	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	if err := s.sessions.Put(sess); err != nil {
		sess.Close()
		return nil, fmt.Errorf("failed to open editor on page %s: %w", pageID, err)
	}

	s.logger.Editor().Info("Editor session opened", "sessionId", sess.ID, "pageId", page.ID,
		"components", tree.Count(sess.Tree))
	return view(sess), nil
}

// Get returns the current state of a session.
func (s *EditorService) Get(sessionID string) (*SessionView, error) {
	var out *SessionView
	err := s.withSession(sessionID, func(sess *session.EditorSession) error {
		out = view(sess)
		return nil
	})
	return out, err
}

// Flat returns the session tree in flat form.
func (s *EditorService) Flat(sessionID string) (*FlatView, error) {
	var out *FlatView
	err := s.withSession(sessionID, func(sess *session.EditorSession) error {
		out = &FlatView{SessionID: sess.ID, Revision: sess.Revision, Items: tree.Flatten(sess.Tree)}
		return nil
	})
	return out, err
}

// ReplaceFlat rebuilds the session tree from an edited flat list, as sent after a drag and drop.
func (s *EditorService) ReplaceFlat(sessionID string, items []builder.FlatItem) (*SessionView, error) {
	var out *SessionView
	err := s.withSession(sessionID, func(sess *session.EditorSession) error {
		next := tree.Rebuild(items)
		for _, id := range protectedIDs(sess.Tree) {
			if tree.FindByID(next, id) == nil {
				return fmt.Errorf("flat list drops %s: %w", id, ErrProtectedComponent)
			}
		}
		if kept := tree.Count(next); kept != len(items) {
			return invalid("items", "%d of %d items have no reachable parent", len(items)-kept, len(items))
		}
		if err := s.limits.ValidateLayout(next); err != nil {
			return err
		}
		s.commit(sess, next, messaging.EventTree, "")
		out = view(sess)
		return nil
	})
	return out, err
}

// AddComponent inserts a new node and returns it with its generated id.
func (s *EditorService) AddComponent(sessionID string, req AddComponentRequest) (*builder.ComponentNode, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	node := newComponent(req)
	if err := s.limits.ValidateStyles(node.ID, node.Styles); err != nil {
		return nil, err
	}

	err := s.withSession(sessionID, func(sess *session.EditorSession) error {
		if req.ParentID != "" {
			parent := tree.FindByID(sess.Tree, req.ParentID)
			if parent == nil {
				return fmt.Errorf("parent %s: %w", req.ParentID, ErrComponentNotFound)
			}
			if _, ok := parent.ChildSlot(); !ok {
				return invalid("parentId", "component %s of type %s cannot hold children", parent.ID, parent.Type)
			}
		}

		index := -1
		if req.Index != nil {
			index = *req.Index
		}
		next, ok := tree.InsertAt(sess.Tree, req.ParentID, index, node)
		if !ok {
			return fmt.Errorf("parent %s: %w", req.ParentID, ErrComponentNotFound)
		}
		if err := s.limits.ValidateLayout(next); err != nil {
			return err
		}
		s.commit(sess, next, messaging.EventTree, node.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return node.Clone(), nil
}

// RemoveComponent deletes a node and its subtree. The page root cannot be removed.
func (s *EditorService) RemoveComponent(sessionID, componentID string) (*SessionView, error) {
	var out *SessionView
	err := s.withSession(sessionID, func(sess *session.EditorSession) error {
		node := tree.FindByID(sess.Tree, componentID)
		if node == nil {
			return fmt.Errorf("component %s: %w", componentID, ErrComponentNotFound)
		}
		if node.IsProtected() {
			return fmt.Errorf("component %s: %w", componentID, ErrProtectedComponent)
		}
		s.commit(sess, tree.RemoveByID(sess.Tree, componentID), messaging.EventTree, componentID)
		out = view(sess)
		return nil
	})
	return out, err
}

// UpdateStyles merges patch into a node's custom styles; a nil value removes the key. The edit
// is visible at once and joins the pending history entry.
func (s *EditorService) UpdateStyles(sessionID, componentID string, patch map[string]any) (*builder.ComponentNode, error) {
	var out *builder.ComponentNode
	err := s.withSession(sessionID, func(sess *session.EditorSession) error {
		node := tree.FindByID(sess.Tree, componentID)
		if node == nil {
			return fmt.Errorf("component %s: %w", componentID, ErrComponentNotFound)
		}

		merged := node.Styles.Clone()
		if merged == nil {
			merged = builder.Styles{}
		}
		for k, v := range patch {
			if v == nil {
				delete(merged, k)
				continue
			}
			merged[k] = v
		}
		if err := s.limits.ValidateStyles(componentID, merged); err != nil {
			return err
		}

		updated := *node
		updated.Styles = merged
		next, ok := tree.ReplaceByID(sess.Tree, &updated)
		if !ok {
			return fmt.Errorf("component %s: %w", componentID, ErrComponentNotFound)
		}

		sess.Tree = next
		sess.Revision++
		sess.Unsaved = true
		sess.Pending = true
		s.scheduleCommit(sess.ID)
		s.broadcast(sess, messaging.EventStyles, componentID)
		out = updated.Clone()
		return nil
	})
	return out, err
}

// Undo moves the session one history entry back. Pending style edits are committed first so
// undo reverts them as one step.
func (s *EditorService) Undo(sessionID string) (*SessionView, error) {
	return s.move(sessionID, (*tree.History).Undo)
}

// Redo moves the session one history entry forward.
func (s *EditorService) Redo(sessionID string) (*SessionView, error) {
	return s.move(sessionID, (*tree.History).Redo)
}

func (s *EditorService) move(sessionID string, step func(*tree.History) ([]*builder.ComponentNode, bool)) (*SessionView, error) {
	var out *SessionView
	err := s.withSession(sessionID, func(sess *session.EditorSession) error {
		s.flush(sess)
		if snapshot, moved := step(sess.History); moved {
			sess.Tree = snapshot
			sess.Revision++
			sess.Unsaved = true
			s.broadcast(sess, messaging.EventHistory, "")
		}
		out = view(sess)
		return nil
	})
	return out, err
}

// Save persists the session tree as the page layout.
func (s *EditorService) Save(ctx context.Context, sessionID string) (*SessionView, error) {
	var out *SessionView
	err := s.withSession(sessionID, func(sess *session.EditorSession) error {
		s.flush(sess)
		if err := s.pages.UpdateLayout(ctx, sess.PageID, sess.Tree); err != nil {
			return err
		}
		sess.Unsaved = false
		s.broadcast(sess, messaging.EventSaved, "")
		s.logger.Editor().Info("Editor session saved", "sessionId", sess.ID, "pageId", sess.PageID, "revision", sess.Revision)
		out = view(sess)
		return nil
	})
	return out, err
}

// Close ends a session, releasing its stylesheet and disconnecting its live clients. Unsaved
// edits are discarded.
func (s *EditorService) Close(sessionID string) error {
	sess, ok := s.sessions.Remove(sessionID)
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	s.finish(sess, "closed")
	return nil
}

// CloseExpired finishes a session the cleanup worker has already evicted.
func (s *EditorService) CloseExpired(sess *session.EditorSession) {
	s.finish(sess, "expired")
}

// CloseAll finishes every open session; used on shutdown.
func (s *EditorService) CloseAll() int {
	closed := 0
	for _, sess := range s.sessions.All() {
		if removed, ok := s.sessions.Remove(sess.ID); ok {
			s.finish(removed, "shutdown")
			closed++
		}
	}
	return closed
}

// Subscribe registers a live client on an open session. Registration happens under the session
// lock so a concurrent Close either rejects it or disconnects it.
func (s *EditorService) Subscribe(sessionID string) (chan messaging.EditorEvent, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	if sess.Closed() {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	return s.broadcaster.AddClient(sessionID), nil
}

// Unsubscribe removes a live client.
func (s *EditorService) Unsubscribe(sessionID string, ch chan messaging.EditorEvent) {
	s.broadcaster.RemoveClient(ch, sessionID)
}

func (s *EditorService) finish(sess *session.EditorSession, reason string) {
	sess.Mu.Lock()
	unsaved := sess.Unsaved || sess.Pending
	sess.Pending = false
	sess.Close()
	sess.Mu.Unlock()

	s.mu.Lock()
	delete(s.debouncers, sess.ID)
	s.mu.Unlock()

	s.broadcaster.CloseSession(sess.ID)
	if unsaved {
		s.logger.Editor().Warn("Editor session ended with unsaved changes", "sessionId", sess.ID, "pageId", sess.PageID, "reason", reason)
		return
	}
	s.logger.Editor().Info("Editor session ended", "sessionId", sess.ID, "pageId", sess.PageID, "reason", reason)
}

// withSession looks up, locks and touches the session, then runs fn.
func (s *EditorService) withSession(sessionID string, fn func(*session.EditorSession) error) error {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	if sess.Closed() {
		return fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	sess.Touch()
	return fn(sess)
}

// commit applies a structural edit: pending style edits become their own entry, then next is
// recorded. Callers hold sess.Mu.
func (s *EditorService) commit(sess *session.EditorSession, next []*builder.ComponentNode, event, componentID string) {
	s.flush(sess)
	sess.Tree = next
	sess.History.Push(next)
	sess.Revision++
	sess.Unsaved = true
	s.broadcast(sess, event, componentID)
}

// flush records pending style edits. Callers hold sess.Mu.
func (s *EditorService) flush(sess *session.EditorSession) {
	if !sess.Pending {
		return
	}
	sess.History.Push(sess.Tree)
	sess.Pending = false
}

func (s *EditorService) scheduleCommit(sessionID string) {
	s.mu.Lock()
	debounced, ok := s.debouncers[sessionID]
	if !ok {
		debounced = debounce.New(s.delay)
		s.debouncers[sessionID] = debounced
	}
	s.mu.Unlock()

	debounced(func() { s.commitPending(sessionID) })
}

// commitPending runs on the debounce timer. Commands that flushed in the meantime leave nothing
// to do.
func (s *EditorService) commitPending(sessionID string) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	if sess.Closed() || !sess.Pending {
		return
	}
	s.flush(sess)
	s.broadcast(sess, messaging.EventHistory, "")
	s.logger.Editor().Debug("Style edits committed to history", "sessionId", sess.ID, "historyIndex", sess.History.Index())
}

func (s *EditorService) broadcast(sess *session.EditorSession, event, componentID string) {
	s.broadcaster.Broadcast(sess.ID, messaging.EditorEvent{
		Type:        event,
		Revision:    sess.Revision,
		ComponentID: componentID,
		CanUndo:     sess.History.CanUndo() || sess.Pending,
		CanRedo:     sess.History.CanRedo() && !sess.Pending,
	})
}

func themeIDOf(page *builder.Page) string {
	if page.ThemeID == nil {
		return ""
	}
	return *page.ThemeID
}

func protectedIDs(nodes []*builder.ComponentNode) []string {
	var ids []string
	tree.Walk(nodes, func(v tree.Visit) bool {
		if v.Node.IsProtected() {
			ids = append(ids, v.Node.ID)
		}
		return true
	})
	return ids
}

func view(sess *session.EditorSession) *SessionView {
	return &SessionView{
		SessionID:    sess.ID,
		PageID:       sess.PageID,
		ThemeID:      sess.ThemeID,
		Revision:     sess.Revision,
		Layout:       builder.CloneTree(sess.Tree),
		CanUndo:      sess.History.CanUndo() || sess.Pending,
		CanRedo:      sess.History.CanRedo() && !sess.Pending,
		HistoryIndex: sess.History.Index(),
		HistoryLen:   sess.History.Len(),
		Unsaved:      sess.Unsaved,
	}
}

func newComponent(req AddComponentRequest) *builder.ComponentNode {
	t := builder.ComponentType(req.Type)
	node := &builder.ComponentNode{
		ID:     security.GenerateComponentID(req.Type),
		Type:   t,
		Styles: req.Styles.Clone(),
	}
	switch builder.KindOf(t) {
	case builder.KindContainer:
		node.Content.Children = []*builder.ComponentNode{}
	case builder.KindComposite:
		node.Content.Fields = map[string]any{}
		for k, v := range req.Fields {
			if k != "children" {
				node.Content.Fields[k] = v
			}
		}
		node.Content.Children = []*builder.ComponentNode{}
	default:
		node.Content.Value = req.Value
	}
	return node
}
