package stores

import (
	"sort"
	"sync"
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// StylesheetStore keeps one stylesheet per scope (usually a theme id) for as long as someone
// holds a reference to it. The last release removes the sheet.
type StylesheetStore struct {
	sheets map[string]*types.Stylesheet
	mu     sync.RWMutex
	logger *logging.ChanneledLogger
}

// NewStylesheetStore creates an empty store.
func NewStylesheetStore(logger *logging.ChanneledLogger) *StylesheetStore {
	return &StylesheetStore{
		sheets: make(map[string]*types.Stylesheet),
		logger: logger,
	}
}

// Acquire installs css for scope, replacing older text, and adds one reference. The returned
// function drops that reference; calling it again does nothing.
func (s *StylesheetStore) Acquire(scope, css string) func() {
	s.mu.Lock()
	sheet, ok := s.sheets[scope]
	if !ok {
		sheet = &types.Stylesheet{Scope: scope}
		s.sheets[scope] = sheet
	}
	replaced := ok && sheet.CSS != css
	sheet.CSS = css
	sheet.Refs++
	sheet.Acquired = time.Now().UTC()
	refs := sheet.Refs
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Theme().Debug("Stylesheet acquired", "scope", scope, "refs", refs, "replaced", replaced)
	}

	var once sync.Once
	return func() {
		once.Do(func() { s.release(scope) })
	}
}

func (s *StylesheetStore) release(scope string) {
	s.mu.Lock()
	sheet, ok := s.sheets[scope]
	if !ok {
		s.mu.Unlock()
		return
	}
	sheet.Refs--
	refs := sheet.Refs
	if refs <= 0 {
		delete(s.sheets, scope)
	}
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Theme().Debug("Stylesheet released", "scope", scope, "refs", refs)
	}
}

// Replace swaps the css of a live scope without changing its references. It reports false when
// nobody holds the scope.
func (s *StylesheetStore) Replace(scope, css string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sheet, ok := s.sheets[scope]
	if !ok {
		return false
	}
	sheet.CSS = css
	return true
}

// Get returns the current stylesheet text for scope.
func (s *StylesheetStore) Get(scope string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sheet, ok := s.sheets[scope]
	if !ok {
		return "", false
	}
	return sheet.CSS, true
}

// Refs returns the live reference count for scope.
func (s *StylesheetStore) Refs(scope string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sheet, ok := s.sheets[scope]; ok {
		return sheet.Refs
	}
	return 0
}

// Scopes lists live scopes, sorted.
func (s *StylesheetStore) Scopes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scopes := make([]string, 0, len(s.sheets))
	for scope := range s.sheets {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	return scopes
}

// Counts returns the number of sheets and total references.
func (s *StylesheetStore) Counts() (sheets, refs int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sheet := range s.sheets {
		refs += sheet.Refs
	}
	return len(s.sheets), refs
}
