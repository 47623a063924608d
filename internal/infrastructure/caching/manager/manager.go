// Package manager groups the cache stores behind one handle for the container and the
// cleanup worker.
package manager

import (
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/stores"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// Interface assertions to ensure the stores implement the cache contracts.
var (
	_ interfaces.ContentCache       = (*stores.ContentStore)(nil)
	_ interfaces.StylesheetCache    = (*stores.StylesheetStore)(nil)
	_ interfaces.EditorSessionCache = (*stores.SessionsStore)(nil)
)

// Manager owns the cache stores.
type Manager struct {
	Content     *stores.ContentStore
	Stylesheets *stores.StylesheetStore
	Sessions    *stores.SessionsStore
	logger      *logging.ChanneledLogger
}

// NewManager creates the stores. maxSessions caps concurrent editor sessions.
func NewManager(maxSessions int, logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.Cache().Info("Initializing cache manager", "stores", []string{"content", "stylesheets", "sessions"})
	}
	return &Manager{
		Content:     stores.NewContentStore(logger),
		Stylesheets: stores.NewStylesheetStore(logger),
		Sessions:    stores.NewSessionsStore(maxSessions, logger),
		logger:      logger,
	}
}

// Stats summarizes all stores.
func (m *Manager) Stats() types.CacheStats {
	pages, themes := m.Content.Counts()
	sheets, refs := m.Stylesheets.Counts()
	return types.CacheStats{
		Pages:          pages,
		Themes:         themes,
		EditorSessions: m.Sessions.Count(),
		Stylesheets:    sheets,
		StylesheetRefs: refs,
	}
}
