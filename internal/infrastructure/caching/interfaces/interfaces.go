// Package interfaces defines cache operation contracts for pages, themes, stylesheets and
// editor sessions.
package interfaces

import (
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/session"
)

// ContentCache defines operations for page and theme caching
type ContentCache interface {
	GetPage(id string) (*builder.Page, bool)
	SetPage(page *builder.Page)
	GetPageIDBySlug(slug string) (string, bool)
	GetAllPageIDs() ([]string, bool)
	SetAllPageIDs(ids []string)
	InvalidatePage(id string)
	GetTheme(id string) (*builder.AppliedTheme, bool)
	SetTheme(theme *builder.AppliedTheme)
	InvalidateTheme(id string)
	PurgeExpired(ttl time.Duration) int
}

// StylesheetCache owns the theme stylesheets shared by rendered pages and editor sessions.
type StylesheetCache interface {
	// Acquire installs css under scope (replacing any previous text) and returns the release
	// function for this reference. Release is idempotent.
	Acquire(scope, css string) func()
	Get(scope string) (string, bool)
	Refs(scope string) int
}

// EditorSessionCache tracks open editor sessions.
type EditorSessionCache interface {
	Get(id string) (*session.EditorSession, bool)
	Put(s *session.EditorSession) error
	Remove(id string) (*session.EditorSession, bool)
	Expired(ttl time.Duration) []*session.EditorSession
	Count() int
}
