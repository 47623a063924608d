// Package types defines the data structures held by the cache stores.
package types

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
)

// PageEntry is a cached page and the time it was loaded.
type PageEntry struct {
	Page     *builder.Page
	CachedAt time.Time
}

// ThemeEntry is a cached theme record.
type ThemeEntry struct {
	Theme    *builder.AppliedTheme
	CachedAt time.Time
}

// ContentCache holds pages and themes loaded from the database.
type ContentCache struct {
	Pages      map[string]*PageEntry
	Themes     map[string]*ThemeEntry
	SlugToID   map[string]string
	AllPageIDs []string

	LastUpdated time.Time
	Mu          sync.RWMutex
}

// NewContentCache returns an empty cache.
func NewContentCache() *ContentCache {
	return &ContentCache{
		Pages:       make(map[string]*PageEntry),
		Themes:      make(map[string]*ThemeEntry),
		SlugToID:    make(map[string]string),
		LastUpdated: time.Now().UTC(),
	}
}

// Stylesheet is a shared theme stylesheet with its reference count.
type Stylesheet struct {
	Scope    string
	CSS      string
	Refs     int
	Acquired time.Time
}

// CacheStats summarizes the stores for health reports and cleanup logs.
type CacheStats struct {
	Pages          int `json:"pages"`
	Themes         int `json:"themes"`
	EditorSessions int `json:"editorSessions"`
	Stylesheets    int `json:"stylesheets"`
	StylesheetRefs int `json:"stylesheetRefs"`
}
