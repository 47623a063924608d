// Package stores provides concrete cache store implementations
package stores

import (
	"sort"
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// ContentStore caches pages and themes. Values are copied on the way in and out so callers
// never share layout trees with the cache.
type ContentStore struct {
	cache  *types.ContentCache
	logger *logging.ChanneledLogger
}

// NewContentStore creates a new content cache store
func NewContentStore(logger *logging.ChanneledLogger) *ContentStore {
	return &ContentStore{
		cache:  types.NewContentCache(),
		logger: logger,
	}
}

// =============================================================================
// Page Operations
// =============================================================================

// GetPage returns a copy of the cached page.
func (cs *ContentStore) GetPage(id string) (*builder.Page, bool) {
	start := time.Now()
	cs.cache.Mu.RLock()
	entry, found := cs.cache.Pages[id]
	cs.cache.Mu.RUnlock()

	cs.logOperation("get_page", id, found, start)
	if !found {
		return nil, false
	}
	return entry.Page.Clone(), true
}

// SetPage caches a copy of the page and indexes its slug.
func (cs *ContentStore) SetPage(page *builder.Page) {
	if page == nil {
		return
	}
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()

	if previous, ok := cs.cache.Pages[page.ID]; ok && previous.Page.Slug != page.Slug {
		delete(cs.cache.SlugToID, previous.Page.Slug)
	}
	cs.cache.Pages[page.ID] = &types.PageEntry{Page: page.Clone(), CachedAt: time.Now().UTC()}
	if page.Slug != "" {
		cs.cache.SlugToID[page.Slug] = page.ID
	}
	if cs.cache.AllPageIDs != nil && !containsID(cs.cache.AllPageIDs, page.ID) {
		cs.cache.AllPageIDs = append(cs.cache.AllPageIDs, page.ID)
	}
	cs.cache.LastUpdated = time.Now().UTC()
}

// GetPageIDBySlug resolves a slug through the cached index.
func (cs *ContentStore) GetPageIDBySlug(slug string) (string, bool) {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	id, ok := cs.cache.SlugToID[slug]
	return id, ok
}

// GetAllPageIDs returns the cached master id list.
func (cs *ContentStore) GetAllPageIDs() ([]string, bool) {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	if cs.cache.AllPageIDs == nil {
		return nil, false
	}
	return append([]string{}, cs.cache.AllPageIDs...), true
}

// SetAllPageIDs stores the master id list.
func (cs *ContentStore) SetAllPageIDs(ids []string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.AllPageIDs = append([]string{}, ids...)
}

// InvalidatePage drops a page and its slug index entry.
func (cs *ContentStore) InvalidatePage(id string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	if entry, ok := cs.cache.Pages[id]; ok {
		delete(cs.cache.SlugToID, entry.Page.Slug)
		delete(cs.cache.Pages, id)
	}
	cs.cache.AllPageIDs = nil
}

// =============================================================================
// Theme Operations
// =============================================================================

// GetTheme returns a copy of the cached theme.
func (cs *ContentStore) GetTheme(id string) (*builder.AppliedTheme, bool) {
	start := time.Now()
	cs.cache.Mu.RLock()
	entry, found := cs.cache.Themes[id]
	cs.cache.Mu.RUnlock()

	cs.logOperation("get_theme", id, found, start)
	if !found {
		return nil, false
	}
	return entry.Theme.Clone(), true
}

// SetTheme caches a copy of the theme.
func (cs *ContentStore) SetTheme(theme *builder.AppliedTheme) {
	if theme == nil {
		return
	}
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.Themes[theme.ID] = &types.ThemeEntry{Theme: theme.Clone(), CachedAt: time.Now().UTC()}
	cs.cache.LastUpdated = time.Now().UTC()
}

// InvalidateTheme drops a theme.
func (cs *ContentStore) InvalidateTheme(id string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	delete(cs.cache.Themes, id)
}

// =============================================================================
// Maintenance
// =============================================================================

// PurgeExpired evicts entries older than ttl and returns how many were removed.
func (cs *ContentStore) PurgeExpired(ttl time.Duration) int {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()

	removed := 0
	for id, entry := range cs.cache.Pages {
		if time.Since(entry.CachedAt) > ttl {
			delete(cs.cache.SlugToID, entry.Page.Slug)
			delete(cs.cache.Pages, id)
			removed++
		}
	}
	for id, entry := range cs.cache.Themes {
		if time.Since(entry.CachedAt) > ttl {
			delete(cs.cache.Themes, id)
			removed++
		}
	}
	if removed > 0 {
		cs.cache.AllPageIDs = nil
	}
	return removed
}

// Counts returns the number of cached pages and themes.
func (cs *ContentStore) Counts() (pages, themes int) {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	return len(cs.cache.Pages), len(cs.cache.Themes)
}

// PageIDs lists cached page ids, sorted.
func (cs *ContentStore) PageIDs() []string {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	ids := make([]string, 0, len(cs.cache.Pages))
	for id := range cs.cache.Pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (cs *ContentStore) logOperation(operation, key string, hit bool, start time.Time) {
	if cs.logger != nil {
		cs.logger.LogCacheOperation(operation, key, hit, time.Since(start))
	}
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
