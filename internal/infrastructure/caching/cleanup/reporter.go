package cleanup

import (
	"fmt"
	"strings"
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/manager"
)

// Reporter renders a one-line summary of the cache stores.
type Reporter struct {
	cache *manager.Manager
}

func NewReporter(cache *manager.Manager) *Reporter {
	return &Reporter{cache: cache}
}

// Report lists store sizes and the live stylesheet scopes.
func (r *Reporter) Report() string {
	stats := r.cache.Stats()
	var report strings.Builder
	report.WriteString(time.Now().UTC().Format("2006-01-02 15:04:05 MST"))

	items := []struct {
		name  string
		count int
	}{
		{"pages", stats.Pages},
		{"themes", stats.Themes},
		{"sessions", stats.EditorSessions},
		{"stylesheets", stats.Stylesheets},
		{"refs", stats.StylesheetRefs},
	}
	for _, item := range items {
		if item.count > 0 {
			report.WriteString(fmt.Sprintf(" %s:%d", item.name, item.count))
		} else {
			report.WriteString(fmt.Sprintf(" %s:--", item.name))
		}
	}

	if scopes := r.cache.Stylesheets.Scopes(); len(scopes) > 0 {
		report.WriteString(" scopes:" + strings.Join(scopes, ","))
	}
	return report.String()
}
