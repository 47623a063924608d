// Package repositories defines the repository interfaces for pages and themes.
// These repositories abstract the data persistence details, ensuring the core
// application is clean and decoupled from the database.
package repositories

import (
	"context"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
)

// PageRepository loads and stores pages with their layouts. Find methods return (nil, nil)
// when the page does not exist.
type PageRepository interface {
	FindByID(ctx context.Context, id string) (*builder.Page, error)
	FindBySlug(ctx context.Context, slug string) (*builder.Page, error)
	FindAll(ctx context.Context) ([]*builder.Page, error)
	Store(ctx context.Context, page *builder.Page) error
	UpdateLayout(ctx context.Context, id string, layout []*builder.ComponentNode) error
	Delete(ctx context.Context, id string) error
}

// ThemeRepository loads and stores theme records.
type ThemeRepository interface {
	FindByID(ctx context.Context, id string) (*builder.AppliedTheme, error)
	Store(ctx context.Context, theme *builder.AppliedTheme) error
}
