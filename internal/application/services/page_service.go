package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/repositories"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/styles"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/tree"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/persistence/content"
)

// PageService loads pages and renders their composed styles.
type PageService struct {
	pageRepo repositories.PageRepository
	themes   *ThemeService
	limits   Limits
	logger   *logging.ChanneledLogger
}

// NewPageService creates a new page service
func NewPageService(pageRepo repositories.PageRepository, themes *ThemeService, limits Limits, logger *logging.ChanneledLogger) *PageService {
	return &PageService{
		pageRepo: pageRepo,
		themes:   themes,
		limits:   limits,
		logger:   logger,
	}
}

// GetByID returns a page (cache-first).
func (s *PageService) GetByID(ctx context.Context, id string) (*builder.Page, error) {
	if id == "" {
		return nil, invalid("id", "page id cannot be empty")
	}
	page, err := s.pageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get page %s: %w", id, err)
	}
	if page == nil {
		return nil, fmt.Errorf("page %s: %w", id, ErrPageNotFound)
	}
	return page, nil
}

// GetBySlug returns a page by its slug.
func (s *PageService) GetBySlug(ctx context.Context, slug string) (*builder.Page, error) {
	page, err := s.pageRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get page by slug %s: %w", slug, err)
	}
	if page == nil {
		return nil, fmt.Errorf("page slug %s: %w", slug, ErrPageNotFound)
	}
	return page, nil
}

// GetAll lists every page.
func (s *PageService) GetAll(ctx context.Context) ([]*builder.Page, error) {
	pages, err := s.pageRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// UpdateLayout validates and persists a new layout.
func (s *PageService) UpdateLayout(ctx context.Context, id string, layout []*builder.ComponentNode) error {
	if err := s.limits.ValidateLayout(layout); err != nil {
		return err
	}
	if err := s.pageRepo.UpdateLayout(ctx, id, layout); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return fmt.Errorf("page %s: %w", id, ErrPageNotFound)
		}
		return fmt.Errorf("failed to update layout of page %s: %w", id, err)
	}
	s.logger.Builder().Info("Page layout updated", "pageId", id, "components", tree.Count(layout))
	return nil
}

// PageStyles is the composed style of every node of a page keyed by component id.
type PageStyles struct {
	PageID string                `json:"pageId"`
	Styles map[string]styles.CSS `json:"styles"`
}

// ComposeStyles resolves the page's theme and composes every node of its layout.
func (s *PageService) ComposeStyles(ctx context.Context, id string) (*PageStyles, error) {
	page, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resolved, applied, err := s.themes.ResolveForPage(ctx, page)
	if err != nil {
		return nil, err
	}
	return &PageStyles{
		PageID: page.ID,
		Styles: styles.ComposeTree(page.Layout, resolved, applied),
	}, nil
}

// ThemeCSS renders the page's resolved theme as a stylesheet.
func (s *PageService) ThemeCSS(ctx context.Context, id string) (string, error) {
	page, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	resolved, _, err := s.themes.ResolveForPage(ctx, page)
	if err != nil {
		return "", err
	}
	return s.themes.Stylesheet(resolved), nil
}
