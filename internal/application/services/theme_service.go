// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"context"
	"fmt"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/repositories"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/styles"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/theme"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// StylesheetRegistry is the part of the stylesheet store the services use.
type StylesheetRegistry interface {
	Acquire(scope, css string) func()
	Replace(scope, css string) bool
	Get(scope string) (string, bool)
}

// ThemeService loads theme records and resolves them against page overrides.
type ThemeService struct {
	themeRepo   repositories.ThemeRepository
	stylesheets StylesheetRegistry
	logger      *logging.ChanneledLogger
}

// NewThemeService creates a new theme application service
func NewThemeService(themeRepo repositories.ThemeRepository, stylesheets StylesheetRegistry, logger *logging.ChanneledLogger) *ThemeService {
	return &ThemeService{
		themeRepo:   themeRepo,
		stylesheets: stylesheets,
		logger:      logger,
	}
}

// GetByID returns a theme record (cache-first).
func (s *ThemeService) GetByID(ctx context.Context, id string) (*builder.AppliedTheme, error) {
	if id == "" {
		return nil, invalid("id", "theme id cannot be empty")
	}
	t, err := s.themeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get theme %s: %w", id, err)
	}
	if t == nil {
		return nil, fmt.Errorf("theme %s: %w", id, ErrThemeNotFound)
	}
	return t, nil
}

// Save stores the theme and refreshes the stylesheet of any page or editor currently
// holding it.
func (s *ThemeService) Save(ctx context.Context, t *builder.AppliedTheme) error {
	if t == nil || t.ID == "" {
		return invalid("id", "theme id cannot be empty")
	}
	if t.Name == "" {
		t.Name = t.ID
	}
	if t.Settings == nil {
		t.Settings = map[string]any{}
	}
	if err := s.themeRepo.Store(ctx, t); err != nil {
		return fmt.Errorf("failed to save theme %s: %w", t.ID, err)
	}

	css := styles.ThemeStylesheet(theme.ResolveTheme(nil, t))
	if s.stylesheets.Replace(themeScope(t.ID), css) {
		s.logger.Theme().Info("Live stylesheet refreshed", "themeId", t.ID)
	}
	return nil
}

// ResolveForPage merges the defaults, the page's theme record and the page's own settings.
// A page whose theme record is missing renders with defaults plus its own settings.
func (s *ThemeService) ResolveForPage(ctx context.Context, page *builder.Page) (*theme.Resolved, *builder.AppliedTheme, error) {
	var applied *builder.AppliedTheme
	if page.ThemeID != nil && *page.ThemeID != "" {
		t, err := s.themeRepo.FindByID(ctx, *page.ThemeID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load theme %s: %w", *page.ThemeID, err)
		}
		if t == nil {
			s.logger.Theme().Warn("Page references a missing theme", "pageId", page.ID, "themeId", *page.ThemeID)
		}
		applied = t
	}
	return theme.ResolveTheme(page.ThemeSettings, applied), applied, nil
}

// Stylesheet renders the CSS variables and text-style classes for a resolved theme.
func (s *ThemeService) Stylesheet(resolved *theme.Resolved) string {
	return styles.ThemeStylesheet(resolved)
}

// AcquireStylesheet installs the page's theme stylesheet and returns its release function.
func (s *ThemeService) AcquireStylesheet(page *builder.Page, resolved *theme.Resolved) func() {
	return s.stylesheets.Acquire(StylesheetScope(page), styles.ThemeStylesheet(resolved))
}

// StylesheetScope names the stylesheet slot of a page. Pages that only use their theme record
// share the theme's slot; pages with their own settings or no theme get a private one.
func StylesheetScope(page *builder.Page) string {
	if page.ThemeID == nil || *page.ThemeID == "" || len(page.ThemeSettings) > 0 {
		return "page:" + page.ID
	}
	return themeScope(*page.ThemeID)
}

func themeScope(themeID string) string {
	return "theme:" + themeID
}
