package services

import (
	"context"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/styles"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/theme"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/tree"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// BuilderService exposes the stateless tree and style operations.
type BuilderService struct {
	themes *ThemeService
	limits Limits
	logger *logging.ChanneledLogger
}

// NewBuilderService creates a new builder service
func NewBuilderService(themes *ThemeService, limits Limits, logger *logging.ChanneledLogger) *BuilderService {
	return &BuilderService{
		themes: themes,
		limits: limits,
		logger: logger,
	}
}

// Flatten converts a nested layout to the editor's flat list.
func (s *BuilderService) Flatten(layout []*builder.ComponentNode) ([]builder.FlatItem, error) {
	if err := s.limits.ValidateLayout(layout); err != nil {
		return nil, err
	}
	return tree.Flatten(layout), nil
}

// Rebuild converts a flat list back to a nested layout.
func (s *BuilderService) Rebuild(items []builder.FlatItem) []*builder.ComponentNode {
	nodes := tree.Rebuild(items)
	if dropped := len(items) - tree.Count(nodes); dropped > 0 {
		s.logger.Builder().Warn("Rebuild dropped unreachable items", "items", len(items), "dropped", dropped)
	}
	return nodes
}

// ComposeRequest carries a layout and the theme to compose it against.
type ComposeRequest struct {
	Layout        []*builder.ComponentNode `json:"layout"`
	ThemeID       string                   `json:"themeId,omitempty"`
	ThemeSettings map[string]any           `json:"themeSettings,omitempty"`
}

// ComposeResult is the composed style of every node plus the resolved theme stylesheet.
type ComposeResult struct {
	Styles     map[string]styles.CSS `json:"styles"`
	Stylesheet string                `json:"stylesheet"`
}

// Compose resolves the requested theme and composes every node of the layout.
func (s *BuilderService) Compose(ctx context.Context, req ComposeRequest) (*ComposeResult, error) {
	if err := s.limits.ValidateLayout(req.Layout); err != nil {
		return nil, err
	}

	var applied *builder.AppliedTheme
	if req.ThemeID != "" {
		t, err := s.themes.GetByID(ctx, req.ThemeID)
		if err != nil {
			return nil, err
		}
		applied = t
	}

	resolved := theme.ResolveTheme(req.ThemeSettings, applied)
	return &ComposeResult{
		Styles:     styles.ComposeTree(req.Layout, resolved, applied),
		Stylesheet: styles.ThemeStylesheet(resolved),
	}, nil
}
