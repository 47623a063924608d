package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/persistence/database"
)

type ThemeRepository struct {
	db     *database.DB
	cache  interfaces.ContentCache
	logger *logging.ChanneledLogger
}

func NewThemeRepository(db *database.DB, cache interfaces.ContentCache, logger *logging.ChanneledLogger) *ThemeRepository {
	return &ThemeRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// FindByID returns the theme, cache first; (nil, nil) when it does not exist.
func (r *ThemeRepository) FindByID(ctx context.Context, id string) (*builder.AppliedTheme, error) {
	if theme, found := r.cache.GetTheme(id); found {
		return theme, nil
	}

	start := time.Now()
	var (
		theme    builder.AppliedTheme
		settings sql.NullString
		changed  sql.NullString
	)
	err := r.db.TimedQueryRow(ctx, `SELECT id, name, settings, changed FROM themes WHERE id = ?`, id).
		Scan(&theme.ID, &theme.Name, &settings, &changed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to load theme", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan theme: %w", err)
	}

	theme.Settings = decodeSettings(r.logger, theme.ID, settings)
	if theme.Settings == nil {
		theme.Settings = map[string]any{}
	}
	theme.Changed = database.ParseTimestamp(changed)

	r.logger.Database().Info("Theme loaded from database", "id", id, "duration", time.Since(start))
	r.cache.SetTheme(&theme)
	return &theme, nil
}

// Store inserts or replaces a theme.
func (r *ThemeRepository) Store(ctx context.Context, theme *builder.AppliedTheme) error {
	settings, err := encodeSettings(theme.Settings)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	theme.Changed = &now

	query := `INSERT INTO themes (id, name, settings, changed) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, settings = excluded.settings, changed = excluded.changed`
	if _, err := r.db.TimedExec(ctx, query, theme.ID, theme.Name, settings, now); err != nil {
		r.logger.Database().Error("Theme upsert failed", "error", err.Error(), "id", theme.ID)
		return fmt.Errorf("failed to store theme: %w", err)
	}

	r.logger.Database().Info("Theme stored", "id", theme.ID)
	r.cache.InvalidateTheme(theme.ID)
	r.cache.SetTheme(theme)
	return nil
}
