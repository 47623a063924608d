// Package content provides the page and theme repositories
package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/persistence/database"
)

// ErrNotFound is returned by writes that target a missing row.
var ErrNotFound = errors.New("record not found")

type PageRepository struct {
	db     *database.DB
	cache  interfaces.ContentCache
	logger *logging.ChanneledLogger
}

func NewPageRepository(db *database.DB, cache interfaces.ContentCache, logger *logging.ChanneledLogger) *PageRepository {
	return &PageRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

const pageColumns = `id, title, slug, layout, theme_id, theme_settings, created, changed`

// FindByID returns the page, cache first.
func (r *PageRepository) FindByID(ctx context.Context, id string) (*builder.Page, error) {
	if page, found := r.cache.GetPage(id); found {
		return page, nil
	}

	page, err := r.loadOne(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)
	if err != nil || page == nil {
		return nil, err
	}

	r.cache.SetPage(page)
	return page, nil
}

// FindBySlug resolves the slug through the cache index before querying.
func (r *PageRepository) FindBySlug(ctx context.Context, slug string) (*builder.Page, error) {
	if id, found := r.cache.GetPageIDBySlug(slug); found {
		return r.FindByID(ctx, id)
	}

	page, err := r.loadOne(ctx, `SELECT `+pageColumns+` FROM pages WHERE slug = ?`, slug)
	if err != nil || page == nil {
		return nil, err
	}

	r.cache.SetPage(page)
	return page, nil
}

// FindAll lists pages ordered by title.
func (r *PageRepository) FindAll(ctx context.Context) ([]*builder.Page, error) {
	if ids, found := r.cache.GetAllPageIDs(); found {
		pages := make([]*builder.Page, 0, len(ids))
		for _, id := range ids {
			page, err := r.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if page != nil {
				pages = append(pages, page)
			}
		}
		return pages, nil
	}

	query := `SELECT ` + pageColumns + ` FROM pages ORDER BY title`
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Database().Error("Failed to query pages", "error", err.Error())
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var pages []*builder.Page
	var ids []string
	for rows.Next() {
		page, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		r.cache.SetPage(page)
		pages = append(pages, page)
		ids = append(ids, page.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pages: %w", err)
	}

	r.cache.SetAllPageIDs(ids)
	r.logger.Database().Info("Loaded pages from database", "count", len(pages), "duration", time.Since(start))
	database.CheckAndLogSlowQuery(r.logger, query, time.Since(start))
	return pages, nil
}

// Store inserts or replaces a page.
func (r *PageRepository) Store(ctx context.Context, page *builder.Page) error {
	layout, err := builder.EncodeLayout(page.Layout)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	settings, err := encodeSettings(page.ThemeSettings)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if page.Created.IsZero() {
		page.Created = now
	}
	page.Changed = &now

	query := `INSERT INTO pages (` + pageColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, slug = excluded.slug, layout = excluded.layout,
		theme_id = excluded.theme_id, theme_settings = excluded.theme_settings, changed = excluded.changed`

	start := time.Now()
	r.logger.Database().Debug("Executing page upsert", "id", page.ID)
	if _, err := r.db.TimedExec(ctx, query, page.ID, page.Title, page.Slug, layout, nullable(page.ThemeID), settings, page.Created, now); err != nil {
		r.logger.Database().Error("Page upsert failed", "error", err.Error(), "id", page.ID)
		return fmt.Errorf("failed to store page: %w", err)
	}
	r.logger.Database().Info("Page upsert completed", "id", page.ID, "duration", time.Since(start))

	r.cache.InvalidatePage(page.ID)
	r.cache.SetPage(page)
	return nil
}

// UpdateLayout persists a new layout for an existing page.
func (r *PageRepository) UpdateLayout(ctx context.Context, id string, layout []*builder.ComponentNode) error {
	encoded, err := builder.EncodeLayout(layout)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}

	query := `UPDATE pages SET layout = ?, changed = ? WHERE id = ?`
	start := time.Now()
	res, err := r.db.TimedExec(ctx, query, encoded, time.Now().UTC(), id)
	if err != nil {
		r.logger.Database().Error("Layout update failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to update layout: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	r.logger.Database().Info("Layout update completed", "id", id, "bytes", len(encoded), "duration", time.Since(start))

	r.cache.InvalidatePage(id)
	return nil
}

// Delete removes a page.
func (r *PageRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.TimedExec(ctx, `DELETE FROM pages WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Page delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete page: %w", err)
	}
	r.cache.InvalidatePage(id)
	return nil
}

func (r *PageRepository) loadOne(ctx context.Context, query string, arg string) (*builder.Page, error) {
	start := time.Now()
	r.logger.Database().Debug("Loading page from database", "key", arg)

	page, err := r.scan(r.db.TimedQueryRow(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to load page", "error", err.Error(), "key", arg)
		return nil, err
	}

	r.logger.Database().Info("Page loaded from database", "id", page.ID, "duration", time.Since(start))
	return page, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *PageRepository) scan(row scanner) (*builder.Page, error) {
	var (
		page          builder.Page
		layout        string
		themeID       sql.NullString
		themeSettings sql.NullString
		created       sql.NullString
		changed       sql.NullString
	)
	if err := row.Scan(&page.ID, &page.Title, &page.Slug, &layout, &themeID, &themeSettings, &created, &changed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan page: %w", err)
	}

	nodes, err := builder.ParseLayout(layout)
	if err != nil {
		// A corrupt layout renders as an empty page instead of failing the request.
		r.logger.Builder().Warn("Stored layout is not valid JSON", "id", page.ID, "error", err.Error())
		nodes = []*builder.ComponentNode{}
	}
	page.Layout = nodes

	if themeID.Valid && themeID.String != "" {
		id := themeID.String
		page.ThemeID = &id
	}
	page.ThemeSettings = decodeSettings(r.logger, page.ID, themeSettings)
	if t := database.ParseTimestamp(created); t != nil {
		page.Created = *t
	}
	page.Changed = database.ParseTimestamp(changed)
	return &page, nil
}

func encodeSettings(settings map[string]any) (string, error) {
	if settings == nil {
		return "{}", nil
	}
	b, err := json.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("failed to encode theme settings: %w", err)
	}
	return string(b), nil
}

func decodeSettings(logger *logging.ChanneledLogger, owner string, raw sql.NullString) map[string]any {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var settings map[string]any
	if err := json.Unmarshal([]byte(raw.String), &settings); err != nil {
		logger.Theme().Warn("Stored theme settings are not valid JSON", "owner", owner, "error", err.Error())
		return nil
	}
	return settings
}

func nullable(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
