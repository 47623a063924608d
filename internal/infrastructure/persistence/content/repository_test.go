package content

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/stores"
	schema "github.com/AtRiskMedia/storefront-builder/internal/infrastructure/database"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/persistence/database"
)

type fixture struct {
	pages  *PageRepository
	themes *ThemeRepository
	cache  *stores.ContentStore
	db     *database.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToConsole = false
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := database.NewConnectionWithLogger(database.DriverSQLite, dsn, database.PoolConfig{MaxOpenConns: 1}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	creator := schema.NewTableCreator()
	require.NoError(t, creator.CreateSchema(ctx, db.DB))
	require.NoError(t, creator.SeedInitialContent(ctx, db.DB))

	cache := stores.NewContentStore(logger)
	return &fixture{
		pages:  NewPageRepository(db, cache, logger),
		themes: NewThemeRepository(db, cache, logger),
		cache:  cache,
		db:     db,
	}
}

func TestSeededContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	page, err := f.pages.FindByID(ctx, schema.HomePageID)
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, "home", page.Slug)
	require.Len(t, page.Layout, 1)
	assert.True(t, page.Layout[0].IsProtected())
	require.NotNil(t, page.ThemeID)
	assert.Equal(t, schema.DefaultThemeID, *page.ThemeID)
	assert.False(t, page.Created.IsZero())

	theme, err := f.themes.FindByID(ctx, schema.DefaultThemeID)
	require.NoError(t, err)
	require.NotNil(t, theme)
	assert.Empty(t, theme.Settings)

	require.NoError(t, schema.NewTableCreator().SeedInitialContent(ctx, f.db.DB), "seeding is idempotent")
}

func TestMissingRowsReturnNil(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	page, err := f.pages.FindByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, page)

	theme, err := f.themes.FindByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, theme)

	err = f.pages.UpdateLayout(ctx, "nope", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreAndUpdateLayout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	layout, err := builder.ParseLayout(`[{"id":"pageContent","type":"pageContent","content":[
		{"id":"t","type":"title","content":"Sale","styles":{"color":"theme.primary"}}
	]}]`)
	require.NoError(t, err)
	themeID := schema.DefaultThemeID
	page := &builder.Page{ID: "sale", Title: "Sale", Slug: "sale", Layout: layout, ThemeID: &themeID, ThemeSettings: map[string]any{"primary": "#ff0000"}}
	require.NoError(t, f.pages.Store(ctx, page))

	f.cache.InvalidatePage("sale")
	loaded, err := f.pages.FindBySlug(ctx, "sale")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, layout, loaded.Layout)
	assert.Equal(t, "#ff0000", loaded.ThemeSettings["primary"])
	assert.NotNil(t, loaded.Changed)

	require.NoError(t, f.pages.UpdateLayout(ctx, "sale", layout[:0]))
	loaded, err = f.pages.FindByID(ctx, "sale")
	require.NoError(t, err)
	assert.Empty(t, loaded.Layout)

	all, err := f.pages.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	again, err := f.pages.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 2)

	require.NoError(t, f.pages.Delete(ctx, "sale"))
	gone, err := f.pages.FindByID(ctx, "sale")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCorruptLayoutDegradesToEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.db.ExecContext(ctx, `UPDATE pages SET layout = '{not json' WHERE id = ?`, schema.HomePageID)
	require.NoError(t, err)
	f.cache.InvalidatePage(schema.HomePageID)

	page, err := f.pages.FindByID(ctx, schema.HomePageID)
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Empty(t, page.Layout)
}

func TestThemeStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	theme := &builder.AppliedTheme{ID: "brand", Name: "Brand", Settings: map[string]any{"primary": "210 40% 50%", "heading_font": "Lora"}}
	require.NoError(t, f.themes.Store(ctx, theme))

	f.cache.InvalidateTheme("brand")
	loaded, err := f.themes.FindByID(ctx, "brand")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Lora", loaded.Settings["heading_font"])
	assert.NotNil(t, loaded.Changed)
}
