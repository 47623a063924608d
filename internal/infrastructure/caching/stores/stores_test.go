package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/session"
)

func TestStylesheetLifecycle(t *testing.T) {
	store := NewStylesheetStore(nil)

	releaseA := store.Acquire("brand", ":root { --primary: red; }")
	releaseB := store.Acquire("brand", ":root { --primary: blue; }")
	css, ok := store.Get("brand")
	require.True(t, ok)
	assert.Equal(t, ":root { --primary: blue; }", css, "a newer acquire replaces the text")
	assert.Equal(t, 2, store.Refs("brand"))

	releaseA()
	releaseA()
	assert.Equal(t, 1, store.Refs("brand"), "release is idempotent")

	assert.True(t, store.Replace("brand", ":root {}"))
	css, _ = store.Get("brand")
	assert.Equal(t, ":root {}", css)

	releaseB()
	_, ok = store.Get("brand")
	assert.False(t, ok, "last release removes the sheet")
	assert.False(t, store.Replace("brand", "x"))
	assert.Empty(t, store.Scopes())
}

func TestContentStoreCopiesPages(t *testing.T) {
	store := NewContentStore(nil)
	layout, err := builder.ParseLayout(`[{"id":"pageContent","type":"pageContent","content":[]}]`)
	require.NoError(t, err)
	page := &builder.Page{ID: "p1", Slug: "shop", Layout: layout}
	store.SetPage(page)

	page.Layout[0].Styles["color"] = "red"
	cached, ok := store.GetPage("p1")
	require.True(t, ok)
	assert.NotContains(t, cached.Layout[0].Styles, "color")

	id, ok := store.GetPageIDBySlug("shop")
	require.True(t, ok)
	assert.Equal(t, "p1", id)

	store.InvalidatePage("p1")
	_, ok = store.GetPage("p1")
	assert.False(t, ok)
	_, ok = store.GetPageIDBySlug("shop")
	assert.False(t, ok)
}

func TestContentStoreSlugMoves(t *testing.T) {
	store := NewContentStore(nil)
	store.SetAllPageIDs([]string{})
	store.SetPage(&builder.Page{ID: "p1", Slug: "old"})
	store.SetPage(&builder.Page{ID: "p1", Slug: "new"})

	_, ok := store.GetPageIDBySlug("old")
	assert.False(t, ok)
	ids, ok := store.GetAllPageIDs()
	require.True(t, ok)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestContentStoreThemes(t *testing.T) {
	store := NewContentStore(nil)
	store.SetTheme(&builder.AppliedTheme{ID: "t1", Settings: map[string]any{"primary": "#000"}})
	theme, ok := store.GetTheme("t1")
	require.True(t, ok)
	theme.Settings["primary"] = "#fff"

	again, _ := store.GetTheme("t1")
	assert.Equal(t, "#000", again.Settings["primary"])

	assert.Equal(t, 0, store.PurgeExpired(time.Hour))
	assert.Equal(t, 1, store.PurgeExpired(-time.Second))
}

func TestSessionsStore(t *testing.T) {
	store := NewSessionsStore(1, nil)
	a := session.NewEditorSession("a", "home", "", nil, 10)
	require.NoError(t, store.Put(a))
	assert.Error(t, store.Put(session.NewEditorSession("b", "home", "", nil, 10)))
	require.NoError(t, store.Put(a), "re-putting an existing session is allowed")

	assert.Len(t, store.ForPage("home"), 1)
	assert.Empty(t, store.Expired(time.Hour))

	a.LastAccessed = time.Now().Add(-time.Hour)
	expired := store.Expired(time.Minute)
	require.Len(t, expired, 1)
	assert.Equal(t, 0, store.Count())
}
