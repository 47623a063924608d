package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/session"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

func testLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToConsole = false
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger
}

type recordingCloser struct{ closed []string }

func (c *recordingCloser) CloseExpired(s *session.EditorSession) {
	c.closed = append(c.closed, s.ID)
	s.Mu.Lock()
	s.Close()
	s.Mu.Unlock()
}

func TestRunOnceEvictsExpiredSessions(t *testing.T) {
	logger := testLogger(t)
	cache := manager.NewManager(0, logger)

	stale := session.NewEditorSession("stale", "home", "default", nil, 10)
	stale.LastAccessed = time.Now().Add(-2 * time.Hour)
	stale.ReleaseStylesheet = cache.Stylesheets.Acquire("default", ":root {}")
	fresh := session.NewEditorSession("fresh", "home", "default", nil, 10)
	fresh.ReleaseStylesheet = cache.Stylesheets.Acquire("default", ":root {}")
	require.NoError(t, cache.Sessions.Put(stale))
	require.NoError(t, cache.Sessions.Put(fresh))
	require.Equal(t, 2, cache.Stylesheets.Refs("default"))

	closer := &recordingCloser{}
	worker := NewWorker(cache, closer, &Config{CleanupInterval: time.Minute, PageCacheTTL: time.Hour, EditorSessionTTL: time.Hour}, logger)

	assert.Equal(t, 1, worker.RunOnce(context.Background()))
	assert.Equal(t, []string{"stale"}, closer.closed)
	assert.Equal(t, 1, cache.Sessions.Count())
	assert.Equal(t, 1, cache.Stylesheets.Refs("default"))
}

func TestRunOncePurgesPageCache(t *testing.T) {
	logger := testLogger(t)
	cache := manager.NewManager(0, logger)
	cache.Content.SetPage(&builder.Page{ID: "home", Slug: "home"})

	worker := NewWorker(cache, nil, &Config{CleanupInterval: time.Minute, PageCacheTTL: -time.Second, EditorSessionTTL: time.Hour}, logger)
	assert.Equal(t, 1, worker.RunOnce(context.Background()))
	_, found := cache.Content.GetPage("home")
	assert.False(t, found)
}

func TestStartStopsOnCancel(t *testing.T) {
	logger := testLogger(t)
	worker := NewWorker(manager.NewManager(0, logger), nil, &Config{CleanupInterval: 10 * time.Millisecond, PageCacheTTL: time.Hour, EditorSessionTTL: time.Hour}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestReport(t *testing.T) {
	cache := manager.NewManager(0, nil)
	cache.Stylesheets.Acquire("brand", ":root {}")
	report := NewReporter(cache).Report()
	assert.Contains(t, report, "stylesheets:1")
	assert.Contains(t, report, "pages:--")
	assert.Contains(t, report, "scopes:brand")
}
