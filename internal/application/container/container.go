// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/AtRiskMedia/storefront-builder/internal/application/services"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/cleanup"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/persistence/content"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/persistence/database"
	"github.com/AtRiskMedia/storefront-builder/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application Services
	ThemeService   *services.ThemeService
	PageService    *services.PageService
	BuilderService *services.BuilderService
	EditorService  *services.EditorService

	// Repositories
	PageRepository  *content.PageRepository
	ThemeRepository *content.ThemeRepository

	// Infrastructure Dependencies
	DB            *database.DB
	CacheManager  *manager.Manager
	Broadcaster   *messaging.EditorBroadcaster
	CleanupWorker *cleanup.Worker
	PerfTracker   *performance.Tracker
	Logger        *logging.ChanneledLogger
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.DB, logger *logging.ChanneledLogger) *Container {
	cacheManager := manager.NewManager(config.MaxEditorSessions, logger)
	broadcaster := messaging.NewEditorBroadcaster(logger)

	pageRepo := content.NewPageRepository(db, cacheManager.Content, logger)
	themeRepo := content.NewThemeRepository(db, cacheManager.Content, logger)

	limits := services.DefaultLimits()
	themeService := services.NewThemeService(themeRepo, cacheManager.Stylesheets, logger)
	pageService := services.NewPageService(pageRepo, themeService, limits, logger)
	builderService := services.NewBuilderService(themeService, limits, logger)
	editorService := services.NewEditorService(pageService, themeService, cacheManager.Sessions,
		broadcaster, limits, config.EditorDebounce, logger)

	return &Container{
		ThemeService:   themeService,
		PageService:    pageService,
		BuilderService: builderService,
		EditorService:  editorService,

		PageRepository:  pageRepo,
		ThemeRepository: themeRepo,

		DB:            db,
		CacheManager:  cacheManager,
		Broadcaster:   broadcaster,
		CleanupWorker: cleanup.NewWorker(cacheManager, editorService, cleanup.NewConfig(), logger),
		PerfTracker:   performance.NewTracker(performance.DefaultTrackerConfig(), logger),
		Logger:        logger,
	}
}
