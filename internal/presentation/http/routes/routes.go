// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/storefront-builder/internal/application/container"
	"github.com/AtRiskMedia/storefront-builder/internal/presentation/http/handlers"
	"github.com/AtRiskMedia/storefront-builder/internal/presentation/http/middleware"
	"github.com/AtRiskMedia/storefront-builder/pkg/config"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(container.Logger))
	r.Use(middleware.CORSMiddleware(config.CORSOrigins))

	// Initialize handlers
	healthHandlers := handlers.NewHealthHandlers(container.DB, container.CacheManager, container.PerfTracker, container.Logger)
	builderHandlers := handlers.NewBuilderHandlers(container.BuilderService, container.PerfTracker, container.Logger)
	pageHandlers := handlers.NewPageHandlers(container.PageService, container.Logger)
	themeHandlers := handlers.NewThemeHandlers(container.ThemeService, container.Logger)
	editorHandlers := handlers.NewEditorHandlers(container.EditorService, container.PerfTracker, container.Logger)
	liveHandlers := handlers.NewLiveHandlers(container.EditorService, container.PerfTracker, config.CORSOrigins, container.Logger)

	api := r.Group("/api/v1")
	{
		api.GET("/health", healthHandlers.GetHealth)

		admin := api.Group("/admin")
		{
			admin.GET("/log-levels", healthHandlers.GetLogLevels)
			admin.PUT("/log-levels", healthHandlers.SetLogLevel)
			admin.GET("/performance", healthHandlers.GetPerformance)
		}

		treeAPI := api.Group("/tree")
		{
			treeAPI.POST("/flatten", builderHandlers.Flatten)
			treeAPI.POST("/rebuild", builderHandlers.Rebuild)
		}
		api.POST("/styles/compose", builderHandlers.Compose)

		pages := api.Group("/pages")
		{
			pages.GET("", pageHandlers.GetAllPages)
			pages.GET("/slug/:slug", pageHandlers.GetPageBySlug)
			pages.GET("/:id", pageHandlers.GetPageByID)
			pages.PUT("/:id/layout", pageHandlers.UpdateLayout)
			pages.GET("/:id/styles", pageHandlers.GetPageStyles)
			pages.GET("/:id/theme.css", pageHandlers.GetThemeCSS)
		}

		themes := api.Group("/themes")
		{
			themes.GET("/:id", themeHandlers.GetThemeByID)
			themes.PUT("/:id", themeHandlers.UpdateTheme)
		}

		sessions := api.Group("/editor/sessions")
		{
			sessions.POST("", editorHandlers.OpenSession)
			sessions.GET("/:sid", editorHandlers.GetSession)
			sessions.DELETE("/:sid", editorHandlers.CloseSession)
			sessions.GET("/:sid/flat", editorHandlers.GetFlat)
			sessions.PUT("/:sid/flat", editorHandlers.ReplaceFlat)
			sessions.POST("/:sid/components", editorHandlers.AddComponent)
			sessions.DELETE("/:sid/components/:cid", editorHandlers.RemoveComponent)
			sessions.PATCH("/:sid/components/:cid/styles", editorHandlers.UpdateStyles)
			sessions.POST("/:sid/undo", editorHandlers.Undo)
			sessions.POST("/:sid/redo", editorHandlers.Redo)
			sessions.POST("/:sid/save", editorHandlers.Save)
			sessions.GET("/:sid/live", liveHandlers.Live)
		}
	}

	return r
}
