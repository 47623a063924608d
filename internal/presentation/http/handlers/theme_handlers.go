package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/storefront-builder/internal/application/services"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// UpdateThemeRequest carries a theme's name and settings.
type UpdateThemeRequest struct {
	Name     string         `json:"name"`
	Settings map[string]any `json:"settings" binding:"required"`
}

// ThemeHandlers contains the theme HTTP handlers
type ThemeHandlers struct {
	themeService *services.ThemeService
	logger       *logging.ChanneledLogger
}

// NewThemeHandlers creates theme handlers with injected dependencies
func NewThemeHandlers(themeService *services.ThemeService, logger *logging.ChanneledLogger) *ThemeHandlers {
	return &ThemeHandlers{
		themeService: themeService,
		logger:       logger,
	}
}

// GetThemeByID handles GET /api/v1/themes/:id
func (h *ThemeHandlers) GetThemeByID(c *gin.Context) {
	t, err := h.themeService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, logging.ChannelTheme, "get_theme", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTheme handles PUT /api/v1/themes/:id
func (h *ThemeHandlers) UpdateTheme(c *gin.Context) {
	var req UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	t := &builder.AppliedTheme{ID: c.Param("id"), Name: req.Name, Settings: req.Settings}
	if err := h.themeService.Save(c.Request.Context(), t); err != nil {
		respondError(c, h.logger, logging.ChannelTheme, "update_theme", err)
		return
	}
	c.JSON(http.StatusOK, t)
}
