package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/storefront-builder/internal/application/services"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// UpdateLayoutRequest carries a page's new layout.
type UpdateLayoutRequest struct {
	Layout []*builder.ComponentNode `json:"layout" binding:"required"`
}

// PageHandlers contains the page HTTP handlers
type PageHandlers struct {
	pageService *services.PageService
	logger      *logging.ChanneledLogger
}

// NewPageHandlers creates page handlers with injected dependencies
func NewPageHandlers(pageService *services.PageService, logger *logging.ChanneledLogger) *PageHandlers {
	return &PageHandlers{
		pageService: pageService,
		logger:      logger,
	}
}

// GetAllPages handles GET /api/v1/pages
func (h *PageHandlers) GetAllPages(c *gin.Context) {
	pages, err := h.pageService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, logging.ChannelBuilder, "list_pages", err)
		return
	}

	summaries := make([]gin.H, 0, len(pages))
	for _, p := range pages {
		summaries = append(summaries, gin.H{"id": p.ID, "title": p.Title, "slug": p.Slug, "changed": p.Changed})
	}
	c.JSON(http.StatusOK, gin.H{
		"pages": summaries,
		"count": len(summaries),
	})
}

// GetPageByID handles GET /api/v1/pages/:id
func (h *PageHandlers) GetPageByID(c *gin.Context) {
	page, err := h.pageService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, logging.ChannelBuilder, "get_page", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPageBySlug handles GET /api/v1/pages/slug/:slug
func (h *PageHandlers) GetPageBySlug(c *gin.Context) {
	page, err := h.pageService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, logging.ChannelBuilder, "get_page_by_slug", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UpdateLayout handles PUT /api/v1/pages/:id/layout
func (h *PageHandlers) UpdateLayout(c *gin.Context) {
	start := time.Now()
	id := c.Param("id")
	var req UpdateLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.pageService.UpdateLayout(c.Request.Context(), id, req.Layout); err != nil {
		respondError(c, h.logger, logging.ChannelBuilder, "update_layout", err)
		return
	}

	h.logger.Builder().Info("Update layout request completed", "pageId", id, "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": id})
}

// GetPageStyles handles GET /api/v1/pages/:id/styles
func (h *PageHandlers) GetPageStyles(c *gin.Context) {
	out, err := h.pageService.ComposeStyles(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, logging.ChannelBuilder, "page_styles", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetThemeCSS handles GET /api/v1/pages/:id/theme.css
func (h *PageHandlers) GetThemeCSS(c *gin.Context) {
	css, err := h.pageService.ThemeCSS(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, logging.ChannelTheme, "theme_css", err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}
