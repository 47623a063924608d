package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/storefront-builder/internal/application/services"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/performance"
)

// FlattenRequest carries a nested layout.
type FlattenRequest struct {
	Layout []*builder.ComponentNode `json:"layout" binding:"required"`
}

// RebuildRequest carries a flat editor list.
type RebuildRequest struct {
	Items []builder.FlatItem `json:"items" binding:"required"`
}

// BuilderHandlers exposes the stateless tree and style operations.
type BuilderHandlers struct {
	builderService *services.BuilderService
	perfTracker    *performance.Tracker
	logger         *logging.ChanneledLogger
}

// NewBuilderHandlers creates builder handlers with injected dependencies
func NewBuilderHandlers(builderService *services.BuilderService, perfTracker *performance.Tracker, logger *logging.ChanneledLogger) *BuilderHandlers {
	return &BuilderHandlers{
		builderService: builderService,
		perfTracker:    perfTracker,
		logger:         logger,
	}
}

// Flatten handles POST /api/v1/tree/flatten
func (h *BuilderHandlers) Flatten(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("tree:flatten", "")
	defer marker.Complete()
	var req FlattenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		marker.SetError(err)
		badRequest(c, err)
		return
	}

	items, err := h.builderService.Flatten(req.Layout)
	if err != nil {
		marker.SetError(err)
		respondError(c, h.logger, logging.ChannelBuilder, "flatten", err)
		return
	}

	h.logger.Builder().Debug("Flatten request completed", "items", len(items), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// Rebuild handles POST /api/v1/tree/rebuild
func (h *BuilderHandlers) Rebuild(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("tree:rebuild", "")
	defer marker.Complete()
	var req RebuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		marker.SetError(err)
		badRequest(c, err)
		return
	}

	layout := h.builderService.Rebuild(req.Items)
	marker.AddMetadata("items", len(req.Items))

	h.logger.Builder().Debug("Rebuild request completed", "items", len(req.Items), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// Compose handles POST /api/v1/styles/compose
func (h *BuilderHandlers) Compose(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("styles:compose", "")
	defer marker.Complete()
	var req services.ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		marker.SetError(err)
		badRequest(c, err)
		return
	}

	result, err := h.builderService.Compose(c.Request.Context(), req)
	if err != nil {
		marker.SetError(err)
		respondError(c, h.logger, logging.ChannelBuilder, "compose", err)
		return
	}

	h.logger.Builder().Debug("Compose request completed", "components", len(result.Styles), "duration", time.Since(start))
	c.JSON(http.StatusOK, result)
}
