package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/persistence/database"
)

// HealthHandlers reports service health and manages log levels.
type HealthHandlers struct {
	db          *database.DB
	cache       *manager.Manager
	perfTracker *performance.Tracker
	logger      *logging.ChanneledLogger
}

// NewHealthHandlers creates health handlers with injected dependencies
func NewHealthHandlers(db *database.DB, cache *manager.Manager, perfTracker *performance.Tracker, logger *logging.ChanneledLogger) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache, perfTracker: perfTracker, logger: logger}
}

// GetHealth handles GET /api/v1/health
func (h *HealthHandlers) GetHealth(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.VerifyConnection(ctx, h.db); err != nil {
			h.logger.Database().Error("Health check failed", "error", err.Error())
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}
	}

	body := gin.H{
		"status":   http.StatusText(status),
		"database": dbStatus,
		"time":     time.Now().UTC(),
	}
	if h.cache != nil {
		body["cache"] = h.cache.Stats()
	}
	c.JSON(status, body)
}

// GetLogLevels handles GET /api/v1/admin/log-levels
func (h *HealthHandlers) GetLogLevels(c *gin.Context) {
	c.JSON(http.StatusOK, h.logger.GetChannelLevels())
}

// SetLogLevelRequest names a channel and its new level.
type SetLogLevelRequest struct {
	Channel string `json:"channel" binding:"required"`
	Level   string `json:"level" binding:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
}

// SetLogLevel handles PUT /api/v1/admin/log-levels
func (h *HealthHandlers) SetLogLevel(c *gin.Context) {
	var req SetLogLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	level := logging.ParseLevel(req.Level)
	if err := h.logger.SetChannelLevel(logging.Channel(req.Channel), level); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": fmt.Sprintf("Log level for channel '%s' set to '%s'", req.Channel, strings.ToUpper(req.Level)),
	})
}

// GetPerformance handles GET /api/v1/admin/performance. The optional scope
// query narrows the recent markers to one session.
func (h *HealthHandlers) GetPerformance(c *gin.Context) {
	stats := h.perfTracker.Stats()
	operations := make(gin.H, len(stats))
	for op, s := range stats {
		operations[op] = gin.H{
			"count":    s.Count,
			"failures": s.Failures,
			"slow":     s.Slow,
			"average":  s.Average().String(),
			"max":      s.Max.String(),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"overall":    h.perfTracker.GetOverallStats(),
		"operations": operations,
		"recent":     h.perfTracker.Recent(c.Query("scope")),
	})
}
