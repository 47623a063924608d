// Package handlers provides the HTTP handlers of the builder API
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/storefront-builder/internal/application/services"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrPageNotFound),
		errors.Is(err, services.ErrThemeNotFound),
		errors.Is(err, services.ErrComponentNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrProtectedComponent):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": msg}. Internal failures are logged and hidden from the client.
func respondError(c *gin.Context, logger *logging.ChanneledLogger, channel logging.Channel, operation string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.WithContext(channel, c.Request.Context()).Error("Request failed", "operation", operation, "error", err.Error())
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
