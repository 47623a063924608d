// Package server provides HTTP server initialization and management.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/storefront-builder/internal/application/container"
	"github.com/AtRiskMedia/storefront-builder/internal/presentation/http/routes"
	"github.com/AtRiskMedia/storefront-builder/pkg/config"
)

// Server wraps the HTTP server with configuration and dependency injection
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	container  *container.Container
}

// New creates a new HTTP server instance with dependency injection
func New(port string, container *container.Container) *Server {
	router := routes.SetupRoutes(container)

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + port,
			Handler:      router,
			ReadTimeout:  config.ServerReadTimeout,
			WriteTimeout: config.ServerWriteTimeout,
			IdleTimeout:  config.ServerIdleTimeout,
		},
		router:    router,
		container: container,
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	routesInfo := s.router.Routes()
	for _, r := range routesInfo {
		s.container.Logger.HTTP().Debug("Route registered", "method", r.Method, "path", r.Path)
	}
	s.container.Logger.System().Info("HTTP server listening",
		"address", s.httpServer.Addr, "routes", len(routesInfo),
		"liveEditor", "/api/v1/editor/sessions/:sid/live")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop closes every editor session, which sends live clients a close frame, then shuts the
// HTTP server down. Shutdown does not wait for hijacked websocket connections.
func (s *Server) Stop(ctx context.Context) error {
	closed := s.container.EditorService.CloseAll()
	s.container.Logger.Shutdown().Info("Editor sessions closed", "count", closed)

	s.container.Logger.Shutdown().Info("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
