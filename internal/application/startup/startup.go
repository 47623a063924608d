// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/storefront-builder/internal/application/container"
	schema "github.com/AtRiskMedia/storefront-builder/internal/infrastructure/database"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/persistence/database"
	"github.com/AtRiskMedia/storefront-builder/internal/presentation/http/server"
	"github.com/AtRiskMedia/storefront-builder/pkg/config"
)

// Initialize performs the complete startup sequence and blocks until a shutdown signal.
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("Initializing storefront builder...")

	// Step 1: Channeled logger
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()
	logger.Startup().Info("Logger initialized - switching to channeled logging",
		"level", config.LogLevel, "toFile", config.LogToFile, "json", config.LogJSON)

	// Step 2: Database connection
	phaseStart := time.Now()
	db, err := database.NewConnectionWithLogger(config.DBDriver, config.DBDSN, database.DefaultPoolConfig(), logger)
	if err != nil {
		logger.LogStartupPhase("database", time.Since(phaseStart), false)
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	if err := database.VerifyConnection(ctx, db); err != nil {
		logger.LogStartupPhase("database", time.Since(phaseStart), false)
		return fmt.Errorf("database verification failed: %w", err)
	}
	logger.LogStartupPhase("database", time.Since(phaseStart), true)

	// Step 3: Schema and seed content
	phaseStart = time.Now()
	tc := schema.NewTableCreator()
	if err := tc.CreateSchema(ctx, db.DB); err != nil {
		logger.LogStartupPhase("schema", time.Since(phaseStart), false)
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := tc.SeedInitialContent(ctx, db.DB); err != nil {
		logger.LogStartupPhase("schema", time.Since(phaseStart), false)
		return fmt.Errorf("failed to seed initial content: %w", err)
	}
	logger.LogStartupPhase("schema", time.Since(phaseStart), true)

	// Step 4: Dependency injection container
	appContainer := container.NewContainer(db, logger)
	logger.Startup().Info("Singleton application services initialized via container")

	// Step 5: Warm the page cache
	phaseStart = time.Now()
	pages, err := appContainer.PageService.GetAll(ctx)
	if err != nil {
		logger.Startup().Error("Page cache warming failed", "error", err.Error(), "duration", time.Since(phaseStart))
	} else {
		logger.Startup().Info("Page cache warmed", "pages", len(pages), "duration", time.Since(phaseStart))
	}

	// Step 6: Background cleanup worker
	go appContainer.CleanupWorker.Start(ctx)
	logger.Startup().Info("Background cleanup worker started", "interval", config.CleanupInterval)

	// Step 7: HTTP server
	httpServer := server.New(config.Port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+config.Port)
		if err := httpServer.Start(); err != nil {
			serverErr <- err
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port,
		"driver", db.Driver)

	select {
	case <-gracefulShutdown:
		logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")
	case err := <-serverErr:
		logger.System().Error("HTTP server failed", "error", err.Error())
		return fmt.Errorf("http server failed: %w", err)
	}

	shutdownStart := time.Now()
	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))
	return nil
}

func newLogger() (*logging.ChanneledLogger, error) {
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = config.LogToFile
	cfg.LogDirectory = config.LogDirectory
	cfg.JSONFormat = config.LogJSON
	cfg.DefaultLevel = logging.ParseLevel(config.LogLevel)
	return logging.NewChanneledLogger(cfg)
}

// setupLogging configures bootstrap logging and the gin mode
func setupLogging() {
	switch config.GinMode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(config.GinMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
