// Package cleanup provides background worker
package cleanup

import (
	"context"
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/session"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// SessionCloser finishes an editor session that the worker evicted.
type SessionCloser interface {
	CloseExpired(s *session.EditorSession)
}

// Worker handles background cache cleanup operations
type Worker struct {
	cache    *manager.Manager
	closer   SessionCloser
	config   *Config
	logger   *logging.ChanneledLogger
	reporter *Reporter
}

// NewWorker creates a new cleanup worker with injected configuration
func NewWorker(cache *manager.Manager, closer SessionCloser, config *Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cache:    cache,
		closer:   closer,
		config:   config,
		logger:   logger,
		reporter: NewReporter(cache),
	}
}

// Start runs cleanup on every tick until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	w.logger.Cache().Info("Cache cleanup worker started",
		"interval", w.config.CleanupInterval, "verbose", w.config.VerboseReporting)

	for {
		select {
		case <-ctx.Done():
			w.logger.Shutdown().Info("Cache cleanup worker stopping")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce evicts expired editor sessions and page cache entries. It returns the number of
// items removed.
func (w *Worker) RunOnce(ctx context.Context) int {
	start := time.Now()
	if w.config.VerboseReporting {
		w.logger.Cache().Debug("Cache report before cleanup", "report", w.reporter.Report())
	}

	cleaned := 0
	for _, s := range w.cache.Sessions.Expired(w.config.EditorSessionTTL) {
		select {
		case <-ctx.Done():
			return cleaned
		default:
		}
		if w.closer != nil {
			w.closer.CloseExpired(s)
		} else {
			s.Mu.Lock()
			s.Close()
			s.Mu.Unlock()
		}
		cleaned++
	}

	cleaned += w.cache.Content.PurgeExpired(w.config.PageCacheTTL)

	duration := time.Since(start)
	if cleaned > 0 {
		w.logger.Cache().Info("Cache cleanup finished", "cleaned", cleaned, "duration", duration)
	} else if w.config.VerboseReporting {
		w.logger.Cache().Debug("Cache cleanup completed - no expired items found", "duration", duration)
	}
	return cleaned
}
