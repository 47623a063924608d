package performance

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
)

// Tracker keeps per-operation statistics and the most recent completed markers.
type Tracker struct {
	stats   map[string]*OperationStats
	recent  []Marker
	next    int
	mu      sync.RWMutex
	started time.Time
	config  *TrackerConfig
	logger  *logging.ChanneledLogger
}

// TrackerConfig bounds the tracker.
type TrackerConfig struct {
	MaxRecent     int           `json:"maxRecent"`
	SlowThreshold time.Duration `json:"slowThreshold"`
}

// DefaultTrackerConfig returns default tracker configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxRecent:     200,
		SlowThreshold: 500 * time.Millisecond,
	}
}

// NewTracker creates a tracker; a nil config uses the defaults.
func NewTracker(config *TrackerConfig, logger *logging.ChanneledLogger) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}
	if config.MaxRecent <= 0 {
		config.MaxRecent = 1
	}
	return &Tracker{
		stats:   make(map[string]*OperationStats),
		recent:  make([]Marker, 0, config.MaxRecent),
		started: time.Now(),
		config:  config,
		logger:  logger,
	}
}

// StartOperation starts timing an operation. Markers are assumed successful until told otherwise.
func (t *Tracker) StartOperation(operation, scope string) *Marker {
	return &Marker{
		Operation: operation,
		Scope:     scope,
		StartTime: time.Now(),
		Success:   true,
		tracker:   t,
	}
}

func (t *Tracker) record(m *Marker) {
	slow := t.config.SlowThreshold > 0 && m.Duration > t.config.SlowThreshold

	t.mu.Lock()
	s, ok := t.stats[m.Operation]
	if !ok {
		s = &OperationStats{}
		t.stats[m.Operation] = s
	}
	s.Count++
	s.Total += m.Duration
	if m.Duration > s.Max {
		s.Max = m.Duration
	}
	if !m.Success {
		s.Failures++
	}
	if slow {
		s.Slow++
	}

	entry := *m
	entry.tracker = nil
	if len(t.recent) < t.config.MaxRecent {
		t.recent = append(t.recent, entry)
	} else {
		t.recent[t.next] = entry
	}
	t.next = (t.next + 1) % t.config.MaxRecent
	t.mu.Unlock()

	if slow && t.logger != nil {
		t.logger.Editor().Warn("Slow operation", "operation", m.Operation, "scope", m.Scope,
			"duration", m.Duration, "threshold", t.config.SlowThreshold)
	}
}

// Stats returns a copy of the per-operation statistics.
func (t *Tracker) Stats() map[string]OperationStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]OperationStats, len(t.stats))
	for op, s := range t.stats {
		out[op] = *s
	}
	return out
}

// Recent returns the retained markers, oldest first, optionally filtered by scope.
func (t *Tracker) Recent(scope string) []Marker {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ordered := make([]Marker, 0, len(t.recent))
	if len(t.recent) == t.config.MaxRecent {
		ordered = append(ordered, t.recent[t.next:]...)
		ordered = append(ordered, t.recent[:t.next]...)
	} else {
		ordered = append(ordered, t.recent...)
	}
	if scope == "" {
		return ordered
	}
	filtered := ordered[:0]
	for _, m := range ordered {
		if m.Scope == scope {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// GetOverallStats returns overall tracker statistics
func (t *Tracker) GetOverallStats() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	completed, failed, slow := 0, 0, 0
	for _, s := range t.stats {
		completed += s.Count
		failed += s.Failures
		slow += s.Slow
	}
	return map[string]any{
		"trackerUptime":       time.Since(t.started).String(),
		"operations":          len(t.stats),
		"completedOperations": completed,
		"failedOperations":    failed,
		"slowOperations":      slow,
		"retainedMarkers":     len(t.recent),
	}
}
