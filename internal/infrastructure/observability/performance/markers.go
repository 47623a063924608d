// Package performance records how long builder and editor operations take.
package performance

import "time"

// Marker is one timed operation.
type Marker struct {
	Operation string         `json:"operation"` // e.g. "editor:update_styles"
	Scope     string         `json:"scope"`     // session or page id
	StartTime time.Time      `json:"startTime"`
	Duration  time.Duration  `json:"duration"`
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Completed bool           `json:"completed"`

	tracker *Tracker
}

// Complete stops the clock and hands the marker to its tracker. Later calls do nothing.
func (m *Marker) Complete() {
	if m == nil || m.Completed {
		return
	}
	m.Duration = time.Since(m.StartTime)
	m.Completed = true
	if m.tracker != nil {
		m.tracker.record(m)
	}
}

// SetSuccess marks the operation as successful or failed
func (m *Marker) SetSuccess(success bool) {
	m.Success = success
}

// SetError sets an error message and marks the operation as failed
func (m *Marker) SetError(err error) {
	if err != nil {
		m.Error = err.Error()
		m.Success = false
	}
}

// AddMetadata adds key-value metadata to the marker
func (m *Marker) AddMetadata(key string, value any) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}
	m.Metadata[key] = value
}

// OperationStats aggregates the completed markers of one operation.
type OperationStats struct {
	Count    int           `json:"count"`
	Failures int           `json:"failures"`
	Slow     int           `json:"slow"`
	Total    time.Duration `json:"total"`
	Max      time.Duration `json:"max"`
}

// Average is the mean duration, zero before the first sample.
func (s OperationStats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}
