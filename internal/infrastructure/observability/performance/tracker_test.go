package performance

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerAggregatesByOperation(t *testing.T) {
	tracker := NewTracker(&TrackerConfig{MaxRecent: 10, SlowThreshold: time.Hour}, nil)

	ok := tracker.StartOperation("editor:undo", "s1")
	ok.Complete()
	ok.Complete()

	failed := tracker.StartOperation("editor:undo", "s2")
	failed.SetError(errors.New("boom"))
	failed.Complete()

	stats := tracker.Stats()
	require.Contains(t, stats, "editor:undo")
	assert.Equal(t, 2, stats["editor:undo"].Count)
	assert.Equal(t, 1, stats["editor:undo"].Failures)
	assert.Zero(t, stats["editor:undo"].Slow)
	assert.Equal(t, "boom", tracker.Recent("s2")[0].Error)
}

func TestTrackerRecentIsBounded(t *testing.T) {
	tracker := NewTracker(&TrackerConfig{MaxRecent: 3}, nil)
	for i := 0; i < 5; i++ {
		tracker.StartOperation("op", fmt.Sprintf("s%d", i)).Complete()
	}

	recent := tracker.Recent("")
	require.Len(t, recent, 3)
	assert.Equal(t, "s2", recent[0].Scope)
	assert.Equal(t, "s4", recent[2].Scope)
	assert.Equal(t, 5, tracker.Stats()["op"].Count)
}

func TestTrackerCountsSlowOperations(t *testing.T) {
	tracker := NewTracker(&TrackerConfig{MaxRecent: 2, SlowThreshold: time.Nanosecond}, nil)
	m := tracker.StartOperation("tree:flatten", "")
	time.Sleep(time.Millisecond)
	m.Complete()

	assert.Equal(t, 1, tracker.Stats()["tree:flatten"].Slow)
	assert.Equal(t, 1, tracker.GetOverallStats()["slowOperations"])
}
