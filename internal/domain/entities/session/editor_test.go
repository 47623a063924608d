package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
)

func TestNewEditorSessionSeedsHistory(t *testing.T) {
	layout, err := builder.ParseLayout(`[{"id":"pageContent","type":"pageContent","content":[]}]`)
	require.NoError(t, err)

	s := NewEditorSession("s1", "home", "default", layout, 10)
	assert.Equal(t, 1, s.History.Len())
	assert.Equal(t, 0, s.History.Index())
	assert.NotSame(t, layout[0], s.Tree[0])
	assert.False(t, s.IsExpired(time.Minute))
}

func TestCloseReleasesOnce(t *testing.T) {
	s := NewEditorSession("s1", "home", "", nil, 10)
	released := 0
	s.ReleaseStylesheet = func() { released++ }

	s.Mu.Lock()
	s.Close()
	s.Close()
	assert.True(t, s.Closed())
	s.Mu.Unlock()
	assert.Equal(t, 1, released)
}

func TestIsExpired(t *testing.T) {
	s := NewEditorSession("s1", "home", "", nil, 10)
	s.LastAccessed = time.Now().Add(-2 * time.Hour)
	assert.True(t, s.IsExpired(time.Hour))
}
