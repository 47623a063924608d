package tree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
)

func snapshot(label string) []*builder.ComponentNode {
	return []*builder.ComponentNode{{ID: label, Type: builder.TypeText, Content: builder.Content{Value: label}, Styles: builder.Styles{}}}
}

func labelOf(t *testing.T, tree []*builder.ComponentNode) string {
	t.Helper()
	require.Len(t, tree, 1)
	return tree[0].ID
}

func TestHistoryBound(t *testing.T) {
	h := NewHistory(HistoryLimit)
	for i := 1; i <= 15; i++ {
		h.Push(snapshot(fmt.Sprintf("m%d", i)))
	}

	assert.Equal(t, 10, h.Len())
	assert.Equal(t, 9, h.Index())

	for i := 0; i < h.Len(); i++ {
		assert.Equal(t, fmt.Sprintf("m%d", i+6), labelOf(t, h.entries[i]))
	}
}

func TestHistoryUndoRedoClamping(t *testing.T) {
	h := NewHistory(0)
	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)
	assert.Equal(t, -1, h.Index())

	h.Push(snapshot("a"))
	h.Push(snapshot("b"))
	h.Push(snapshot("c"))

	tree, ok := h.Redo()
	assert.False(t, ok)
	assert.Equal(t, "c", labelOf(t, tree))
	assert.Equal(t, 2, h.Index())

	tree, ok = h.Undo()
	assert.True(t, ok)
	assert.Equal(t, "b", labelOf(t, tree))
	tree, _ = h.Undo()
	assert.Equal(t, "a", labelOf(t, tree))

	tree, ok = h.Undo()
	assert.False(t, ok)
	assert.Equal(t, "a", labelOf(t, tree))
	assert.Equal(t, 0, h.Index())

	tree, ok = h.Redo()
	assert.True(t, ok)
	assert.Equal(t, "b", labelOf(t, tree))
}

func TestHistoryPushDiscardsRedoBranch(t *testing.T) {
	h := NewHistory(HistoryLimit)
	h.Push(snapshot("a"))
	h.Push(snapshot("b"))
	h.Push(snapshot("c"))
	h.Undo()
	h.Undo()

	h.Push(snapshot("d"))
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Index())
	assert.False(t, h.CanRedo())
	assert.True(t, h.CanUndo())

	tree, _ := h.Undo()
	assert.Equal(t, "a", labelOf(t, tree))
}

func TestHistorySnapshotsAreIsolated(t *testing.T) {
	h := NewHistory(HistoryLimit)
	tree := snapshot("a")
	h.Push(tree)
	tree[0].Styles["color"] = "red"

	current, ok := h.Current()
	require.True(t, ok)
	assert.NotContains(t, current[0].Styles, "color")

	current[0].Styles["color"] = "blue"
	again, _ := h.Current()
	assert.NotContains(t, again[0].Styles, "color")
}

func TestPushHistoryFunctionalForm(t *testing.T) {
	var entries [][]*builder.ComponentNode
	index := -1
	for i := 0; i < 12; i++ {
		entries, index = PushHistory(snapshot(fmt.Sprintf("s%d", i)), entries, index, HistoryLimit)
	}
	assert.Len(t, entries, 10)
	assert.Equal(t, 9, index)
	assert.Equal(t, "s2", labelOf(t, entries[0]))
}
