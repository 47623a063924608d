package tree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
)

func TestFindAndPath(t *testing.T) {
	nodes := parse(t, storefrontLayout)

	assert.Equal(t, builder.ComponentType("bento"), FindByID(nodes, "grid").Type)
	assert.Nil(t, FindByID(nodes, "nope"))

	path := GetPath(nodes, "p2")
	assert.Equal(t, []int{0, 1, 1, 1}, path)
	assert.Same(t, FindByID(nodes, "p2"), GetByPath(nodes, path))
	assert.Nil(t, GetPath(nodes, "nope"))
	assert.Nil(t, GetByPath(nodes, []int{0, 9}))
	assert.Nil(t, GetByPath(nodes, []int{0, 1, 0, 0, 0}))
	assert.Nil(t, GetByPath(nodes, nil))

	assert.Equal(t, "sec", FindParent(nodes, "t").ID)
	assert.Nil(t, FindParent(nodes, "root"))
	assert.Equal(t, 3, MaxDepth(nodes))
	assert.Equal(t, 10, Count(nodes))
}

func TestRemoveByIDIsCopyOnWrite(t *testing.T) {
	nodes := parse(t, storefrontLayout)
	before, err := builder.EncodeLayout(nodes)
	require.NoError(t, err)

	out := RemoveByID(nodes, "p1")
	assert.Nil(t, FindByID(out, "p1"))
	assert.NotNil(t, FindByID(out, "p2"))

	after, err := builder.EncodeLayout(nodes)
	require.NoError(t, err)
	assert.JSONEq(t, before, after, "input tree is untouched")
	assert.NotNil(t, FindByID(nodes, "p1"))

	assert.Same(t, FindByID(nodes, "hdr"), FindByID(out, "hdr"), "untouched branches are shared")
}

func TestRemoveByIDNoOps(t *testing.T) {
	nodes := parse(t, storefrontLayout)

	out := RemoveByID(nodes, "missing")
	assert.Equal(t, Count(nodes), Count(out))

	out = RemoveByID(nodes, "root")
	assert.NotNil(t, FindByID(out, "root"), "page content is protected")

	out = RemoveByID(nodes, "ftr")
	assert.Len(t, out, 1)
}

func TestInsertAt(t *testing.T) {
	nodes := parse(t, storefrontLayout)
	added := &builder.ComponentNode{ID: "new", Type: builder.TypeText, Styles: builder.Styles{}}

	out, ok := InsertAt(nodes, "grid", 0, added)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 1, 0}, GetPath(out, "new"))
	assert.Nil(t, FindByID(nodes, "new"))

	out, ok = InsertAt(nodes, "", 99, added)
	require.True(t, ok)
	assert.Equal(t, []int{2}, GetPath(out, "new"))

	_, ok = InsertAt(nodes, "t", 0, added)
	assert.False(t, ok, "leaves have no child slot")
	_, ok = InsertAt(nodes, "missing", 0, added)
	assert.False(t, ok)
}

func TestReplaceByID(t *testing.T) {
	nodes := parse(t, storefrontLayout)
	updated := FindByID(nodes, "t").Clone()
	updated.Styles["fontSize"] = "40"

	out, ok := ReplaceByID(nodes, updated)
	require.True(t, ok)
	assert.Equal(t, "40", FindByID(out, "t").Styles["fontSize"])
	assert.NotContains(t, FindByID(nodes, "t").Styles, "fontSize")

	_, ok = ReplaceByID(nodes, &builder.ComponentNode{ID: "nope"})
	assert.False(t, ok)
}

func TestDuplicateIDs(t *testing.T) {
	nodes := parse(t, `[{"id":"x","type":"container","content":[{"id":"y","type":"text"},{"id":"x","type":"text"}]}]`)
	assert.Equal(t, []string{"x"}, DuplicateIDs(nodes))
}

func TestWalkHandlesDeepTreesIteratively(t *testing.T) {
	root := &builder.ComponentNode{ID: "n0", Type: builder.TypeContainer}
	current := root
	for i := 1; i < 1500; i++ {
		child := &builder.ComponentNode{ID: fmt.Sprintf("n%d", i), Type: builder.TypeContainer}
		current.SetChildren([]*builder.ComponentNode{child})
		current = child
	}
	nodes := []*builder.ComponentNode{root}
	assert.Equal(t, 1499, MaxDepth(nodes))
	assert.Len(t, GetPath(nodes, "n1499"), 1500)
}
