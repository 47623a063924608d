package builder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLayout = `[
  {"id":"root","type":"pageContent","content":[
    {"id":"hero","type":"banner","content":{"image":"/hero.jpg","children":[
      {"id":"t1","type":"title","content":"Summer sale","styles":{"color":"theme.heading"}}
    ]},"styles":{"background":"#fff"}},
    {"id":"logo","type":"logo","content":{"src":"/logo.svg","alt":"Shop"},"styles":{}}
  ],"styles":{}}
]`

func TestParseLayoutDecodesContentByKind(t *testing.T) {
	nodes, err := ParseLayout(sampleLayout)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	root := nodes[0]
	children, ok := root.ChildSlot()
	require.True(t, ok)
	require.Len(t, children, 2)

	banner := children[0]
	assert.Equal(t, KindComposite, banner.Kind())
	assert.Equal(t, "/hero.jpg", banner.Content.Fields["image"])
	bannerChildren, ok := banner.ChildSlot()
	require.True(t, ok)
	require.Len(t, bannerChildren, 1)
	assert.Equal(t, "Summer sale", bannerChildren[0].Content.Value)

	logo := children[1]
	_, ok = logo.ChildSlot()
	assert.False(t, ok)
	assert.Equal(t, map[string]any{"src": "/logo.svg", "alt": "Shop"}, logo.Content.Value)
}

func TestLayoutEncodeKeepsShape(t *testing.T) {
	nodes, err := ParseLayout(sampleLayout)
	require.NoError(t, err)

	encoded, err := EncodeLayout(nodes)
	require.NoError(t, err)
	assert.JSONEq(t, sampleLayout, encoded)
}

func TestMalformedContentDegrades(t *testing.T) {
	nodes, err := ParseLayout(`[{"id":"c","type":"container","content":"oops"},{"id":"b","type":"bento","content":[1,2]}]`)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	children, ok := nodes[0].ChildSlot()
	require.True(t, ok)
	assert.Empty(t, children)
	assert.NotNil(t, nodes[0].Styles)

	children, ok = nodes[1].ChildSlot()
	require.True(t, ok)
	assert.Empty(t, children)
}

func TestParseLayoutEmpty(t *testing.T) {
	for _, in := range []string{"", "  ", "null", "[]"} {
		nodes, err := ParseLayout(in)
		require.NoError(t, err)
		assert.Empty(t, nodes)
	}
}

func TestCloneIsDeep(t *testing.T) {
	nodes, err := ParseLayout(sampleLayout)
	require.NoError(t, err)

	copied := CloneTree(nodes)
	copied[0].Content.Children[0].Content.Fields["image"] = "/other.jpg"
	copied[0].Content.Children[0].Styles["background"] = "#000"

	assert.Equal(t, "/hero.jpg", nodes[0].Content.Children[0].Content.Fields["image"])
	assert.Equal(t, "#fff", nodes[0].Content.Children[0].Styles["background"])
}

func TestProtectedNode(t *testing.T) {
	assert.True(t, (&ComponentNode{ID: "x", Type: TypePageContent}).IsProtected())
	assert.True(t, (&ComponentNode{ID: PageContentID, Type: TypeContainer}).IsProtected())
	assert.False(t, (&ComponentNode{ID: "x", Type: TypeContainer}).IsProtected())
}

func TestFlatDataRoundTrip(t *testing.T) {
	data := FlatData{
		Type:    TypeBanner,
		Content: Content{Fields: map[string]any{"image": "/a.png"}, Children: []*ComponentNode{{ID: "x", Type: TypeText}}},
		Styles:  Styles{"color": "red"},
	}
	b, err := json.Marshal(data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"banner","content":{"image":"/a.png","children":[]},"styles":{"color":"red"}}`, string(b))

	var decoded FlatData
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "/a.png", decoded.Content.Fields["image"])
	assert.Nil(t, decoded.Content.Children)
}
