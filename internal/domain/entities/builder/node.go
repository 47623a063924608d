// Package builder defines the page-builder domain entities: the persisted component tree,
// its flattened editor form and the page/theme records that carry it.
package builder

import (
	"bytes"
	"encoding/json"
)

// ComponentType names a builder component kind.
type ComponentType string

const (
	TypeContainer   ComponentType = "container"
	TypeSection     ComponentType = "section"
	TypeColumn      ComponentType = "column"
	TypePageContent ComponentType = "pageContent"

	TypeBanner   ComponentType = "banner"
	TypeProduct  ComponentType = "product"
	TypeCarousel ComponentType = "carousel"
	TypeBento    ComponentType = "bento"
	TypeHeader   ComponentType = "header"
	TypeFooter   ComponentType = "footer"

	TypeTitle              ComponentType = "title"
	TypeSubtitle           ComponentType = "subtitle"
	TypeText               ComponentType = "text"
	TypeLogo               ComponentType = "logo"
	TypeImage              ComponentType = "image"
	TypeButton             ComponentType = "button"
	TypeProductCard        ComponentType = "product-card"
	TypeProductTitle       ComponentType = "product-title"
	TypeProductPrice       ComponentType = "product-price"
	TypeProductDescription ComponentType = "product-description"
	TypeDivider            ComponentType = "divider"
	TypeSpacer             ComponentType = "spacer"
)

// PageContentID is the id the editor gives the page root node.
const PageContentID = "pageContent"

// Kind decides the shape of a node's content.
type Kind int

const (
	// KindLeaf content is a scalar or an opaque object.
	KindLeaf Kind = iota
	// KindContainer content is the children array itself.
	KindContainer
	// KindComposite content is an object whose children field holds the children.
	KindComposite
)

var componentKinds = map[ComponentType]Kind{
	TypeContainer:   KindContainer,
	TypeSection:     KindContainer,
	TypeColumn:      KindContainer,
	TypePageContent: KindContainer,
	TypeBanner:      KindComposite,
	TypeProduct:     KindComposite,
	TypeCarousel:    KindComposite,
	TypeBento:       KindComposite,
	TypeHeader:      KindComposite,
	TypeFooter:      KindComposite,
}

// KindOf returns the content kind of a component type. Unknown types are leaves.
func KindOf(t ComponentType) Kind {
	if k, ok := componentKinds[t]; ok {
		return k
	}
	return KindLeaf
}

// Styles holds custom style entries: literals or theme references.
type Styles map[string]any

// Clone deep-copies the style bag.
func (s Styles) Clone() Styles {
	if s == nil {
		return Styles{}
	}
	out := make(Styles, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// Content is the tagged union carried by a node; which field is meaningful depends on the
// node's Kind.
type Content struct {
	// Children is the child slot of containers and composites.
	Children []*ComponentNode
	// Fields is the composite configuration, without its children.
	Fields map[string]any
	// Value is the leaf payload: text, URL or an opaque object.
	Value any
}

// ComponentNode is one element of the persisted layout tree.
type ComponentNode struct {
	ID      string        `json:"id"`
	Type    ComponentType `json:"type"`
	Content Content       `json:"content"`
	Styles  Styles        `json:"styles"`
}

// Kind returns the content kind of the node.
func (n *ComponentNode) Kind() Kind {
	return KindOf(n.Type)
}

// ChildSlot returns the node's children and whether the node has a child slot at all.
func (n *ComponentNode) ChildSlot() ([]*ComponentNode, bool) {
	if n == nil || n.Kind() == KindLeaf {
		return nil, false
	}
	return n.Content.Children, true
}

// SetChildren replaces the child slot. It is ignored for leaves.
func (n *ComponentNode) SetChildren(children []*ComponentNode) {
	if n == nil || n.Kind() == KindLeaf {
		return
	}
	if children == nil {
		children = []*ComponentNode{}
	}
	n.Content.Children = children
}

// IsProtected reports whether the node is the page root the editor never deletes.
func (n *ComponentNode) IsProtected() bool {
	return n != nil && (n.Type == TypePageContent || n.ID == PageContentID)
}

// Clone returns a deep copy of the node and its subtree.
func (n *ComponentNode) Clone() *ComponentNode {
	if n == nil {
		return nil
	}
	return &ComponentNode{
		ID:      n.ID,
		Type:    n.Type,
		Content: n.Content.Clone(),
		Styles:  n.Styles.Clone(),
	}
}

// Clone deep-copies the content including the child subtree.
func (c Content) Clone() Content {
	out := Content{Value: cloneValue(c.Value)}
	if c.Children != nil {
		out.Children = CloneTree(c.Children)
	}
	if c.Fields != nil {
		out.Fields = cloneMap(c.Fields)
	}
	return out
}

// WithoutChildren returns a copy of the content with an empty child slot.
func (c Content) WithoutChildren() Content {
	out := Content{Value: cloneValue(c.Value)}
	if c.Fields != nil {
		out.Fields = cloneMap(c.Fields)
	}
	return out
}

// CloneTree deep-copies a list of nodes.
func CloneTree(nodes []*ComponentNode) []*ComponentNode {
	out := make([]*ComponentNode, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, n.Clone())
	}
	return out
}

type nodeJSON struct {
	ID      string          `json:"id"`
	Type    ComponentType   `json:"type"`
	Content json.RawMessage `json:"content"`
	Styles  Styles          `json:"styles"`
}

// MarshalJSON encodes the content in the shape dictated by the node type.
func (n ComponentNode) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(n.Content.encode(n.Kind()))
	if err != nil {
		return nil, err
	}
	styles := n.Styles
	if styles == nil {
		styles = Styles{}
	}
	return json.Marshal(nodeJSON{ID: n.ID, Type: n.Type, Content: raw, Styles: styles})
}

// UnmarshalJSON decodes the content according to the node type. A content payload that does
// not match its type degrades to an empty value instead of failing the whole layout.
func (n *ComponentNode) UnmarshalJSON(data []byte) error {
	var aux nodeJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	n.ID = aux.ID
	n.Type = aux.Type
	n.Styles = aux.Styles
	if n.Styles == nil {
		n.Styles = Styles{}
	}
	n.Content = decodeContent(KindOf(aux.Type), aux.Content)
	return nil
}

func (c Content) encode(kind Kind) any {
	switch kind {
	case KindContainer:
		if c.Children == nil {
			return []*ComponentNode{}
		}
		return c.Children
	case KindComposite:
		out := make(map[string]any, len(c.Fields)+1)
		for k, v := range c.Fields {
			out[k] = v
		}
		children := c.Children
		if children == nil {
			children = []*ComponentNode{}
		}
		out["children"] = children
		return out
	default:
		return c.Value
	}
}

func decodeContent(kind Kind, raw json.RawMessage) Content {
	raw = bytes.TrimSpace(raw)
	switch kind {
	case KindContainer:
		children := []*ComponentNode{}
		if len(raw) > 0 {
			var decoded []*ComponentNode
			if err := json.Unmarshal(raw, &decoded); err == nil {
				children = compact(decoded)
			}
		}
		return Content{Children: children}
	case KindComposite:
		c := Content{Children: []*ComponentNode{}, Fields: map[string]any{}}
		var obj map[string]json.RawMessage
		if len(raw) == 0 || json.Unmarshal(raw, &obj) != nil {
			return c
		}
		for k, v := range obj {
			if k == "children" {
				var decoded []*ComponentNode
				if err := json.Unmarshal(v, &decoded); err == nil {
					c.Children = compact(decoded)
				}
				continue
			}
			var field any
			if err := json.Unmarshal(v, &field); err == nil {
				c.Fields[k] = field
			}
		}
		return c
	default:
		var value any
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &value)
		}
		return Content{Value: value}
	}
}

func compact(nodes []*ComponentNode) []*ComponentNode {
	out := make([]*ComponentNode, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// ParseLayout decodes a persisted layout string. Empty input is an empty tree.
func ParseLayout(layout string) ([]*ComponentNode, error) {
	trimmed := bytes.TrimSpace([]byte(layout))
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []*ComponentNode{}, nil
	}
	var nodes []*ComponentNode
	if err := json.Unmarshal(trimmed, &nodes); err != nil {
		return nil, err
	}
	return compact(nodes), nil
}

// EncodeLayout serializes a tree into its persisted string form.
func EncodeLayout(nodes []*ComponentNode) (string, error) {
	if nodes == nil {
		nodes = []*ComponentNode{}
	}
	b, err := json.Marshal(nodes)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}
