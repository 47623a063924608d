package tree

import "github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"

// FindByID returns the first node with the id, or nil.
func FindByID(nodes []*builder.ComponentNode, id string) *builder.ComponentNode {
	var found *builder.ComponentNode
	Walk(nodes, func(v Visit) bool {
		if v.Node.ID == id {
			found = v.Node
			return false
		}
		return true
	})
	return found
}

// FindParent returns the parent of the node with the id; nil for root nodes or unknown ids.
func FindParent(nodes []*builder.ComponentNode, id string) *builder.ComponentNode {
	var parent *builder.ComponentNode
	Walk(nodes, func(v Visit) bool {
		if v.Node.ID == id {
			parent = v.Parent
			return false
		}
		return true
	})
	return parent
}

// GetPath returns the sibling indices from the root to the node, or nil when absent.
func GetPath(nodes []*builder.ComponentNode, id string) []int {
	var path []int
	Walk(nodes, func(v Visit) bool {
		if v.Node.ID == id {
			path = v.Path
			return false
		}
		return true
	})
	return path
}

// GetByPath dereferences a path produced by GetPath against the same tree revision. An
// invalid path yields nil.
func GetByPath(nodes []*builder.ComponentNode, path []int) *builder.ComponentNode {
	if len(path) == 0 {
		return nil
	}
	siblings := nodes
	var current *builder.ComponentNode
	for depth, i := range path {
		if i < 0 || i >= len(siblings) {
			return nil
		}
		current = siblings[i]
		if depth == len(path)-1 {
			break
		}
		children, ok := current.ChildSlot()
		if !ok {
			return nil
		}
		siblings = children
	}
	return current
}

// RemoveByID returns a new tree without the node. The input is left untouched; unknown and
// protected ids leave the tree as it was.
func RemoveByID(nodes []*builder.ComponentNode, id string) []*builder.ComponentNode {
	path := GetPath(nodes, id)
	if path == nil || GetByPath(nodes, path).IsProtected() {
		return append([]*builder.ComponentNode{}, nodes...)
	}
	return rewrite(nodes, path, func(siblings []*builder.ComponentNode, i int) []*builder.ComponentNode {
		out := make([]*builder.ComponentNode, 0, len(siblings)-1)
		out = append(out, siblings[:i]...)
		return append(out, siblings[i+1:]...)
	})
}

// ReplaceByID returns a new tree with the node of the same id swapped for replacement.
func ReplaceByID(nodes []*builder.ComponentNode, replacement *builder.ComponentNode) ([]*builder.ComponentNode, bool) {
	if replacement == nil {
		return nodes, false
	}
	path := GetPath(nodes, replacement.ID)
	if path == nil {
		return nodes, false
	}
	return rewrite(nodes, path, func(siblings []*builder.ComponentNode, i int) []*builder.ComponentNode {
		out := append([]*builder.ComponentNode{}, siblings...)
		out[i] = replacement
		return out
	}), true
}

// InsertAt returns a new tree with node inserted into the child slot of parentID (the root list
// when parentID is empty) at index, clamped to the slot bounds. It reports false when the parent
// is unknown or has no child slot.
func InsertAt(nodes []*builder.ComponentNode, parentID string, index int, node *builder.ComponentNode) ([]*builder.ComponentNode, bool) {
	if node == nil {
		return nodes, false
	}
	insert := func(siblings []*builder.ComponentNode) []*builder.ComponentNode {
		if index < 0 || index > len(siblings) {
			index = len(siblings)
		}
		out := make([]*builder.ComponentNode, 0, len(siblings)+1)
		out = append(out, siblings[:index]...)
		out = append(out, node)
		return append(out, siblings[index:]...)
	}

	if parentID == "" {
		return insert(nodes), true
	}
	path := GetPath(nodes, parentID)
	if path == nil {
		return nodes, false
	}
	if _, ok := GetByPath(nodes, path).ChildSlot(); !ok {
		return nodes, false
	}
	return rewrite(nodes, path, func(siblings []*builder.ComponentNode, i int) []*builder.ComponentNode {
		out := append([]*builder.ComponentNode{}, siblings...)
		parent := shallowCopy(siblings[i])
		children, _ := parent.ChildSlot()
		parent.SetChildren(insert(children))
		out[i] = parent
		return out
	}), true
}

// rewrite copies the spine along path and lets edit produce the new sibling slice that holds
// the last path element. Nodes off the spine are shared with the input.
func rewrite(nodes []*builder.ComponentNode, path []int, edit func(siblings []*builder.ComponentNode, i int) []*builder.ComponentNode) []*builder.ComponentNode {
	i := path[0]
	if len(path) == 1 {
		return edit(nodes, i)
	}
	out := append([]*builder.ComponentNode{}, nodes...)
	parent := shallowCopy(nodes[i])
	children, _ := parent.ChildSlot()
	parent.SetChildren(rewrite(children, path[1:], edit))
	out[i] = parent
	return out
}

func shallowCopy(n *builder.ComponentNode) *builder.ComponentNode {
	cp := *n
	return &cp
}
