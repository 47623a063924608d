// Package tree converts the nested component tree to and from the flat editor list and
// provides the lookup, mutation and history utilities the editor commands use.
package tree

import "github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"

// Visit describes one node reached by Walk.
type Visit struct {
	Node   *builder.ComponentNode
	Parent *builder.ComponentNode
	Depth  int
	// Index is the node's position in its sibling slice.
	Index int
	// Path holds the sibling indices from the root down to the node.
	Path []int
}

type frame struct {
	node   *builder.ComponentNode
	parent *builder.ComponentNode
	depth  int
	index  int
	path   []int
}

// Walk visits the tree depth-first in pre-order using an explicit stack. Returning false from
// fn stops the walk. A node reachable twice is only visited once.
func Walk(nodes []*builder.ComponentNode, fn func(Visit) bool) {
	stack := make([]frame, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: nodes[i], index: i, path: []int{i}})
	}
	seen := make(map[*builder.ComponentNode]bool)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.node == nil || seen[f.node] {
			continue
		}
		seen[f.node] = true

		if !fn(Visit{Node: f.node, Parent: f.parent, Depth: f.depth, Index: f.index, Path: f.path}) {
			return
		}

		children, ok := f.node.ChildSlot()
		if !ok {
			continue
		}
		for i := len(children) - 1; i >= 0; i-- {
			path := make([]int, len(f.path)+1)
			copy(path, f.path)
			path[len(f.path)] = i
			stack = append(stack, frame{node: children[i], parent: f.node, depth: f.depth + 1, index: i, path: path})
		}
	}
}

// MaxDepth returns the depth of the deepest node, -1 for an empty tree.
func MaxDepth(nodes []*builder.ComponentNode) int {
	deepest := -1
	Walk(nodes, func(v Visit) bool {
		if v.Depth > deepest {
			deepest = v.Depth
		}
		return true
	})
	return deepest
}

// DuplicateIDs returns ids used by more than one node, in first-seen order.
func DuplicateIDs(nodes []*builder.ComponentNode) []string {
	counts := map[string]int{}
	var dups []string
	Walk(nodes, func(v Visit) bool {
		counts[v.Node.ID]++
		if counts[v.Node.ID] == 2 {
			dups = append(dups, v.Node.ID)
		}
		return true
	})
	return dups
}

// Count returns the number of nodes in the tree.
func Count(nodes []*builder.ComponentNode) int {
	n := 0
	Walk(nodes, func(Visit) bool {
		n++
		return true
	})
	return n
}
