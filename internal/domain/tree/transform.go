package tree

import (
	"sort"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
)

// Flatten lists the tree in pre-order with parent, depth and sibling order annotations.
func Flatten(nodes []*builder.ComponentNode) []builder.FlatItem {
	items := make([]builder.FlatItem, 0, len(nodes))
	orders := map[string]int{}

	Walk(nodes, func(v Visit) bool {
		var parentID *string
		parentKey := ""
		if v.Parent != nil {
			id := v.Parent.ID
			parentID = &id
			parentKey = id
		}
		order := orders[parentKey]
		orders[parentKey] = order + 1

		children := []*builder.ComponentNode{}
		if slot, ok := v.Node.ChildSlot(); ok {
			children = append(children, slot...)
		}

		items = append(items, builder.FlatItem{
			ID:       v.Node.ID,
			Type:     v.Node.Type,
			ParentID: parentID,
			Depth:    v.Depth,
			Order:    order,
			Data: builder.FlatData{
				Type:    v.Node.Type,
				Content: v.Node.Content.WithoutChildren(),
				Styles:  v.Node.Styles.Clone(),
			},
			Children: children,
		})
		return true
	})
	return items
}

// Rebuild assembles the nested tree from flat items. Siblings are ordered by Order (stable for
// ties), items whose parent is not in the list are dropped, and repeated ids keep the first item.
func Rebuild(items []builder.FlatItem) []*builder.ComponentNode {
	nodes := make(map[string]*builder.ComponentNode, len(items))
	kept := make([]builder.FlatItem, 0, len(items))
	for _, item := range items {
		if _, dup := nodes[item.ID]; dup {
			continue
		}
		typ := item.Data.Type
		if typ == "" {
			typ = item.Type
		}
		n := &builder.ComponentNode{
			ID:      item.ID,
			Type:    typ,
			Content: item.Data.Content.WithoutChildren(),
			Styles:  item.Data.Styles.Clone(),
		}
		n.SetChildren(nil)
		nodes[item.ID] = n
		kept = append(kept, item)
	}

	groups := map[string][]builder.FlatItem{}
	for _, item := range kept {
		parent := item.Parent()
		if parent != "" {
			if _, ok := nodes[parent]; !ok {
				continue
			}
		}
		groups[parent] = append(groups[parent], item)
	}

	attach := func(group []builder.FlatItem) []*builder.ComponentNode {
		sort.SliceStable(group, func(i, j int) bool { return group[i].Order < group[j].Order })
		out := make([]*builder.ComponentNode, 0, len(group))
		for _, item := range group {
			out = append(out, nodes[item.ID])
		}
		return out
	}

	for parent, group := range groups {
		if parent == "" {
			continue
		}
		nodes[parent].SetChildren(attach(group))
	}
	return attach(groups[""])
}
