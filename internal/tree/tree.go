// Package tree implements the ordered-sibling parent-pointer tree shared
// by the folder and article hierarchies.
//
// Entities are stored as flat collections with parent references; the
// nested tree returned by [Build] is a derived, rebuildable projection and
// never the source of truth. This keeps cascading deletes and reorders
// simple set/filter operations over flat slices.
package tree

import (
	"slices"
)

// Node is the contract for tree-shaped entities.
//
// SiblingKey identifies the sibling group a node belongs to. For folders
// it is the parent id; for articles it combines parent id and folder id,
// because article sibling order is scoped to both.
type Node interface {
	NodeID() string
	NodeParentID() string
	NodeSortOrder() int
	SiblingKey() string
}

// Direction selects which adjacent sibling a reorder targets.
type Direction string

const (
	// Up moves a node before its preceding sibling.
	Up Direction = "up"
	// Down moves a node after its following sibling.
	Down Direction = "down"
)

// Item is a node in a built tree projection.
type Item[T Node] struct {
	Value    T
	Children []*Item[T]
}

// Build groups the flat collection by parent id and returns the roots.
//
// Nodes whose parent id is empty or does not resolve to an existing node
// become roots. Each level is sorted ascending by sort order; ties keep
// their input order.
func Build[T Node](nodes []T) []*Item[T] {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.NodeID()] = true
	}

	items := make(map[string]*Item[T], len(nodes))
	byParent := make(map[string][]*Item[T])
	for _, n := range nodes {
		it := &Item[T]{Value: n}
		items[n.NodeID()] = it
		parent := n.NodeParentID()
		if !known[parent] {
			parent = ""
		}
		byParent[parent] = append(byParent[parent], it)
	}

	for parent, children := range byParent {
		slices.SortStableFunc(children, func(a, b *Item[T]) int {
			return a.Value.NodeSortOrder() - b.Value.NodeSortOrder()
		})
		if parent != "" {
			items[parent].Children = children
		}
	}
	return byParent[""]
}

// Siblings returns the nodes sharing the given node's sibling group,
// sorted ascending by sort order (ties stable w.r.t. input order).
// Returns false if id is not in the collection.
func Siblings[T Node](nodes []T, id string) ([]T, bool) {
	var target T
	found := false
	for _, n := range nodes {
		if n.NodeID() == id {
			target = n
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}
	key := target.SiblingKey()
	var sibs []T
	for _, n := range nodes {
		if n.SiblingKey() == key {
			sibs = append(sibs, n)
		}
	}
	slices.SortStableFunc(sibs, func(a, b T) int {
		return a.NodeSortOrder() - b.NodeSortOrder()
	})
	return sibs, true
}

// Swap locates the node and its adjacent sibling in the requested
// direction and returns their indices in the original slice. The caller
// exchanges the two nodes' sort orders; positions in the slice are left
// untouched so gaps and ties elsewhere are preserved.
//
// Returns ok=false when id is unknown or the node is already at the
// boundary (first sibling moving up, last moving down).
func Swap[T Node](nodes []T, id string, dir Direction) (i, j int, ok bool) {
	sibs, found := Siblings(nodes, id)
	if !found {
		return 0, 0, false
	}
	pos := slices.IndexFunc(sibs, func(n T) bool { return n.NodeID() == id })
	var other int
	switch dir {
	case Up:
		other = pos - 1
	case Down:
		other = pos + 1
	default:
		return 0, 0, false
	}
	if other < 0 || other >= len(sibs) {
		return 0, 0, false
	}
	i = slices.IndexFunc(nodes, func(n T) bool { return n.NodeID() == id })
	j = slices.IndexFunc(nodes, func(n T) bool { return n.NodeID() == sibs[other].NodeID() })
	return i, j, true
}

// CollectSubtree walks breadth-first from rootID and returns the ids of
// the root and all transitive descendants. The parent graph is acyclic by
// construction, so no visited bookkeeping beyond the result set is needed.
func CollectSubtree[T Node](nodes []T, rootID string) map[string]struct{} {
	collected := map[string]struct{}{rootID: {}}
	queue := []string{rootID}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, n := range nodes {
			id := n.NodeID()
			if n.NodeParentID() != parent {
				continue
			}
			if _, seen := collected[id]; seen {
				continue
			}
			collected[id] = struct{}{}
			queue = append(queue, id)
		}
	}
	return collected
}

// NextSortOrder returns the sort order for a new node joining the given
// sibling group: max over existing siblings plus one, or zero when the
// group is empty. New nodes therefore always sort last without
// resequencing existing siblings.
func NextSortOrder[T Node](nodes []T, siblingKey string) int {
	next := 0
	for _, n := range nodes {
		if n.SiblingKey() == siblingKey && n.NodeSortOrder() >= next {
			next = n.NodeSortOrder() + 1
		}
	}
	return next
}
