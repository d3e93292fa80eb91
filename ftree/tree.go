// Package ftree implements FilterTree (spec §3): the ordered, rooted
// multiway forest of filters that TreeState and the refresh engine
// operate on.
package ftree

import (
	"fmt"

	"github.com/threedepict/tomo/filter"
)

// Node is one filter in the tree, with its ordered children. Sibling
// order is user-visible and persisted (spec §3).
type Node struct {
	Filter   filter.Filter
	Parent   *Node
	Children []*Node
}

// Tree is an ordered forest of Nodes. Most analyses use a single root,
// but the model permits several (spec §3: "ordered, rooted multiway
// tree (forest)").
type Tree struct {
	Roots []*Node
}

// New returns an empty Tree.
func New() *Tree { return &Tree{} }

// AddChild inserts f as a new child of parent, or as a new root if
// parent is nil, appended after any existing siblings.
func (t *Tree) AddChild(parent *Node, f filter.Filter) *Node {
	n := &Node{Filter: f, Parent: parent}
	if parent == nil {
		t.Roots = append(t.Roots, n)
		return n
	}
	parent.Children = append(parent.Children, n)
	return n
}

// RemoveSubtree detaches n (and its entire subtree) from the tree.
func (t *Tree) RemoveSubtree(n *Node) {
	if n.Parent == nil {
		t.Roots = removeNode(t.Roots, n)
		return
	}
	n.Parent.Children = removeNode(n.Parent.Children, n)
}

func removeNode(list []*Node, n *Node) []*Node {
	out := list[:0]
	for _, c := range list {
		if c != n {
			out = append(out, c)
		}
	}
	return out
}

// IsDescendant reports whether candidate lies within n's subtree
// (including n itself).
func IsDescendant(n, candidate *Node) bool {
	if n == candidate {
		return true
	}
	for _, c := range n.Children {
		if IsDescendant(c, candidate) {
			return true
		}
	}
	return false
}

// Reparent moves n (with its subtree) to become the last child of
// newParent, or a root if newParent is nil. It is rejected if newParent
// is n itself or a descendant of n, which would create a cycle (spec
// §4.4).
func (t *Tree) Reparent(n, newParent *Node) error {
	if newParent != nil && IsDescendant(n, newParent) {
		return fmt.Errorf("ftree.Reparent: %q is a descendant of the filter being moved", newParent.Filter.TypeString())
	}
	t.RemoveSubtree(n)
	n.Parent = newParent
	if newParent == nil {
		t.Roots = append(t.Roots, n)
	} else {
		newParent.Children = append(newParent.Children, n)
	}
	return nil
}

// CopySubtree deep-clones the subtree rooted at n, with every filter's
// cache empty (spec §4.4: "deep-clones without caches"), and attaches
// the clone as the last child of dstParent (or as a new root if nil).
func (t *Tree) CopySubtree(n *Node, dstParent *Node) *Node {
	clone := cloneNode(n, nil)
	if dstParent == nil {
		t.Roots = append(t.Roots, clone)
	} else {
		clone.Parent = dstParent
		dstParent.Children = append(dstParent.Children, clone)
	}
	return clone
}

func cloneNode(n *Node, parent *Node) *Node {
	c := &Node{Filter: n.Filter.CloneUncached(), Parent: parent}
	for _, child := range n.Children {
		c.Children = append(c.Children, cloneNode(child, c))
	}
	return c
}

// Clone deep-clones the entire forest, every filter uncached. This is
// the representation used for undo/redo snapshots (spec §4.4: "undo/
// redo move whole trees by value"); the parameter and structural state
// are preserved exactly, at the cost of discarding cached outputs,
// which the engine simply rebuilds on the next refresh.
func (t *Tree) Clone() *Tree {
	out := &Tree{}
	for _, r := range t.Roots {
		out.Roots = append(out.Roots, cloneNode(r, nil))
	}
	return out
}

// Walk calls f for every node in the forest, in depth-first,
// sibling-order traversal — the order the refresh engine and handle
// reassignment both rely on.
func (t *Tree) Walk(f func(*Node)) {
	for _, r := range t.Roots {
		r.Walk(f)
	}
}

// Walk calls f for n and every node in its subtree, depth-first.
func (n *Node) Walk(f func(*Node)) {
	f(n)
	for _, c := range n.Children {
		c.Walk(f)
	}
}

// Find returns the first node for which pred returns true, via
// depth-first traversal.
func (t *Tree) Find(pred func(*Node) bool) (*Node, bool) {
	var found *Node
	t.Walk(func(n *Node) {
		if found == nil && pred(n) {
			found = n
		}
	})
	return found, found != nil
}
