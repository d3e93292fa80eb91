// Package treestate implements TreeState (spec §3, §4.4): the mutating
// interface over a FilterTree, with undo/redo, stable external handles,
// and the single-writer refresh lock.
package treestate

import (
	"fmt"
	"sync"

	"github.com/threedepict/tomo/drawable"
	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/ftree"
)

// Handle is a stable, dense external reference to a filter. Handles
// survive add/remove/set-property/reparent but are invalidated by
// copy_subtree and by undo/redo (spec §4.4); callers must call
// RebuildHandles after either and discard any handle they were holding.
type Handle uint64

// MaxUndoDepth is the bounded undo/redo stack depth (spec §4.4: "bounded
// (~10)").
const MaxUndoDepth = 10

// TreeState wraps a ftree.Tree with the mutation API spec §4.4
// describes. The zero value is not usable; construct with New.
type TreeState struct {
	mu sync.Mutex

	tree *ftree.Tree

	handleOf map[*ftree.Node]Handle
	nodeOf   map[Handle]*ftree.Node
	nextH    Handle

	undoStack []*ftree.Tree
	redoStack []*ftree.Tree

	selectionDevices []drawable.Binding

	refreshHeld bool
}

// New returns a TreeState wrapping an empty tree.
func New() *TreeState {
	return &TreeState{
		tree:     ftree.New(),
		handleOf: make(map[*ftree.Node]Handle),
		nodeOf:   make(map[Handle]*ftree.Node),
	}
}

// Tree returns the current tree. Callers must not mutate it directly;
// use TreeState's methods so undo/redo and handles stay consistent.
func (ts *TreeState) Tree() *ftree.Tree { return ts.tree }

// SelectionDevices returns the bindings produced by the most recent
// refresh.
func (ts *TreeState) SelectionDevices() []drawable.Binding { return ts.selectionDevices }

// SetSelectionDevices replaces the selection device list; called by the
// refresh engine after a successful refresh.
func (ts *TreeState) SetSelectionDevices(b []drawable.Binding) { ts.selectionDevices = b }

func (ts *TreeState) pushUndo() {
	ts.undoStack = append(ts.undoStack, ts.tree.Clone())
	if len(ts.undoStack) > MaxUndoDepth {
		ts.undoStack = ts.undoStack[1:]
	}
	ts.redoStack = nil
}

func (ts *TreeState) popUndo() {
	ts.undoStack = ts.undoStack[:len(ts.undoStack)-1]
}

// AcquireRefresh acquires the single-writer refresh exclusion token
// (spec §5). It returns false if a refresh is already in progress, in
// which case the caller must reject or defer the mutation.
func (ts *TreeState) AcquireRefresh() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.refreshHeld {
		return false
	}
	ts.refreshHeld = true
	return true
}

// ReleaseRefresh releases the refresh exclusion token.
func (ts *TreeState) ReleaseRefresh() {
	ts.mu.Lock()
	ts.refreshHeld = false
	ts.mu.Unlock()
}

// RefreshInProgress reports whether the exclusion token is currently
// held.
func (ts *TreeState) RefreshInProgress() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.refreshHeld
}

// AddFilter pushes the current tree onto the undo stack, then inserts
// f as a child of the filter named by parent (or as a root if parent is
// the zero Handle), assigning the new filter a fresh stable handle.
func (ts *TreeState) AddFilter(f filter.Filter, parent Handle) Handle {
	ts.pushUndo()
	var parentNode *ftree.Node
	if parent != 0 {
		parentNode = ts.nodeOf[parent]
	}
	n := ts.tree.AddChild(parentNode, f)
	ts.nextH++
	h := ts.nextH
	ts.handleOf[n] = h
	ts.nodeOf[h] = n
	return h
}

// RemoveSubtree pushes undo, deletes the subtree rooted at id
// (cascade), and invalidates every handle within it.
func (ts *TreeState) RemoveSubtree(id Handle) error {
	n, ok := ts.nodeOf[id]
	if !ok {
		return fmt.Errorf("treestate.RemoveSubtree: unknown handle %d", id)
	}
	ts.pushUndo()
	ts.tree.RemoveSubtree(n)
	var drop []*ftree.Node
	n.Walk(func(c *ftree.Node) { drop = append(drop, c) })
	for _, c := range drop {
		if h, ok := ts.handleOf[c]; ok {
			delete(ts.nodeOf, h)
			delete(ts.handleOf, c)
		}
	}
	return nil
}

// CopySubtree deep-clones the subtree rooted at srcID (without caches)
// and attaches it under dstParent (or as a root if the zero Handle).
// Per spec §4.4 this invalidates the whole handle map; callers must
// call RebuildHandles afterward.
func (ts *TreeState) CopySubtree(srcID, dstParent Handle) error {
	src, ok := ts.nodeOf[srcID]
	if !ok {
		return fmt.Errorf("treestate.CopySubtree: unknown handle %d", srcID)
	}
	var dstNode *ftree.Node
	if dstParent != 0 {
		dstNode, ok = ts.nodeOf[dstParent]
		if !ok {
			return fmt.Errorf("treestate.CopySubtree: unknown handle %d", dstParent)
		}
	}
	ts.pushUndo()
	ts.tree.CopySubtree(src, dstNode)
	ts.invalidateHandles()
	return nil
}

// Reparent pushes undo and moves id (with its subtree) under
// newParent. It fails, rolling back the undo push, if newParent is id
// itself or one of its descendants.
func (ts *TreeState) Reparent(id, newParent Handle) error {
	n, ok := ts.nodeOf[id]
	if !ok {
		return fmt.Errorf("treestate.Reparent: unknown handle %d", id)
	}
	var newParentNode *ftree.Node
	if newParent != 0 {
		newParentNode, ok = ts.nodeOf[newParent]
		if !ok {
			return fmt.Errorf("treestate.Reparent: unknown handle %d", newParent)
		}
	}
	ts.pushUndo()
	if err := ts.tree.Reparent(n, newParentNode); err != nil {
		ts.popUndo()
		return err
	}
	return nil
}

// SetProperty pushes undo, then attempts to set key=value on the filter
// named by id. If the filter rejects the value, the undo frame just
// pushed is discarded.
func (ts *TreeState) SetProperty(id Handle, key, value string) (ok, needsUpdate bool, err error) {
	n, found := ts.nodeOf[id]
	if !found {
		return false, false, fmt.Errorf("treestate.SetProperty: unknown handle %d", id)
	}
	ts.pushUndo()
	ok, needsUpdate = n.Filter.SetProperty(key, value)
	if !ok {
		ts.popUndo()
	}
	return ok, needsUpdate, nil
}

// ApplyBinding pushes undo, clears the target filter's cache, and
// applies b's delta to it.
func (ts *TreeState) ApplyBinding(id Handle, b drawable.Binding, delta [3]float64, transient bool) error {
	n, ok := ts.nodeOf[id]
	if !ok {
		return fmt.Errorf("treestate.ApplyBinding: unknown handle %d", id)
	}
	ts.pushUndo()
	n.Filter.ClearCache()
	if err := b.Apply(delta, transient); err != nil {
		ts.popUndo()
		return err
	}
	return nil
}

// Undo swaps the current tree with the top of the undo stack and
// pushes the displaced tree onto the redo stack. It invalidates every
// handle; callers must call RebuildHandles afterward.
func (ts *TreeState) Undo() bool {
	if len(ts.undoStack) == 0 {
		return false
	}
	prev := ts.undoStack[len(ts.undoStack)-1]
	ts.undoStack = ts.undoStack[:len(ts.undoStack)-1]
	ts.redoStack = append(ts.redoStack, ts.tree)
	ts.tree = prev
	ts.invalidateHandles()
	return true
}

// Redo is the symmetric counterpart of Undo.
func (ts *TreeState) Redo() bool {
	if len(ts.redoStack) == 0 {
		return false
	}
	next := ts.redoStack[len(ts.redoStack)-1]
	ts.redoStack = ts.redoStack[:len(ts.redoStack)-1]
	ts.undoStack = append(ts.undoStack, ts.tree)
	ts.tree = next
	ts.invalidateHandles()
	return true
}

func (ts *TreeState) invalidateHandles() {
	ts.handleOf = make(map[*ftree.Node]Handle)
	ts.nodeOf = make(map[Handle]*ftree.Node)
}

// RebuildHandles reassigns a fresh, dense set of handles in depth-first
// traversal order (spec §4.4: "rebuilt by reassigning handles in a
// deterministic traversal order"). Call this after CopySubtree, Undo,
// or Redo.
func (ts *TreeState) RebuildHandles() {
	ts.handleOf = make(map[*ftree.Node]Handle)
	ts.nodeOf = make(map[Handle]*ftree.Node)
	ts.nextH = 0
	ts.tree.Walk(func(n *ftree.Node) {
		ts.nextH++
		h := ts.nextH
		ts.handleOf[n] = h
		ts.nodeOf[h] = n
	})
}

// LoadTree replaces the wrapped tree wholesale and rebuilds handles,
// clearing undo/redo history. Used by statefile.Load to install a tree
// read from disk; not used by any in-session mutation, which always
// goes through the incremental methods above so undo/redo stays
// consistent.
func (ts *TreeState) LoadTree(t *ftree.Tree) {
	ts.tree = t
	ts.undoStack = nil
	ts.redoStack = nil
	ts.RebuildHandles()
}

// Resolve returns the node for a handle.
func (ts *TreeState) Resolve(h Handle) (*ftree.Node, bool) {
	n, ok := ts.nodeOf[h]
	return n, ok
}

// HandleOf returns the handle for a node, if it has a current one.
func (ts *TreeState) HandleOf(n *ftree.Node) (Handle, bool) {
	h, ok := ts.handleOf[n]
	return h, ok
}
