package treestate

import (
	"testing"

	"github.com/threedepict/tomo/filters"
)

func TestUndoRedoRestoresStructureAndValues(t *testing.T) {
	ts := New()
	root := ts.AddFilter(filters.NewDownsample(), 0)
	ts.SetProperty(root, "fraction", "0.2")

	before := ts.Tree().Clone()
	child := ts.AddFilter(filters.NewDownsample(), root)
	ts.SetProperty(child, "fraction", "0.9")

	if !ts.Undo() {
		t.Fatal("Undo reported no work to undo")
	}
	ts.RebuildHandles()
	if len(ts.Tree().Roots) != len(before.Roots) {
		t.Fatalf("after undo: %d roots, want %d", len(ts.Tree().Roots), len(before.Roots))
	}
	p, _ := ts.Tree().Roots[0].Filter.Properties().Find("fraction")
	if p.Value != "0.2" {
		t.Fatalf("after undo: fraction = %q, want 0.2", p.Value)
	}

	if !ts.Redo() {
		t.Fatal("Redo reported no work to redo")
	}
	ts.RebuildHandles()
	if len(ts.Tree().Roots[0].Children) != 1 {
		t.Fatalf("after redo: %d children, want 1", len(ts.Tree().Roots[0].Children))
	}
}

func TestHandlesStableAcrossMutation(t *testing.T) {
	ts := New()
	a := ts.AddFilter(filters.NewDownsample(), 0)
	b := ts.AddFilter(filters.NewVoxelize(), 0)

	ts.SetProperty(a, "fraction", "0.5")
	c := ts.AddFilter(filters.NewClip(), a)
	ts.Reparent(c, 0)

	nodeA, ok := ts.Resolve(a)
	if !ok || nodeA.Filter.TypeString() != "Downsample" {
		t.Fatalf("handle a no longer resolves to Downsample")
	}
	nodeB, ok := ts.Resolve(b)
	if !ok || nodeB.Filter.TypeString() != "Voxelize" {
		t.Fatalf("handle b no longer resolves to Voxelize")
	}
}

func TestCopySubtreeInvalidatesHandlesUntilRebuilt(t *testing.T) {
	ts := New()
	a := ts.AddFilter(filters.NewDownsample(), 0)

	if err := ts.CopySubtree(a, 0); err != nil {
		t.Fatalf("CopySubtree: %v", err)
	}
	if _, ok := ts.Resolve(a); ok {
		t.Fatal("handle still resolves before RebuildHandles")
	}
	ts.RebuildHandles()
	if len(ts.Tree().Roots) != 2 {
		t.Fatalf("after copy: %d roots, want 2", len(ts.Tree().Roots))
	}
}
