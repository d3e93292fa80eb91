package ftree

import (
	"testing"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/filters"
)

func TestAddChildBuildsParentChildLinks(t *testing.T) {
	tree := New()
	root := tree.AddChild(nil, filters.NewIonLoad(nil))
	child := tree.AddChild(root, filters.NewDownsample())

	if len(tree.Roots) != 1 || tree.Roots[0] != root {
		t.Fatalf("Roots = %v, want [root]", tree.Roots)
	}
	if len(root.Children) != 1 || root.Children[0] != child {
		t.Fatalf("root.Children = %v, want [child]", root.Children)
	}
	if child.Parent != root {
		t.Fatal("child.Parent != root")
	}
}

func TestRemoveSubtreeDetachesRootAndNonRoot(t *testing.T) {
	tree := New()
	root := tree.AddChild(nil, filters.NewIonLoad(nil))
	child := tree.AddChild(root, filters.NewDownsample())

	tree.RemoveSubtree(child)
	if len(root.Children) != 0 {
		t.Fatalf("root.Children after removing non-root child = %v, want empty", root.Children)
	}

	tree.RemoveSubtree(root)
	if len(tree.Roots) != 0 {
		t.Fatalf("Roots after removing the only root = %v, want empty", tree.Roots)
	}
}

func TestIsDescendantIncludesSelfAndExcludesUnrelated(t *testing.T) {
	tree := New()
	root := tree.AddChild(nil, filters.NewIonLoad(nil))
	child := tree.AddChild(root, filters.NewDownsample())
	other := tree.AddChild(nil, filters.NewClip())

	if !IsDescendant(root, root) {
		t.Fatal("IsDescendant(root, root) = false, want true")
	}
	if !IsDescendant(root, child) {
		t.Fatal("IsDescendant(root, child) = false, want true")
	}
	if IsDescendant(root, other) {
		t.Fatal("IsDescendant(root, other) = true, want false")
	}
}

func TestReparentRejectsMovingIntoOwnDescendant(t *testing.T) {
	tree := New()
	root := tree.AddChild(nil, filters.NewIonLoad(nil))
	child := tree.AddChild(root, filters.NewDownsample())

	if err := tree.Reparent(root, child); err == nil {
		t.Fatal("Reparent accepted moving a node into its own descendant")
	}
}

func TestReparentMovesNodeAndUpdatesRoots(t *testing.T) {
	tree := New()
	rootA := tree.AddChild(nil, filters.NewIonLoad(nil))
	rootB := tree.AddChild(nil, filters.NewIonLoad(nil))
	child := tree.AddChild(rootA, filters.NewDownsample())

	if err := tree.Reparent(child, rootB); err != nil {
		t.Fatalf("Reparent: %v", err)
	}
	if len(rootA.Children) != 0 {
		t.Fatalf("rootA.Children after reparent = %v, want empty", rootA.Children)
	}
	if len(rootB.Children) != 1 || rootB.Children[0] != child {
		t.Fatalf("rootB.Children after reparent = %v, want [child]", rootB.Children)
	}
	if child.Parent != rootB {
		t.Fatal("child.Parent not updated to rootB")
	}
}

func TestCopySubtreeProducesDistinctFilterInstances(t *testing.T) {
	tree := New()
	root := tree.AddChild(nil, filters.NewIonLoad(nil))
	child := tree.AddChild(root, filters.NewDownsample())
	child.Filter.SetProperty("count", "500")

	clone := tree.CopySubtree(root, nil)
	if clone == root {
		t.Fatal("CopySubtree returned the same node, want a fresh clone")
	}
	if clone.Filter == root.Filter {
		t.Fatal("cloned root shares the original's Filter instance")
	}
	if len(clone.Children) != 1 {
		t.Fatalf("len(clone.Children) = %d, want 1", len(clone.Children))
	}
	if clone.Children[0].Filter == child.Filter {
		t.Fatal("cloned child shares the original's Filter instance")
	}
	if clone.Children[0].Parent != clone {
		t.Fatal("cloned child's Parent does not point at the cloned root")
	}
}

func TestCloneDuplicatesEveryRootIndependently(t *testing.T) {
	tree := New()
	tree.AddChild(nil, filters.NewIonLoad(nil))
	tree.AddChild(nil, filters.NewClip())

	dup := tree.Clone()
	if len(dup.Roots) != len(tree.Roots) {
		t.Fatalf("len(dup.Roots) = %d, want %d", len(dup.Roots), len(tree.Roots))
	}
	for i := range dup.Roots {
		if dup.Roots[i] == tree.Roots[i] {
			t.Fatalf("cloned root %d shares the original Node pointer", i)
		}
	}
}

func TestWalkVisitsEveryNodeDepthFirst(t *testing.T) {
	tree := New()
	root := tree.AddChild(nil, filters.NewIonLoad(nil))
	tree.AddChild(root, filters.NewDownsample())
	tree.AddChild(root, filters.NewClip())

	var visited []filter.TypeID
	tree.Walk(func(n *Node) { visited = append(visited, n.Filter.TypeID()) })
	if len(visited) != 3 {
		t.Fatalf("Walk visited %d nodes, want 3", len(visited))
	}
}

func TestFindLocatesMatchingNode(t *testing.T) {
	tree := New()
	root := tree.AddChild(nil, filters.NewIonLoad(nil))
	clip := tree.AddChild(root, filters.NewClip())

	found, ok := tree.Find(func(n *Node) bool { return n == clip })
	if !ok || found != clip {
		t.Fatal("Find did not locate the target node")
	}

	_, ok = tree.Find(func(n *Node) bool { return false })
	if ok {
		t.Fatal("Find reported a match when none should exist")
	}
}
