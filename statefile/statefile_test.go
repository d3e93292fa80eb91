package statefile

import (
	"bytes"
	"testing"

	"github.com/threedepict/tomo/analysis"
	"github.com/threedepict/tomo/filters"
)

func TestWriteLoadRoundTripStash(t *testing.T) {
	as := analysis.New()
	h := as.TreeState().AddFilter(filters.NewDownsample(), 0)
	if err := as.Stash("s", h); err != nil {
		t.Fatalf("Stash: %v", err)
	}
	// Clear the live tree so the stash is the only evidence of "s".
	if err := as.TreeState().RemoveSubtree(h); err != nil {
		t.Fatalf("RemoveSubtree: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, as); err != nil {
		t.Fatalf("Write: %v", err)
	}

	res, err := Load(&buf, ReadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	names := res.State.StashNames()
	if len(names) != 1 || names[0] != "s" {
		t.Fatalf("StashNames() = %v, want [s]", names)
	}
}

func TestWriteLoadRoundTripTreeAndCameras(t *testing.T) {
	as := analysis.New()
	root := as.TreeState().AddFilter(filters.NewDownsample(), 0)
	as.TreeState().SetProperty(root, "fraction", "0.42")
	as.TreeState().AddFilter(filters.NewVoxelize(), root)

	var buf bytes.Buffer
	if err := Write(&buf, as); err != nil {
		t.Fatalf("Write: %v", err)
	}

	res, err := Load(&buf, ReadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tree := res.State.TreeState().Tree()
	if len(tree.Roots) != 1 {
		t.Fatalf("len(tree.Roots) = %d, want 1", len(tree.Roots))
	}
	if tree.Roots[0].Filter.TypeString() != "Downsample" {
		t.Fatalf("root type = %s, want Downsample", tree.Roots[0].Filter.TypeString())
	}
	p, ok := tree.Roots[0].Filter.Properties().Find("fraction")
	if !ok || p.Value != "0.42" {
		t.Fatalf("fraction = %q, want 0.42", p.Value)
	}
	if len(tree.Roots[0].Children) != 1 || tree.Roots[0].Children[0].Filter.TypeString() != "Voxelize" {
		t.Fatal("child Voxelize filter missing after round trip")
	}
	if len(res.State.Cameras()) != len(as.Cameras()) {
		t.Fatalf("camera count = %d, want %d", len(res.State.Cameras()), len(as.Cameras()))
	}
}

func TestLoadStripsHazardousFilterWhenUntrusted(t *testing.T) {
	as := analysis.New()
	as.TreeState().AddFilter(filters.NewExternalScript(), 0)
	as.TreeState().AddFilter(filters.NewDownsample(), 0)

	var buf bytes.Buffer
	if err := Write(&buf, as); err != nil {
		t.Fatalf("Write: %v", err)
	}

	res, err := Load(&buf, ReadOptions{Untrusted: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.StrippedHazardous != 1 {
		t.Fatalf("StrippedHazardous = %d, want 1", res.StrippedHazardous)
	}
	if len(res.State.TreeState().Tree().Roots) != 1 {
		t.Fatalf("len(Roots) = %d, want 1 (ExternalScript stripped)", len(res.State.TreeState().Tree().Roots))
	}
}
