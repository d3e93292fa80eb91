package filters

import (
	"testing"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
)

func TestAppearancePassesHitsThrough(t *testing.T) {
	in := synthIons(10, func(i int) geom.Point3D { return geom.Pt(float64(i), 0, 0) })

	f := NewAppearance()
	if ok, _ := f.SetProperty("colour", "0.2,0.4,0.6,1"); !ok {
		t.Fatal("SetProperty colour rejected")
	}
	if ok, _ := f.SetProperty("point-size", "3"); !ok {
		t.Fatal("SetProperty point-size rejected")
	}

	outputs, code := f.Refresh([]fstream.Stream{in}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	out := outputs[0].(*fstream.Ions)
	if len(out.Hits) != len(in.Hits) {
		t.Fatalf("len(out.Hits) = %d, want %d", len(out.Hits), len(in.Hits))
	}
	if out.PointSize != 3 {
		t.Fatalf("PointSize = %v, want 3", out.PointSize)
	}
}

func TestAppearanceCosmeticUpdateMutatesCacheInPlace(t *testing.T) {
	in := synthIons(4, func(i int) geom.Point3D { return geom.Pt(float64(i), 0, 0) })

	f := NewAppearance()
	f.SetCachingEnabled(true)
	outputs, code := f.Refresh([]fstream.Stream{in}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	cached := outputs[0].(*fstream.Ions)

	if ok := f.ApplyCosmetic("point-size", "7"); !ok {
		t.Fatal("ApplyCosmetic rejected valid point-size")
	}
	if cached.PointSize != 7 {
		t.Fatalf("cached stream PointSize = %v, want 7 (in-place mutation)", cached.PointSize)
	}
}
