package filters

import (
	"math"
	"testing"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
)

func TestTransformIdentityLeavesPositionsUnchanged(t *testing.T) {
	in := synthIons(4, func(i int) geom.Point3D { return geom.Pt(float64(i), float64(2*i), 0) })

	f := NewTransform()
	outputs, code := f.Refresh([]fstream.Stream{in}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	out := outputs[0].(*fstream.Ions)
	for i, h := range out.Hits {
		want := in.Hits[i].Pos
		if math.Abs(h.Pos.X-want.X) > 1e-9 || math.Abs(h.Pos.Y-want.Y) > 1e-9 || math.Abs(h.Pos.Z-want.Z) > 1e-9 {
			t.Fatalf("identity transform moved hit %d from %v to %v", i, want, h.Pos)
		}
	}
}

func TestTransformTranslateOffsetsEveryHit(t *testing.T) {
	in := synthIons(3, func(i int) geom.Point3D { return geom.Pt(float64(i), 0, 0) })

	f := NewTransform()
	if ok, _ := f.SetProperty("translate", "10,0,0"); !ok {
		t.Fatal("SetProperty translate rejected")
	}

	outputs, code := f.Refresh([]fstream.Stream{in}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	out := outputs[0].(*fstream.Ions)
	for i, h := range out.Hits {
		want := in.Hits[i].Pos.X + 10
		if math.Abs(h.Pos.X-want) > 1e-9 {
			t.Fatalf("hit %d X = %v, want %v", i, h.Pos.X, want)
		}
	}
}
