package filters

import (
	"testing"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
)

func TestExternalScriptIsHazardous(t *testing.T) {
	f := NewExternalScript()
	if !f.CanBeHazardous() {
		t.Fatal("ExternalScript.CanBeHazardous() = false, want true")
	}
}

func TestExternalScriptDoublesEachValue(t *testing.T) {
	in := synthIons(3, func(i int) geom.Point3D { return geom.Pt(float64(i), 0, 0) })

	f := NewExternalScript()
	if ok, _ := f.SetProperty("command", `awk '{print $1*2}'`); !ok {
		t.Fatal("SetProperty command rejected")
	}

	outputs, code := f.Refresh([]fstream.Stream{in}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	out := outputs[0].(*fstream.Ions)
	for i, h := range out.Hits {
		want := in.Hits[i].Value * 2
		if h.Value != want {
			t.Fatalf("hit %d value = %v, want %v", i, h.Value, want)
		}
	}
}

func TestExternalScriptNoCommandFails(t *testing.T) {
	in := synthIons(1, func(i int) geom.Point3D { return geom.Pt(0, 0, 0) })
	f := NewExternalScript()
	_, code := f.Refresh([]fstream.Stream{in}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.InvalidGeometry {
		t.Fatalf("Refresh with no command: code=%v, want InvalidGeometry", code)
	}
}
