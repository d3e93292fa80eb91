package filters

import (
	"math"
	"testing"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
)

func TestAnnotationDefaultExpressionPassesValueThrough(t *testing.T) {
	in := synthIons(3, func(i int) geom.Point3D { return geom.Pt(float64(i), 0, 0) })

	f := NewAnnotation()
	outputs, code := f.Refresh([]fstream.Stream{in}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	out := outputs[0].(*fstream.Ions)
	for i, h := range out.Hits {
		if h.Value != in.Hits[i].Value {
			t.Fatalf("hit %d value = %v, want %v (pass-through)", i, h.Value, in.Hits[i].Value)
		}
	}
}

func TestAnnotationRadialExpressionComputesExpectedValue(t *testing.T) {
	in := synthIons(1, func(i int) geom.Point3D { return geom.Pt(3, 4, 0) })

	f := NewAnnotation()
	if ok, _ := f.SetProperty("expr", "sqrt(x*x+y*y)"); !ok {
		t.Fatal("SetProperty expr rejected")
	}

	outputs, code := f.Refresh([]fstream.Stream{in}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	out := outputs[0].(*fstream.Ions)
	if math.Abs(out.Hits[0].Value-5) > 1e-9 {
		t.Fatalf("radial value = %v, want 5", out.Hits[0].Value)
	}
}

func TestAnnotationInvalidExpressionRejectedBySetProperty(t *testing.T) {
	f := NewAnnotation()
	if ok, _ := f.SetProperty("expr", "x +* "); ok {
		t.Fatal("SetProperty accepted a malformed expression")
	}
}
