package filters

import (
	"testing"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
	"github.com/threedepict/tomo/ion"
)

func synthIons(n int, pos func(i int) geom.Point3D) *fstream.Ions {
	hits := make([]ion.Hit, n)
	for i := 0; i < n; i++ {
		hits[i] = ion.Hit{Pos: pos(i), Value: float64(i)}
	}
	return fstream.NewIons(fstream.NoParent, hits)
}

func TestDownsampleFixedCount(t *testing.T) {
	in := synthIons(10000, func(i int) geom.Point3D { return geom.Pt(float64(i), float64(i), float64(i)) })

	f := NewDownsample()
	if ok, _ := f.SetProperty("mode", "count"); !ok {
		t.Fatal("SetProperty mode=count rejected")
	}
	if ok, _ := f.SetProperty("count", "1000"); !ok {
		t.Fatal("SetProperty count=1000 rejected")
	}

	outputs, code := f.Refresh([]fstream.Stream{in}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	out := outputs[0].(*fstream.Ions)
	if len(out.Hits) != 1000 {
		t.Fatalf("len(out.Hits) = %d, want 1000", len(out.Hits))
	}
	for _, h := range out.Hits {
		if h.Pos.X != h.Pos.Y || h.Pos.Y != h.Pos.Z {
			t.Fatalf("hit %+v does not have equal coordinates", h)
		}
	}
}

func TestDownsampleFraction(t *testing.T) {
	in := synthIons(10000, func(i int) geom.Point3D {
		return geom.Pt(float64(i%5), float64(i%7), float64(i%9))
	})

	f := NewDownsample()
	if ok, _ := f.SetProperty("mode", "fraction"); !ok {
		t.Fatal("SetProperty mode=fraction rejected")
	}
	if ok, _ := f.SetProperty("fraction", "0.1"); !ok {
		t.Fatal("SetProperty fraction=0.1 rejected")
	}

	outputs, code := f.Refresh([]fstream.Stream{in}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	out := outputs[0].(*fstream.Ions)
	if len(out.Hits) < 100 {
		t.Fatalf("len(out.Hits) = %d, want >= 100 (1%% of 10000)", len(out.Hits))
	}
	if len(out.Hits) > 10000 {
		t.Fatalf("len(out.Hits) = %d, want <= 10000", len(out.Hits))
	}
}

func TestDownsamplePropertyReadback(t *testing.T) {
	f := NewDownsample()
	ok, _ := f.SetProperty("fraction", "0.37")
	if !ok {
		t.Fatal("SetProperty rejected valid fraction")
	}
	groups := f.Properties()
	p, found := groups.Find("fraction")
	if !found || p.Value != "0.37" {
		t.Fatalf("readback = %q, want 0.37", p.Value)
	}

	if ok, _ := f.SetProperty("fraction", "2"); ok {
		t.Fatal("SetProperty accepted out-of-range fraction")
	}
}
