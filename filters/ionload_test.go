package filters

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
	"github.com/threedepict/tomo/ion"
)

func TestIonLoadReadsBackWrittenHits(t *testing.T) {
	fs := afero.NewMemMapFs()
	fh, err := fs.Create("hits.bin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	hits := []ion.Hit{
		{Pos: geom.Pt(1, 2, 3), Value: 0.5},
		{Pos: geom.Pt(4, 5, 6), Value: 1.5},
	}
	if err := ion.WriteAll(fh, hits); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	fh.Close()

	f := NewIonLoad(fs)
	if !f.IsPureDataSource() {
		t.Fatal("IonLoad.IsPureDataSource() = false, want true")
	}
	if ok, _ := f.SetProperty("path", "hits.bin"); !ok {
		t.Fatal("SetProperty path rejected")
	}

	outputs, code := f.Refresh(nil, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	out := outputs[0].(*fstream.Ions)
	if len(out.Hits) != len(hits) {
		t.Fatalf("len(out.Hits) = %d, want %d", len(out.Hits), len(hits))
	}
}

func TestIonLoadEmptyPathFails(t *testing.T) {
	f := NewIonLoad(afero.NewMemMapFs())
	_, code := f.Refresh(nil, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.IOFailure {
		t.Fatalf("Refresh with no path: code=%v, want IOFailure", code)
	}
}
