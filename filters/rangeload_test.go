package filters

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
)

func TestRangeLoadReadsSimpleDialect(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "ranges.txt", []byte("ion a0 1 0 0\nion a1 0 1 0\nrange -0.5 0.5 a0\nrange 0.5 1.5 a1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := NewRangeLoad(fs)
	if ok, _ := f.SetProperty("path", "ranges.txt"); !ok {
		t.Fatal("SetProperty path rejected")
	}

	outputs, code := f.Refresh(nil, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	out := outputs[0].(*fstream.Range)
	if len(out.File.Ions()) != 2 {
		t.Fatalf("len(Ions()) = %d, want 2", len(out.File.Ions()))
	}
	if len(out.File.Ranges()) != 2 {
		t.Fatalf("len(Ranges()) = %d, want 2", len(out.File.Ranges()))
	}
}

func TestRangeLoadMissingPathFails(t *testing.T) {
	f := NewRangeLoad(afero.NewMemMapFs())
	_, code := f.Refresh(nil, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.IOFailure {
		t.Fatalf("Refresh with no path: code=%v, want IOFailure", code)
	}
}
