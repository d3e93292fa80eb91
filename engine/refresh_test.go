package engine

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/filters"
	"github.com/threedepict/tomo/ftree"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/ion"
)

func TestRefreshOutputKindsRespectMasks(t *testing.T) {
	fs := afero.NewMemMapFs()
	fh, err := fs.Create("hits.bin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	hits := []ion.Hit{{Value: 1}, {Value: 2}, {Value: 3}}
	if err := ion.WriteAll(fh, hits); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	fh.Close()

	tree := ftree.New()
	load := filters.NewIonLoad(fs)
	load.SetProperty("path", "hits.bin")
	loadNode := tree.AddChild(nil, load)
	down := filters.NewDownsample()
	tree.AddChild(loadNode, down)

	e := New()
	res, err := e.Refresh(tree, filter.NewProgress(), &filter.AbortFlag{})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(res.RootOutputs) != 1 {
		t.Fatalf("len(RootOutputs) = %d, want 1", len(res.RootOutputs))
	}

	// Every output stream's kind must be in IonLoad's emit mask (it
	// blocks nothing and has no input, so nothing from upstream can leak
	// through, per spec §8's subset invariant).
	for _, s := range res.RootOutputs[0] {
		if !load.EmitMask().Has(s.Kind()) {
			t.Fatalf("unexpected stream kind %v not in emit mask", s.Kind())
		}
	}
	if res.RootOutputs[0][0].Kind() != fstream.KindIons {
		t.Fatalf("root output kind = %v, want Ions", res.RootOutputs[0][0].Kind())
	}
}
