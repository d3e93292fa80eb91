package filters

import (
	"testing"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
	"github.com/threedepict/tomo/ion"
	"github.com/threedepict/tomo/rangefile"
)

func synthRangeIons() *fstream.Ions {
	hits := []ion.Hit{
		{Pos: geom.Pt(0, 0, 0), Value: 0.2},  // in a0's range
		{Pos: geom.Pt(1, 0, 0), Value: 1.2},  // in a1's range
		{Pos: geom.Pt(2, 0, 0), Value: 99},   // unranged
	}
	return fstream.NewIons(fstream.NoParent, hits)
}

func synthRangeFile(t *testing.T) *rangefile.RangeFile {
	t.Helper()
	rf := rangefile.New()
	a0, err := rf.AddIon("a0", rangefile.Colour{R: 1})
	if err != nil {
		t.Fatalf("AddIon a0: %v", err)
	}
	a1, err := rf.AddIon("a1", rangefile.Colour{G: 1})
	if err != nil {
		t.Fatalf("AddIon a1: %v", err)
	}
	if err := rf.AddRange(0, 0.5, a0); err != nil {
		t.Fatalf("AddRange a0: %v", err)
	}
	if err := rf.AddRange(1, 1.5, a1); err != nil {
		t.Fatalf("AddRange a1: %v", err)
	}
	return rf
}

func TestRangeApplyDropsUnrangedByDefault(t *testing.T) {
	in := synthRangeIons()
	rangeStream := fstream.NewRange(fstream.NoParent, synthRangeFile(t))

	f := NewRangeApply()
	outputs, code := f.Refresh([]fstream.Stream{in, rangeStream}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}

	var totalRanged int
	sawRangePassthrough := false
	for _, s := range outputs {
		if ions, ok := s.(*fstream.Ions); ok {
			totalRanged += len(ions.Hits)
		}
		if s.Kind() == fstream.KindRange {
			sawRangePassthrough = true
		}
	}
	if totalRanged != 2 {
		t.Fatalf("total ranged hits = %d, want 2 (unranged dropped)", totalRanged)
	}
	if !sawRangePassthrough {
		t.Fatal("RangeApply did not forward the Range stream")
	}
}

func TestRangeApplyKeepsUnrangedWhenNotDropping(t *testing.T) {
	in := synthRangeIons()
	rangeStream := fstream.NewRange(fstream.NoParent, synthRangeFile(t))

	f := NewRangeApply()
	if ok, _ := f.SetProperty("drop-unranged", "false"); !ok {
		t.Fatal("SetProperty drop-unranged rejected")
	}

	outputs, code := f.Refresh([]fstream.Stream{in, rangeStream}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}

	var total int
	for _, s := range outputs {
		if ions, ok := s.(*fstream.Ions); ok {
			total += len(ions.Hits)
		}
	}
	if total != 3 {
		t.Fatalf("total hits = %d, want 3 (unranged kept)", total)
	}
}
