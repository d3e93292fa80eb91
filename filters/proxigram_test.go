package filters

import (
	"math"
	"testing"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
	"github.com/threedepict/tomo/voxel"
)

// planarSparseGrid builds a VoxelSparse density field with a flat
// interface: cells at z=-1 hold value 1, cells at z=0 hold value 0, for
// every (x,y) in [-half,half], so iso-level 0.5 crosses the lattice
// edge between them at every (x,y).
func planarSparseGrid(half int, isoLevel float64) *fstream.VoxelSparse {
	grid := voxel.NewSparseGrid(geom.Pt(0, 0, 0), 1)
	for x := -half; x <= half; x++ {
		for y := -half; y <= half; y++ {
			grid.Set(x, y, -1, 1)
			grid.Set(x, y, 0, 0)
		}
	}
	return fstream.NewVoxelSparse(fstream.NoParent, grid, isoLevel)
}

func TestProxigramShellBinning(t *testing.T) {
	interface_ := synthIons(50, func(i int) geom.Point3D {
		return geom.Pt(float64(i%5)-2, float64((i/5)%5)-2, -0.5)
	})
	interface_.ValueName = "matrix"

	probe := synthIons(200, func(i int) geom.Point3D {
		return geom.Pt(float64(i%20)-10, float64((i/20)%20)-10, float64(i%3)-1)
	})
	probe.ValueName = "probe"

	sparse := planarSparseGrid(12, 0.5)

	f := NewProxigram()
	if ok, _ := f.SetProperty("numerator", "matrix"); !ok {
		t.Fatal("SetProperty numerator rejected")
	}
	if ok, _ := f.SetProperty("shell-width", "0.3"); !ok {
		t.Fatal("SetProperty shell-width rejected")
	}
	if ok, _ := f.SetProperty("max-distance", "1.5"); !ok {
		t.Fatal("SetProperty max-distance rejected")
	}

	outputs, code := f.Refresh([]fstream.Stream{interface_, probe, sparse}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	plot := outputs[0].(*fstream.Plot1D)
	if len(plot.X) != 11 {
		t.Fatalf("len(plot.X) = %d, want 11 shells", len(plot.X))
	}
	want := []float64{-1.5, -1.2, -0.9, -0.6, -0.3, 0, 0.3, 0.6, 0.9, 1.2, 1.5}
	for i, w := range want {
		if math.Abs(plot.X[i]-w) > 1e-9 {
			t.Errorf("shell %d center = %v, want %v", i, plot.X[i], w)
		}
	}

	var totalDenom float64
	for _, v := range plot.Y2 {
		totalDenom += v
	}
	if totalDenom <= 0 {
		t.Fatal("no denominator weight landed in any shell")
	}
}

func TestProxigramRequiresUpstreamVoxelSparse(t *testing.T) {
	probe := synthIons(10, func(i int) geom.Point3D {
		return geom.Pt(float64(i), 0, 0)
	})
	probe.ValueName = "probe"

	f := NewProxigram()
	_, code := f.Refresh([]fstream.Stream{probe}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.InvalidGeometry {
		t.Fatalf("Refresh with no VoxelSparse input: code=%v, want InvalidGeometry", code)
	}
}

func TestProxigramUseMaskIncludesVoxelSparse(t *testing.T) {
	f := NewProxigram()
	if !f.UseMask().Has(fstream.KindVoxelSparse) {
		t.Fatal("UseMask does not include KindVoxelSparse")
	}
	if !f.UseMask().Has(fstream.KindIons) {
		t.Fatal("UseMask does not include KindIons")
	}
}
