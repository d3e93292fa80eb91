package filters

import (
	"testing"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
)

func TestVoxelizeSingleCount(t *testing.T) {
	corners := []geom.Point3D{
		geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(0, 1, 0), geom.Pt(1, 1, 0), geom.Pt(0.5, 0.5, 0),
	}
	in := synthIons(len(corners), func(i int) geom.Point3D { return corners[i] })

	f := NewVoxelize()
	if ok, _ := f.SetProperty("cell-size", "0.25"); !ok {
		t.Fatal("SetProperty cell-size rejected")
	}

	outputs, code := f.Refresh([]fstream.Stream{in}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	grid := outputs[0].(*fstream.VoxelDense).Grid
	if grid.Min() < 0 {
		t.Fatalf("grid.Min() = %v, want >= 0", grid.Min())
	}
	if grid.Max() > 5 {
		t.Fatalf("grid.Max() = %v, want <= 5", grid.Max())
	}
	if grid.Sum() != 5 {
		t.Fatalf("grid.Sum() = %v, want 5", grid.Sum())
	}
}

func TestVoxelizeValueFilterRestrictsInput(t *testing.T) {
	a := synthIons(5, func(i int) geom.Point3D { return geom.Pt(float64(i), 0, 0) })
	a.ValueName = "a0"
	b := synthIons(5, func(i int) geom.Point3D { return geom.Pt(float64(i), 1, 1) })
	b.ValueName = "a1"

	f := NewVoxelize()
	if ok, _ := f.SetProperty("value-filter", "a0"); !ok {
		t.Fatal("SetProperty value-filter rejected")
	}
	outputs, code := f.Refresh([]fstream.Stream{a, b}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	grid := outputs[0].(*fstream.VoxelDense).Grid
	if grid.Sum() != 5 {
		t.Fatalf("grid.Sum() = %v, want 5 (only a0 hits counted)", grid.Sum())
	}
}

func TestVoxelizeRejectsEmptyInput(t *testing.T) {
	f := NewVoxelize()
	_, code := f.Refresh(nil, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.InvalidGeometry {
		t.Fatalf("Refresh with no ions: code=%v, want InvalidGeometry", code)
	}
}

func TestVoxelizeFractionNormalizationStaysInUnitRange(t *testing.T) {
	a0 := synthIons(5, func(i int) geom.Point3D { return geom.Pt(float64(i), 0, 0) })
	a0.ValueName = "a0"
	a1 := synthIons(5, func(i int) geom.Point3D { return geom.Pt(float64(i), 0.5, 0.5) })
	a1.ValueName = "a1"

	f := NewVoxelize()
	if ok, _ := f.SetProperty("cell-size", "1"); !ok {
		t.Fatal("SetProperty cell-size rejected")
	}
	if ok, _ := f.SetProperty("normalization", "fraction"); !ok {
		t.Fatal("SetProperty normalization=fraction rejected")
	}
	if ok, _ := f.SetProperty("numerator-filter", "a0"); !ok {
		t.Fatal("SetProperty numerator-filter rejected")
	}

	outputs, code := f.Refresh([]fstream.Stream{a0, a1}, filter.NewProgress(), &filter.AbortFlag{})
	if code != filter.OK {
		t.Fatalf("Refresh: code=%v", code)
	}
	grid := outputs[0].(*fstream.VoxelDense).Grid
	for _, v := range grid.Raw() {
		if v < 0 || v > 1 {
			t.Fatalf("cell value %v outside [0,1]", v)
		}
	}
}
