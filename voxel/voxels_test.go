package voxel

import (
	"testing"

	"github.com/threedepict/tomo/geom"
)

func unitBounds(n int) geom.BoundCube {
	b := geom.EmptyBoundCube()
	b = b.ExpandByPoint(geom.Pt(0, 0, 0))
	b = b.ExpandByPoint(geom.Pt(float64(n), float64(n), float64(n)))
	return b
}

func TestDivideElementwiseZeroOverZeroIsZero(t *testing.T) {
	numer, err := New[float64](2, 2, 2, unitBounds(2))
	if err != nil {
		t.Fatalf("New numerator: %v", err)
	}
	denom, err := New[float64](2, 2, 2, unitBounds(2))
	if err != nil {
		t.Fatalf("New denominator: %v", err)
	}
	numer.Set(0, 0, 0, 3)
	denom.Set(0, 0, 0, 0)
	denom.Set(1, 0, 0, 2)
	numer.Set(1, 0, 0, 4)

	out, err := DivideElementwise(numer, denom)
	if err != nil {
		t.Fatalf("DivideElementwise: %v", err)
	}
	if out.Get(0, 0, 0) != 0 {
		t.Fatalf("0/0 = %v, want 0", out.Get(0, 0, 0))
	}
	if out.Get(1, 0, 0) != 2 {
		t.Fatalf("4/2 = %v, want 2", out.Get(1, 0, 0))
	}
}

func TestInterpSliceBoundaryFractionsReturnEndPlanesExactly(t *testing.T) {
	grid, err := New[float64](1, 1, 4, unitBounds(4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for z := 0; z < 4; z++ {
		grid.Set(0, 0, z, float64(z)*10)
	}

	first, err := grid.InterpSlice(AxisZ, 0, SliceLinear)
	if err != nil {
		t.Fatalf("InterpSlice(0): %v", err)
	}
	if len(first) != 1 || first[0] != 0 {
		t.Fatalf("first plane = %v, want [0]", first)
	}

	last, err := grid.InterpSlice(AxisZ, 1, SliceLinear)
	if err != nil {
		t.Fatalf("InterpSlice(1): %v", err)
	}
	if len(last) != 1 || last[0] != 30 {
		t.Fatalf("last plane = %v, want [30]", last)
	}
}
