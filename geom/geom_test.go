package geom

import (
	"math"
	"testing"
)

func TestEmptyBoundCubeIsInvalidUntilExpanded(t *testing.T) {
	b := EmptyBoundCube()
	if b.Valid() {
		t.Fatal("EmptyBoundCube() is valid, want invalid")
	}
	b = b.ExpandByPoint(Pt(1, 2, 3))
	if !b.Valid() {
		t.Fatal("after one ExpandByPoint, want valid")
	}
	if b.Min != b.Max {
		t.Fatalf("Min=%v Max=%v, want equal for a single-point cube", b.Min, b.Max)
	}
}

func TestUnionWithEmptyReturnsOtherUnchanged(t *testing.T) {
	b := EmptyBoundCube().ExpandByPoint(Pt(0, 0, 0)).ExpandByPoint(Pt(1, 1, 1))
	u := b.Union(EmptyBoundCube())
	if u != b {
		t.Fatalf("Union with empty = %v, want %v", u, b)
	}
}

func TestContainsPtRespectsInclusiveBoundary(t *testing.T) {
	b := EmptyBoundCube().ExpandByPoint(Pt(0, 0, 0)).ExpandByPoint(Pt(2, 2, 2))
	if !b.ContainsPt(Pt(2, 0, 0)) {
		t.Fatal("boundary point not contained, want inclusive boundary")
	}
	if b.ContainsPt(Pt(2.001, 0, 0)) {
		t.Fatal("point just outside boundary reported contained")
	}
}

func TestParsePoint3DAcceptsSpaceAndCommaDelimited(t *testing.T) {
	p, err := ParsePoint3D("1.5 -2 0")
	if err != nil {
		t.Fatalf("ParsePoint3D (space): %v", err)
	}
	if p != (Point3D{1.5, -2, 0}) {
		t.Fatalf("got %v, want {1.5 -2 0}", p)
	}

	q, err := ParsePoint3D("1.5,-2,0")
	if err != nil {
		t.Fatalf("ParsePoint3D (comma): %v", err)
	}
	if q != p {
		t.Fatalf("comma-delimited parse = %v, want %v", q, p)
	}
}

func TestParsePoint3DRejectsWrongArity(t *testing.T) {
	if _, err := ParsePoint3D("1,2"); err == nil {
		t.Fatal("ParsePoint3D accepted a 2-component string")
	}
}

func TestNormalizeZeroVectorStaysZero(t *testing.T) {
	z := Pt(0, 0, 0).Normalize()
	if z != (Point3D{0, 0, 0}) {
		t.Fatalf("Normalize of zero vector = %v, want zero vector (not NaN)", z)
	}
}

func TestQuaternionIdentityLeavesPointUnchanged(t *testing.T) {
	p := Pt(1, 2, 3)
	out := p.Rotate(IdentityQuaternion())
	if math.Abs(out.X-p.X) > 1e-9 || math.Abs(out.Y-p.Y) > 1e-9 || math.Abs(out.Z-p.Z) > 1e-9 {
		t.Fatalf("identity rotation gave %v, want %v", out, p)
	}
}

func TestQuaternionAxisAngleRotatesQuarterTurn(t *testing.T) {
	q := QuaternionFromAxisAngle(Pt(0, 0, 1), math.Pi/2)
	out := Pt(1, 0, 0).Rotate(q)
	if math.Abs(out.X) > 1e-9 || math.Abs(out.Y-1) > 1e-9 {
		t.Fatalf("90 degree rotation about Z of (1,0,0) = %v, want ~(0,1,0)", out)
	}
}

func TestRNGIsDeterministicForFixedSeed(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 20; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("RNGs with the same seed diverged at draw %d", i)
		}
	}
}
