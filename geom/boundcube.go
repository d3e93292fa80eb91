package geom

import "math"

// BoundCube is an axis-aligned 3D bounding box. A zero-value BoundCube is
// invalid (Valid returns false) until it has been expanded by at least
// one point.
type BoundCube struct {
	Min, Max   Point3D
	haveBounds bool
}

// EmptyBoundCube returns an invalid, empty bounding cube ready to be
// grown with Union/ExpandByPoint.
func EmptyBoundCube() BoundCube {
	return BoundCube{
		Min: Point3D{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Point3D{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// Valid reports whether the cube has been set by at least one point and
// every axis has non-negative extent.
func (b BoundCube) Valid() bool {
	return b.haveBounds && b.Max.X >= b.Min.X && b.Max.Y >= b.Min.Y && b.Max.Z >= b.Min.Z
}

// ExpandByPoint grows b, if necessary, to contain p.
func (b BoundCube) ExpandByPoint(p Point3D) BoundCube {
	if !b.haveBounds {
		return BoundCube{Min: p, Max: p, haveBounds: true}
	}
	return BoundCube{
		Min: Point3D{min(b.Min.X, p.X), min(b.Min.Y, p.Y), min(b.Min.Z, p.Z)},
		Max: Point3D{max(b.Max.X, p.X), max(b.Max.Y, p.Y), max(b.Max.Z, p.Z)},
		haveBounds: true,
	}
}

// Union returns the smallest cube containing both b and o.
func (b BoundCube) Union(o BoundCube) BoundCube {
	if !b.haveBounds {
		return o
	}
	if !o.haveBounds {
		return b
	}
	return BoundCube{
		Min: Point3D{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y), min(b.Min.Z, o.Min.Z)},
		Max: Point3D{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y), max(b.Max.Z, o.Max.Z)},
		haveBounds: true,
	}
}

// ContainsPt reports whether p lies within b, inclusive of the boundary.
func (b BoundCube) ContainsPt(p Point3D) bool {
	if !b.Valid() {
		return false
	}
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Centroid returns the center of b.
func (b BoundCube) Centroid() Point3D {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the per-axis size of b.
func (b BoundCube) Extent() Point3D {
	return b.Max.Sub(b.Min)
}

// LargestExtent returns the largest of the three axis extents.
func (b BoundCube) LargestExtent() float64 {
	e := b.Extent()
	return max(e.X, max(e.Y, e.Z))
}

// Plane is an infinite plane described by a point on the plane and a
// (not necessarily normalized) normal vector.
type Plane struct {
	Point, Normal Point3D
}

// IntersectPlane returns the bounding cube of the polygon formed by
// slicing b with plane. If the plane does not cross b, ok is false.
func (b BoundCube) IntersectPlane(p Plane) (result BoundCube, ok bool) {
	if !b.Valid() {
		return BoundCube{}, false
	}
	n := p.Normal.Normalize()
	corners := b.corners()
	var side []float64
	for _, c := range corners {
		side = append(side, c.Sub(p.Point).Dot(n))
	}
	allPos, allNeg := true, true
	for _, s := range side {
		if s > 0 {
			allNeg = false
		}
		if s < 0 {
			allPos = false
		}
	}
	if allPos || allNeg {
		return BoundCube{}, false
	}
	// Corner index bits select Max on X (1), Y (2) and Z (4), so two
	// corners share an edge when their indices differ in one bit.
	out := EmptyBoundCube()
	for i, c := range corners {
		if side[i] == 0 {
			out = out.ExpandByPoint(c)
		}
		for j := i + 1; j < len(corners); j++ {
			d := i ^ j
			if d&(d-1) != 0 || side[i]*side[j] >= 0 {
				continue
			}
			t := side[i] / (side[i] - side[j])
			out = out.ExpandByPoint(c.Add(corners[j].Sub(c).Scale(t)))
		}
	}
	return out, true
}

func (b BoundCube) corners() [8]Point3D {
	return [8]Point3D{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z}, {b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Max.Z},
	}
}
