// Package geom implements the small set of 3D geometry primitives the
// filter graph engine is built on: points, axis-aligned bounding cubes,
// and quaternion rotation.
package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point3D is a point or vector in three-dimensional space.
type Point3D struct {
	X, Y, Z float64
}

// Pt creates a Point3D from three components.
func Pt(x, y, z float64) Point3D { return Point3D{X: x, Y: y, Z: z} }

// Add returns p+q.
func (p Point3D) Add(q Point3D) Point3D {
	return Point3D{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p-q.
func (p Point3D) Sub(q Point3D) Point3D {
	return Point3D{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p scaled by s.
func (p Point3D) Scale(s float64) Point3D {
	return Point3D{p.X * s, p.Y * s, p.Z * s}
}

// Dot returns the dot product of p and q.
func (p Point3D) Dot(q Point3D) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product p x q.
func (p Point3D) Cross(q Point3D) Point3D {
	return Point3D{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// SqDist returns the squared Euclidean distance between p and q, which
// avoids a sqrt in hot loops (voxelization, clustering) that only need to
// compare distances.
func (p Point3D) SqDist(q Point3D) float64 {
	d := p.Sub(q)
	return d.Dot(d)
}

// Dist returns the Euclidean distance between p and q.
func (p Point3D) Dist(q Point3D) float64 {
	return math.Sqrt(p.SqDist(q))
}

// SqMag returns the squared magnitude of p.
func (p Point3D) SqMag() float64 { return p.Dot(p) }

// Mag returns the magnitude of p.
func (p Point3D) Mag() float64 { return math.Sqrt(p.SqMag()) }

// Normalize returns p scaled to unit length. A zero vector is returned
// unchanged rather than producing NaN.
func (p Point3D) Normalize() Point3D {
	m := p.Mag()
	if m == 0 {
		return p
	}
	return p.Scale(1 / m)
}

// ParsePoint3D parses a point from a string using either space or comma
// as the component delimiter, e.g. "1.0 2.0 3.0" or "1.0,2.0,3.0".
func ParsePoint3D(s string) (Point3D, error) {
	s = strings.TrimSpace(s)
	var fields []string
	if strings.Contains(s, ",") {
		fields = strings.Split(s, ",")
	} else {
		fields = strings.Fields(s)
	}
	if len(fields) != 3 {
		return Point3D{}, fmt.Errorf("geom.ParsePoint3D: %q does not have 3 components", s)
	}
	var v [3]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Point3D{}, fmt.Errorf("geom.ParsePoint3D: %q: %w", s, err)
		}
		v[i] = x
	}
	return Point3D{v[0], v[1], v[2]}, nil
}

// String renders p as "x,y,z" using the same format the state file and
// property system expect to round-trip.
func (p Point3D) String() string {
	return fmt.Sprintf("%v,%v,%v", p.X, p.Y, p.Z)
}
