// Package voxel implements the dense and sparse voxel grids the
// voxelization and proxigram filters are built on, following the
// numeric contracts of the retrieval pack's voxel-manipulation reference
// (index/world conversion, separable smoothing, slicing, interpolation)
// rewritten here with explicit Go generics and error returns instead of
// exceptions.
package voxel

import (
	"fmt"
	"math"

	"github.com/threedepict/tomo/geom"
)

// Number is the set of scalar types a Voxels grid may hold: float64 for
// density/ratio grids, and unsigned integer types for raw saturating
// hit counts.
type Number interface {
	~float64 | ~float32 | ~int32 | ~int64 | ~uint32 | ~uint64
}

// Voxels is a dense 3D scalar array over a physical bounding cube.
// The zero value is not usable; construct with New.
type Voxels[T Number] struct {
	nx, ny, nz int
	bounds     geom.BoundCube
	data       []T
}

// New creates a Voxels grid of size (nx,ny,nz) over bounds. Every axis
// count must be at least 1 and bounds must be valid.
func New[T Number](nx, ny, nz int, bounds geom.BoundCube) (*Voxels[T], error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("voxel.New: invalid grid size (%d,%d,%d)", nx, ny, nz)
	}
	if !bounds.Valid() {
		return nil, fmt.Errorf("voxel.New: invalid bounds")
	}
	return &Voxels[T]{
		nx: nx, ny: ny, nz: nz,
		bounds: bounds,
		data:   make([]T, nx*ny*nz),
	}, nil
}

// Size returns the per-axis cell counts.
func (v *Voxels[T]) Size() (nx, ny, nz int) { return v.nx, v.ny, v.nz }

// Bounds returns the physical bounding cube of the grid.
func (v *Voxels[T]) Bounds() geom.BoundCube { return v.bounds }

// NumCells returns the total number of cells.
func (v *Voxels[T]) NumCells() int { return len(v.data) }

// CellSize returns the physical size of a single cell along each axis.
func (v *Voxels[T]) CellSize() geom.Point3D {
	e := v.bounds.Extent()
	return geom.Pt(e.X/float64(v.nx), e.Y/float64(v.ny), e.Z/float64(v.nz))
}

// CellVolume returns the physical volume of a single cell.
func (v *Voxels[T]) CellVolume() float64 {
	c := v.CellSize()
	return c.X * c.Y * c.Z
}

func (v *Voxels[T]) offset(x, y, z int) int {
	return (z*v.ny+y)*v.nx + x
}

// Get returns the value at cell (x,y,z). Out-of-range indices return the
// zero value of T.
func (v *Voxels[T]) Get(x, y, z int) T {
	if x < 0 || y < 0 || z < 0 || x >= v.nx || y >= v.ny || z >= v.nz {
		var zero T
		return zero
	}
	return v.data[v.offset(x, y, z)]
}

// Set stores val at cell (x,y,z). Out-of-range indices are a no-op.
func (v *Voxels[T]) Set(x, y, z int, val T) {
	if x < 0 || y < 0 || z < 0 || x >= v.nx || y >= v.ny || z >= v.nz {
		return
	}
	v.data[v.offset(x, y, z)] = val
}

// Fill sets every cell to val.
func (v *Voxels[T]) Fill(val T) {
	for i := range v.data {
		v.data[i] = val
	}
}

// Clear sets every cell to the zero value.
func (v *Voxels[T]) Clear() {
	var zero T
	v.Fill(zero)
}

// Index converts a world position to the half-open cell index that
// contains it. Points on or beyond the upper bound are clamped into the
// last cell on that axis rather than producing an out-of-range index;
// points below the lower bound are clamped to 0. This matches the
// "half-open with documented upper-edge clamp" convention required by
// spec §3.
func (v *Voxels[T]) Index(p geom.Point3D) (x, y, z int) {
	e := v.bounds.Extent()
	rel := p.Sub(v.bounds.Min)
	x = clampIndex(int(rel.X/e.X*float64(v.nx)), v.nx)
	y = clampIndex(int(rel.Y/e.Y*float64(v.ny)), v.ny)
	z = clampIndex(int(rel.Z/e.Z*float64(v.nz)), v.nz)
	return
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Point returns the world-space position of the center of cell (x,y,z).
func (v *Voxels[T]) Point(x, y, z int) geom.Point3D {
	c := v.CellSize()
	return geom.Pt(
		v.bounds.Min.X+(float64(x)+0.5)*c.X,
		v.bounds.Min.Y+(float64(y)+0.5)*c.Y,
		v.bounds.Min.Z+(float64(z)+0.5)*c.Z,
	)
}

// Min returns the minimum cell value.
func (v *Voxels[T]) Min() T { return v.reduce(func(a, b T) T { return minT(a, b) }) }

// Max returns the maximum cell value.
func (v *Voxels[T]) Max() T { return v.reduce(func(a, b T) T { return maxT(a, b) }) }

func (v *Voxels[T]) reduce(f func(a, b T) T) T {
	if len(v.data) == 0 {
		var zero T
		return zero
	}
	acc := v.data[0]
	for _, x := range v.data[1:] {
		acc = f(acc, x)
	}
	return acc
}

func minT[T Number](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxT[T Number](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Sum returns the sum of all cell values as a float64, to avoid overflow
// when T is an integer counting type.
func (v *Voxels[T]) Sum() float64 {
	var s float64
	for _, x := range v.data {
		s += float64(x)
	}
	return s
}

// CountAbove returns the number of cells whose value exceeds threshold.
func (v *Voxels[T]) CountAbove(threshold T) int {
	n := 0
	for _, x := range v.data {
		if x > threshold {
			n++
		}
	}
	return n
}

// Raw returns the backing slice in row-major (x fastest, then y, then z)
// order. Callers must not retain it past the grid's lifetime if the grid
// is subsequently resized.
func (v *Voxels[T]) Raw() []T { return v.data }

// Density returns a new float64 grid with every cell divided by the
// physical cell volume.
func (v *Voxels[T]) Density() *Voxels[float64] {
	vol := v.CellVolume()
	out := &Voxels[float64]{nx: v.nx, ny: v.ny, nz: v.nz, bounds: v.bounds, data: make([]float64, len(v.data))}
	if vol == 0 {
		return out
	}
	for i, x := range v.data {
		out.data[i] = float64(x) / vol
	}
	return out
}

// DivideElementwise returns numerator/denominator, cell by cell, with
// 0/0 coerced to 0 and any non-finite result coerced to 0, per spec §3
// and §8 ("0/0 = 0, non-finite input coerced to 0").
func DivideElementwise[T Number](numerator, denominator *Voxels[T]) (*Voxels[float64], error) {
	if numerator.nx != denominator.nx || numerator.ny != denominator.ny || numerator.nz != denominator.nz {
		return nil, fmt.Errorf("voxel.DivideElementwise: size mismatch")
	}
	out := &Voxels[float64]{
		nx: numerator.nx, ny: numerator.ny, nz: numerator.nz,
		bounds: numerator.bounds,
		data:   make([]float64, len(numerator.data)),
	}
	for i := range numerator.data {
		n := float64(numerator.data[i])
		d := float64(denominator.data[i])
		v := safeDivide(n, d)
		out.data[i] = v
	}
	return out, nil
}

func safeDivide(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	v := n / d
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RescaleToUnit returns a copy of v linearly rescaled so the minimum
// value maps to 0 and the maximum maps to 1. In a grid with zero range
// every cell maps to 0, rather than dividing by zero.
func (v *Voxels[T]) RescaleToUnit() *Voxels[float64] {
	lo, hi := float64(v.Min()), float64(v.Max())
	out := &Voxels[float64]{nx: v.nx, ny: v.ny, nz: v.nz, bounds: v.bounds, data: make([]float64, len(v.data))}
	span := hi - lo
	for i, x := range v.data {
		if span == 0 {
			out.data[i] = 0
			continue
		}
		out.data[i] = (float64(x) - lo) / span
	}
	return out
}
