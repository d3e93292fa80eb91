package fstream

import "github.com/threedepict/tomo/voxel"

// Colourmap names a presentation colour map by name; the renderer
// collaborator owns the actual colour ramps.
type Colourmap string

// VoxelDense carries an owned dense float64 voxel grid plus
// presentation.
type VoxelDense struct {
	base
	Grid      *voxel.Voxels[float64]
	Colourmap Colourmap
	BoundsLo  float64
	BoundsHi  float64
	Opacity   float64
}

// NewVoxelDense creates a VoxelDense stream owned by parent.
func NewVoxelDense(parent ParentRef, grid *voxel.Voxels[float64]) *VoxelDense {
	return &VoxelDense{base: newBase(KindVoxelDense, parent), Grid: grid, Opacity: 1}
}

// Release is a no-op: the grid is plain memory with no external
// resources.
func (v *VoxelDense) Release() {}

// VoxelSparse carries an owned sparse scalar field plus presentation.
type VoxelSparse struct {
	base
	Grid      *voxel.SparseGrid
	IsoLevel  float64
	Colourmap Colourmap
	Opacity   float64
}

// NewVoxelSparse creates a VoxelSparse stream owned by parent.
func NewVoxelSparse(parent ParentRef, grid *voxel.SparseGrid, isoLevel float64) *VoxelSparse {
	return &VoxelSparse{base: newBase(KindVoxelSparse, parent), Grid: grid, IsoLevel: isoLevel, Opacity: 1}
}

// Release is a no-op: the grid is plain memory with no external
// resources.
func (v *VoxelSparse) Release() {}
