// Package vizglue converts refresh-engine outputs into the forms the
// outer application actually consumes: drawable.Drawable objects for a
// 3D view (spec §4.7) and exported tables/figures for Ions, VoxelDense,
// VoxelSparse, Plot1D, Plot2D and Range streams. None of the stock
// filters in package filters build drawable.Drawable objects directly
// (package drawable's own doc comment notes rendering is out of scope);
// vizglue is the seam a retained-mode renderer plugs into, grounded the
// same way package drawable is on spec §4.7's renderer contract.
package vizglue

import (
	"github.com/threedepict/tomo/drawable"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
	"github.com/threedepict/tomo/ion"
)

// FromStreams converts every recognized stream in streams into a
// drawable.Drawable, skipping kinds with no 3D representation (Plot1D,
// Plot2D, Range). A fstream.Draw stream's own objects are taken
// directly via TakeObjects, transferring ownership to the caller.
func FromStreams(streams []fstream.Stream) []drawable.Drawable {
	var out []drawable.Drawable
	for _, s := range streams {
		switch v := s.(type) {
		case *fstream.Draw:
			out = append(out, v.TakeObjects()...)
		case *fstream.Ions:
			out = append(out, &pointCloud{ions: v})
		case *fstream.VoxelDense:
			out = append(out, &voxelVolume{voxels: v})
		case *fstream.VoxelSparse:
			out = append(out, &isosurface{voxels: v})
		}
	}
	return out
}

// pointCloud presents an Ions stream as a Drawable: an unlit set of
// points, selectable (so annotation/clip boxes can pick ions), drawn in
// world space.
type pointCloud struct {
	ions *fstream.Ions
}

func (p *pointCloud) BoundingBox() geom.BoundCube { return ion.BoundingCube(p.ions.Hits) }
func (p *pointCloud) WantsLighting() bool         { return false }
func (p *pointCloud) NeedsDepthSort() bool        { return false }
func (p *pointCloud) Selectable() bool            { return true }
func (p *pointCloud) IsOverlay() bool             { return false }
func (p *pointCloud) Release()                    {}

// Hits exposes the underlying ion hits, colour and point size for a
// renderer's vertex buffer upload.
func (p *pointCloud) Hits() []ion.Hit      { return p.ions.Hits }
func (p *pointCloud) Colour() fstream.RGBA { return p.ions.Colour }
func (p *pointCloud) PointSize() float64   { return p.ions.PointSize }

// voxelVolume presents a VoxelDense stream as a Drawable: a lit,
// depth-sorted translucent volume (a typical direct-volume render needs
// back-to-front compositing).
type voxelVolume struct {
	voxels *fstream.VoxelDense
}

func (v *voxelVolume) BoundingBox() geom.BoundCube { return v.voxels.Grid.Bounds() }
func (v *voxelVolume) WantsLighting() bool         { return true }
func (v *voxelVolume) NeedsDepthSort() bool        { return true }
func (v *voxelVolume) Selectable() bool            { return false }
func (v *voxelVolume) IsOverlay() bool             { return false }
func (v *voxelVolume) Release()                    {}

// Voxels exposes the underlying dense grid and presentation for a
// renderer's texture upload.
func (v *voxelVolume) Voxels() *fstream.VoxelDense { return v.voxels }

// isosurface presents a VoxelSparse stream as a Drawable: a lit,
// opaque surface extracted at IsoLevel (the marching-cubes mesh itself
// is a renderer concern, out of scope per spec §4.7).
type isosurface struct {
	voxels *fstream.VoxelSparse
}

func (i *isosurface) BoundingBox() geom.BoundCube {
	b := geom.EmptyBoundCube()
	i.voxels.Grid.Range(func(x, y, z int, val float64) {
		b = b.ExpandByPoint(i.voxels.Grid.LatticePoint(x, y, z))
	})
	return b
}
func (i *isosurface) WantsLighting() bool  { return true }
func (i *isosurface) NeedsDepthSort() bool { return false }
func (i *isosurface) Selectable() bool     { return false }
func (i *isosurface) IsOverlay() bool      { return false }
func (i *isosurface) Release()             {}

// Voxels exposes the underlying sparse grid and iso level for a
// renderer's mesh extraction.
func (i *isosurface) Voxels() *fstream.VoxelSparse { return i.voxels }
