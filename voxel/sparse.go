package voxel

import "github.com/threedepict/tomo/geom"

// cellKey indexes an active cell in a SparseGrid.
type cellKey struct{ X, Y, Z int }

// SparseGrid is an implicit, map-backed 3D scalar field over an
// isotropic lattice. Only cells that have ever received a contribution
// are stored, which is the representation spec §3/§4.5 call
// "VoxelSparse" and the common transform is simply the lattice's origin
// and voxel size (no rotation/shear is required by any filter in this
// module).
type SparseGrid struct {
	origin     geom.Point3D
	voxelSize  float64
	cells      map[cellKey]float64
}

// NewSparseGrid creates an empty sparse grid with the given isotropic
// voxel size, anchored so that lattice point (0,0,0) sits at origin.
func NewSparseGrid(origin geom.Point3D, voxelSize float64) *SparseGrid {
	return &SparseGrid{origin: origin, voxelSize: voxelSize, cells: make(map[cellKey]float64)}
}

// VoxelSize returns the isotropic lattice spacing.
func (s *SparseGrid) VoxelSize() float64 { return s.voxelSize }

// Origin returns the world position of lattice point (0,0,0).
func (s *SparseGrid) Origin() geom.Point3D { return s.origin }

// LatticePoint returns the world position of lattice point (x,y,z).
func (s *SparseGrid) LatticePoint(x, y, z int) geom.Point3D {
	return geom.Pt(
		s.origin.X+float64(x)*s.voxelSize,
		s.origin.Y+float64(y)*s.voxelSize,
		s.origin.Z+float64(z)*s.voxelSize,
	)
}

// Get returns the value stored at lattice point (x,y,z), or 0 if it has
// never been written.
func (s *SparseGrid) Get(x, y, z int) float64 { return s.cells[cellKey{x, y, z}] }

// Has reports whether lattice point (x,y,z) has ever received a
// contribution (as opposed to defaulting to 0 via Get).
func (s *SparseGrid) Has(x, y, z int) bool {
	_, ok := s.cells[cellKey{x, y, z}]
	return ok
}

// Set stores val at lattice point (x,y,z), marking it active even if
// val is zero.
func (s *SparseGrid) Set(x, y, z int, val float64) { s.cells[cellKey{x, y, z}] = val }

// Add accumulates delta into lattice point (x,y,z).
func (s *SparseGrid) Add(x, y, z int, delta float64) {
	s.cells[cellKey{x, y, z}] += delta
}

// NumActive returns the number of cells that have ever been written.
func (s *SparseGrid) NumActive() int { return len(s.cells) }

// Range calls f once for every active cell, in unspecified order.
func (s *SparseGrid) Range(f func(x, y, z int, val float64)) {
	for k, v := range s.cells {
		f(k.X, k.Y, k.Z, v)
	}
}

// cornerEpsilon is the fractional-coordinate tolerance under which a
// splat position is treated as exactly coincident with a lattice
// corner, per spec §4.5 step 2.
const cornerEpsilon = 1e-9

// Splat distributes weight among the 8 lattice points surrounding p
// using the contribution-transfer trilinear scheme described in spec
// §4.5 step 2: each neighboring lattice point receives a share
// proportional to the volume of the sub-cuboid of the unit cell on the
// opposite side of that corner from p. A position that lands exactly on
// a lattice corner (within cornerEpsilon) contributes 100% to that
// corner instead of splitting by floating-point-noisy weights.
func (s *SparseGrid) Splat(p geom.Point3D, weight float64) {
	u := p.Sub(s.origin).Scale(1 / s.voxelSize)
	ix, iy, iz := ifloor(u.X), ifloor(u.Y), ifloor(u.Z)
	fx, fy, fz := u.X-float64(ix), u.Y-float64(iy), u.Z-float64(iz)

	if nearInt(fx) && nearInt(fy) && nearInt(fz) {
		cx := ix + roundFrac(fx)
		cy := iy + roundFrac(fy)
		cz := iz + roundFrac(fz)
		s.Add(cx, cy, cz, weight)
		return
	}

	for dx := 0; dx <= 1; dx++ {
		wx := axisWeight(fx, dx)
		for dy := 0; dy <= 1; dy++ {
			wy := axisWeight(fy, dy)
			for dz := 0; dz <= 1; dz++ {
				wz := axisWeight(fz, dz)
				w := wx * wy * wz
				if w == 0 {
					continue
				}
				s.Add(ix+dx, iy+dy, iz+dz, weight*w)
			}
		}
	}
}

func axisWeight(frac float64, side int) float64 {
	if side == 0 {
		return 1 - frac
	}
	return frac
}

func ifloor(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}

func nearInt(f float64) bool {
	return f < cornerEpsilon || f > 1-cornerEpsilon
}

func roundFrac(f float64) int {
	if f > 1-cornerEpsilon {
		return 1
	}
	return 0
}
