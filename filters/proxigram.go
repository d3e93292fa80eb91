package filters

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
	"github.com/threedepict/tomo/ion"
	"github.com/threedepict/tomo/voxel"
)

// Proxigram computes a proximity histogram (spec §4.6): ions are binned
// by signed distance to the isosurface of an upstream VoxelSparse
// density field, producing atomic concentration as a function of
// distance. Per spec §9's resolved Open Question, the configured
// numerator mask is honored uniformly in every branch — the original's
// "ionID==1" special case is not reproduced.
type Proxigram struct {
	filter.Base
	cellSize           float64
	isoLevel           float64
	numeratorValueName string
	shellWidth         float64
	maxDistance        float64
}

// NewProxigram returns a Proxigram filter with a 1.0 nm level-set voxel
// size, an isosurface level of 0.5 of the upstream field's own units,
// and 0.5 nm shells out to 10 nm either side of the interface.
func NewProxigram() *Proxigram {
	return &Proxigram{Base: filter.NewBase(), cellSize: 1.0, isoLevel: 0.5, shellWidth: 0.5, maxDistance: 10}
}

func (f *Proxigram) TypeID() filter.TypeID { return filter.TypeProxigram }
func (f *Proxigram) TypeString() string    { return "Proxigram" }

func (f *Proxigram) CloneUncached() filter.Filter {
	return &Proxigram{Base: filter.NewBase(), cellSize: f.cellSize, isoLevel: f.isoLevel,
		numeratorValueName: f.numeratorValueName, shellWidth: f.shellWidth, maxDistance: f.maxDistance}
}

func (f *Proxigram) Properties() filter.PropGroups {
	return filter.PropGroups{{
		Title: "Proxigram",
		Props: []filter.Property{
			{Key: "cell-size", Name: "Level-set voxel size", Type: filter.PropReal, Value: f64s(f.cellSize),
				Help: "Isotropic voxel edge length of the narrow-band signed distance field, in nanometres."},
			{Key: "iso-level", Name: "Isosurface level", Type: filter.PropReal, Value: f64s(f.isoLevel),
				Help: "Stored density value, in the upstream field's own units; the interface mesh is extracted at the upstream VoxelSparse stream's own iso-level, not at this value."},
			{Key: "numerator", Name: "Numerator value name", Type: filter.PropString, Value: f.numeratorValueName,
				Help: "ValueName of the ion stream counted into the numerator; other inputs only contribute to the denominator."},
			{Key: "shell-width", Name: "Shell width", Type: filter.PropReal, Value: f64s(f.shellWidth),
				Help: "Distance-bin width in nanometres."},
			{Key: "max-distance", Name: "Max distance", Type: filter.PropReal, Value: f64s(f.maxDistance),
				Help: "Distance range, in nanometres, profiled on either side of the interface."},
		},
	}}
}

func (f *Proxigram) SetProperty(key, value string) (ok, needsUpdate bool) {
	switch key {
	case "cell-size":
		v, err := parseFloat(value)
		if err != nil || v <= 0 {
			return false, false
		}
		if v == f.cellSize {
			return true, false
		}
		f.cellSize = v
		f.ClearCache()
		return true, true
	case "iso-level":
		v, err := parseFloat(value)
		if err != nil {
			return false, false
		}
		if v == f.isoLevel {
			return true, false
		}
		f.isoLevel = v
		f.ClearCache()
		return true, true
	case "numerator":
		if value == f.numeratorValueName {
			return true, false
		}
		f.numeratorValueName = value
		f.ClearCache()
		return true, true
	case "shell-width":
		v, err := parseFloat(value)
		if err != nil || v <= 0 {
			return false, false
		}
		if v == f.shellWidth {
			return true, false
		}
		f.shellWidth = v
		f.ClearCache()
		return true, true
	case "max-distance":
		v, err := parseFloat(value)
		if err != nil || v <= 0 {
			return false, false
		}
		if v == f.maxDistance {
			return true, false
		}
		f.maxDistance = v
		f.ClearCache()
		return true, true
	}
	return false, false
}

// UseMask consumes the upstream sparse density field the interface mesh
// is extracted from, plus the ion streams profiled against it once the
// mesh and its narrow-band distance field are built (spec §4.6).
func (f *Proxigram) UseMask() fstream.Mask {
	return fstream.MaskOf(fstream.KindIons, fstream.KindVoxelSparse)
}
func (f *Proxigram) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *Proxigram) EmitMask() fstream.Mask  { return fstream.MaskOf(fstream.KindPlot1D) }

func (f *Proxigram) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	sparse, ok := firstVoxelSparse(inputs)
	if !ok {
		return nil, filter.InvalidGeometry
	}

	var allHits []ion.Hit
	var isNumerator []bool
	for _, s := range inputs {
		in, ok := s.(*fstream.Ions)
		if !ok {
			continue
		}
		numerator := in.ValueName == f.numeratorValueName
		for _, h := range in.Hits {
			allHits = append(allHits, h)
			isNumerator = append(isNumerator, numerator)
		}
	}
	if len(allHits) == 0 {
		return nil, filter.InvalidGeometry
	}
	bounds := ion.BoundingCube(allHits)
	if !bounds.Valid() || bounds.LargestExtent() == 0 {
		return nil, filter.InvalidGeometry
	}

	// Step 1: volume_to_mesh — extract the interface as the set of
	// points where the grid's lattice edges cross the isosurface level
	// (spec §4.6 step 1). This stands in for full marching-cubes
	// triangulation: only vertex positions feed the distance field
	// below, so face connectivity is never needed.
	verts := meshFromSparseGrid(sparse.Grid, sparse.IsoLevel)
	if len(verts) == 0 {
		return nil, filter.MeshFailure
	}
	// Step 2: sanitize — any vertex with a non-finite coordinate
	// collapses to the origin (spec §4.6 step 2), so a stray crossing
	// never sweeps a nearest-neighbour search across all of space.
	sanitizeMeshVertices(verts)

	// Step 3/4: mesh-to-SDF. The narrow band covers maxDistance plus
	// half a shell width on either side of the interface (spec §4.6 step
	// 3); the field is built directly in physical (nanometre) units
	// rather than voxel units and rescaled, since the nearest-vertex
	// search already operates in physical coordinates.
	bandwidth := f.maxDistance + f.shellWidth/2
	sdf, sign, err := buildNarrowBandSDF(verts, bounds, f.cellSize, bandwidth, sparse, abort)
	if err != nil || sdf.NumActive() == 0 {
		return nil, filter.MeshFailure
	}

	// Step 5: numerator/denominator grids share the SDF's lattice
	// (origin, voxel size) so Get(x,y,z) at an active SDF voxel reads
	// the contribution-transfer-splatted density at that same point.
	numerGrid := voxel.NewSparseGrid(sdf.Origin(), sdf.VoxelSize())
	denomGrid := voxel.NewSparseGrid(sdf.Origin(), sdf.VoxelSize())
	for i, h := range allHits {
		if abort.IsSet() {
			return nil, filter.Aborted
		}
		if i%filter.CheckInterval == 0 {
			progress.Step(i, len(allHits), "splatting proxigram density")
		}
		denomGrid.Splat(h.Pos, 1)
		if isNumerator[i] {
			numerGrid.Splat(h.Pos, 1)
		}
	}

	// Step 7: bucket every active SDF voxel by signed physical distance,
	// not by ion position. Shells are centered on the interface itself
	// (spec §8 test 5: shell centers are exact multiples of shellWidth,
	// including 0), so the bin count is odd and bins run symmetrically
	// outward from k=0.
	numHalf := int(math.Round(f.maxDistance / f.shellWidth))
	numBins := 2*numHalf + 1
	numerCounts := make([]float64, numBins)
	denomCounts := make([]float64, numBins)
	sdf.Range(func(x, y, z int, dist float64) {
		k := int(math.Round(dist * sign(x, y, z) / f.shellWidth))
		if k < -numHalf || k > numHalf {
			return
		}
		bin := k + numHalf
		denomCounts[bin] += denomGrid.Get(x, y, z)
		numerCounts[bin] += numerGrid.Get(x, y, z)
	})
	if floats.Sum(denomCounts) == 0 {
		return nil, filter.MeshFailure
	}

	ratio, err := voxel.DivideElementwise(vecAsGrid(numerCounts), vecAsGrid(denomCounts))
	if err != nil {
		return nil, filter.MeshFailure
	}
	x := make([]float64, numBins)
	y := make([]float64, numBins)
	y2 := make([]float64, numBins)
	raw := ratio.Raw()
	for i := 0; i < numBins; i++ {
		x[i] = float64(i-numHalf) * f.shellWidth
		y[i] = raw[i]
		y2[i] = denomCounts[i]
	}

	out := fstream.NewPlot1D(fstream.NoParent, x, y)
	out.Y2 = y2
	out.Title = "proxigram: " + f.numeratorValueName
	out.XLabel, out.YLabel = "distance to interface (nm)", "concentration"
	outputs := []fstream.Stream{out}
	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}

// meshFromSparseGrid extracts the isosurface of grid at level as a
// point cloud of lattice-edge crossings (spec §4.6 step 1's
// volume_to_mesh): for every active cell and each of its three
// positive-axis active neighbours, a sign change of (value-level)
// across the edge is linearly interpolated to the crossing point.
func meshFromSparseGrid(grid *voxel.SparseGrid, level float64) []geom.Point3D {
	var verts []geom.Point3D
	grid.Range(func(x, y, z int, v0 float64) {
		neighbours := [3][3]int{{x + 1, y, z}, {x, y + 1, z}, {x, y, z + 1}}
		for _, n := range neighbours {
			if !grid.Has(n[0], n[1], n[2]) {
				continue
			}
			v1 := grid.Get(n[0], n[1], n[2])
			if (v0-level)*(v1-level) >= 0 {
				continue
			}
			t := (level - v0) / (v1 - v0)
			p0 := grid.LatticePoint(x, y, z)
			p1 := grid.LatticePoint(n[0], n[1], n[2])
			verts = append(verts, p0.Add(p1.Sub(p0).Scale(t)))
		}
	})
	return verts
}

// sanitizeMeshVertices implements spec §4.6 step 2: a vertex with any
// non-finite coordinate collapses to the origin in all three
// coordinates.
func sanitizeMeshVertices(verts []geom.Point3D) {
	for i, v := range verts {
		if !isFinite(v.X) || !isFinite(v.Y) || !isFinite(v.Z) {
			verts[i] = geom.Point3D{}
		}
	}
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// vertexBucketKey buckets a point onto a cellSize lattice for the
// nearest-vertex spatial hash buildNarrowBandSDF uses.
type vertexBucketKey struct{ X, Y, Z int }

// buildNarrowBandSDF computes a signed distance field over a narrow
// band around verts (spec §4.6 step 3): voxels within bandwidth (in
// physical units) of the nearest mesh vertex are marked active, storing
// the unsigned distance in sdf; sign, returned separately, reports
// whether voxel (x,y,z) lies outside (+1) or inside (-1) the interface,
// read from the original density field relative to its own iso level.
func buildNarrowBandSDF(verts []geom.Point3D, ionBounds geom.BoundCube, voxelSize, bandwidth float64, sparse *fstream.VoxelSparse, abort *filter.AbortFlag) (sdf *voxel.SparseGrid, sign func(x, y, z int) float64, err error) {
	if voxelSize <= 0 {
		return nil, nil, errInvalidSDF{}
	}
	buckets := make(map[vertexBucketKey][]geom.Point3D)
	for _, v := range verts {
		k := vertexBucketKey{ifloorDiv(v.X, voxelSize), ifloorDiv(v.Y, voxelSize), ifloorDiv(v.Z, voxelSize)}
		buckets[k] = append(buckets[k], v)
	}
	searchRadius := int(math.Ceil(bandwidth/voxelSize)) + 1

	margin := geom.Pt(bandwidth, bandwidth, bandwidth)
	origin := ionBounds.Min.Sub(margin)
	extent := ionBounds.Extent().Add(margin.Scale(2))
	nx := cellCount(extent.X, voxelSize)
	ny := cellCount(extent.Y, voxelSize)
	nz := cellCount(extent.Z, voxelSize)

	sdf = voxel.NewSparseGrid(origin, voxelSize)
	signs := make(map[vertexBucketKey]float64)
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				if abort.IsSet() {
					return nil, nil, errInvalidSDF{}
				}
				p := sdf.LatticePoint(ix, iy, iz)
				bk := vertexBucketKey{ifloorDiv(p.X, voxelSize), ifloorDiv(p.Y, voxelSize), ifloorDiv(p.Z, voxelSize)}
				dist, found := nearestVertexDist(buckets, bk, searchRadius, p)
				if !found || dist > bandwidth {
					continue
				}
				sdf.Set(ix, iy, iz, dist)
				signs[vertexBucketKey{ix, iy, iz}] = densitySign(sparse, p)
			}
		}
	}
	return sdf, func(x, y, z int) float64 { return signs[vertexBucketKey{x, y, z}] }, nil
}

// errInvalidSDF reports that no narrow-band field could be built
// (degenerate inputs or cancellation mid-scan).
type errInvalidSDF struct{}

func (errInvalidSDF) Error() string { return "proxigram: could not build narrow-band SDF" }

// nearestVertexDist searches the buckets within radius cells of center
// for the closest vertex to p, returning false if none exists.
func nearestVertexDist(buckets map[vertexBucketKey][]geom.Point3D, center vertexBucketKey, radius int, p geom.Point3D) (float64, bool) {
	best := math.Inf(1)
	found := false
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			for dz := -radius; dz <= radius; dz++ {
				verts, ok := buckets[vertexBucketKey{center.X + dx, center.Y + dy, center.Z + dz}]
				if !ok {
					continue
				}
				for _, v := range verts {
					d := p.Dist(v)
					if d < best {
						best, found = d, true
					}
				}
			}
		}
	}
	return best, found
}

// densitySign reads sparse's own density field at p relative to its
// isosurface level: lower density than the level is "outside" the
// particle (+1), at or above is "inside" (-1), matching the signed
// distance field convention positive-outside/negative-inside.
func densitySign(sparse *fstream.VoxelSparse, p geom.Point3D) float64 {
	u := p.Sub(sparse.Grid.Origin()).Scale(1 / sparse.Grid.VoxelSize())
	x, y, z := int(math.Round(u.X)), int(math.Round(u.Y)), int(math.Round(u.Z))
	if sparse.Grid.Get(x, y, z) < sparse.IsoLevel {
		return 1
	}
	return -1
}

func ifloorDiv(v, size float64) int {
	f := v / size
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}

// vecAsGrid wraps a flat count slice as a 1-D voxel grid so it can be
// run through voxel.DivideElementwise, reusing the 0/0-safe division
// logic instead of duplicating it here. The bounds are arbitrary since
// only Raw() is read back.
func vecAsGrid(v []float64) *voxel.Voxels[float64] {
	bounds := geom.EmptyBoundCube().ExpandByPoint(geom.Pt(0, 0, 0)).ExpandByPoint(geom.Pt(float64(len(v)), 1, 1))
	g, _ := voxel.New[float64](len(v), 1, 1, bounds)
	copy(g.Raw(), v)
	return g
}
