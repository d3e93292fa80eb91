package filters

import (
	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
	"github.com/threedepict/tomo/ion"
	"github.com/threedepict/tomo/voxel"
)

// voxelizeMode selects the grid representation spec §4.5 produces.
type voxelizeMode int

const (
	voxelizeDenseCount voxelizeMode = iota
	voxelizeSparseDensity
)

// voxelizeNorm selects how a dense grid's raw hit counts are turned
// into the emitted cell value (spec §4.5's "normalization mode").
type voxelizeNorm int

const (
	voxelizeNormRaw voxelizeNorm = iota
	voxelizeNormDensity
	voxelizeNormFraction
	voxelizeNormRatio
)

// Voxelize bins ion positions into a voxel grid, either as dense
// per-cell hit counts or as a sparse contribution-transfer density
// field (spec §4.5). For dense grids, normalization selects between
// raw counts, density (counts / cell volume), fraction-of-all-atoms
// (numeratorFilter hits / all hits in the cell) and an explicit
// numerator/denominator ratio (numeratorFilter hits / denominatorFilter
// hits), each ValueName-selected the same way valueFilter restricts the
// base input set.
type Voxelize struct {
	filter.Base
	mode              voxelizeMode
	norm              voxelizeNorm
	cellSize          float64
	smoothStdev       float64
	valueFilter       string // ValueName to restrict input to, empty = all
	numeratorFilter   string // ValueName selecting the numerator mask (fraction, ratio)
	denominatorFilter string // ValueName selecting the denominator mask (ratio only)
}

// NewVoxelize returns a Voxelize filter producing a dense hit-count grid
// with 1.0 nm cells.
func NewVoxelize() *Voxelize {
	return &Voxelize{Base: filter.NewBase(), mode: voxelizeDenseCount, norm: voxelizeNormRaw, cellSize: 1.0}
}

func (f *Voxelize) TypeID() filter.TypeID { return filter.TypeVoxelize }
func (f *Voxelize) TypeString() string    { return "Voxelize" }

func (f *Voxelize) CloneUncached() filter.Filter {
	return &Voxelize{Base: filter.NewBase(), mode: f.mode, norm: f.norm, cellSize: f.cellSize,
		smoothStdev: f.smoothStdev, valueFilter: f.valueFilter,
		numeratorFilter: f.numeratorFilter, denominatorFilter: f.denominatorFilter}
}

func (f *Voxelize) Properties() filter.PropGroups {
	modeChoice := "dense-count"
	if f.mode == voxelizeSparseDensity {
		modeChoice = "sparse-density"
	}
	normChoice := [...]string{"raw", "density", "fraction", "ratio"}[f.norm]
	return filter.PropGroups{{
		Title: "Voxelize",
		Props: []filter.Property{
			{Key: "mode", Name: "Mode", Type: filter.PropChoice, Value: modeChoice, Secondary: "dense-count|sparse-density",
				Help: "dense-count bins raw hit counts into a dense grid; sparse-density splats a contribution-transfer density field."},
			{Key: "normalization", Name: "Normalization", Type: filter.PropChoice, Value: normChoice, Secondary: "raw|density|fraction|ratio",
				Help: "raw emits hit counts; density divides by cell volume; fraction divides numerator-filter hits by all hits in the cell; ratio divides numerator-filter hits by denominator-filter hits. Dense mode only."},
			{Key: "cell-size", Name: "Cell size", Type: filter.PropReal, Value: f64s(f.cellSize),
				Help: "Isotropic voxel edge length in nanometres."},
			{Key: "smooth-stdev", Name: "Smoothing stdev", Type: filter.PropReal, Value: f64s(f.smoothStdev),
				Help: "Standard deviation, in cells, of an optional Gaussian post-smooth; 0 disables smoothing."},
			{Key: "value-filter", Name: "Value name filter", Type: filter.PropString, Value: f.valueFilter,
				Help: "Restrict voxelization to the input Ions stream whose ValueName matches; empty means use all inputs."},
			{Key: "numerator-filter", Name: "Numerator value name", Type: filter.PropString, Value: f.numeratorFilter,
				Help: "ValueName selecting the numerator mask for fraction/ratio normalization."},
			{Key: "denominator-filter", Name: "Denominator value name", Type: filter.PropString, Value: f.denominatorFilter,
				Help: "ValueName selecting the denominator mask for ratio normalization; unused by fraction, which always divides by all atoms."},
		},
	}}
}

func (f *Voxelize) SetProperty(key, value string) (ok, needsUpdate bool) {
	switch key {
	case "mode":
		newMode := f.mode
		switch value {
		case "dense-count":
			newMode = voxelizeDenseCount
		case "sparse-density":
			newMode = voxelizeSparseDensity
		default:
			return false, false
		}
		if newMode == f.mode {
			return true, false
		}
		f.mode = newMode
		f.ClearCache()
		return true, true
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
	case "smooth-stdev":
		v, err := parseFloat(value)
		if err != nil || v < 0 {
			return false, false
		}
		if v == f.smoothStdev {
			return true, false
		}
		f.smoothStdev = v
		f.ClearCache()
		return true, true
	case "normalization":
		newNorm := f.norm
		switch value {
		case "raw":
			newNorm = voxelizeNormRaw
		case "density":
			newNorm = voxelizeNormDensity
		case "fraction":
			newNorm = voxelizeNormFraction
		case "ratio":
			newNorm = voxelizeNormRatio
		default:
			return false, false
		}
		if newNorm == f.norm {
			return true, false
		}
		f.norm = newNorm
		f.ClearCache()
		return true, true
	case "value-filter":
		if value == f.valueFilter {
			return true, false
		}
		f.valueFilter = value
		f.ClearCache()
		return true, true
	case "numerator-filter":
		if value == f.numeratorFilter {
			return true, false
		}
		f.numeratorFilter = value
		f.ClearCache()
		return true, true
	case "denominator-filter":
		if value == f.denominatorFilter {
			return true, false
		}
		f.denominatorFilter = value
		f.ClearCache()
		return true, true
	}
	return false, false
}

func (f *Voxelize) UseMask() fstream.Mask   { return fstream.MaskOf(fstream.KindIons) }
func (f *Voxelize) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *Voxelize) EmitMask() fstream.Mask {
	if f.mode == voxelizeSparseDensity {
		return fstream.MaskOf(fstream.KindVoxelSparse)
	}
	return fstream.MaskOf(fstream.KindVoxelDense)
}

func (f *Voxelize) selectHits(inputs []fstream.Stream) []ion.Hit {
	return selectHitsByName(inputs, f.valueFilter)
}

// selectHitsByName concatenates the Hits of every Ions input whose
// ValueName matches name, or of all Ions inputs when name is empty.
func selectHitsByName(inputs []fstream.Stream, name string) []ion.Hit {
	var hits []ion.Hit
	for _, s := range inputs {
		in, ok := s.(*fstream.Ions)
		if !ok {
			continue
		}
		if name != "" && in.ValueName != name {
			continue
		}
		hits = append(hits, in.Hits...)
	}
	return hits
}

func (f *Voxelize) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	hits := f.selectHits(inputs)
	if len(hits) == 0 {
		return nil, filter.InvalidGeometry
	}
	bounds := ion.BoundingCube(hits)
	if !bounds.Valid() || bounds.LargestExtent() == 0 {
		return nil, filter.InvalidGeometry
	}

	if f.mode == voxelizeSparseDensity {
		grid := voxel.NewSparseGrid(bounds.Min, f.cellSize)
		for i, h := range hits {
			if abort.IsSet() {
				return nil, filter.Aborted
			}
			if i%filter.CheckInterval == 0 {
				progress.Step(i, len(hits), "splatting")
			}
			grid.Splat(h.Pos, 1)
		}
		out := fstream.NewVoxelSparse(fstream.NoParent, grid, 0.5)
		outputs := []fstream.Stream{out}
		if f.CachingEnabled() {
			f.StoreCache(inputs, outputs)
		}
		return outputs, filter.OK
	}

	e := bounds.Extent()
	nx := cellCount(e.X, f.cellSize)
	ny := cellCount(e.Y, f.cellSize)
	nz := cellCount(e.Z, f.cellSize)
	grid, err := binHits(hits, nx, ny, nz, bounds, progress, abort)
	if err != nil {
		return nil, errCodeFor(err)
	}

	var out *voxel.Voxels[float64]
	switch f.norm {
	case voxelizeNormDensity:
		out, err = voxel.New[float64](nx, ny, nz, bounds)
		if err != nil {
			return nil, filter.InvalidGeometry
		}
		vol := grid.CellVolume()
		for i, v := range grid.Raw() {
			out.Raw()[i] = v / vol
		}
	case voxelizeNormFraction:
		numerHits := selectHitsByName(inputs, f.numeratorFilter)
		numerGrid, err := binHits(numerHits, nx, ny, nz, bounds, progress, abort)
		if err != nil {
			return nil, errCodeFor(err)
		}
		out, err = voxel.DivideElementwise(numerGrid, grid)
		if err != nil {
			return nil, filter.MeshFailure
		}
	case voxelizeNormRatio:
		numerHits := selectHitsByName(inputs, f.numeratorFilter)
		denomHits := selectHitsByName(inputs, f.denominatorFilter)
		numerGrid, err := binHits(numerHits, nx, ny, nz, bounds, progress, abort)
		if err != nil {
			return nil, errCodeFor(err)
		}
		denomGrid, err := binHits(denomHits, nx, ny, nz, bounds, progress, abort)
		if err != nil {
			return nil, errCodeFor(err)
		}
		out, err = voxel.DivideElementwise(numerGrid, denomGrid)
		if err != nil {
			return nil, filter.MeshFailure
		}
	default:
		out = grid
	}

	if f.smoothStdev > 0 {
		out.IsotropicGaussianSmooth(f.smoothStdev, 3)
	}
	outStream := fstream.NewVoxelDense(fstream.NoParent, out)
	outStream.BoundsLo, outStream.BoundsHi = out.Min(), out.Max()
	outputs := []fstream.Stream{outStream}
	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}

// abortedErr is returned by binHits when the caller's abort flag fires
// mid-scan, distinguishing cancellation from a real InvalidGeometry.
type abortedErr struct{}

func (abortedErr) Error() string { return "aborted" }

func errCodeFor(err error) filter.ErrCode {
	if _, ok := err.(abortedErr); ok {
		return filter.Aborted
	}
	return filter.InvalidGeometry
}

// binHits produces a dense hit-count grid over the given topology,
// shared by Voxelize's raw/density/fraction/ratio paths so normalization
// only differs in which hit sets get binned.
func binHits(hits []ion.Hit, nx, ny, nz int, bounds geom.BoundCube, progress *filter.Progress, abort *filter.AbortFlag) (*voxel.Voxels[float64], error) {
	grid, err := voxel.New[float64](nx, ny, nz, bounds)
	if err != nil {
		return nil, err
	}
	for i, h := range hits {
		if abort.IsSet() {
			return nil, abortedErr{}
		}
		if i%filter.CheckInterval == 0 {
			progress.Step(i, len(hits), "binning")
		}
		grid.CountHit(h.Pos)
	}
	return grid, nil
}

func cellCount(extent, cellSize float64) int {
	n := int(extent/cellSize + 0.999999)
	if n < 1 {
		n = 1
	}
	return n
}
