package voxel

import "github.com/threedepict/tomo/geom"

// InterpolateTrilinear returns the trilinearly-interpolated value of v at
// world position p. Positions outside the grid are clamped to the
// nearest boundary cell rather than extrapolated.
func (v *Voxels[T]) InterpolateTrilinear(p geom.Point3D) float64 {
	c := v.CellSize()
	rel := p.Sub(v.bounds.Min)

	fx := rel.X/c.X - 0.5
	fy := rel.Y/c.Y - 0.5
	fz := rel.Z/c.Z - 0.5

	x0, y0, z0 := floorClamp(fx, v.nx), floorClamp(fy, v.ny), floorClamp(fz, v.nz)
	x1, y1, z1 := clampIndex(x0+1, v.nx), clampIndex(y0+1, v.ny), clampIndex(z0+1, v.nz)

	tx := fx - float64(x0)
	ty := fy - float64(y0)
	tz := fz - float64(z0)
	tx, ty, tz = clamp01(tx), clamp01(ty), clamp01(tz)

	c000 := float64(v.Get(x0, y0, z0))
	c100 := float64(v.Get(x1, y0, z0))
	c010 := float64(v.Get(x0, y1, z0))
	c110 := float64(v.Get(x1, y1, z0))
	c001 := float64(v.Get(x0, y0, z1))
	c101 := float64(v.Get(x1, y0, z1))
	c011 := float64(v.Get(x0, y1, z1))
	c111 := float64(v.Get(x1, y1, z1))

	c00 := lerp(c000, c100, tx)
	c10 := lerp(c010, c110, tx)
	c01 := lerp(c001, c101, tx)
	c11 := lerp(c011, c111, tx)

	c0 := lerp(c00, c10, ty)
	c1 := lerp(c01, c11, ty)

	return lerp(c0, c1, tz)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func floorClamp(f float64, n int) int {
	i := int(f)
	if f < 0 {
		i--
	}
	return clampIndex(i, n)
}

// SliceInterpMode selects whether an axial slice taken at a fractional
// offset linearly interpolates between the two bracketing planes.
type SliceInterpMode int

const (
	// SliceNoInterp takes the nearest integer plane.
	SliceNoInterp SliceInterpMode = iota
	// SliceLinear interpolates between the two bracketing planes along
	// the slice normal.
	SliceLinear
)

// Axis identifies a grid axis for slicing.
type Axis int

// The three grid axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (v *Voxels[T]) axisSize(axis Axis) int {
	switch axis {
	case AxisX:
		return v.nx
	case AxisY:
		return v.ny
	default:
		return v.nz
	}
}

func (v *Voxels[T]) planeDims(axis Axis) (w, h int) {
	switch axis {
	case AxisX:
		return v.ny, v.nz
	case AxisY:
		return v.nx, v.nz
	default:
		return v.nx, v.ny
	}
}

func (v *Voxels[T]) atAxisOffset(axis Axis, offset, i, j int) T {
	switch axis {
	case AxisX:
		return v.Get(offset, i, j)
	case AxisY:
		return v.Get(i, offset, j)
	default:
		return v.Get(i, j, offset)
	}
}

// Slice extracts the integer-offset plane perpendicular to axis. Offset
// 0 and Size-1 return the first and last plane exactly, with no
// off-by-one, per spec §8.
func (v *Voxels[T]) Slice(axis Axis, offset int) ([]T, error) {
	n := v.axisSize(axis)
	if offset < 0 || offset >= n {
		return nil, errOutOfRange(axis, offset, n)
	}
	w, h := v.planeDims(axis)
	out := make([]T, 0, w*h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			out = append(out, v.atAxisOffset(axis, offset, i, j))
		}
	}
	return out, nil
}

// InterpSlice extracts a plane perpendicular to axis at a fractional
// position in [0,1] along that axis (0 = the first plane, 1 = the last
// plane, values between spread evenly over the planes between them).
// mode selects whether the two
// bracketing integer planes are linearly interpolated.
func (v *Voxels[T]) InterpSlice(axis Axis, fraction float64, mode SliceInterpMode) ([]float64, error) {
	n := v.axisSize(axis)
	if fraction < 0 || fraction > 1 {
		return nil, errOutOfRangeF(axis, fraction)
	}
	pos := fraction * float64(n-1)
	lo := floorClamp(pos, n)
	hi := clampIndex(lo+1, n)
	t := pos - float64(lo)

	loPlane, _ := v.Slice(axis, lo)
	out := make([]float64, len(loPlane))
	if mode == SliceNoInterp || hi == lo || t == 0 {
		for i, x := range loPlane {
			out[i] = float64(x)
		}
		return out, nil
	}
	hiPlane, _ := v.Slice(axis, hi)
	for i := range loPlane {
		out[i] = lerp(float64(loPlane[i]), float64(hiPlane[i]), t)
	}
	return out, nil
}
