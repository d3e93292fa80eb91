package voxel

import (
	"math"

	"github.com/threedepict/tomo/geom"
)

// CountHit increments the cell containing p by one, saturating at the
// maximum value representable by T instead of wrapping, per spec §3
// ("counting point hits into cells (with a saturation flag to avoid
// counter wrap)"). saturated is set to true if this call hit the
// ceiling and the increment was dropped.
func (v *Voxels[T]) CountHit(p geom.Point3D) (saturated bool) {
	x, y, z := v.Index(p)
	return v.incrementSaturating(x, y, z, 1)
}

// AddWeighted adds weight to the cell containing p, saturating at the
// maximum finite value representable by T.
func (v *Voxels[T]) AddWeighted(p geom.Point3D, weight T) (saturated bool) {
	x, y, z := v.Index(p)
	return v.incrementSaturating(x, y, z, weight)
}

func (v *Voxels[T]) incrementSaturating(x, y, z int, delta T) bool {
	off := v.offset(x, y, z)
	cur := v.data[off]
	next := cur + delta
	if next < cur { // integer overflow wrapped around
		v.data[off] = maxValue[T]()
		return true
	}
	v.data[off] = next
	return false
}

// maxValue returns the largest finite value representable by T.
func maxValue[T Number]() T {
	var zero T
	switch any(zero).(type) {
	case float64:
		return T(math.MaxFloat64)
	case float32:
		return T(math.MaxFloat32)
	case uint32:
		return T(math.MaxUint32)
	case uint64:
		return T(math.MaxUint64)
	case int32:
		return T(math.MaxInt32)
	default:
		return T(math.MaxInt64)
	}
}
