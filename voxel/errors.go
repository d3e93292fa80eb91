package voxel

import "fmt"

func errOutOfRange(axis Axis, offset, n int) error {
	return fmt.Errorf("voxel: slice offset %d out of range [0,%d) on axis %d", offset, n, axis)
}

func errOutOfRangeF(axis Axis, fraction float64) error {
	return fmt.Errorf("voxel: slice fraction %v out of range [0,1] on axis %d", fraction, axis)
}
