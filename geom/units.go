package geom

import "github.com/ctessum/unit"

// lengthDimension describes a physical length for the unit.Unit values
// used by DescribeLength. Point3D and BoundCube themselves stay plain
// float64 on the hot path (voxelization, clustering) for speed, matching
// spec §5's performance contract; unit.Unit appears only in
// DescribeLength, which no plot-axis label or property help text in
// this module calls.
var lengthDimension = unit.Dimensions{unit.LengthDim: 1}

// DescribeLength renders a physical length, stored in the convention's
// base unit (nanometres), as a unit.Unit scaled to metres so help text
// and axis labels can report it in SI terms.
func DescribeLength(nanometres float64) *unit.Unit {
	return unit.New(nanometres*1e-9, lengthDimension)
}
