package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Quaternion is a unit quaternion used to rotate Point3D values. The
// component layout (vector part + scalar part) and the multiply-based
// rotation formula follow the quaternion type used by the 3D scene math
// in the retrieval pack's rendering-engine example, adapted here to
// operate on float64 Point3D values instead of float32 vectors.
type Quaternion struct {
	V Point3D
	R float64
}

// IdentityQuaternion is the rotation that leaves every point unchanged.
func IdentityQuaternion() Quaternion { return Quaternion{R: 1} }

// QuaternionFromAxisAngle builds a unit quaternion representing a
// rotation of angle radians about axis (which need not be normalized).
func QuaternionFromAxisAngle(axis Point3D, angle float64) Quaternion {
	axis = axis.Normalize()
	half := angle / 2
	s := math.Sin(half)
	return Quaternion{V: axis.Scale(s), R: math.Cos(half)}
}

// Mul returns q*r, the composition of rotations that applies r first.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	v := r.V.Scale(q.R).Add(q.V.Scale(r.R)).Add(q.V.Cross(r.V))
	return Quaternion{V: v, R: q.R*r.R - q.V.Dot(r.V)}
}

// Conj returns the conjugate of q, which is its inverse when q is unit
// length.
func (q Quaternion) Conj() Quaternion { return Quaternion{V: q.V.Scale(-1), R: q.R} }

// Matrix returns the 3x3 rotation matrix equivalent to q. Rotate builds
// this matrix afresh for every point it rotates.
func (q Quaternion) Matrix() *mat.Dense {
	x, y, z, w := q.V.X, q.V.Y, q.V.Z, q.R
	m := mat.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	})
	return m
}

// Rotate rotates p by q.
func (p Point3D) Rotate(q Quaternion) Point3D {
	m := q.Matrix()
	var v mat.VecDense
	v.MulVec(m, mat.NewVecDense(3, []float64{p.X, p.Y, p.Z}))
	return Point3D{v.AtVec(0), v.AtVec(1), v.AtVec(2)}
}
