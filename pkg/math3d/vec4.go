// Package math3d provides the homogeneous vector and matrix math used by the
// Trusk pipeline.
//
// Vectors are rows: a point p is transformed by a matrix M as p·M.
package math3d

import (
	"errors"
	"math"
)

// ErrZeroLength is returned when normalizing a vector of length 0.
var ErrZeroLength = errors.New("math3d: zero-length vector")

// Vec4 represents a homogeneous 3D point (W=1) or direction (W=0).
//
// Add, Sub, Scale and Normalize act on X, Y, Z and keep the receiver's W.
// Dot, Cross and Len ignore W. W only takes part in Transform and the
// perspective divide.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point creates a point (W=1).
func Point(x, y, z float64) Vec4 {
	return Vec4{x, y, z, 1}
}

// Dir creates a direction (W=0).
func Dir(x, y, z float64) Vec4 {
	return Vec4{x, y, z, 0}
}

// Add returns the vector sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W}
}

// Sub returns the vector difference.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W}
}

// Scale returns the scalar product.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W}
}

// Dot returns the dot product of the XYZ parts.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b as a direction.
//
//nolint:st1016 // a×b naming convention is clearer for vector operations
func (a Vec4) Cross(b Vec4) Vec4 {
	return Vec4{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
		0,
	}
}

// Len returns the Euclidean length of the XYZ part.
func (v Vec4) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector, or ErrZeroLength.
func (v Vec4) Normalize() (Vec4, error) {
	l := v.Len()
	if l == 0 {
		return v, ErrZeroLength
	}
	return Vec4{v.X / l, v.Y / l, v.Z / l, v.W}, nil
}

// Lerp returns the linear interpolation between a and b by t.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return a.Add(b.Sub(a).Scale(t))
}

// DistanceToPlane returns the signed distance from p to the plane through
// planeP with unit normal planeN. Positive means the side the normal points to.
func DistanceToPlane(p, planeP, planeN Vec4) float64 {
	return planeN.Dot(p) - planeN.Dot(planeP)
}

// Transform returns v·m, treating v as a 1×4 row.
func (v Vec4) Transform(m Mat4) Vec4 {
	return Vec4{
		v.X*m[0] + v.Y*m[4] + v.Z*m[8] + v.W*m[12],
		v.X*m[1] + v.Y*m[5] + v.Z*m[9] + v.W*m[13],
		v.X*m[2] + v.Y*m[6] + v.Z*m[10] + v.W*m[14],
		v.X*m[3] + v.Y*m[7] + v.Z*m[11] + v.W*m[15],
	}
}

// PerspectiveDivide divides X, Y, Z and W by W. It reports false, leaving v
// untouched, when |W| < eps.
func (v Vec4) PerspectiveDivide(eps float64) (Vec4, bool) {
	if math.Abs(v.W) < eps {
		return v, false
	}
	inv := 1 / v.W
	return Vec4{v.X * inv, v.Y * inv, v.Z * inv, 1}, true
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
//
//nolint:st1016 // a,b naming convention is clearer for comparison
func (a Vec4) ApproxEqual(b Vec4, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps &&
		math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps &&
		math.Abs(a.W-b.W) <= eps
}
