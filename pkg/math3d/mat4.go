package math3d

import (
	"errors"
	"fmt"
	"math"
)

// ErrSingularMatrix is returned when inverting a matrix whose determinant is
// (close to) zero.
var ErrSingularMatrix = errors.New("math3d: matrix has no inverse")

// singularEpsilon is the determinant magnitude below which Inverse gives up.
const singularEpsilon = 1e-12

// Mat4 is a 4x4 matrix stored in row-major order for row vectors (v' = v·M).
//
// Memory layout (indices):
// | 0  1  2  3  |
// | 4  5  6  7  |
// | 8  9  10 11 |
// | 12 13 14 15 |
//
// For a rigid transform the first three rows are the images of the X, Y and
// Z axes and the last row holds the translation.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateX creates a rotation of angle radians around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY creates a rotation of angle radians around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ creates a rotation of angle radians around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Projection creates a perspective projection matrix.
// fovDeg is the field of view in degrees; the projected W equals the
// view-space Z so a perspective divide can follow.
func Projection(fovDeg, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovDeg*math.Pi/180/2)
	depth := far / (far - near)

	return Mat4{
		aspect * f, 0, 0, 0,
		0, f, 0, 0,
		0, 0, depth, 1,
		0, 0, -near * depth, 0,
	}
}

// PointAt builds the camera-to-world matrix of a camera at pos looking at
// target. Its inverse is the view matrix.
func PointAt(pos, target, up Vec4) (Mat4, error) {
	forward, err := target.Sub(pos).Normalize()
	if err != nil {
		return Mat4{}, fmt.Errorf("point at: target equals position: %w", err)
	}

	newUp, err := up.Sub(forward.Scale(up.Dot(forward))).Normalize()
	if err != nil {
		return Mat4{}, fmt.Errorf("point at: up is parallel to forward: %w", err)
	}

	right := newUp.Cross(forward)

	return Mat4{
		right.X, right.Y, right.Z, 0,
		newUp.X, newUp.Y, newUp.Z, 0,
		forward.X, forward.Y, forward.Z, 0,
		pos.X, pos.Y, pos.Z, 1,
	}, nil
}

// Mul composes two transforms: applying the result is applying a, then b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row*4+k] * b[k*4+col]
			}
			m[row*4+col] = sum
		}
	}
	return m
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// minors returns the six 2x2 determinants of the top two rows (s) and the
// bottom two rows (c) used by Determinant and Inverse.
func (m Mat4) minors() (s, c [6]float64) {
	s[0] = m[0]*m[5] - m[4]*m[1]
	s[1] = m[0]*m[6] - m[4]*m[2]
	s[2] = m[0]*m[7] - m[4]*m[3]
	s[3] = m[1]*m[6] - m[5]*m[2]
	s[4] = m[1]*m[7] - m[5]*m[3]
	s[5] = m[2]*m[7] - m[6]*m[3]

	c[0] = m[8]*m[13] - m[12]*m[9]
	c[1] = m[8]*m[14] - m[12]*m[10]
	c[2] = m[8]*m[15] - m[12]*m[11]
	c[3] = m[9]*m[14] - m[13]*m[10]
	c[4] = m[9]*m[15] - m[13]*m[11]
	c[5] = m[10]*m[15] - m[14]*m[11]
	return s, c
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	s, c := m.minors()
	return s[0]*c[5] - s[1]*c[4] + s[2]*c[3] + s[3]*c[2] - s[4]*c[1] + s[5]*c[0]
}

// Inverse returns the inverse of the matrix, or ErrSingularMatrix.
func (m Mat4) Inverse() (Mat4, error) {
	s, c := m.minors()
	det := s[0]*c[5] - s[1]*c[4] + s[2]*c[3] + s[3]*c[2] - s[4]*c[1] + s[5]*c[0]
	if math.Abs(det) < singularEpsilon {
		return Mat4{}, ErrSingularMatrix
	}
	d := 1 / det

	return Mat4{
		(m[5]*c[5] - m[6]*c[4] + m[7]*c[3]) * d,
		(-m[1]*c[5] + m[2]*c[4] - m[3]*c[3]) * d,
		(m[13]*s[5] - m[14]*s[4] + m[15]*s[3]) * d,
		(-m[9]*s[5] + m[10]*s[4] - m[11]*s[3]) * d,

		(-m[4]*c[5] + m[6]*c[2] - m[7]*c[1]) * d,
		(m[0]*c[5] - m[2]*c[2] + m[3]*c[1]) * d,
		(-m[12]*s[5] + m[14]*s[2] - m[15]*s[1]) * d,
		(m[8]*s[5] - m[10]*s[2] + m[11]*s[1]) * d,

		(m[4]*c[4] - m[5]*c[2] + m[7]*c[0]) * d,
		(-m[0]*c[4] + m[1]*c[2] - m[3]*c[0]) * d,
		(m[12]*s[4] - m[13]*s[2] + m[15]*s[0]) * d,
		(-m[8]*s[4] + m[9]*s[2] - m[11]*s[0]) * d,

		(-m[4]*c[3] + m[5]*c[1] - m[6]*c[0]) * d,
		(m[0]*c[3] - m[1]*c[1] + m[2]*c[0]) * d,
		(-m[12]*s[3] + m[13]*s[1] - m[14]*s[0]) * d,
		(m[8]*s[3] - m[9]*s[1] + m[10]*s[0]) * d,
	}, nil
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row*4+col]
}

// ApproxEqual reports whether every element of a and b differs by at most eps.
//
//nolint:st1016 // a,b naming convention is clearer for comparison
func (a Mat4) ApproxEqual(b Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
