package mathutil

import "math"

// Epsilon is the tolerance used for degenerate-axis and coincident-point checks.
const Epsilon = 1e-6

// Mat4 is a 4×4 matrix stored column-major: m[col*4+row].
// Value type for zero heap allocation.
type Mat4 [16]float32

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b, so b is applied to a vector first.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for c := 0; c < 4; c++ {
		b0, b1, b2, b3 := b[c*4+0], b[c*4+1], b[c*4+2], b[c*4+3]
		for r := 0; r < 4; r++ {
			m[c*4+r] = b0*a[0*4+r] + b1*a[1*4+r] + b2*a[2*4+r] + b3*a[3*4+r]
		}
	}
	return m
}

// MulVec4 returns M × v for a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	x, y, z, w := v[0], v[1], v[2], v[3]
	return Vec4{
		x*m[0] + y*m[4] + z*m[8] + w*m[12],
		x*m[1] + y*m[5] + z*m[9] + w*m[13],
		x*m[2] + y*m[6] + z*m[10] + w*m[14],
		x*m[3] + y*m[7] + z*m[11] + w*m[15],
	}
}

// Inverse returns the inverse of m. The determinant is expanded through the
// six 2×2 minors of the upper and lower row pairs. ok is false, and the
// returned matrix is zero, only when the determinant is exactly zero; callers
// keep their previous value in that case.
func (m Mat4) Inverse() (inv Mat4, ok bool) {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	b00 := a00*a11 - a01*a10
	b01 := a00*a12 - a02*a10
	b02 := a00*a13 - a03*a10
	b03 := a01*a12 - a02*a11
	b04 := a01*a13 - a03*a11
	b05 := a02*a13 - a03*a12
	b06 := a20*a31 - a21*a30
	b07 := a20*a32 - a22*a30
	b08 := a20*a33 - a23*a30
	b09 := a21*a32 - a22*a31
	b10 := a21*a33 - a23*a31
	b11 := a22*a33 - a23*a32

	det := b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
	if det == 0 {
		return Mat4{}, false
	}
	d := 1 / det

	return Mat4{
		(a11*b11 - a12*b10 + a13*b09) * d,
		(a02*b10 - a01*b11 - a03*b09) * d,
		(a31*b05 - a32*b04 + a33*b03) * d,
		(a22*b04 - a21*b05 - a23*b03) * d,
		(a12*b08 - a10*b11 - a13*b07) * d,
		(a00*b11 - a02*b08 + a03*b07) * d,
		(a32*b02 - a30*b05 - a33*b01) * d,
		(a20*b05 - a22*b02 + a23*b01) * d,
		(a10*b10 - a11*b08 + a13*b06) * d,
		(a01*b08 - a00*b10 - a03*b06) * d,
		(a30*b04 - a31*b02 + a33*b00) * d,
		(a21*b02 - a20*b04 - a23*b00) * d,
		(a11*b07 - a10*b09 - a12*b06) * d,
		(a00*b09 - a01*b07 + a02*b06) * d,
		(a31*b01 - a30*b03 - a32*b00) * d,
		(a20*b03 - a21*b01 + a22*b00) * d,
	}, true
}

// Translate returns m × T(v).
func (m Mat4) Translate(v Vec4) Mat4 {
	x, y, z := v[0], v[1], v[2]
	out := m
	out[12] = m[0]*x + m[4]*y + m[8]*z + m[12]
	out[13] = m[1]*x + m[5]*y + m[9]*z + m[13]
	out[14] = m[2]*x + m[6]*y + m[10]*z + m[14]
	out[15] = m[3]*x + m[7]*y + m[11]*z + m[15]
	return out
}

// Scale returns m × S(v).
func (m Mat4) Scale(v Vec4) Mat4 {
	out := m
	for r := 0; r < 4; r++ {
		out[0*4+r] = m[0*4+r] * v[0]
		out[1*4+r] = m[1*4+r] * v[1]
		out[2*4+r] = m[2*4+r] * v[2]
	}
	return out
}

// Rotate returns m × R(rad, axis). The axis need not be unit length; when it
// is shorter than Epsilon m is returned unchanged.
func (m Mat4) Rotate(rad float32, axis Vec4) Mat4 {
	x, y, z := axis[0], axis[1], axis[2]
	l := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if l < Epsilon {
		return m
	}
	l = 1 / l
	x *= l
	y *= l
	z *= l

	s := float32(math.Sin(float64(rad)))
	c := float32(math.Cos(float64(rad)))
	t := 1 - c

	// Columns of the rotation's upper 3×3.
	r := [9]float32{
		x*x*t + c, y*x*t + z*s, z*x*t - y*s,
		x*y*t - z*s, y*y*t + c, z*y*t + x*s,
		x*z*t + y*s, y*z*t - x*s, z*z*t + c,
	}

	out := m
	for col := 0; col < 3; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] = m[0*4+row]*r[col*3+0] + m[1*4+row]*r[col*3+1] + m[2*4+row]*r[col*3+2]
		}
	}
	return out
}

// ApproxEqual reports whether every element of a and b differs by at most tol.
func ApproxEqual(a, b Mat4, tol float32) bool {
	for i := range a {
		d := a[i] - b[i]
		if d > tol || d < -tol {
			return false
		}
	}
	return true
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity() bool {
	return ApproxEqual(m, Mat4Identity(), 1e-6)
}
