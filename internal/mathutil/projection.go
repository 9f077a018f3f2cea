package mathutil

import "math"

// Mat4Perspective builds a right-handed perspective projection. Points between
// the near and far planes land in clip space with 0 <= z <= w (not -w..w).
func Mat4Perspective(fovy, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovy)/2))
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far * nf, -1,
		0, 0, far * near * nf, 0,
	}
}

// Mat4LookAt builds a view matrix for a camera at eye looking at center.
//
// If eye and center coincide the identity is returned. If up is parallel to the
// view direction the right (and therefore up) axis collapses to zero and the
// resulting basis is degenerate; callers must pick a different up vector.
func Mat4LookAt(eye, center, up Vec4) Mat4 {
	if absf(eye[0]-center[0]) < Epsilon &&
		absf(eye[1]-center[1]) < Epsilon &&
		absf(eye[2]-center[2]) < Epsilon {
		return Mat4Identity()
	}

	z := eye.Sub(center)
	z[3] = 0
	z = z.Normalize()

	x := up.Cross(z)
	if x.Len() < Epsilon {
		x = Vec4{}
	} else {
		x = x.Normalize()
	}

	y := z.Cross(x)
	if y.Len() < Epsilon {
		y = Vec4{}
	} else {
		y = y.Normalize()
	}

	return Mat4{
		x[0], y[0], z[0], 0,
		x[1], y[1], z[1], 0,
		x[2], y[2], z[2], 0,
		-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float32) float32 {
	return d * math.Pi / 180
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
