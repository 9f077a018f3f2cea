package mathutil

import "math"

// Vec4 is a 4-component vector (value type, stack-allocated).
// Depending on role the components are x,y,z,w or r,g,b,a.
type Vec4 [4]float32

// Len returns the length of the xyz part.
func (v Vec4) Len() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// Normalize scales the xyz part to unit length. A zero vector is returned as is.
func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	if l == 0 {
		return v
	}
	inv := 1 / l
	return Vec4{v[0] * inv, v[1] * inv, v[2] * inv, v[3]}
}

func (v Vec4) Add(b Vec4) Vec4 {
	return Vec4{v[0] + b[0], v[1] + b[1], v[2] + b[2], v[3] + b[3]}
}

func (v Vec4) Sub(b Vec4) Vec4 {
	return Vec4{v[0] - b[0], v[1] - b[1], v[2] - b[2], v[3] - b[3]}
}

// Dot is the xyz dot product; w is ignored.
func (v Vec4) Dot(b Vec4) float32 {
	return v[0]*b[0] + v[1]*b[1] + v[2]*b[2]
}

// Cross is the xyz cross product with w = 0.
func (v Vec4) Cross(b Vec4) Vec4 {
	return Vec4{
		v[1]*b[2] - v[2]*b[1],
		v[2]*b[0] - v[0]*b[2],
		v[0]*b[1] - v[1]*b[0],
		0,
	}
}

// Scale multiplies the xyz part by s and keeps w.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3]}
}

// Lerp blends a toward b by t. t is not clamped.
func Lerp(a, b Vec4, t float32) Vec4 {
	return Vec4{
		LerpF(a[0], b[0], t),
		LerpF(a[1], b[1], t),
		LerpF(a[2], b[2], t),
		LerpF(a[3], b[3], t),
	}
}

// LerpF is the scalar form of Lerp.
func LerpF(a, b, t float32) float32 {
	return a + (b-a)*t
}
