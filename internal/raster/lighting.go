package raster

import (
	"math"

	"softrender/internal/mathutil"
	"softrender/internal/transform"
)

// Light0 is the bit for the only light slot.
const Light0 = 1

// Light is the single Blinn-Phong light slot.
type Light struct {
	Position  mathutil.Vec4 // xyz used
	Color     mathutil.Vec4 // rgb used
	Ka        float32
	Kd        float32
	Ks        float32
	Shininess uint16
}

// shader holds the per-triangle lighting terms in object space.
type shader struct {
	light    Light
	lightDir mathutil.Vec4
	half     mathutil.Vec4 // precomputed half-vector for Blinn-Phong
}

// newShader moves the light position and the fixed eye into object space
// through the inverse model matrix (as directions, w = 0).
func newShader(l Light, invModel mathutil.Mat4) shader {
	ld := mathutil.Vec4{l.Position[0], l.Position[1], l.Position[2], 0}
	ld = invModel.MulVec4(ld).Normalize()

	eye := transform.DefaultEye
	eye[3] = 0
	eye = invModel.MulVec4(eye).Normalize()

	return shader{
		light:    l,
		lightDir: ld,
		half:     ld.Add(eye).Normalize(),
	}
}

// Factor returns ka + kd·max(0, N·L) + ks·max(0, N·H)^shininess for a normal.
func (s *shader) Factor(normal mathutil.Vec4) float32 {
	n := normal.Normalize()

	diffuse := n.Dot(s.lightDir)
	if diffuse < 0 {
		diffuse = 0
	}

	spec := n.Dot(s.half)
	if spec < 0 {
		spec = 0
	}
	spec = float32(math.Pow(float64(spec), float64(s.light.Shininess)))

	return s.light.Ka + s.light.Kd*diffuse + s.light.Ks*spec
}

// apply scales the rgb channels of color by the lighting factor and the
// light color. Alpha is left alone.
func (s *shader) apply(normal mathutil.Vec4, color *mathutil.Vec4) {
	f := s.Factor(normal)
	color[0] *= f * s.light.Color[0]
	color[1] *= f * s.light.Color[1]
	color[2] *= f * s.light.Color[2]
}
