package raster

import "softrender/internal/mathutil"

// Vertex carries every attribute the rasterizer interpolates.
//
// After Preprocess, Color and TexCoord are premultiplied by OneOverZ so they
// can be interpolated linearly in screen space; divide by OneOverZ to get the
// true value back.
type Vertex struct {
	Position mathutil.Vec4
	Normal   mathutil.Vec4 // w unused
	Color    mathutil.Vec4 // r,g,b,a, not clamped while interpolating
	TexCoord [2]float32
	OneOverZ float32
}

// Preprocess stores 1/w and premultiplies the perspective-corrected attributes.
func (v *Vertex) Preprocess() {
	oz := 1 / v.Position[3]
	v.OneOverZ = oz
	v.TexCoord[0] *= oz
	v.TexCoord[1] *= oz
	v.Color[0] *= oz
	v.Color[1] *= oz
	v.Color[2] *= oz
	v.Color[3] *= oz
}

// PerspectiveDivide maps clip space to normalized device coordinates. A vertex
// with w == 0 is left as is.
func (v *Vertex) PerspectiveDivide() {
	w := v.Position[3]
	if w == 0 {
		return
	}
	inv := 1 / w
	v.Position[0] *= inv
	v.Position[1] *= inv
	v.Position[2] *= inv
	v.Position[3] = 1
}

// ToViewport maps normalized x and y in [-1, 1] to whole pixel coordinates.
// Both axes scale by width; height does not participate. y grows upward, so
// pixel row 0 is the bottom of the target.
func (v *Vertex) ToViewport(width, height int) {
	w := float32(width)
	v.Position[0] = float32(int(w * (v.Position[0] + 1) * 0.5))
	v.Position[1] = float32(int(w * (v.Position[1] + 1) * 0.5))
}

// Interpolate blends every attribute of a toward b by t, OneOverZ included.
func Interpolate(a, b *Vertex, t float32) Vertex {
	return Vertex{
		Position: mathutil.Lerp(a.Position, b.Position, t),
		Normal:   mathutil.Lerp(a.Normal, b.Normal, t),
		Color:    mathutil.Lerp(a.Color, b.Color, t),
		TexCoord: [2]float32{
			mathutil.LerpF(a.TexCoord[0], b.TexCoord[0], t),
			mathutil.LerpF(a.TexCoord[1], b.TexCoord[1], t),
		},
		OneOverZ: mathutil.LerpF(a.OneOverZ, b.OneOverZ, t),
	}
}

// Gradient returns the per-unit change of every attribute from a to b over
// distance.
func Gradient(a, b *Vertex, distance float32) Vertex {
	inv := 1 / distance
	var g Vertex
	for i := 0; i < 4; i++ {
		g.Position[i] = (b.Position[i] - a.Position[i]) * inv
		g.Normal[i] = (b.Normal[i] - a.Normal[i]) * inv
		g.Color[i] = (b.Color[i] - a.Color[i]) * inv
	}
	g.TexCoord[0] = (b.TexCoord[0] - a.TexCoord[0]) * inv
	g.TexCoord[1] = (b.TexCoord[1] - a.TexCoord[1]) * inv
	g.OneOverZ = (b.OneOverZ - a.OneOverZ) * inv
	return g
}

// Accumulate advances v by one step of a gradient.
func (v *Vertex) Accumulate(step *Vertex) {
	v.Advance(step, 1)
}

// Advance adds n steps of a gradient to v.
func (v *Vertex) Advance(step *Vertex, n float32) {
	for i := 0; i < 4; i++ {
		v.Position[i] += step.Position[i] * n
		v.Normal[i] += step.Normal[i] * n
		v.Color[i] += step.Color[i] * n
	}
	v.TexCoord[0] += step.TexCoord[0] * n
	v.TexCoord[1] += step.TexCoord[1] * n
	v.OneOverZ += step.OneOverZ * n
}
