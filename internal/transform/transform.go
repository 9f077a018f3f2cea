// Package transform owns the model, view and projection matrices of a render
// target and their combined model-view-projection product.
package transform

import (
	"math"

	"softrender/internal/mathutil"
)

// Default camera and projection used by New.
var (
	DefaultEye    = mathutil.Vec4{0, 0, 3, 1}
	DefaultCenter = mathutil.Vec4{0, 0, 0, 1}
	DefaultUp     = mathutil.Vec4{0, 1, 0, 0}
)

const (
	DefaultFovY = math.Pi / 4
	DefaultNear = 1
	DefaultFar  = 100
)

// Transform holds the matrices for one render target.
//
// After mutating Model, View or Projection directly, call Update before the
// next draw. The Set* helpers do that for you.
type Transform struct {
	Model      mathutil.Mat4
	InvModel   mathutil.Mat4 // lighting only
	View       mathutil.Mat4
	Projection mathutil.Mat4
	MVP        mathutil.Mat4

	Width, Height float32
}

// New builds a transform with the default camera looking at the origin and a
// perspective projection matching the target's aspect ratio.
func New(width, height int) *Transform {
	t := &Transform{
		Width:      float32(width),
		Height:     float32(height),
		Model:      mathutil.Mat4Identity(),
		InvModel:   mathutil.Mat4Identity(),
		View:       mathutil.Mat4LookAt(DefaultEye, DefaultCenter, DefaultUp),
		Projection: mathutil.Mat4Identity(),
	}
	if height > 0 {
		t.Projection = mathutil.Mat4Perspective(DefaultFovY, t.Width/t.Height, DefaultNear, DefaultFar)
	}
	t.Update()
	return t
}

// Update recomputes MVP = Projection·View·Model and the inverse model matrix.
// A singular model leaves the previous inverse in place.
func (t *Transform) Update() {
	t.MVP = mathutil.Mat4Mul(mathutil.Mat4Mul(t.Projection, t.View), t.Model)
	if inv, ok := t.Model.Inverse(); ok {
		t.InvModel = inv
	}
}

// Apply maps a homogeneous object-space position to clip space.
func (t *Transform) Apply(v mathutil.Vec4) mathutil.Vec4 {
	return t.MVP.MulVec4(v)
}

func (t *Transform) SetModel(m mathutil.Mat4) {
	t.Model = m
	t.Update()
}

func (t *Transform) SetView(m mathutil.Mat4) {
	t.View = m
	t.Update()
}

func (t *Transform) SetProjection(m mathutil.Mat4) {
	t.Projection = m
	t.Update()
}

// LookAt replaces the view matrix with a camera at eye looking at center.
func (t *Transform) LookAt(eye, center, up mathutil.Vec4) {
	t.SetView(mathutil.Mat4LookAt(eye, center, up))
}

// Perspective replaces the projection. fovy is in radians.
func (t *Transform) Perspective(fovy, near, far float32) {
	aspect := float32(1)
	if t.Height > 0 {
		aspect = t.Width / t.Height
	}
	t.SetProjection(mathutil.Mat4Perspective(fovy, aspect, near, far))
}
