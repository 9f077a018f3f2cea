package raster

import "softrender/internal/mathutil"

// Clip-volume outcode bits, one per violated half space.
const (
	clipLeft   = 1 << iota // x < -w
	clipRight              // x > w
	clipBottom             // y < -w
	clipTop                // y > w
	clipNear               // z < 0
	clipFar                // z > w
)

// Rejection says why a triangle produced no pixels.
type Rejection uint8

const (
	RejectNone Rejection = iota
	RejectClipVolume
	RejectBackFace
)

func (r Rejection) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectClipVolume:
		return "clip-volume"
	case RejectBackFace:
		return "back-face"
	}
	return "unknown"
}

// outcode classifies a clip-space position against the six planes of the
// clip volume. Zero means inside.
func outcode(p mathutil.Vec4) uint8 {
	w := p[3]
	var code uint8
	if p[0] < -w {
		code |= clipLeft
	}
	if p[0] > w {
		code |= clipRight
	}
	if p[1] < -w {
		code |= clipBottom
	}
	if p[1] > w {
		code |= clipTop
	}
	if p[2] < 0 {
		code |= clipNear
	}
	if p[2] > w {
		code |= clipFar
	}
	return code
}

// classify runs the trivial reject and the back-face test on a clip-space
// triangle.
//
// The triangle is rejected when every vertex is outside some plane, even if
// the planes differ between vertices. No clipping is done: partially visible
// triangles pass through with out-of-range coordinates.
func classify(p0, p1, p2 mathutil.Vec4) Rejection {
	if outcode(p0) != 0 && outcode(p1) != 0 && outcode(p2) != 0 {
		return RejectClipVolume
	}
	n := p0.Sub(p1).Cross(p0.Sub(p2))
	if n[2] < 0 {
		return RejectBackFace
	}
	return RejectNone
}
