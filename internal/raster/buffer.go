package raster

import "image"

const (
	// ClearColor is opaque black.
	ClearColor uint32 = 0xff000000
	// WireframeColor is opaque white.
	WireframeColor uint32 = 0xffffffff
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
//
// Color packs one pixel per uint32 with R in the low byte and A in the high
// byte, so the little-endian byte layout is R,G,B,A. Depth stores the
// reciprocal of clip-space w: larger is nearer and 0 means infinitely far.
// Row 0 is the bottom of the viewport.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint32  // len = W*H
	Depth  []float32 // len = W*H
}

// NewFrameBuffer allocates a cleared color and depth buffer.
func NewFrameBuffer(w, h int) FrameBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	fb := FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint32, w*h),
		Depth:  make([]float32, w*h),
	}
	fb.Clear()
	return fb
}

// Clear resets every pixel to ClearColor and every depth slot to 0.
func (fb *FrameBuffer) Clear() {
	for i := range fb.Color {
		fb.Color[i] = ClearColor
	}
	for i := range fb.Depth {
		fb.Depth[i] = 0
	}
}

// At returns the packed color at (x, y), or 0 outside the buffer.
func (fb *FrameBuffer) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return 0
	}
	return fb.Color[y*fb.Width+x]
}

// DepthAt returns the stored reciprocal depth at (x, y), or 0 outside the buffer.
func (fb *FrameBuffer) DepthAt(x, y int) float32 {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return 0
	}
	return fb.Depth[y*fb.Width+x]
}

// Image copies the color buffer into an NRGBA image, top row first.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		src := fb.Color[(fb.Height-1-y)*fb.Width : (fb.Height-y)*fb.Width]
		off := y * img.Stride
		for x, c := range src {
			i := off + x*4
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = UnpackRGBA(c)
		}
	}
	return img
}

// PackRGBA packs 8-bit channels into the frame buffer's pixel layout.
func PackRGBA(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// UnpackRGBA is the inverse of PackRGBA.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}
