// Package raster is a CPU-only triangle rasterizer: a render context with a
// color and depth buffer, a fixed transform pipeline, trivial-reject and
// back-face culling, perspective-correct scanline filling, nearest texel
// sampling and single-light Blinn-Phong shading.
//
// A Context is not safe for concurrent use. Use one Context per goroutine;
// textures may be shared between them.
package raster

import "softrender/internal/transform"

// DrawMode selects the passes run for each triangle. Modes combine.
type DrawMode int

const (
	DrawFill      DrawMode = 1
	DrawWireframe DrawMode = 2
)

// Stats counts what happened to submitted triangles since the last Clear.
type Stats struct {
	Submitted    int
	ClipRejected int
	Culled       int
	Drawn        int
}

func (s *Stats) record(r Rejection) {
	s.Submitted++
	switch r {
	case RejectClipVolume:
		s.ClipRejected++
	case RejectBackFace:
		s.Culled++
	default:
		s.Drawn++
	}
}

// Context is the mutable state for rendering into one target.
//
// Attribute slices and the bound texture are borrowed: they must stay valid
// until the draw calls that use them return.
type Context struct {
	FrameBuffer
	Transform *transform.Transform

	positions   []float32 // 3 per vertex
	vertexCount int
	normals     []float32 // 3 per vertex
	colors      []float32 // 4 per vertex
	texcoords   []float32 // 2 per vertex

	lighting int
	light    Light
	shade    shader

	drawMode DrawMode
	texture  *Texture

	stats Stats
}

// NewContext creates a cleared context with the default camera, filled draw
// mode, lighting off and no texture.
func NewContext(width, height int) *Context {
	c := &Context{
		FrameBuffer: NewFrameBuffer(width, height),
		Transform:   transform.New(width, height),
		drawMode:    DrawFill,
	}
	Logger().Debug("context created", "width", c.Width, "height", c.Height)
	return c
}

// Destroy releases the buffers. Later draw calls do nothing.
func (c *Context) Destroy() {
	Logger().Debug("context destroyed", "width", c.Width, "height", c.Height)
	c.Color = nil
	c.Depth = nil
	c.Width, c.Height = 0, 0
	c.texture = nil
	c.positions, c.normals, c.colors, c.texcoords = nil, nil, nil, nil
	c.vertexCount = 0
}

// Clear resets the color and depth buffers and the triangle counters.
func (c *Context) Clear() {
	c.FrameBuffer.Clear()
	c.stats = Stats{}
}

// Pixels returns the packed color buffer, row 0 at the bottom.
func (c *Context) Pixels() []uint32 { return c.Color }

// Stats returns the triangle counters since the last Clear.
func (c *Context) Stats() Stats { return c.stats }

// VertexPointer binds count positions of 3 floats each. Required for drawing.
func (c *Context) VertexPointer(count int, data []float32) {
	c.positions = data
	c.vertexCount = count
}

// NormalPointer binds 3 floats per vertex. nil unbinds; normals then default to zero.
func (c *Context) NormalPointer(data []float32) { c.normals = data }

// ColorPointer binds 4 floats per vertex. nil unbinds; colors then default to opaque white.
func (c *Context) ColorPointer(data []float32) { c.colors = data }

// TexCoordPointer binds 2 floats per vertex. nil unbinds; texcoords then default to (0, 0).
func (c *Context) TexCoordPointer(data []float32) { c.texcoords = data }

// SetDrawMode replaces the draw mode bitmask.
func (c *Context) SetDrawMode(m DrawMode) { c.drawMode = m }

// EnableDrawMode adds passes to the draw mode.
func (c *Context) EnableDrawMode(m DrawMode) { c.drawMode |= m }

// DisableDrawMode removes passes from the draw mode.
func (c *Context) DisableDrawMode(m DrawMode) { c.drawMode &^= m }

func (c *Context) DrawMode() DrawMode { return c.drawMode }

// EnableLight sets light bits (Light0).
func (c *Context) EnableLight(mask int) { c.lighting |= mask }

// DisableLight clears light bits.
func (c *Context) DisableLight(mask int) { c.lighting &^= mask }

func (c *Context) LightEnabled() bool { return c.lighting != 0 }

// SetLight overwrites the light slot. It does not enable lighting.
func (c *Context) SetLight(l Light) { c.light = l }

func (c *Context) Light() Light { return c.light }

// BindTexture binds tex for sampling, or unbinds with nil.
func (c *Context) BindTexture(tex *Texture) { c.texture = tex }

func (c *Context) BoundTexture() *Texture { return c.texture }
