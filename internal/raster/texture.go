package raster

import "fmt"

// Texture is an RGBA image in the frame buffer's packed pixel layout.
//
// The creator owns it; a Context only borrows it through BindTexture. A
// texture may be bound to several contexts at once because it is never
// written after creation. Destroy it only after it is unbound everywhere.
type Texture struct {
	Width  int
	Height int
	texels []uint32 // row-major, top row first
}

// NewTexture builds a texture from tightly packed 4-byte R,G,B,A pixels given
// bottom row first. Rows are reversed on the way in so that sampling follows
// the frame buffer's row convention.
func NewTexture(width, height int, rgba []byte) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture: invalid size %dx%d", width, height)
	}
	rowSize := width * 4
	if len(rgba) < rowSize*height {
		return nil, fmt.Errorf("texture: %dx%d needs %d bytes, got %d", width, height, rowSize*height, len(rgba))
	}

	texels := make([]uint32, width*height)
	for y := 0; y < height; y++ {
		src := rgba[(height-1-y)*rowSize : (height-y)*rowSize]
		dst := texels[y*width : (y+1)*width]
		for x := range dst {
			i := x * 4
			dst[x] = PackRGBA(src[i], src[i+1], src[i+2], src[i+3])
		}
	}

	Logger().Debug("texture created", "width", width, "height", height)
	return &Texture{Width: width, Height: height, texels: texels}, nil
}

// Destroy releases the texel storage. Sampling a destroyed texture behaves as
// if no texture were bound.
func (t *Texture) Destroy() {
	if t == nil {
		return
	}
	Logger().Debug("texture destroyed", "width", t.Width, "height", t.Height)
	t.texels = nil
	t.Width, t.Height = 0, 0
}

// Update is the partial-update hook. It does nothing.
func (t *Texture) Update(x, y, w, h int) {}

// At returns the stored texel at column x, stored row y, or 0 when out of range.
func (t *Texture) At(x, y int) uint32 {
	if !t.valid() || x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return 0
	}
	return t.texels[y*t.Width+x]
}

func (t *Texture) valid() bool {
	return t != nil && len(t.texels) > 0
}
