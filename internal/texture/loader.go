package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"

	"softrender/internal/raster"
)

// Extensions lists the file extensions LoadTexture understands, lowercase.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".tga", ".bmp", ".webp"}

// decoders picks the codec by extension. TGA has no magic number, so sniffing
// with image.Decode is not reliable once it is registered.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".tga":  tga.Decode,
	".bmp":  bmp.Decode,
	".webp": webp.Decode,
}

// LoadTexture reads an image file and returns it as NRGBA.
func LoadTexture(path string) (*image.NRGBA, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("texture: unknown extension: %s", ext)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	return toNRGBA(img), nil
}

// Upload converts img into a raster texture. Texture coordinate v = 0 samples
// the top row of the image.
func Upload(img *image.NRGBA) (*raster.Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("texture: upload nil image")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rowSize := w * 4

	// raster.NewTexture expects the bottom row first.
	buf := make([]byte, rowSize*h)
	for y := 0; y < h; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(buf[(h-1-y)*rowSize:(h-y)*rowSize], src[:rowSize])
	}

	tex, err := raster.NewTexture(w, h, buf)
	if err != nil {
		return nil, fmt.Errorf("texture: upload: %w", err)
	}
	return tex, nil
}

// Load reads a file and uploads it in one step.
func Load(path string) (*raster.Texture, error) {
	img, err := LoadTexture(path)
	if err != nil {
		return nil, err
	}
	return Upload(img)
}

// Checker draws a w×h checkerboard of cell-sized squares, a in the top-left.
func Checker(w, h, cell int, a, b color.NRGBA) *image.NRGBA {
	if cell < 1 {
		cell = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// toNRGBA converts any image to NRGBA format with its origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = 255
		}
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				dst.SetNRGBA(x, y, c)
			}
		}
	}
	return dst
}
