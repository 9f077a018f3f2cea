package raster

import (
	"math"
	"testing"

	"softrender/internal/mathutil"
)

const testSize = 64

// ccwTriangle faces the default camera. Projected to a 64×64 target its
// vertices land on pixels (19,19), (44,19) and (32,44).
var ccwTriangle = []float32{
	-0.5, -0.5, 0,
	0.5, -0.5, 0,
	0, 0.5, 0,
}

var cwTriangle = []float32{
	-0.5, -0.5, 0,
	0, 0.5, 0,
	0.5, -0.5, 0,
}

func drawPositions(c *Context, pos []float32) {
	n := len(pos) / 3
	c.VertexPointer(n, pos)
	c.DrawArrays(0, n)
}

// inTriangleFootprint reports whether (x, y) is covered by ccwTriangle on a
// 64×64 target: rows 19..44, each spanning round(left) up to round(right).
func inTriangleFootprint(x, y int) bool {
	if y < 19 || y > 44 {
		return false
	}
	k := float64(44 - y)
	l := math.Floor(32 - 13*k/25 + 0.5)
	r := math.Floor(32 + 12*k/25 + 0.5)
	return float64(x) >= l && float64(x) < r
}

func countColor(c *Context, color uint32) int {
	n := 0
	for _, p := range c.Pixels() {
		if p == color {
			n++
		}
	}
	return n
}

func TestNewContextDefaults(t *testing.T) {
	c := NewContext(8, 4)
	if c.Width != 8 || c.Height != 4 {
		t.Fatalf("size = %dx%d, want 8x4", c.Width, c.Height)
	}
	if c.DrawMode() != DrawFill {
		t.Errorf("DrawMode = %v, want DrawFill", c.DrawMode())
	}
	if c.LightEnabled() {
		t.Error("lighting enabled by default")
	}
	if c.BoundTexture() != nil {
		t.Error("texture bound by default")
	}
	if n := countColor(c, ClearColor); n != 32 {
		t.Errorf("%d clear pixels, want 32", n)
	}
	for i, d := range c.Depth {
		if d != 0 {
			t.Fatalf("Depth[%d] = %v, want 0", i, d)
		}
	}
}

func TestDrawTriangleFootprint(t *testing.T) {
	c := NewContext(testSize, testSize)
	drawPositions(c, ccwTriangle)

	white := 0
	for y := 0; y < testSize; y++ {
		for x := 0; x < testSize; x++ {
			got := c.At(x, y)
			want := ClearColor
			if inTriangleFootprint(x, y) {
				want = 0xffffffff
				white++
			}
			if got != want {
				t.Fatalf("pixel (%d,%d) = %#08x, want %#08x", x, y, got, want)
			}
		}
	}
	if white == 0 {
		t.Fatal("footprint is empty")
	}
	if s := c.Stats(); s != (Stats{Submitted: 1, Drawn: 1}) {
		t.Errorf("Stats = %+v, want one drawn triangle", s)
	}
}

func TestDrawTriangleBackFaceCulled(t *testing.T) {
	c := NewContext(testSize, testSize)
	drawPositions(c, cwTriangle)

	if n := countColor(c, ClearColor); n != testSize*testSize {
		t.Errorf("%d pixels changed by a back-facing triangle", testSize*testSize-n)
	}
	if s := c.Stats(); s != (Stats{Submitted: 1, Culled: 1}) {
		t.Errorf("Stats = %+v, want one culled triangle", s)
	}
}

func TestDrawTriangleClipReject(t *testing.T) {
	tests := []struct {
		name string
		pos  []float32
	}{
		{"off to the right", []float32{10, 0, 0, 12, 0, 0, 11, 1, 0}},
		{"behind the camera", []float32{-0.5, -0.5, 5, 0.5, -0.5, 5, 0, 0.5, 5}},
		// Covers the screen, but every vertex is outside a different plane.
		{"straddling", []float32{-100, -1, 0, 100, -1, 0, 0, 100, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewContext(testSize, testSize)
			drawPositions(c, tc.pos)
			if n := countColor(c, ClearColor); n != testSize*testSize {
				t.Errorf("%d pixels drawn, want none", testSize*testSize-n)
			}
			if s := c.Stats(); s.ClipRejected != 1 {
				t.Errorf("Stats = %+v, want one clip rejection", s)
			}
		})
	}
}

func TestDrawTrianglePartiallyVisible(t *testing.T) {
	c := NewContext(testSize, testSize)
	drawPositions(c, []float32{
		-0.2, -0.2, 0,
		50, -0.2, 0,
		-0.2, 50, 0,
	})
	if s := c.Stats(); s.Drawn != 1 {
		t.Fatalf("Stats = %+v, want the triangle drawn", s)
	}
	if c.At(testSize-1, testSize-1) != 0xffffffff {
		t.Errorf("top-right pixel = %#08x, want white", c.At(testSize-1, testSize-1))
	}
	if c.At(0, 0) != ClearColor {
		t.Errorf("bottom-left pixel = %#08x, want clear", c.At(0, 0))
	}
}

func TestDepthOrderIndependent(t *testing.T) {
	near := []float32{-1, -1, 0.5, 1, -1, 0.5, 0, 1, 0.5}
	far := []float32{-1, -1, -0.5, 1, -1, -0.5, 0, 1, -0.5}
	red := []float32{1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1}
	green := []float32{0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1}
	wantRed := PackRGBA(255, 0, 0, 255)

	tests := []struct {
		name   string
		pos    []float32
		colors []float32
	}{
		{"near first", append(append([]float32{}, near...), far...), append(append([]float32{}, red...), green...)},
		{"far first", append(append([]float32{}, far...), near...), append(append([]float32{}, green...), red...)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewContext(testSize, testSize)
			c.ColorPointer(tc.colors)
			drawPositions(c, tc.pos)
			if got := c.At(32, 32); got != wantRed {
				t.Errorf("center = %#08x, want nearer red %#08x", got, wantRed)
			}
		})
	}
}

func TestDepthTieLaterWins(t *testing.T) {
	c := NewContext(testSize, testSize)
	pos := append(append([]float32{}, ccwTriangle...), ccwTriangle...)
	c.ColorPointer([]float32{
		1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1,
		0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1,
	})
	drawPositions(c, pos)

	if got, want := c.At(32, 27), PackRGBA(0, 0, 255, 255); got != want {
		t.Errorf("centroid = %#08x, want later blue %#08x", got, want)
	}
}

func TestPerspectiveCorrectScanline(t *testing.T) {
	c := NewContext(testSize, testSize)
	c.Transform.SetView(mathutil.Mat4Identity())
	c.Transform.SetProjection(mathutil.Mat4Identity())

	// Clip-space input: the bottom edge runs from w=1 at the left to w=4 at
	// the right, with red going 0 to 1.
	a := Vertex{Position: mathutil.Vec4{-1, -1, 0, 1}, Color: mathutil.Vec4{0, 0, 0, 1}}
	b := Vertex{Position: mathutil.Vec4{4, -4, 0, 4}, Color: mathutil.Vec4{1, 0, 0, 1}}
	top := Vertex{Position: mathutil.Vec4{-1, 1, 0, 1}, Color: mathutil.Vec4{0, 0, 0, 1}}
	c.DrawTriangle(a, b, top)

	// Screen x = 32 is clip-space parameter 0.2 along the edge, not 0.5.
	r, _, _, _ := UnpackRGBA(c.At(32, 0))
	if r < 50 || r > 52 {
		t.Errorf("mid-edge red = %d, want ~51 (affine interpolation gives ~128)", r)
	}
	if d := c.DepthAt(32, 0); !approx(d, 0.625, 1e-5) {
		t.Errorf("mid-edge depth = %v, want 0.625", d)
	}
}

func TestDrawModes(t *testing.T) {
	c := NewContext(testSize, testSize)

	c.SetDrawMode(DrawWireframe)
	drawPositions(c, ccwTriangle)
	for _, p := range [][2]int{{19, 19}, {44, 19}, {32, 44}, {30, 19}} {
		if got := c.At(p[0], p[1]); got != WireframeColor {
			t.Errorf("edge pixel %v = %#08x, want wireframe color", p, got)
		}
	}
	if got := c.At(32, 27); got != ClearColor {
		t.Errorf("interior = %#08x, want clear in wireframe mode", got)
	}
	if d := c.DepthAt(19, 19); d != 0 {
		t.Errorf("wireframe wrote depth %v", d)
	}

	c.Clear()
	c.EnableDrawMode(DrawFill)
	if c.DrawMode() != DrawFill|DrawWireframe {
		t.Fatalf("DrawMode = %v, want fill|wireframe", c.DrawMode())
	}
	c.ColorPointer([]float32{1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1})
	drawPositions(c, ccwTriangle)
	if got := c.At(32, 27); got != PackRGBA(255, 0, 0, 255) {
		t.Errorf("interior = %#08x, want red fill", got)
	}
	if got := c.At(44, 19); got != WireframeColor {
		t.Errorf("vertex = %#08x, want wireframe on top of fill", got)
	}

	c.Clear()
	c.DisableDrawMode(DrawFill | DrawWireframe)
	drawPositions(c, ccwTriangle)
	if n := countColor(c, ClearColor); n != testSize*testSize {
		t.Errorf("%d pixels drawn with no draw mode", testSize*testSize-n)
	}
}

func TestClearResets(t *testing.T) {
	c := NewContext(testSize, testSize)
	drawPositions(c, ccwTriangle)
	c.Clear()

	if n := countColor(c, ClearColor); n != testSize*testSize {
		t.Errorf("%d pixels not cleared", testSize*testSize-n)
	}
	if d := c.DepthAt(32, 27); d != 0 {
		t.Errorf("depth after Clear = %v, want 0", d)
	}
	if s := c.Stats(); s != (Stats{}) {
		t.Errorf("Stats after Clear = %+v, want zero", s)
	}
}

func TestDrawArraysRanges(t *testing.T) {
	six := append(append([]float32{}, cwTriangle...), ccwTriangle...)

	t.Run("offset skips leading vertices", func(t *testing.T) {
		c := NewContext(testSize, testSize)
		c.VertexPointer(6, six)
		c.DrawArrays(3, 3)
		if s := c.Stats(); s != (Stats{Submitted: 1, Drawn: 1}) {
			t.Errorf("Stats = %+v, want only the second triangle", s)
		}
	})

	t.Run("trailing partial triangle ignored", func(t *testing.T) {
		c := NewContext(testSize, testSize)
		c.VertexPointer(6, six)
		c.DrawArrays(0, 5)
		if s := c.Stats(); s.Submitted != 1 {
			t.Errorf("Submitted = %d, want 1", s.Submitted)
		}
	})
}

func TestDrawInsufficientData(t *testing.T) {
	tests := []struct {
		name string
		draw func(c *Context)
	}{
		{"no positions", func(c *Context) { c.DrawArrays(0, 3) }},
		{"count past vertex count", func(c *Context) {
			c.VertexPointer(3, ccwTriangle)
			c.DrawArrays(0, 6)
		}},
		{"short position slice", func(c *Context) {
			c.VertexPointer(3, ccwTriangle[:6])
			c.DrawArrays(0, 3)
		}},
		{"short color slice", func(c *Context) {
			c.VertexPointer(3, ccwTriangle)
			c.ColorPointer([]float32{1, 1, 1, 1, 1, 1, 1, 1})
			c.DrawArrays(0, 3)
		}},
		{"negative offset", func(c *Context) {
			c.VertexPointer(3, ccwTriangle)
			c.DrawArrays(-1, 3)
		}},
		{"index out of range", func(c *Context) {
			c.VertexPointer(3, ccwTriangle)
			c.DrawElements([]int{0, 1, 3}, 3)
		}},
		{"negative index", func(c *Context) {
			c.VertexPointer(3, ccwTriangle)
			c.DrawElements([]int{0, -1, 2}, 3)
		}},
		{"count past indices", func(c *Context) {
			c.VertexPointer(3, ccwTriangle)
			c.DrawElements([]int{0, 1, 2}, 6)
		}},
		{"nil indices", func(c *Context) {
			c.VertexPointer(3, ccwTriangle)
			c.DrawElements(nil, 3)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewContext(testSize, testSize)
			tc.draw(c)
			if s := c.Stats(); s.Submitted != 0 {
				t.Errorf("Stats = %+v, want nothing submitted", s)
			}
			if n := countColor(c, ClearColor); n != testSize*testSize {
				t.Errorf("%d pixels drawn, want none", testSize*testSize-n)
			}
		})
	}
}

func TestDrawElementsMatchesDrawArrays(t *testing.T) {
	quad := []float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		0.5, 0.5, 0,
		-0.5, 0.5, 0,
	}
	colors := []float32{
		1, 0, 0, 1,
		0, 1, 0, 1,
		0, 0, 1, 1,
		1, 1, 0, 1,
	}
	indices := []int{0, 1, 2, 0, 2, 3}

	indexed := NewContext(testSize, testSize)
	indexed.VertexPointer(4, quad)
	indexed.ColorPointer(colors)
	indexed.DrawElements(indices, len(indices))

	var flatPos, flatCol []float32
	for _, i := range indices {
		flatPos = append(flatPos, quad[i*3:i*3+3]...)
		flatCol = append(flatCol, colors[i*4:i*4+4]...)
	}
	flat := NewContext(testSize, testSize)
	flat.VertexPointer(6, flatPos)
	flat.ColorPointer(flatCol)
	flat.DrawArrays(0, 6)

	if indexed.Stats() != flat.Stats() {
		t.Fatalf("Stats differ: indexed %+v, arrays %+v", indexed.Stats(), flat.Stats())
	}
	for i := range flat.Color {
		if indexed.Color[i] != flat.Color[i] {
			t.Fatalf("pixel %d: indexed %#08x, arrays %#08x", i, indexed.Color[i], flat.Color[i])
		}
	}
}

func TestFloatColorAlphaForcedOpaque(t *testing.T) {
	c := NewContext(testSize, testSize)
	c.ColorPointer([]float32{0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0})
	drawPositions(c, ccwTriangle)
	if got, want := c.At(32, 27), PackRGBA(0, 255, 0, 255); got != want {
		t.Errorf("centroid = %#08x, want %#08x", got, want)
	}
}

func TestTexturedTriangle(t *testing.T) {
	tex, err := NewTexture(1, 1, []byte{200, 100, 50, 40})
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}

	t.Run("unlit uses the raw texel", func(t *testing.T) {
		c := NewContext(testSize, testSize)
		c.BindTexture(tex)
		c.TexCoordPointer([]float32{0, 0, 1, 0, 0.5, 1})
		drawPositions(c, ccwTriangle)
		if got, want := c.At(32, 27), PackRGBA(200, 100, 50, 40); got != want {
			t.Errorf("centroid = %#08x, want texel %#08x", got, want)
		}
	})

	t.Run("lit modulates every channel", func(t *testing.T) {
		c := NewContext(testSize, testSize)
		c.BindTexture(tex)
		c.SetLight(Light{Position: mathutil.Vec4{0, 0, 10, 1}, Color: mathutil.Vec4{1, 1, 1, 1}, Ka: 0.5})
		c.EnableLight(Light0)
		drawPositions(c, ccwTriangle)

		r, g, b, a := UnpackRGBA(c.At(32, 27))
		want := [4]int{100, 50, 25, 40}
		for i, got := range []uint8{r, g, b, a} {
			if d := int(got) - want[i]; d < -1 || d > 1 {
				t.Errorf("channel %d = %d, want %d", i, got, want[i])
			}
		}
	})

	t.Run("unbound texture falls back to color", func(t *testing.T) {
		c := NewContext(testSize, testSize)
		c.BindTexture(tex)
		c.BindTexture(nil)
		drawPositions(c, ccwTriangle)
		if got := c.At(32, 27); got != 0xffffffff {
			t.Errorf("centroid = %#08x, want white", got)
		}
	})
}

func TestLitTriangle(t *testing.T) {
	light := Light{
		Position:  mathutil.Vec4{0, 0, 10, 1},
		Color:     mathutil.Vec4{1, 1, 1, 1},
		Ka:        0.2,
		Kd:        0.8,
		Shininess: 1,
	}
	gray := []float32{0.5, 0.5, 0.5, 1, 0.5, 0.5, 0.5, 1, 0.5, 0.5, 0.5, 1}

	tests := []struct {
		name   string
		normal float32
		want   int
	}{
		{"facing the light", 1, 128},
		{"facing away", -1, 26},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewContext(testSize, testSize)
			c.SetLight(light)
			c.EnableLight(Light0)
			c.ColorPointer(gray)
			c.NormalPointer([]float32{0, 0, tc.normal, 0, 0, tc.normal, 0, 0, tc.normal})
			drawPositions(c, ccwTriangle)

			r, g, b, a := UnpackRGBA(c.At(32, 27))
			if d := int(r) - tc.want; d < -1 || d > 1 || r != g || g != b {
				t.Errorf("rgb = %d,%d,%d, want %d", r, g, b, tc.want)
			}
			if a != 255 {
				t.Errorf("alpha = %d, want 255", a)
			}
		})
	}

	t.Run("disable restores flat color", func(t *testing.T) {
		c := NewContext(testSize, testSize)
		c.SetLight(light)
		c.EnableLight(Light0)
		c.DisableLight(Light0)
		if c.LightEnabled() {
			t.Fatal("LightEnabled after DisableLight")
		}
		drawPositions(c, ccwTriangle)
		if got := c.At(32, 27); got != 0xffffffff {
			t.Errorf("centroid = %#08x, want unlit white", got)
		}
	})
}

func TestShaderFactor(t *testing.T) {
	light := Light{
		Position:  mathutil.Vec4{0, 0, 10, 1},
		Color:     mathutil.Vec4{1, 1, 1, 1},
		Ka:        0.1,
		Kd:        0.6,
		Ks:        0.3,
		Shininess: 16,
	}

	t.Run("identity model", func(t *testing.T) {
		s := newShader(light, mathutil.Mat4Identity())
		tests := []struct {
			normal mathutil.Vec4
			want   float32
		}{
			{mathutil.Vec4{0, 0, 2, 0}, 1.0},
			{mathutil.Vec4{1, 0, 0, 0}, 0.1},
			{mathutil.Vec4{0, 0, -1, 0}, 0.1},
			{mathutil.Vec4{}, 0.1},
		}
		for _, tc := range tests {
			if got := s.Factor(tc.normal); !approx(got, tc.want, 1e-5) {
				t.Errorf("Factor(%v) = %v, want %v", tc.normal, got, tc.want)
			}
		}
	})

	t.Run("light follows inverse model", func(t *testing.T) {
		model := mathutil.Mat4Identity().Rotate(math.Pi/2, mathutil.Vec4{0, 1, 0, 0})
		inv, ok := model.Inverse()
		if !ok {
			t.Fatal("rotation not invertible")
		}
		s := newShader(light, inv)
		// The world +z light direction is object -x after undoing the rotation.
		if got := s.Factor(mathutil.Vec4{-1, 0, 0, 0}); !approx(got, 1.0, 1e-5) {
			t.Errorf("Factor(-x) = %v, want 1", got)
		}
		if got := s.Factor(mathutil.Vec4{0, 0, 1, 0}); !approx(got, 0.1, 1e-5) {
			t.Errorf("Factor(+z) = %v, want ambient only", got)
		}
	})
}

func TestDestroyedContext(t *testing.T) {
	c := NewContext(testSize, testSize)
	c.VertexPointer(3, ccwTriangle)
	c.Destroy()

	drawPositions(c, ccwTriangle)
	c.DrawPixel(0, 0, WireframeColor)
	c.DrawLine(0, 0, 10, 10, WireframeColor)
	if len(c.Pixels()) != 0 {
		t.Errorf("Pixels after Destroy has %d entries", len(c.Pixels()))
	}
}

func TestImageTopRowFirst(t *testing.T) {
	c := NewContext(4, 3)
	c.DrawPixel(0, 0, PackRGBA(255, 0, 0, 255))
	c.DrawPixel(3, 2, PackRGBA(0, 0, 255, 128))

	img := c.Image()
	if got := img.NRGBAAt(0, 2); got.R != 255 || got.A != 255 {
		t.Errorf("bottom-left = %+v, want red", got)
	}
	if got := img.NRGBAAt(3, 0); got.B != 255 || got.A != 128 {
		t.Errorf("top-right = %+v, want translucent blue", got)
	}
	if got := img.NRGBAAt(1, 1); got.R != 0 || got.G != 0 || got.B != 0 || got.A != 255 {
		t.Errorf("untouched = %+v, want opaque black", got)
	}
}
