package raster

import "math"

// yEpsilon decides when two screen-space rows count as equal.
const yEpsilon = 1e-6

// DrawTriangle runs one triangle through the pipeline. Vertex positions are
// in object space with w = 1; colors and texcoords are true (not premultiplied)
// values.
func (c *Context) DrawTriangle(v0, v1, v2 Vertex) {
	if len(c.Color) == 0 {
		return
	}
	tri, r := c.project([3]Vertex{v0, v1, v2})
	c.stats.record(r)
	if r != RejectNone {
		return
	}

	if c.drawMode&DrawFill != 0 {
		if c.lighting != 0 {
			c.shade = newShader(c.light, c.Transform.InvModel)
		}
		c.fill(tri)
	}

	if c.drawMode&DrawWireframe != 0 {
		for i := 0; i < 3; i++ {
			a, b := &tri[i], &tri[(i+1)%3]
			c.DrawLine(int(a.Position[0]), int(a.Position[1]), int(b.Position[0]), int(b.Position[1]), WireframeColor)
		}
	}
}

// project maps the triangle to clip space, rejects it if possible, then
// prepares perspective-correct attributes and moves it to pixel coordinates.
func (c *Context) project(tri [3]Vertex) ([3]Vertex, Rejection) {
	for i := range tri {
		tri[i].Position = c.Transform.Apply(tri[i].Position)
	}
	if r := classify(tri[0].Position, tri[1].Position, tri[2].Position); r != RejectNone {
		return tri, r
	}
	for i := range tri {
		tri[i].Preprocess()
		tri[i].PerspectiveDivide()
		tri[i].ToViewport(c.Width, c.Height)
	}
	return tri, RejectNone
}

// fill splits the triangle into flat-bottom and flat-top halves.
func (c *Context) fill(tri [3]Vertex) {
	top, mid, bot := sortByY(&tri)
	ty, my, by := top.Position[1], mid.Position[1], bot.Position[1]

	switch {
	case nearlyEqual(ty, by):
		// Zero height: only the wireframe pass can show it.
		return
	case nearlyEqual(my, by):
		c.fillFlatBottom(top, mid, bot)
	case nearlyEqual(my, ty):
		c.fillFlatTop(top, mid, bot)
	default:
		split := Interpolate(top, bot, (ty-my)/(ty-by))
		split.Position[1] = my
		c.fillFlatBottom(top, mid, &split)
		c.fillFlatTop(mid, &split, bot)
	}
}

// fillFlatBottom fills from the apex down to the edge b1-b2, inclusive.
func (c *Context) fillFlatBottom(apex, b1, b2 *Vertex) {
	yTop := min(int(apex.Position[1]), c.Height)
	yBot := max(int(b2.Position[1]), 0)
	h := apex.Position[1] - b1.Position[1]

	for y := yTop; y >= yBot; y-- {
		t := (apex.Position[1] - float32(y)) / h
		l := Interpolate(apex, b1, t)
		r := Interpolate(apex, b2, t)
		c.scanline(&l, &r, y)
	}
}

// fillFlatTop fills from the apex up to, but not including, the edge t1-t2.
func (c *Context) fillFlatTop(t1, t2, apex *Vertex) {
	yTop := min(int(t2.Position[1]), c.Height)
	yBot := max(int(apex.Position[1]), 0)
	h := t2.Position[1] - apex.Position[1]

	for y := yBot; y < yTop; y++ {
		t := (float32(y) - apex.Position[1]) / h
		l := Interpolate(apex, t1, t)
		r := Interpolate(apex, t2, t)
		c.scanline(&l, &r, y)
	}
}

// scanline walks one row from the left vertex toward the right one, stopping
// before the right end.
func (c *Context) scanline(l, r *Vertex, y int) {
	if l.Position[0] > r.Position[0] {
		l, r = r, l
	}
	if y < 0 || y >= c.Height || !finite(l.Position[0]) || !finite(r.Position[0]) {
		return
	}

	x0 := int(l.Position[0] + 0.5)
	x1 := int(r.Position[0] + 0.5)

	var step Vertex
	if width := r.Position[0] - l.Position[0]; width > 0 {
		step = Gradient(l, r, width)
	}

	v := *l
	if x0 < 0 {
		v.Advance(&step, float32(-x0))
		x0 = 0
	}
	x1 = min(x1, c.Width)

	row := y * c.Width
	for x := x0; x < x1; x++ {
		c.shadePixel(row+x, &v)
		v.Accumulate(&step)
	}
}

// shadePixel depth-tests, shades and writes one pixel. Equal depth passes, so
// the later of two coplanar triangles wins.
func (c *Context) shadePixel(i int, v *Vertex) {
	if c.Depth[i] > v.OneOverZ {
		return
	}

	z := 1 / v.OneOverZ
	color := v.Color
	color[0] *= z
	color[1] *= z
	color[2] *= z
	color[3] *= z

	lit := c.lighting != 0
	if lit {
		c.shade.apply(v.Normal, &color)
	}

	var px uint32
	if c.texture.valid() {
		px = SampleTexture(c.texture, v.TexCoord[0]*z, v.TexCoord[1]*z)
		if lit {
			px = modulate(px, color[0], color[1], color[2], color[3])
		}
	} else {
		px = packFloatColor(color[0], color[1], color[2])
	}

	c.Color[i] = px
	c.Depth[i] = v.OneOverZ
}

// sortByY orders the vertices by descending screen y.
func sortByY(tri *[3]Vertex) (top, mid, bot *Vertex) {
	top, mid, bot = &tri[0], &tri[1], &tri[2]
	if mid.Position[1] > top.Position[1] {
		top, mid = mid, top
	}
	if bot.Position[1] > mid.Position[1] {
		mid, bot = bot, mid
	}
	if mid.Position[1] > top.Position[1] {
		top, mid = mid, top
	}
	return top, mid, bot
}

func nearlyEqual(a, b float32) bool {
	d := a - b
	return d < yEpsilon && d > -yEpsilon
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
