package raster

import "softrender/internal/mathutil"

// DrawArrays draws triangles from vertices offset .. offset+count-1 taken
// three at a time. A trailing partial triangle is ignored. If the bound
// arrays do not cover the range nothing is drawn.
func (c *Context) DrawArrays(offset, count int) {
	if c.positions == nil || offset < 0 || count < 0 || !c.covers(offset+count) {
		Logger().Debug("draw arrays dropped", "offset", offset, "count", count, "vertices", c.vertexCount)
		return
	}
	end := offset + count
	for i := offset; i+2 < end; i += 3 {
		c.DrawTriangle(c.fetch(i), c.fetch(i+1), c.fetch(i+2))
	}
}

// DrawElements draws triangles from indices[:count] taken three at a time,
// each index naming a vertex. If any index falls outside the bound arrays
// nothing is drawn.
func (c *Context) DrawElements(indices []int, count int) {
	if c.positions == nil || indices == nil || count < 0 || count > len(indices) {
		Logger().Debug("draw elements dropped", "count", count, "indices", len(indices))
		return
	}
	indices = indices[:count]

	hi := -1
	for _, idx := range indices {
		if idx < 0 {
			Logger().Debug("draw elements dropped", "index", idx)
			return
		}
		hi = max(hi, idx)
	}
	if !c.covers(hi + 1) {
		Logger().Debug("draw elements dropped", "index", hi, "vertices", c.vertexCount)
		return
	}

	for i := 0; i+2 < len(indices); i += 3 {
		c.DrawTriangle(c.fetch(indices[i]), c.fetch(indices[i+1]), c.fetch(indices[i+2]))
	}
}

// covers reports whether every bound array holds at least n vertices.
func (c *Context) covers(n int) bool {
	if n > c.vertexCount || len(c.positions) < n*3 {
		return false
	}
	if c.normals != nil && len(c.normals) < n*3 {
		return false
	}
	if c.colors != nil && len(c.colors) < n*4 {
		return false
	}
	if c.texcoords != nil && len(c.texcoords) < n*2 {
		return false
	}
	return true
}

// fetch assembles vertex i, default-filling unbound attributes.
func (c *Context) fetch(i int) Vertex {
	p := c.positions[i*3:]
	v := Vertex{
		Position: mathutil.Vec4{p[0], p[1], p[2], 1},
		Color:    mathutil.Vec4{1, 1, 1, 1},
	}
	if c.normals != nil {
		n := c.normals[i*3:]
		v.Normal = mathutil.Vec4{n[0], n[1], n[2], 0}
	}
	if c.colors != nil {
		col := c.colors[i*4:]
		v.Color = mathutil.Vec4{col[0], col[1], col[2], col[3]}
	}
	if c.texcoords != nil {
		tc := c.texcoords[i*2:]
		v.TexCoord = [2]float32{tc[0], tc[1]}
	}
	return v
}
