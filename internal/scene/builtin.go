package scene

import "sort"

// face is one quad of a built-in mesh: an outward normal, a color, and its
// corners counter-clockwise from bottom-left as seen from outside.
type face struct {
	normal  [3]float32
	color   [4]float32
	corners [4][3]float32
}

var cubeFaces = []face{
	{[3]float32{0, 0, 1}, [4]float32{1, 0, 0, 1}, [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{[3]float32{0, 0, -1}, [4]float32{0, 1, 0, 1}, [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
	{[3]float32{1, 0, 0}, [4]float32{0, 0, 1, 1}, [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
	{[3]float32{-1, 0, 0}, [4]float32{1, 1, 0, 1}, [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
	{[3]float32{0, 1, 0}, [4]float32{1, 0, 1, 1}, [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
	{[3]float32{0, -1, 0}, [4]float32{0, 1, 1, 1}, [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
}

// Corner texcoords; v = 0 is the top of the image.
var quadUV = [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

var builtins = map[string]func() Mesh{
	"cube": func() Mesh { return quads(cubeFaces) },
	"quad": func() Mesh {
		q := quads(cubeFaces[:1])
		for i := 2; i < len(q.Positions); i += 3 {
			q.Positions[i] = 0
		}
		for i := range q.Colors {
			q.Colors[i] = 1
		}
		return q
	},
	"triangle": func() Mesh {
		return Mesh{
			Positions: []float32{-0.5, -0.5, 0, 0.5, -0.5, 0, 0, 0.5, 0},
			Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
			Colors:    []float32{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1},
			TexCoords: []float32{0, 1, 1, 1, 0.5, 0},
		}
	},
}

// Builtin returns a fresh copy of a stock mesh: "cube" (unit cube, one color
// per face), "quad" (unit square in the z = 0 plane facing +z) or "triangle".
func Builtin(name string) (Mesh, bool) {
	f, ok := builtins[name]
	if !ok {
		return Mesh{}, false
	}
	return f(), true
}

// BuiltinNames lists the stock meshes in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// quads builds an indexed mesh with four vertices and two triangles per face.
func quads(faces []face) Mesh {
	var m Mesh
	for i, f := range faces {
		for c, p := range f.corners {
			m.Positions = append(m.Positions, p[:]...)
			m.Normals = append(m.Normals, f.normal[:]...)
			m.Colors = append(m.Colors, f.color[:]...)
			m.TexCoords = append(m.TexCoords, quadUV[c][:]...)
		}
		base := i * 4
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
