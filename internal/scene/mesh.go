package scene

import (
	"fmt"

	"softrender/internal/mathutil"
)

// Mesh is one draw call. Either Builtin names a stock mesh or Positions holds
// inline data; attribute slices use the rasterizer's layouts (3 floats per
// position and normal, 4 per color, 2 per texcoord).
type Mesh struct {
	Name      string    `yaml:"name"`
	Builtin   string    `yaml:"builtin"`
	Positions []float32 `yaml:"positions"`
	Normals   []float32 `yaml:"normals"`
	Colors    []float32 `yaml:"colors"`
	TexCoords []float32 `yaml:"texcoords"`
	Indices   []int     `yaml:"indices"`

	// Texture is looked up through the resolver passed to Draw. The name
	// "checker" selects a generated checkerboard.
	Texture   string    `yaml:"texture"`
	Transform Transform `yaml:"transform"`
}

// Transform is the mesh's model matrix, applied scale first, then the
// rotations in order, then the translation.
type Transform struct {
	Translate [3]float32  `yaml:"translate"`
	Rotate    []Rotation  `yaml:"rotate"`
	Scale     *[3]float32 `yaml:"scale"`
}

// Rotation is an axis-angle rotation in degrees.
type Rotation struct {
	Axis    [3]float32 `yaml:"axis"`
	Degrees float32    `yaml:"degrees"`
}

// Matrix builds T·R0·R1·…·S.
func (t Transform) Matrix() mathutil.Mat4 {
	m := mathutil.Mat4Identity().Translate(direction(t.Translate))
	for _, r := range t.Rotate {
		m = m.Rotate(mathutil.Deg2Rad(r.Degrees), direction(r.Axis))
	}
	if t.Scale != nil {
		m = m.Scale(direction(*t.Scale))
	}
	return m
}

// VertexCount returns the number of vertices in Positions.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// prepare expands a built-in mesh and validates the attribute arrays so that
// Draw never hands the rasterizer a call it would drop.
func (m *Mesh) prepare() error {
	if m.Builtin != "" {
		if len(m.Positions) > 0 {
			return fmt.Errorf("builtin %q and inline positions are exclusive", m.Builtin)
		}
		b, ok := Builtin(m.Builtin)
		if !ok {
			return fmt.Errorf("unknown builtin mesh %q", m.Builtin)
		}
		m.Positions, m.Normals, m.Colors, m.TexCoords, m.Indices =
			b.Positions, orDefault(m.Normals, b.Normals), orDefault(m.Colors, b.Colors),
			orDefault(m.TexCoords, b.TexCoords), b.Indices
	}

	if len(m.Positions) == 0 || len(m.Positions)%3 != 0 {
		return fmt.Errorf("positions: need a non-empty multiple of 3 floats, got %d", len(m.Positions))
	}
	n := m.VertexCount()

	for _, a := range []struct {
		name string
		data *[]float32
		per  int
	}{
		{"normals", &m.Normals, 3},
		{"colors", &m.Colors, 4},
		{"texcoords", &m.TexCoords, 2},
	} {
		if len(*a.data) == 0 {
			*a.data = nil
			continue
		}
		if len(*a.data) != n*a.per {
			return fmt.Errorf("%s: want %d floats for %d vertices, got %d", a.name, n*a.per, n, len(*a.data))
		}
	}

	if len(m.Indices) == 0 {
		m.Indices = nil
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("indices[%d] = %d out of range for %d vertices", i, idx, n)
		}
	}
	return nil
}

func orDefault(override, def []float32) []float32 {
	if len(override) > 0 {
		return override
	}
	return def
}
