// Package scene reads YAML scene descriptions and replays them into a
// raster.Context: camera, light, draw mode and a list of meshes.
//
// A minimal scene:
//
//	camera:
//	  eye: [0, 1, 3]
//	light:
//	  position: [2, 2, 5]
//	  ka: 0.2
//	  kd: 0.7
//	  ks: 0.4
//	  shininess: 16
//	mode: fill+wireframe
//	meshes:
//	  - builtin: cube
//	    texture: checker
//	    transform:
//	      rotate:
//	        - {axis: [1, 0, 0], degrees: 20}
package scene

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"softrender/internal/mathutil"
	"softrender/internal/raster"
	"softrender/internal/transform"
)

// Scene is a parsed scene file. It is read-only after Parse, so one Scene may
// be drawn into several contexts concurrently.
type Scene struct {
	Name   string `yaml:"name"`
	Camera Camera `yaml:"camera"`
	Light  *Light `yaml:"light"`
	Mode   string `yaml:"mode"`
	Meshes []Mesh `yaml:"meshes"`

	drawMode raster.DrawMode

	checkerOnce sync.Once
	checker     *raster.Texture
}

// Camera places the viewer. Angles are in degrees.
type Camera struct {
	Eye    [3]float32 `yaml:"eye"`
	Center [3]float32 `yaml:"center"`
	Up     [3]float32 `yaml:"up"`
	FovY   float32    `yaml:"fov"`
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
}

// Light is the scene's single light. Color defaults to white and Enabled to
// true.
type Light struct {
	Position  [3]float32 `yaml:"position"`
	Color     [3]float32 `yaml:"color"`
	Ka        float32    `yaml:"ka"`
	Kd        float32    `yaml:"kd"`
	Ks        float32    `yaml:"ks"`
	Shininess uint16     `yaml:"shininess"`
	Enabled   *bool      `yaml:"enabled"`
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	raster.Logger().Debug("scene loaded", "path", path, "meshes", len(s.Meshes))
	return s, nil
}

// Parse decodes a YAML scene, expands built-in meshes, fills defaults and
// checks every mesh's attribute lengths and indices.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	mode, err := ParseDrawMode(s.Mode)
	if err != nil {
		return nil, err
	}
	s.drawMode = mode

	s.Camera.setDefaults()
	if s.Light != nil {
		s.Light.setDefaults()
	}

	for i := range s.Meshes {
		if err := s.Meshes[i].prepare(); err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
	}
	return &s, nil
}

// ParseDrawMode maps "fill", "wireframe" or "fill+wireframe" to a draw mode.
// The empty string means fill.
func ParseDrawMode(s string) (raster.DrawMode, error) {
	var mode raster.DrawMode
	if s == "" {
		return raster.DrawFill, nil
	}
	for _, part := range strings.Split(s, "+") {
		switch strings.TrimSpace(strings.ToLower(part)) {
		case "fill":
			mode |= raster.DrawFill
		case "wireframe":
			mode |= raster.DrawWireframe
		default:
			return 0, fmt.Errorf("unknown draw mode %q", s)
		}
	}
	return mode, nil
}

// DrawMode returns the parsed draw mode.
func (s *Scene) DrawMode() raster.DrawMode { return s.drawMode }

func (c *Camera) setDefaults() {
	if c.Eye == ([3]float32{}) && c.Center == ([3]float32{}) {
		c.Eye = vec3(transform.DefaultEye)
	}
	if c.Up == ([3]float32{}) {
		c.Up = vec3(transform.DefaultUp)
	}
	if c.FovY <= 0 {
		c.FovY = 45
	}
	if c.Near <= 0 {
		c.Near = transform.DefaultNear
	}
	if c.Far <= c.Near {
		c.Far = transform.DefaultFar
	}
}

func (l *Light) setDefaults() {
	if l.Color == ([3]float32{}) {
		l.Color = [3]float32{1, 1, 1}
	}
	if l.Enabled == nil {
		on := true
		l.Enabled = &on
	}
}

// Raster converts the light to the rasterizer's light slot.
func (l *Light) Raster() raster.Light {
	return raster.Light{
		Position:  point(l.Position),
		Color:     mathutil.Vec4{l.Color[0], l.Color[1], l.Color[2], 1},
		Ka:        l.Ka,
		Kd:        l.Kd,
		Ks:        l.Ks,
		Shininess: l.Shininess,
	}
}

func vec3(v mathutil.Vec4) [3]float32 { return [3]float32{v[0], v[1], v[2]} }

func point(v [3]float32) mathutil.Vec4 { return mathutil.Vec4{v[0], v[1], v[2], 1} }

func direction(v [3]float32) mathutil.Vec4 { return mathutil.Vec4{v[0], v[1], v[2], 0} }
