package scene

import (
	"image/color"

	"softrender/internal/mathutil"
	"softrender/internal/raster"
	"softrender/internal/texture"
)

// CheckerTexture is the reserved texture name for the generated checkerboard.
const CheckerTexture = "checker"

// Setup applies the camera, light and draw mode to ctx.
func (s *Scene) Setup(ctx *raster.Context) {
	c := s.Camera
	ctx.Transform.LookAt(point(c.Eye), point(c.Center), direction(c.Up))
	ctx.Transform.Perspective(mathutil.Deg2Rad(c.FovY), c.Near, c.Far)

	if s.Light != nil && (s.Light.Enabled == nil || *s.Light.Enabled) {
		ctx.SetLight(s.Light.Raster())
		ctx.EnableLight(raster.Light0)
	} else {
		ctx.DisableLight(raster.Light0)
	}
	ctx.SetDrawMode(s.drawMode)
}

// Draw sets ctx up and draws every mesh, with the whole scene turned spinDeg
// degrees about the world Y axis. It does not clear ctx. textures may be nil
// when no mesh names a texture file.
func (s *Scene) Draw(ctx *raster.Context, textures texture.Resolver, spinDeg float32) {
	s.Setup(ctx)
	spin := mathutil.Mat4Identity().Rotate(mathutil.Deg2Rad(spinDeg), mathutil.Vec4{0, 1, 0, 0})

	for i := range s.Meshes {
		m := &s.Meshes[i]
		ctx.Transform.SetModel(mathutil.Mat4Mul(spin, m.Transform.Matrix()))
		ctx.BindTexture(s.texture(m.Texture, textures))

		ctx.VertexPointer(m.VertexCount(), m.Positions)
		ctx.NormalPointer(m.Normals)
		ctx.ColorPointer(m.Colors)
		ctx.TexCoordPointer(m.TexCoords)

		if m.Indices != nil {
			ctx.DrawElements(m.Indices, len(m.Indices))
		} else {
			ctx.DrawArrays(0, m.VertexCount())
		}
	}

	ctx.BindTexture(nil)
	ctx.VertexPointer(0, nil)
	ctx.NormalPointer(nil)
	ctx.ColorPointer(nil)
	ctx.TexCoordPointer(nil)
}

func (s *Scene) texture(name string, textures texture.Resolver) *raster.Texture {
	switch {
	case name == "":
		return nil
	case name == CheckerTexture:
		s.checkerOnce.Do(func() {
			img := texture.Checker(64, 64, 8,
				color.NRGBA{R: 230, G: 230, B: 230, A: 255},
				color.NRGBA{R: 40, G: 40, B: 40, A: 255})
			s.checker, _ = texture.Upload(img)
		})
		return s.checker
	case textures != nil:
		tex := textures.Resolve(name)
		if tex == nil {
			raster.Logger().Debug("texture not found", "name", name)
		}
		return tex
	}
	return nil
}

// Release destroys textures the scene created itself.
func (s *Scene) Release() {
	if s.checker != nil {
		s.checker.Destroy()
	}
}
