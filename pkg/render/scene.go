package render

import (
	"github.com/softlit/softlit/pkg/math3d"
)

// Mesh is the full mesh view the frame passes need: the flat index buffer
// plus per-vertex attributes.
type Mesh interface {
	FaceIndices() []uint16
	VertexPosition(i int) math3d.Vec3
	VertexUV(i int) math3d.Vec2
	VertexNormal(i int) math3d.Vec3
}

// Scene holds everything needed to assemble one frame: the mesh, its maps,
// the camera and light parameters, and the pass toggles.
type Scene struct {
	Mesh Mesh

	Diffuse     *Texture
	NormalMap   *Texture
	SpecularMap *Texture

	Eye        math3d.Vec3
	Target     math3d.Vec3
	Up         math3d.Vec3
	ModelPos   math3d.Vec3
	ModelScale math3d.Vec3
	Focal      float32 // 0 means the eye-target distance

	Light   math3d.Vec3 // model-space direction toward the light
	Ambient float32

	DepthRange float32 // z range of the viewport mapping

	Shadows          bool
	AmbientOcclusion bool
	Wireframe        bool
	WireColor        Color
}

// NewScene creates a scene with the default camera and light.
func NewScene(mesh Mesh) *Scene {
	return &Scene{
		Mesh:        mesh,
		Diffuse:     NewSolidTexture(RGB(200, 200, 200)),
		NormalMap:   NewSolidTexture(RGB(128, 128, 255)), // flat tangent-space normal
		SpecularMap: NewSolidTexture(RGB(0, 0, 0)),
		Eye:         math3d.V3(1, 1, 3),
		Target:      math3d.Zero3(),
		Up:          math3d.Up(),
		ModelScale:  math3d.V3(1, 1, 1),
		Light:       math3d.V3(1, 1, 1).Normalize(),
		Ambient:     5,
		DepthRange:  1024,
		WireColor:   RGB(0, 255, 128),
	}
}

// Render assembles one frame: matrices, the optional shadow and ambient
// occlusion depth pre-passes, the main pass, and the occlusion modulation.
// The returned framebuffer has its origin at the bottom-left; presenters
// flip it vertically.
func (s *Scene) Render(width, height int) *Framebuffer {
	focal := s.Focal
	if focal == 0 {
		focal = s.Eye.Sub(s.Target).Len()
	}

	modelView := ModelViewMatrix(s.Eye, s.Target, s.ModelPos, s.ModelScale, s.Up)
	projection := ProjectionMatrix(focal)
	viewport := ViewportMatrix(float32(width), float32(height), s.DepthRange)

	var shadowBuf *DepthBuffer
	var shadowMV math3d.Mat4
	if s.Shadows {
		// Render depth from a light placed on the light direction at the
		// camera's distance
		lightEye := s.Target.Add(s.Light.Normalize().Scale(s.Eye.Sub(s.Target).Len()))
		shadowMV = ModelViewMatrix(lightEye, s.Target, s.ModelPos, s.ModelScale, s.Up)

		shadowBuf = NewDepthBuffer(width, height)
		pass := NewRasterizer(nil, shadowBuf)
		pass.DrawMesh(s.Mesh, &DepthShader{Transform: shadowMV, Viewport: viewport})
	}

	var occlusion *OcclusionBuffer
	if s.AmbientOcclusion {
		zbuf := NewDepthBuffer(width, height)
		pass := NewRasterizer(nil, zbuf)
		pass.Depth = DepthGreaterEqual
		pass.DrawMesh(s.Mesh, &DepthShader{Transform: projection.Mul(modelView), Viewport: viewport})
		occlusion = ComputeOcclusion(zbuf)
	}

	fb := NewFramebuffer(width, height)
	zbuf := NewDepthBuffer(width, height)
	main := NewRasterizer(fb, zbuf)
	main.DrawMesh(s.Mesh, &PhongShader{
		Mesh:        s.Mesh,
		ModelView:   modelView,
		ModelViewIT: modelView.Inverse().Transpose(),
		Projection:  projection,
		Viewport:    viewport,
		ShadowMV:    shadowMV,
		Light:       modelView.MulVec3Dir(s.Light).Normalize(),
		Ambient:     s.Ambient,
		Diffuse:     s.Diffuse,
		NormalMap:   s.NormalMap,
		SpecularMap: s.SpecularMap,
		Shadow:      shadowBuf,
	})

	if occlusion != nil {
		ModulateOcclusion(fb, occlusion)
	}

	if s.Wireframe {
		overlay := &Wireframe{
			Transform: projection.Mul(modelView),
			Viewport:  viewport,
			Color:     s.WireColor,
		}
		overlay.Draw(fb, s.Mesh)
	}

	return fb
}
