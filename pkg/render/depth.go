package render

import (
	"github.com/softlit/softlit/pkg/math3d"
)

// DepthShader transforms vertices and never emits a color: its only
// observable effect is updating the depth buffer it is rasterized against.
// It fills shadow buffers (light-space transform) and the z-buffer consumed
// by ambient occlusion (projection times model-view).
type DepthShader struct {
	// Transform takes model-space points into the pass's clip space.
	Transform math3d.Mat4
	Viewport  math3d.Mat4

	// Tri records the post-viewport triangle for downstream consumers.
	Tri [3]math3d.Vec3
}

// Vertex applies the pass transform, the perspective divide, the [-1,1]
// x/y clamp and the viewport mapping.
func (s *DepthShader) Vertex(_, corner int, pos *math3d.Vec4) {
	clip := s.Transform.MulVec4(*pos)
	w := clip.W

	ndc := clip.PerspectiveDivide()
	ndc.X = clampUnit(ndc.X)
	ndc.Y = clampUnit(ndc.Y)

	screen := s.Viewport.MulVec4(math3d.V4FromV3(ndc, 1))
	s.Tri[corner] = screen.Vec3()

	pos.X, pos.Y, pos.Z = screen.X, screen.Y, screen.Z
	pos.W = w
}

// Fragment declines to write a color.
func (s *DepthShader) Fragment(math3d.Vec3) (Color, bool) {
	return Color{}, false
}
