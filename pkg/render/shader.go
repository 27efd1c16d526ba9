package render

import (
	"github.com/chewxy/math32"
	"github.com/softlit/softlit/pkg/math3d"
)

// Shader is the two-stage contract between user code and the rasterizer.
//
// Vertex is invoked once per triangle corner. It receives the index of the
// vertex in the mesh, the corner index (0..2), and a mutable position that
// starts as the model-space vertex with w=1. By contract it leaves the
// position in screen coordinates (post perspective divide, post viewport),
// with the original clip-space w preserved in the W component so the
// rasterizer can hand perspective-correct barycentrics to the fragment
// stage. Varyings written per corner are the shader's own business.
//
// Fragment is invoked for each covered pixel that survived the depth test,
// with barycentric weights summing to one. It returns the pixel color and
// true, or false for "do not write this pixel" (depth-only shaders).
//
// The rasterizer treats shaders as opaque: it never inspects varyings.
type Shader interface {
	Vertex(vertex, corner int, pos *math3d.Vec4)
	Fragment(bary math3d.Vec3) (Color, bool)
}

// clampUnit clamps v into [-1, 1].
func clampUnit(v float32) float32 {
	return math32.Max(-1, math32.Min(1, v))
}

// interpolate2 blends three per-corner Vec2 varyings with barycentric
// weights.
func interpolate2(v [3]math3d.Vec2, bc math3d.Vec3) math3d.Vec2 {
	return v[0].Scale(bc.X).Add(v[1].Scale(bc.Y)).Add(v[2].Scale(bc.Z))
}

// interpolate3 blends three per-corner Vec3 varyings with barycentric
// weights.
func interpolate3(v [3]math3d.Vec3, bc math3d.Vec3) math3d.Vec3 {
	return v[0].Scale(bc.X).Add(v[1].Scale(bc.Y)).Add(v[2].Scale(bc.Z))
}
