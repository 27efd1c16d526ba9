package render

import (
	"github.com/chewxy/math32"
	"github.com/softlit/softlit/pkg/math3d"
)

const (
	// shadowTolerance is in the units of the shadow viewport's depth range;
	// rescale it if the depth range changes, or shadow acne appears.
	shadowTolerance = 10.0

	// shadowDim is the light attenuation applied to fragments in shadow.
	shadowDim = 0.1

	// specularWeight scales the specular term against the diffuse term.
	specularWeight = 0.6
)

// VertexAttributes is the view of the mesh the rendering shader needs
// beyond positions: per-vertex UVs and normals.
type VertexAttributes interface {
	VertexUV(i int) math3d.Vec2
	VertexNormal(i int) math3d.Vec3
}

// PhongShader is the full lit pipeline: perspective-correct UV
// interpolation, tangent-space (Darboux) normal mapping, Phong-reflection
// specular with a per-texel exponent map, diffuse, ambient, and an optional
// shadow-buffer lookup.
type PhongShader struct {
	Mesh VertexAttributes

	ModelView   math3d.Mat4
	ModelViewIT math3d.Mat4 // transpose-inverse of ModelView, for normals
	Projection  math3d.Mat4
	Viewport    math3d.Mat4
	ShadowMV    math3d.Mat4 // light-space model-view, used when Shadow is set

	Light   math3d.Vec3 // view-space light direction, unit length
	Ambient float32

	Diffuse     *Texture
	NormalMap   *Texture // tangent-space (Darboux) normal map
	SpecularMap *Texture

	Shadow *DepthBuffer // optional; nil disables the shadow term

	// Per-triangle varyings, one column per corner
	uv     [3]math3d.Vec2
	normal [3]math3d.Vec3 // view-space normals
	view   [3]math3d.Vec3 // view-space positions
	shadow [3]math3d.Vec3 // shadow-space positions
}

// Vertex fills the corner's varyings and rewrites the position into screen
// coordinates, keeping the clip-space w.
func (s *PhongShader) Vertex(vertex, corner int, pos *math3d.Vec4) {
	s.uv[corner] = s.Mesh.VertexUV(vertex)

	n := math3d.V4FromV3(s.Mesh.VertexNormal(vertex), 0)
	s.normal[corner] = s.ModelViewIT.MulVec4(n).Vec3().Normalize()

	if s.Shadow != nil {
		sc := s.ShadowMV.MulVec4(*pos)
		sn := sc.PerspectiveDivide()
		sn.X = clampUnit(sn.X)
		sn.Y = clampUnit(sn.Y)
		s.shadow[corner] = s.Viewport.MulVec4(math3d.V4FromV3(sn, 1)).Vec3()
	}

	view := s.ModelView.MulVec4(*pos)
	s.view[corner] = view.PerspectiveDivide()

	clip := s.Projection.MulVec4(view)
	w := clip.W
	ndc := clip.PerspectiveDivide()
	ndc.X = clampUnit(ndc.X)
	ndc.Y = clampUnit(ndc.Y)
	screen := s.Viewport.MulVec4(math3d.V4FromV3(ndc, 1))

	pos.X, pos.Y, pos.Z = screen.X, screen.Y, screen.Z
	pos.W = w
}

// Fragment shades one pixel from the interpolated varyings.
func (s *PhongShader) Fragment(bc math3d.Vec3) (Color, bool) {
	uv := interpolate2(s.uv, bc)
	base := interpolate3(s.normal, bc).Normalize()

	n := s.shadeNormal(uv, base)

	diffuse := math32.Max(0, n.Dot(s.Light))

	refl := n.Scale(2 * n.Dot(s.Light)).Sub(s.Light).Normalize()
	// The 1+ keeps a black specular map from producing 0^0
	exponent := 1 + float32(s.SpecularMap.Sample(uv.X, uv.Y).R)
	specular := math32.Pow(math32.Max(0, refl.Z), exponent)

	shade := s.shadowFactor(bc)
	tex := s.Diffuse.Sample(uv.X, uv.Y)

	lit := func(c uint8) uint8 {
		return clampChannel(s.Ambient + float32(c)*shade*(diffuse+specularWeight*specular))
	}
	return Color{R: lit(tex.R), G: lit(tex.G), B: lit(tex.B), A: tex.A}, true
}

// shadeNormal perturbs the interpolated normal by the tangent-space normal
// map. The Darboux basis comes from solving the 3x3 system whose rows are
// the two view-space edges out of corner 0 and the interpolated normal,
// against the UV deltas. A singular basis falls back to the interpolated
// normal.
func (s *PhongShader) shadeNormal(uv math3d.Vec2, base math3d.Vec3) math3d.Vec3 {
	e1 := s.view[1].Sub(s.view[0])
	e2 := s.view[2].Sub(s.view[0])

	a := math3d.Mat3FromRows(e1, e2, base)
	ai, ok := a.Inverse()
	if !ok {
		return base
	}

	du := math3d.V3(s.uv[1].X-s.uv[0].X, s.uv[2].X-s.uv[0].X, 0)
	dv := math3d.V3(s.uv[1].Y-s.uv[0].Y, s.uv[2].Y-s.uv[0].Y, 0)

	tangent := ai.MulVec3(du).Normalize()
	bitangent := ai.MulVec3(dv).Normalize()
	basis := math3d.Mat3FromCols(tangent, bitangent, base)

	nm := s.NormalMap.Sample(uv.X, uv.Y)
	mapped := math3d.V3(remapChannel(nm.R), remapChannel(nm.G), remapChannel(nm.B))
	return basis.MulVec3(mapped).Normalize()
}

// shadowFactor looks the fragment up in the shadow buffer: fully lit when
// its shadow-space depth reaches the stored nearest-to-light depth within
// tolerance, deeply attenuated otherwise.
func (s *PhongShader) shadowFactor(bc math3d.Vec3) float32 {
	if s.Shadow == nil {
		return 1
	}
	p := interpolate3(s.shadow, bc)
	if s.Shadow.At(int(p.X), int(p.Y)) < p.Z+shadowTolerance {
		return 1
	}
	return shadowDim
}

// remapChannel maps a [0,255] channel into [-1,1].
func remapChannel(c uint8) float32 {
	return float32(c)/255*2 - 1
}
