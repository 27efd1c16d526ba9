package render

import (
	"github.com/chewxy/math32"
	"github.com/softlit/softlit/pkg/math3d"
)

// DepthFunc selects the compare used by the depth test.
type DepthFunc int

const (
	// DepthGreater replaces only on strictly greater z (shadow and main
	// passes).
	DepthGreater DepthFunc = iota
	// DepthGreaterEqual also replaces on equal z (SSAO depth pass).
	DepthGreaterEqual
)

// Rasterizer fills triangles into a color buffer and a depth buffer. It is
// single-threaded; ordering is deterministic and defined by mesh index
// order.
type Rasterizer struct {
	fb    *Framebuffer
	zbuf  *DepthBuffer
	Depth DepthFunc
}

// NewRasterizer creates a rasterizer over the given buffers. The
// framebuffer may be nil for depth-only passes; dimensions then come from
// the depth buffer.
func NewRasterizer(fb *Framebuffer, zbuf *DepthBuffer) *Rasterizer {
	return &Rasterizer{fb: fb, zbuf: zbuf}
}

// Width returns the target width in pixels.
func (r *Rasterizer) Width() int {
	return r.zbuf.Width
}

// Height returns the target height in pixels.
func (r *Rasterizer) Height() int {
	return r.zbuf.Height
}

// DrawMesh walks the mesh's index buffer in triples, invokes the shader's
// vertex stage on each corner and rasterizes the resulting screen-space
// triangle. Meshes are expected to be validated at load time.
func (r *Rasterizer) DrawMesh(mesh meshSource, shader Shader) {
	indices := mesh.FaceIndices()
	for i := 0; i+2 < len(indices); i += 3 {
		var pts [3]math3d.Vec4
		for corner := range 3 {
			idx := int(indices[i+corner])
			pts[corner] = math3d.V4FromV3(mesh.VertexPosition(idx), 1)
			shader.Vertex(idx, corner, &pts[corner])
		}
		r.Triangle(pts, shader)
	}
}

// meshSource is the slice of the mesh the primitive processor needs: the
// flat index buffer and positions. Shaders read the remaining attributes
// through their own mesh reference.
type meshSource interface {
	FaceIndices() []uint16
	VertexPosition(i int) math3d.Vec3
}

// Triangle rasterizes one screen-space triangle. The three positions are
// post-viewport, with the original clip-space w in their W components.
func (r *Rasterizer) Triangle(pts [3]math3d.Vec4, shader Shader) {
	// Screen-clamped bounding box, floor(min) to ceil(max)
	minX := int(math32.Floor(min3(pts[0].X, pts[1].X, pts[2].X)))
	maxX := int(math32.Ceil(max3(pts[0].X, pts[1].X, pts[2].X)))
	minY := int(math32.Floor(min3(pts[0].Y, pts[1].Y, pts[2].Y)))
	maxY := int(math32.Ceil(max3(pts[0].Y, pts[1].Y, pts[2].Y)))
	minX = clampIndex(minX, r.Width())
	maxX = clampIndex(maxX, r.Width())
	minY = clampIndex(minY, r.Height())
	maxY = clampIndex(maxY, r.Height())

	vec1 := pts[1].XY().Sub(pts[0].XY())
	vec2 := pts[2].XY().Sub(pts[0].XY())
	// Zero for degenerate triangles; the weights then come out NaN or Inf
	// and the inside test rejects every pixel.
	denom := vec1.Perp(vec2)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			vp := math3d.V2(float32(x)-pts[0].X, float32(y)-pts[0].Y)
			t := vp.Perp(vec2) / denom
			s := vec1.Perp(vp) / denom
			ts1 := 1 - (t + s)

			// Pixels exactly on an edge (weight == 0) are drawn
			if !(s >= 0 && t >= 0 && ts1 >= 0) {
				continue
			}

			// Depth test uses screen-space z, linearly interpolated
			z := ts1*pts[0].Z + t*pts[1].Z + s*pts[2].Z
			stored := r.zbuf.At(x, y)
			if r.Depth == DepthGreater {
				if stored >= z {
					continue
				}
			} else if stored > z {
				continue
			}
			r.zbuf.Set(x, y, z)

			// Perspective-correct hand-off: divide by each corner's
			// clip-space w and renormalize to sum one, so attributes
			// interpolate in 3D space
			bc := math3d.V3(ts1/pts[0].W, t/pts[1].W, s/pts[2].W)
			bc = bc.Div(bc.X + bc.Y + bc.Z)

			if c, ok := shader.Fragment(bc); ok {
				r.fb.SetPixel(x, y, c)
			}
		}
	}
}

func min3(a, b, c float32) float32 {
	return math32.Min(a, math32.Min(b, c))
}

func max3(a, b, c float32) float32 {
	return math32.Max(a, math32.Max(b, c))
}
