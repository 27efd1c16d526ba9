package render

import (
	"github.com/softlit/softlit/pkg/math3d"
)

// Wireframe draws mesh edges over a framebuffer for diagnostics. Vertices
// go through the same transform, clamp and viewport mapping as the shaded
// passes, so the overlay lines up with the shaded geometry.
type Wireframe struct {
	Transform math3d.Mat4 // projection * model-view
	Viewport  math3d.Mat4
	Color     Color
}

// Draw projects every triangle and traces its three edges with the
// Bresenham line drawer.
func (w *Wireframe) Draw(fb *Framebuffer, mesh meshSource) {
	indices := mesh.FaceIndices()
	for i := 0; i+2 < len(indices); i += 3 {
		var pts [3]math3d.Vec3
		for corner := range 3 {
			pts[corner] = w.project(mesh.VertexPosition(int(indices[i+corner])))
		}
		fb.DrawLine(int(pts[0].X), int(pts[0].Y), int(pts[1].X), int(pts[1].Y), w.Color)
		fb.DrawLine(int(pts[1].X), int(pts[1].Y), int(pts[2].X), int(pts[2].Y), w.Color)
		fb.DrawLine(int(pts[2].X), int(pts[2].Y), int(pts[0].X), int(pts[0].Y), w.Color)
	}
}

func (w *Wireframe) project(p math3d.Vec3) math3d.Vec3 {
	clip := w.Transform.MulVec4(math3d.V4FromV3(p, 1))
	ndc := clip.PerspectiveDivide()
	ndc.X = clampUnit(ndc.X)
	ndc.Y = clampUnit(ndc.Y)
	return w.Viewport.MulVec4(math3d.V4FromV3(ndc, 1)).Vec3()
}
