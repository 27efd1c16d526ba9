package render

import (
	"github.com/softlit/softlit/pkg/math3d"
)

// ModelViewMatrix composes a TRS model matrix with a look-at view. The model
// matrix carries the scale on its diagonal and modelPos-eye in its last
// column; the view basis is z=(eye-target)/|.|, x=(up×z)/|.|, y=z×x. The
// result takes model-space points into view space.
func ModelViewMatrix(eye, target, modelPos, modelScale, up math3d.Vec3) math3d.Mat4 {
	newZ := eye.Sub(target).Normalize()
	newX := up.Cross(newZ).Normalize()
	newY := newZ.Cross(newX).Normalize()

	var model math3d.Mat4
	model.Set(0, 0, modelScale.X)
	model.Set(1, 1, modelScale.Y)
	model.Set(2, 2, modelScale.Z)
	model.Set(3, 3, 1)
	model.SetCol(3, math3d.V4FromV3(modelPos.Sub(eye), 1))

	var view math3d.Mat4
	view.SetRow(0, math3d.V4FromV3(newX, 0))
	view.SetRow(1, math3d.V4FromV3(newY, 0))
	view.SetRow(2, math3d.V4FromV3(newZ, 0))
	view.SetRow(3, math3d.V4(0, 0, 0, 1))

	return view.Mul(model)
}

// ProjectionMatrix returns a pinhole perspective matrix for focal length f:
// the identity except for element [3][2] = -1/f.
func ProjectionMatrix(f float32) math3d.Mat4 {
	m := math3d.Identity()
	m.Set(3, 2, -1/f)
	return m
}

// ViewportMatrix scales and offsets normalized device coordinates in
// [-1,1]^3 into [0,W-1] x [0,H-1] x [0,depth-1].
func ViewportMatrix(width, height, depth float32) math3d.Mat4 {
	halfW := (width - 1) / 2
	halfH := (height - 1) / 2
	halfD := (depth - 1) / 2

	var m math3d.Mat4
	m.SetRow(0, math3d.V4(halfW, 0, 0, halfW))
	m.SetRow(1, math3d.V4(0, halfH, 0, halfH))
	m.SetRow(2, math3d.V4(0, 0, halfD, halfD))
	m.SetRow(3, math3d.V4(0, 0, 0, 1))
	return m
}
