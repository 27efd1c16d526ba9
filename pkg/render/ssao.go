package render

import (
	"github.com/chewxy/math32"
)

const (
	ssaoRays    = 8
	ssaoStep    = 5.0
	ssaoMaxDist = 1000.0
)

// ComputeOcclusion derives per-pixel ambient occlusion from a filled depth
// buffer. For every pixel with geometry, eight screen-space rays at angles
// k*pi/4 are marched in 5-pixel steps up to 1000 pixels or the screen edge,
// tracking the maximum elevation angle atan((z_other - z_self)/distance)
// seen along each ray. The per-ray contribution is pi/2 minus that angle;
// the average over the eight rays, normalized by pi/2, is the ambient light
// multiplier. Pixels without geometry keep the -Inf sentinel.
func ComputeOcclusion(zbuf *DepthBuffer) *OcclusionBuffer {
	occ := NewOcclusionBuffer(zbuf.Width, zbuf.Height)

	for y := 0; y < zbuf.Height; y++ {
		for x := 0; x < zbuf.Width; x++ {
			self := zbuf.At(x, y)
			if math32.IsInf(self, -1) {
				continue
			}

			var total float32
			for k := 0; k < ssaoRays; k++ {
				angle := float32(k) * math32.Pi / 4
				dx, dy := math32.Cos(angle), math32.Sin(angle)

				var maxAngle float32
				for dist := float32(0); dist < ssaoMaxDist; dist += ssaoStep {
					sx := x + int(dx*dist)
					sy := y + int(dy*dist)
					if sx < 0 || sx >= zbuf.Width || sy < 0 || sy >= zbuf.Height {
						break
					}
					if dist < 1 {
						continue
					}
					elevation := math32.Atan((zbuf.At(sx, sy) - self) / dist)
					maxAngle = math32.Max(maxAngle, elevation)
				}
				total += math32.Pi/2 - maxAngle
			}

			occ.Set(x, y, total/(ssaoRays*math32.Pi/2))
		}
	}

	return occ
}

// ModulateOcclusion multiplies each color pixel's non-alpha channels by the
// occlusion factor at that pixel. Sentinel cells (no geometry) are treated
// as 1.0 and left untouched.
func ModulateOcclusion(fb *Framebuffer, occ *OcclusionBuffer) {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			v := occ.At(x, y)
			if math32.IsInf(v, -1) {
				continue
			}
			fb.SetPixel(x, y, MultiplyColor(fb.GetPixel(x, y), v))
		}
	}
}
