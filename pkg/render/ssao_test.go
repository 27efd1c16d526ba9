package render

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestOcclusionFlatPlane(t *testing.T) {
	const w, h = 64, 64
	zbuf := NewDepthBuffer(w, h)
	for y := range h {
		for x := range w {
			zbuf.Set(x, y, 100)
		}
	}

	occ := ComputeOcclusion(zbuf)

	// A flat plane perpendicular to the camera has no occluders: every
	// elevation angle is zero and the multiplier is 1
	for _, p := range [][2]int{{32, 32}, {5, 5}, {60, 20}} {
		v := occ.At(p[0], p[1])
		if math32.Abs(v-1) > 1e-4 {
			t.Errorf("flat plane occlusion at %v = %v, want 1", p, v)
		}
	}
}

func TestOcclusionWellDarkerThanPlane(t *testing.T) {
	const w, h = 64, 64
	zbuf := NewDepthBuffer(w, h)

	// A deep well: low floor surrounded by high (closer) geometry
	for y := range h {
		for x := range w {
			zbuf.Set(x, y, 500)
		}
	}
	for y := 24; y < 40; y++ {
		for x := 24; x < 40; x++ {
			zbuf.Set(x, y, 100)
		}
	}

	occ := ComputeOcclusion(zbuf)

	floor := occ.At(32, 32)
	if floor >= 1 {
		t.Errorf("well floor occlusion = %v, want < 1", floor)
	}
	if floor < 0 || floor > 1 {
		t.Errorf("occlusion out of range: %v", floor)
	}

	// The rim, with nothing above it, stays brighter than the floor
	rim := occ.At(5, 5)
	if rim <= floor {
		t.Errorf("rim (%v) should be brighter than floor (%v)", rim, floor)
	}
}

func TestOcclusionEmptyScene(t *testing.T) {
	const w, h = 32, 32
	zbuf := NewDepthBuffer(w, h)

	occ := ComputeOcclusion(zbuf)

	for y := range h {
		for x := range w {
			if !math32.IsInf(occ.At(x, y), -1) {
				t.Fatalf("empty scene occlusion at (%d,%d) = %v, want sentinel", x, y, occ.At(x, y))
			}
		}
	}

	// Modulating by an all-sentinel buffer is a no-op
	fb := NewFramebuffer(w, h)
	fb.Clear(RGB(10, 20, 30))
	ModulateOcclusion(fb, occ)
	for y := range h {
		for x := range w {
			if fb.GetPixel(x, y) != RGB(10, 20, 30) {
				t.Fatalf("sentinel modulation changed pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestModulateOcclusion(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Clear(RGB(100, 200, 50))

	occ := NewOcclusionBuffer(2, 1)
	occ.Set(0, 0, 0.5)
	// (1,0) stays sentinel

	ModulateOcclusion(fb, occ)

	if got := fb.GetPixel(0, 0); got != RGB(50, 100, 25) {
		t.Errorf("modulated pixel = %v, want (50,100,25)", got)
	}
	if got := fb.GetPixel(1, 0); got != RGB(100, 200, 50) {
		t.Errorf("sentinel pixel = %v, want unchanged", got)
	}
}
