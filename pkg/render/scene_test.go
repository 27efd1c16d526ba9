package render

import (
	"testing"

	"github.com/softlit/softlit/pkg/math3d"
)

func countLit(fb *Framebuffer) int {
	n := 0
	for y := range fb.Height {
		for x := range fb.Width {
			c := fb.GetPixel(x, y)
			if c.R > 0 || c.G > 0 || c.B > 0 {
				n++
			}
		}
	}
	return n
}

func TestSceneRenderSmoke(t *testing.T) {
	scene := NewScene(facingQuad())

	fb := scene.Render(48, 48)
	if fb.Width != 48 || fb.Height != 48 {
		t.Fatalf("framebuffer size = %dx%d", fb.Width, fb.Height)
	}
	if countLit(fb) == 0 {
		t.Fatal("scene render should produce visible pixels")
	}
}

func TestSceneRenderAllPasses(t *testing.T) {
	scene := NewScene(facingQuad())
	scene.Shadows = true
	scene.AmbientOcclusion = true
	scene.Wireframe = true

	fb := scene.Render(48, 48)
	if countLit(fb) == 0 {
		t.Fatal("full pipeline render should produce visible pixels")
	}
}

func TestSceneRenderEmptyMesh(t *testing.T) {
	scene := NewScene(&mockMesh{})
	scene.Shadows = true
	scene.AmbientOcclusion = true

	fb := scene.Render(32, 32)
	if countLit(fb) != 0 {
		t.Fatal("empty mesh should draw nothing")
	}
}

func TestSceneShadowsDarkenBlockedFragments(t *testing.T) {
	// An occluder between the light and a receiver plane: with shadows on,
	// some receiver pixels must be darker than the shadowless render
	n := math3d.V3(0, 0, 1)
	mesh := &mockMesh{
		vertices: []math3d.Vec3{
			// Receiver: large quad at z=0
			math3d.V3(-1, -1, 0), math3d.V3(1, -1, 0),
			math3d.V3(1, 1, 0), math3d.V3(-1, 1, 0),
			// Occluder: small triangle floating toward the light
			math3d.V3(-0.3, -0.3, 0.8), math3d.V3(0.3, -0.3, 0.8), math3d.V3(0, 0.3, 0.8),
		},
		uvs: []math3d.Vec2{
			math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(1, 1), math3d.V2(0, 1),
			math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0.5, 1),
		},
		normals: []math3d.Vec3{n, n, n, n, n, n, n},
		indices: []uint16{0, 1, 2, 0, 2, 3, 4, 5, 6},
	}

	lit := NewScene(mesh)
	lit.Light = math3d.V3(0, 0, 1)
	litFB := lit.Render(64, 64)

	shadowed := NewScene(mesh)
	shadowed.Light = math3d.V3(0, 0, 1)
	shadowed.Shadows = true
	shadowedFB := shadowed.Render(64, 64)

	darker := 0
	for y := range 64 {
		for x := range 64 {
			if shadowedFB.GetPixel(x, y).R < litFB.GetPixel(x, y).R {
				darker++
			}
		}
	}
	if darker == 0 {
		t.Error("shadow pass should darken occluded receiver pixels")
	}
}
