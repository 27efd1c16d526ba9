package render

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/softlit/softlit/pkg/math3d"
)

// mockMesh implements the scene Mesh interface for testing.
type mockMesh struct {
	vertices []math3d.Vec3
	uvs      []math3d.Vec2
	normals  []math3d.Vec3
	indices  []uint16
}

func (m *mockMesh) FaceIndices() []uint16 { return m.indices }
func (m *mockMesh) VertexPosition(i int) math3d.Vec3 {
	return m.vertices[i]
}

func (m *mockMesh) VertexUV(i int) math3d.Vec2 {
	if i < len(m.uvs) {
		return m.uvs[i]
	}
	return math3d.Vec2{}
}

func (m *mockMesh) VertexNormal(i int) math3d.Vec3 {
	if i < len(m.normals) {
		return m.normals[i]
	}
	return math3d.V3(0, 0, 1)
}

// flatShader runs the depth vertex stage but emits a solid color.
type flatShader struct {
	DepthShader
	color Color
}

func (s *flatShader) Fragment(math3d.Vec3) (Color, bool) {
	return s.color, true
}

// singleTriangle spans the full screen width and height with identity
// transforms; its apex sits at the top middle.
func singleTriangle() *mockMesh {
	return &mockMesh{
		vertices: []math3d.Vec3{
			math3d.V3(-1, -1, 0),
			math3d.V3(1, -1, 0),
			math3d.V3(0, 1, 0),
		},
		indices: []uint16{0, 1, 2},
	}
}

func TestSingleTriangleIdentityTransforms(t *testing.T) {
	const w, h = 512, 512
	fb := NewFramebuffer(w, h)
	zbuf := NewDepthBuffer(w, h)
	r := NewRasterizer(fb, zbuf)

	shader := &flatShader{color: RGB(255, 255, 255)}
	shader.Transform = math3d.Identity()
	shader.Viewport = ViewportMatrix(w, h, 1024)

	r.DrawMesh(singleTriangle(), shader)

	// z=0 maps to (1024-1)/2 everywhere inside the triangle
	const wantZ = 511.5

	inside := [][2]int{{0, 0}, {511, 0}, {255, 256}, {100, 50}}
	for _, p := range inside {
		if fb.GetPixel(p[0], p[1]) != RGB(255, 255, 255) {
			t.Errorf("pixel %v should be covered", p)
		}
		if math32.Abs(zbuf.At(p[0], p[1])-wantZ) > 0.01 {
			t.Errorf("depth at %v = %v, want %v", p, zbuf.At(p[0], p[1]), wantZ)
		}
	}

	outside := [][2]int{{0, 511}, {511, 511}, {0, 300}, {511, 300}}
	for _, p := range outside {
		if (fb.GetPixel(p[0], p[1]) != Color{}) {
			t.Errorf("pixel %v should be untouched", p)
		}
		if !math32.IsInf(zbuf.At(p[0], p[1]), -1) {
			t.Errorf("depth at %v = %v, want -Inf", p, zbuf.At(p[0], p[1]))
		}
	}
}

func TestOverlappingTrianglesHigherZWins(t *testing.T) {
	const w, h = 64, 64
	near := RGB(0, 255, 0)
	far := RGB(255, 0, 0)

	// Same XY footprint at z=0.2 and z=0.8; greater z is closer
	mesh := &mockMesh{
		vertices: []math3d.Vec3{
			math3d.V3(-1, -1, 0.2), math3d.V3(1, -1, 0.2), math3d.V3(0, 1, 0.2),
			math3d.V3(-1, -1, 0.8), math3d.V3(1, -1, 0.8), math3d.V3(0, 1, 0.8),
		},
		indices: []uint16{0, 1, 2, 3, 4, 5},
	}

	for _, order := range []string{"far-first", "near-first"} {
		t.Run(order, func(t *testing.T) {
			if order == "near-first" {
				mesh.indices = []uint16{3, 4, 5, 0, 1, 2}
			} else {
				mesh.indices = []uint16{0, 1, 2, 3, 4, 5}
			}

			fb := NewFramebuffer(w, h)
			zbuf := NewDepthBuffer(w, h)
			r := NewRasterizer(fb, zbuf)

			shader := &triColorShader{colors: map[int]Color{0: far, 3: near}}
			shader.Transform = math3d.Identity()
			shader.Viewport = ViewportMatrix(w, h, 1024)
			r.DrawMesh(mesh, shader)

			// Every covered pixel ends with the nearer triangle's color
			covered := 0
			for y := range h {
				for x := range w {
					c := fb.GetPixel(x, y)
					if (c == Color{}) {
						continue
					}
					covered++
					if c != near {
						t.Fatalf("pixel (%d,%d) = %v, want near color", x, y, c)
					}
				}
			}
			if covered == 0 {
				t.Fatal("no pixels covered")
			}
		})
	}
}

// triColorShader colors fragments by the triangle's first vertex index.
type triColorShader struct {
	DepthShader
	colors map[int]Color
	cur    Color
}

func (s *triColorShader) Vertex(vertex, corner int, pos *math3d.Vec4) {
	if c, ok := s.colors[vertex]; ok {
		s.cur = c
	}
	s.DepthShader.Vertex(vertex, corner, pos)
}

func (s *triColorShader) Fragment(math3d.Vec3) (Color, bool) {
	return s.cur, true
}

func TestDegenerateTriangleDrawsNothing(t *testing.T) {
	const w, h = 64, 64
	fb := NewFramebuffer(w, h)
	zbuf := NewDepthBuffer(w, h)
	r := NewRasterizer(fb, zbuf)

	// Colinear vertices: zero area
	mesh := &mockMesh{
		vertices: []math3d.Vec3{
			math3d.V3(-1, -1, 0), math3d.V3(0, 0, 0), math3d.V3(1, 1, 0),
		},
		indices: []uint16{0, 1, 2},
	}

	shader := &flatShader{color: RGB(255, 255, 255)}
	shader.Transform = math3d.Identity()
	shader.Viewport = ViewportMatrix(w, h, 1024)
	r.DrawMesh(mesh, shader)

	for y := range h {
		for x := range w {
			if (fb.GetPixel(x, y) != Color{}) {
				t.Fatalf("degenerate triangle wrote pixel (%d,%d)", x, y)
			}
			if !math32.IsInf(zbuf.At(x, y), -1) {
				t.Fatalf("degenerate triangle wrote depth at (%d,%d): %v", x, y, zbuf.At(x, y))
			}
		}
	}
}

// baryShader records the worst deviation of the barycentric sum from one.
type baryShader struct {
	DepthShader
	maxDev float32
}

func (s *baryShader) Fragment(bc math3d.Vec3) (Color, bool) {
	dev := math32.Abs(bc.X + bc.Y + bc.Z - 1)
	if dev > s.maxDev {
		s.maxDev = dev
	}
	return Color{}, true
}

func TestBarycentricSumsToOne(t *testing.T) {
	const w, h = 128, 128
	fb := NewFramebuffer(w, h)
	zbuf := NewDepthBuffer(w, h)
	r := NewRasterizer(fb, zbuf)

	shader := &baryShader{}
	// A perspective transform so the w-division actually does something
	shader.Transform = ProjectionMatrix(3).Mul(ModelViewMatrix(
		math3d.V3(0.5, 0.4, 3), math3d.Zero3(),
		math3d.Zero3(), math3d.V3(1, 1, 1), math3d.Up(),
	))
	shader.Viewport = ViewportMatrix(w, h, 255)

	r.DrawMesh(singleTriangle(), shader)

	if shader.maxDev > 1e-4 {
		t.Errorf("barycentric sum deviates by %v", shader.maxDev)
	}
}

func TestInsideTestPermutationInvariant(t *testing.T) {
	const w, h = 96, 96

	coverage := func(indices []uint16) map[[2]int]bool {
		fb := NewFramebuffer(w, h)
		zbuf := NewDepthBuffer(w, h)
		r := NewRasterizer(fb, zbuf)

		mesh := singleTriangle()
		mesh.indices = indices

		shader := &flatShader{color: RGB(255, 255, 255)}
		shader.Transform = math3d.Identity()
		shader.Viewport = ViewportMatrix(w, h, 1024)
		r.DrawMesh(mesh, shader)

		got := make(map[[2]int]bool)
		for y := range h {
			for x := range w {
				if (fb.GetPixel(x, y) != Color{}) {
					got[[2]int{x, y}] = true
				}
			}
		}
		return got
	}

	base := coverage([]uint16{0, 1, 2})
	for _, perm := range [][]uint16{{1, 2, 0}, {2, 0, 1}} {
		got := coverage(perm)
		if len(got) != len(base) {
			t.Fatalf("permutation %v covers %d pixels, base covers %d", perm, len(got), len(base))
		}
		for p := range base {
			if !got[p] {
				t.Fatalf("permutation %v misses pixel %v", perm, p)
			}
		}
	}
}

func TestOffscreenTriangleDrawsNothing(t *testing.T) {
	const w, h = 64, 64
	fb := NewFramebuffer(w, h)
	zbuf := NewDepthBuffer(w, h)
	r := NewRasterizer(fb, zbuf)

	// All screen x's beyond the right edge
	var pts [3]math3d.Vec4
	pts[0] = math3d.V4(100, 10, 0, 1)
	pts[1] = math3d.V4(120, 10, 0, 1)
	pts[2] = math3d.V4(110, 30, 0, 1)
	r.Triangle(pts, &flatShader{color: RGB(255, 255, 255)})

	for y := range h {
		for x := range w {
			if (fb.GetPixel(x, y) != Color{}) {
				t.Fatalf("off-screen triangle wrote pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestDepthFuncTieBreak(t *testing.T) {
	const w, h = 32, 32

	draw := func(mode DepthFunc) Color {
		fb := NewFramebuffer(w, h)
		zbuf := NewDepthBuffer(w, h)
		r := NewRasterizer(fb, zbuf)
		r.Depth = mode

		var pts [3]math3d.Vec4
		pts[0] = math3d.V4(0, 0, 100, 1)
		pts[1] = math3d.V4(31, 0, 100, 1)
		pts[2] = math3d.V4(0, 31, 100, 1)

		r.Triangle(pts, &flatShader{color: RGB(255, 0, 0)})
		r.Triangle(pts, &flatShader{color: RGB(0, 255, 0)})
		return fb.GetPixel(5, 5)
	}

	if got := draw(DepthGreater); got != RGB(255, 0, 0) {
		t.Errorf("strict compare: equal z should keep the first write, got %v", got)
	}
	if got := draw(DepthGreaterEqual); got != RGB(0, 255, 0) {
		t.Errorf("greater-equal compare: equal z should take the later write, got %v", got)
	}
}

func BenchmarkRasterizeTriangle(b *testing.B) {
	const w, h = 256, 256
	fb := NewFramebuffer(w, h)
	zbuf := NewDepthBuffer(w, h)
	r := NewRasterizer(fb, zbuf)

	shader := &flatShader{color: RGB(200, 120, 80)}
	shader.Transform = math3d.Identity()
	shader.Viewport = ViewportMatrix(w, h, 1024)
	mesh := singleTriangle()

	for b.Loop() {
		zbuf.Clear()
		r.DrawMesh(mesh, shader)
	}
}
