package render

import (
	"testing"
)

func TestSetGetPixelBounds(t *testing.T) {
	fb := NewFramebuffer(10, 10)

	fb.SetPixel(5, 5, RGB(1, 2, 3))
	if fb.GetPixel(5, 5) != RGB(1, 2, 3) {
		t.Error("SetPixel/GetPixel mismatch")
	}

	// Out of bounds: reads are transparent black, writes are dropped
	if (fb.GetPixel(-1, 0) != Color{}) || (fb.GetPixel(10, 0) != Color{}) {
		t.Error("out-of-bounds read should be zero")
	}
	fb.SetPixel(-1, 0, RGB(9, 9, 9))
	fb.SetPixel(0, 100, RGB(9, 9, 9))
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
	}{
		{"horizontal", 1, 3, 8, 3},
		{"vertical", 4, 1, 4, 8},
		{"shallow positive", 0, 0, 9, 3},
		{"steep positive", 0, 0, 3, 9},
		{"negative slope", 0, 9, 9, 0},
		{"right to left", 9, 5, 0, 2},
		{"single point", 5, 5, 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			c := RGB(255, 255, 255)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, c)

			if fb.GetPixel(tc.x0, tc.y0) != c {
				t.Errorf("start point (%d,%d) not drawn", tc.x0, tc.y0)
			}
			if fb.GetPixel(tc.x1, tc.y1) != c {
				t.Errorf("end point (%d,%d) not drawn", tc.x1, tc.y1)
			}

			// Connectivity: the major axis is fully covered
			count := 0
			for y := range 10 {
				for x := range 10 {
					if fb.GetPixel(x, y) == c {
						count++
					}
				}
			}
			major := abs(tc.x1-tc.x0)
			if dy := abs(tc.y1 - tc.y0); dy > major {
				major = dy
			}
			if count < major+1 {
				t.Errorf("line covers %d pixels, want at least %d", count, major+1)
			}
		})
	}
}

func TestFlipVertical(t *testing.T) {
	fb := NewFramebuffer(2, 3)
	fb.SetPixel(0, 0, RGB(1, 0, 0))
	fb.SetPixel(1, 2, RGB(0, 1, 0))

	fb.FlipVertical()

	if fb.GetPixel(0, 2) != RGB(1, 0, 0) {
		t.Error("bottom-left should move to top-left")
	}
	if fb.GetPixel(1, 0) != RGB(0, 1, 0) {
		t.Error("top-right should move to bottom-right")
	}

	// Flipping twice restores the original
	fb.FlipVertical()
	if fb.GetPixel(0, 0) != RGB(1, 0, 0) || fb.GetPixel(1, 2) != RGB(0, 1, 0) {
		t.Error("double flip should be identity")
	}
}

func TestToImage(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(2, 1, RGB(10, 20, 30))

	img := fb.ToImage()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
	if img.RGBAAt(2, 1) != RGB(10, 20, 30) {
		t.Error("pixel did not survive ToImage")
	}
}

func TestDepthBufferClear(t *testing.T) {
	d := NewDepthBuffer(16, 16)

	d.Set(3, 4, 42)
	if d.At(3, 4) != 42 {
		t.Error("Set/At mismatch")
	}

	d.Clear()
	if d.At(3, 4) != negInf {
		t.Error("Clear should reset to -Inf")
	}

	// Out of bounds reads the sentinel, writes are dropped
	if d.At(-1, 0) != negInf || d.At(16, 0) != negInf {
		t.Error("out-of-bounds depth should be -Inf")
	}
	d.Set(-1, 0, 1)
	d.Set(0, 100, 1)
}
