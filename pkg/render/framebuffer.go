// Package render implements the softlit software rasterization pipeline:
// framebuffers and depth buffers, transform builders, the two-stage shader
// contract, the barycentric rasterizer, the built-in shaders, screen-space
// ambient occlusion and the frame orchestrator.
package render

import (
	"image"
	"image/png"
	"os"
)

// Framebuffer is a 2D grid of RGBA8 pixels. The origin is bottom-left; a
// vertical flip at present time bridges to top-left display conventions.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Steep lines are transposed so the inner loop always walks x;
// endpoints are swapped so it walks left to right; negative slopes step y
// by -1.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	steep := false
	if abs(x1-x0) < abs(y1-y0) {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
		steep = true
	}
	if x1 < x0 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := y1 - y0
	yi := 1
	if dy < 0 {
		yi, dy = -1, -dy
	}

	d := 2*dy - dx
	y := y0
	for x := x0; x <= x1; x++ {
		if steep {
			fb.SetPixel(y, x, c)
		} else {
			fb.SetPixel(x, y, c)
		}
		if d > 0 {
			y += yi
			d -= 2 * dx
		}
		d += 2 * dy
	}
}

// FlipVertical mirrors the framebuffer in place around its horizontal
// midline. Used at present time to hand a top-left-origin image to the
// display layer.
func (fb *Framebuffer) FlipVertical() {
	for y := 0; y < fb.Height/2; y++ {
		top := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		bot := fb.Pixels[(fb.Height-1-y)*fb.Width : (fb.Height-y)*fb.Width]
		for x := range top {
			top[x], bot[x] = bot[x], top[x]
		}
	}
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
