package render

import "github.com/chewxy/math32"

// Sentinel marks a depth or occlusion cell that no geometry has touched.
var negInf = math32.Inf(-1)

// DepthBuffer is a 2D grid of 32-bit depths, initialized to -Inf. The
// convention is "greater z is closer": a cell holds the maximum z of any
// fragment that survived the depth test there. A shadow buffer is the same
// structure filled from the light's viewpoint.
type DepthBuffer struct {
	Width  int
	Height int
	Data   []float32 // Row-major
}

// NewDepthBuffer creates a depth buffer cleared to -Inf.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		Data:   make([]float32, width*height),
	}
	d.Clear()
	return d
}

// Clear resets every cell to -Inf.
func (d *DepthBuffer) Clear() {
	// Copy-doubling for faster clearing
	n := len(d.Data)
	if n == 0 {
		return
	}
	d.Data[0] = negInf
	for i := 1; i < n; i *= 2 {
		copy(d.Data[i:], d.Data[:i])
	}
}

// At returns the depth at (x, y), or -Inf out of bounds.
func (d *DepthBuffer) At(x, y int) float32 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return negInf
	}
	return d.Data[y*d.Width+x]
}

// Set stores the depth at (x, y). Out-of-bounds writes are dropped.
func (d *DepthBuffer) Set(x, y int, z float32) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return
	}
	d.Data[y*d.Width+x] = z
}

// OcclusionBuffer is a 2D grid of ambient light multipliers in [0,1], with
// -Inf marking cells where no geometry was rendered.
type OcclusionBuffer struct {
	Width  int
	Height int
	Data   []float32 // Row-major
}

// NewOcclusionBuffer creates an occlusion buffer cleared to the sentinel.
func NewOcclusionBuffer(width, height int) *OcclusionBuffer {
	o := &OcclusionBuffer{
		Width:  width,
		Height: height,
		Data:   make([]float32, width*height),
	}
	n := len(o.Data)
	if n == 0 {
		return o
	}
	o.Data[0] = negInf
	for i := 1; i < n; i *= 2 {
		copy(o.Data[i:], o.Data[:i])
	}
	return o
}

// At returns the occlusion factor at (x, y), or -Inf out of bounds.
func (o *OcclusionBuffer) At(x, y int) float32 {
	if x < 0 || x >= o.Width || y < 0 || y >= o.Height {
		return negInf
	}
	return o.Data[y*o.Width+x]
}

// Set stores the occlusion factor at (x, y).
func (o *OcclusionBuffer) Set(x, y int, v float32) {
	if x < 0 || x >= o.Width || y < 0 || y >= o.Height {
		return
	}
	o.Data[y*o.Width+x] = v
}
