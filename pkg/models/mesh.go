// Package models provides 3D mesh loading and representation for softlit.
package models

import (
	"fmt"

	"github.com/softlit/softlit/pkg/math3d"
)

// Mesh is an indexed triangle list. Each consecutive index triple names one
// triangle; ordering is counter-clockwise in model space.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint16

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Vertex holds all vertex attributes.
type Vertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
	Normal   math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]Vertex, 0),
		Indices:  make([]uint16, 0),
	}
}

// Validate reports whether the index buffer is well-formed: a length that is
// a multiple of three, with every index inside the vertex slice.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: index count %d is not a multiple of three", m.Name, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("mesh %q: index %d at position %d out of range (%d vertices)", m.Name, idx, i, len(m.Vertices))
		}
	}
	return nil
}

// FaceIndices returns the flat index buffer.
// Implements the rasterizer's mesh source interface.
func (m *Mesh) FaceIndices() []uint16 {
	return m.Indices
}

// VertexPosition returns the model-space position of vertex i.
// Implements the rasterizer's mesh source interface.
func (m *Mesh) VertexPosition(i int) math3d.Vec3 {
	return m.Vertices[i].Position
}

// VertexUV returns the texture coordinates of vertex i.
func (m *Mesh) VertexUV(i int) math3d.Vec2 {
	return m.Vertices[i].UV
}

// VertexNormal returns the model-space normal of vertex i.
func (m *Mesh) VertexNormal(i int) math3d.Vec3 {
	return m.Vertices[i].Normal
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// CalculateSmoothNormals computes averaged per-vertex normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// Accumulate area-weighted face normals per vertex
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0 := m.Vertices[i0].Position
		v1 := m.Vertices[i1].Position
		v2 := m.Vertices[i2].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0))

		m.Vertices[i0].Normal = m.Vertices[i0].Normal.Add(normal)
		m.Vertices[i1].Normal = m.Vertices[i1].Normal.Add(normal)
		m.Vertices[i2].Normal = m.Vertices[i2].Normal.Add(normal)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// HasNormals reports whether any vertex carries a usable normal.
func (m *Mesh) HasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.Len() > 0.001 {
			return true
		}
	}
	return false
}

// Translate offsets every vertex position.
func (m *Mesh) Translate(d math3d.Vec3) {
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Add(d)
	}
	m.CalculateBounds()
}

// Scale applies a uniform scale about the origin.
func (m *Mesh) Scale(s float32) {
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Scale(s)
	}
	m.CalculateBounds()
}

// FitUnitCube centers the mesh on the origin and scales it so its largest
// dimension spans [-1,1]. Arbitrary input models become visible with the
// default camera.
func (m *Mesh) FitUnitCube() {
	m.CalculateBounds()
	m.Translate(m.Center().Negate())

	size := m.Size()
	maxDim := size.X
	if size.Y > maxDim {
		maxDim = size.Y
	}
	if size.Z > maxDim {
		maxDim = size.Z
	}
	if maxDim > 0 {
		m.Scale(2.0 / maxDim)
	}
}
