// Package model provides the vertex records fed to the renderer and the
// loaders that produce them.
package model

import (
	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/pkg/math"
)

// Vertex is an object-space vertex. Color and TexCoord are optional;
// HasColor reports whether Color was supplied by the source.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
	Color    color.Color
	HasColor bool
}

// Mesh is a flat, triangulated vertex list: every consecutive triple of
// Vertices forms one triangle.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// VertexArray returns the mesh vertices in draw order. The slice is shared
// and must not be modified.
func (m *Mesh) VertexArray() []Vertex {
	return m.Vertices
}

// TriangleCount returns the number of complete triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Center returns the center of the bounding box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the bounding box on each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

func emptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
}

func (b *Bounds) extend(p math.Vec3) {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Min.Z = min(b.Min.Z, p.Z)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
	b.Max.Z = max(b.Max.Z, p.Z)
}

// computeBounds recalculates the bounding box from the vertices.
func (m *Mesh) computeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := emptyBounds()
	for _, v := range m.Vertices {
		b.extend(v.Position)
	}
	m.Bounds = b
}

// faceNormal returns the unit normal of the triangle (a, b, c) with
// counter-clockwise winding. Degenerate triangles get +Y.
func faceNormal(a, b, c math.Vec3) math.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Length() < 1e-8 {
		return math.Vec3{Y: 1}
	}
	return n.Normalize()
}
