// Package pipeline drives the vertex, raster and fragment stages for whole
// objects and frames.
package pipeline

import (
	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/internal/engine/model"
	"github.com/Faultbox/softrast/internal/engine/raster"
	"github.com/Faultbox/softrast/internal/engine/transform"
	"github.com/Faultbox/softrast/pkg/math"
)

// TransformedVertex is a vertex in screen space, ready for rasterization.
type TransformedVertex = raster.Vertex

// VertexStage holds the matrices of one object for the vertex stage.
type VertexStage struct {
	mvp    math.Mat4
	model  math.Mat4
	normal math.Mat4
}

// NewVertexStage prepares the vertex stage for the object described by u.
func NewVertexStage(u transform.Uniforms) VertexStage {
	return VertexStage{
		mvp:    u.Transform(),
		model:  u.Model,
		normal: u.Model.Rotation(),
	}
}

// Transform maps v to screen space: Viewport·Projection·View·Model applied to
// the position, then x, y and z divided by w. A zero w leaves the values
// undivided. The normal is rotated by the model matrix and renormalized.
// Vertices without a color are white.
func (s VertexStage) Transform(v model.Vertex) TransformedVertex {
	c := color.White
	if v.HasColor {
		c = v.Color
	}
	return TransformedVertex{
		Position: s.mvp.MulVec4(v.Position.Vec4(1)).PerspectiveDivide(),
		World:    s.model.TransformPoint(v.Position),
		Normal:   s.normal.TransformDirection(v.Normal).Normalize(),
		Color:    c,
		TexCoord: v.TexCoord,
	}
}

// TransformVertex runs the vertex stage on a single vertex.
func TransformVertex(v model.Vertex, u transform.Uniforms) TransformedVertex {
	return NewVertexStage(u).Transform(v)
}

// TransformVertices runs the vertex stage on every vertex, preserving order.
// The result is appended to dst[:0].
func TransformVertices(vertices []model.Vertex, u transform.Uniforms, dst []TransformedVertex) []TransformedVertex {
	s := NewVertexStage(u)
	dst = dst[:0]
	for _, v := range vertices {
		dst = append(dst, s.Transform(v))
	}
	return dst
}

// Assemble groups consecutive vertex triples into triangles, appending them
// to dst[:0]. It returns the triangles and the number of trailing vertices
// that did not complete a triangle.
func Assemble(vertices []TransformedVertex, dst []raster.Triangle) ([]raster.Triangle, int) {
	dst = dst[:0]
	n := len(vertices) / 3 * 3
	for i := 0; i < n; i += 3 {
		dst = append(dst, raster.Triangle{vertices[i], vertices[i+1], vertices[i+2]})
	}
	return dst, len(vertices) - n
}
