package pipeline

import (
	"go.uber.org/zap"

	"github.com/Faultbox/softrast/internal/engine/framebuffer"
	"github.com/Faultbox/softrast/internal/engine/model"
	"github.com/Faultbox/softrast/internal/engine/raster"
	"github.com/Faultbox/softrast/internal/engine/shader"
	"github.com/Faultbox/softrast/internal/engine/transform"
)

// Stats counts the work done while drawing.
type Stats struct {
	Objects             int
	Vertices            int
	Triangles           int
	DroppedVertices     int // trailing vertices that did not form a triangle
	DegenerateTriangles int
	Fragments           int
	PixelsWritten       int // fragments that passed the depth test
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Objects += other.Objects
	s.Vertices += other.Vertices
	s.Triangles += other.Triangles
	s.DroppedVertices += other.DroppedVertices
	s.DegenerateTriangles += other.DegenerateTriangles
	s.Fragments += other.Fragments
	s.PixelsWritten += other.PixelsWritten
}

// Fields returns s as zap fields.
func (s Stats) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("objects", s.Objects),
		zap.Int("vertices", s.Vertices),
		zap.Int("triangles", s.Triangles),
		zap.Int("dropped", s.DroppedVertices),
		zap.Int("degenerate", s.DegenerateTriangles),
		zap.Int("fragments", s.Fragments),
		zap.Int("written", s.PixelsWritten),
	}
}

// Renderer draws objects into a framebuffer. It keeps its scratch buffers
// between calls; the zero value is ready to use. A Renderer must not be used
// from several goroutines at once.
type Renderer struct {
	vertices  []TransformedVertex
	triangles []raster.Triangle
}

// Render draws one object with the shader of its material.
func (r *Renderer) Render(fb *framebuffer.Framebuffer, u transform.Uniforms, vertices []model.Vertex, mat model.Material) Stats {
	return r.RenderWith(fb, u, vertices, mat, shader.For(mat))
}

// RenderWith draws one object with an explicit shader: vertex stage,
// primitive assembly, rasterization, then a depth-tested write of every
// shaded fragment.
func (r *Renderer) RenderWith(fb *framebuffer.Framebuffer, u transform.Uniforms, vertices []model.Vertex, mat model.Material, sh shader.Shader) Stats {
	var dropped int
	r.vertices = TransformVertices(vertices, u, r.vertices)
	r.triangles, dropped = Assemble(r.vertices, r.triangles)

	st := Stats{
		Objects:         1,
		Vertices:        len(vertices),
		Triangles:       len(r.triangles),
		DroppedVertices: dropped,
	}

	width, height := fb.Size()
	write := func(f raster.Fragment) {
		// Fragments that lose the depth test are not shaded.
		if !fb.InBounds(f.X, f.Y) || !(f.Depth < fb.DepthAt(f.X, f.Y)) {
			return
		}
		fb.Point(f.X, f.Y, f.Depth, sh.Shade(f, u).Pack())
		st.PixelsWritten++
	}

	for _, tri := range r.triangles {
		if raster.Degenerate(tri) {
			st.DegenerateTriangles++
			continue
		}
		st.Fragments += raster.Rasterize(tri, width, height, mat, write)
	}
	return st
}

// Render draws one object with a temporary Renderer.
func Render(fb *framebuffer.Framebuffer, u transform.Uniforms, vertices []model.Vertex, mat model.Material) Stats {
	var r Renderer
	return r.Render(fb, u, vertices, mat)
}
