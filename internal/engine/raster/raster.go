// Package raster converts screen-space triangles into fragments.
package raster

import (
	gomath "math"

	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/internal/engine/model"
	"github.com/Faultbox/softrast/pkg/math"
)

// Vertex is a vertex after the full transform pipeline. Position holds the
// pixel x and y, the depth z and the clip-space w before division. World is
// the position after the model matrix alone.
type Vertex struct {
	Position math.Vec4
	World    math.Vec3
	Normal   math.Vec3
	Color    color.Color
	TexCoord math.Vec2
}

// Triangle is three transformed vertices in draw order.
type Triangle [3]Vertex

// Fragment is one pixel covered by a triangle, with attributes interpolated
// at the pixel center.
type Fragment struct {
	X, Y     int
	Depth    float32
	Position math.Vec3 // interpolated screen-space position
	World    math.Vec3
	Normal   math.Vec3
	Color    color.Color
	TexCoord math.Vec2
	Material model.Material
}

// degenerateArea is the smallest doubled signed area, in square pixels, that
// still counts as a triangle.
const degenerateArea = 1e-6

// Rasterize calls emit for every pixel of a width×height target whose center
// lies inside tri, and returns the number of fragments emitted. Either
// winding is accepted. Degenerate triangles emit nothing.
func Rasterize(tri Triangle, width, height int, mat model.Material, emit func(Fragment)) int {
	a := screen(tri[0])
	b := screen(tri[1])
	c := screen(tri[2])

	area := edge(a, b, c)
	if !validArea(area) {
		return 0
	}

	minX, maxX, okX := span(min(a.X, b.X, c.X), max(a.X, b.X, c.X), width)
	minY, maxY, okY := span(min(a.Y, b.Y, c.Y), max(a.Y, b.Y, c.Y), height)
	if !okX || !okY {
		return 0
	}

	za, zb, zc := tri[0].Position[2], tri[1].Position[2], tri[2].Position[2]
	zMin, zMax := min(za, zb, zc), max(za, zb, zc)
	invArea := 1 / area

	n := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := math.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}

			e0 := edge(b, c, p)
			e1 := edge(c, a, p)
			e2 := edge(a, b, p)
			inside := (e0 >= 0 && e1 >= 0 && e2 >= 0) ||
				(e0 <= 0 && e1 <= 0 && e2 <= 0)
			if !inside {
				continue
			}

			w0, w1, w2 := e0*invArea, e1*invArea, e2*invArea
			depth := w0*za + w1*zb + w2*zc
			depth = min(max(depth, zMin), zMax)

			emit(Fragment{
				X:        x,
				Y:        y,
				Depth:    depth,
				Position: math.Vec3{X: p.X, Y: p.Y, Z: depth},
				World:    math.Weighted(tri[0].World, tri[1].World, tri[2].World, w0, w1, w2),
				Normal:   math.Weighted(tri[0].Normal, tri[1].Normal, tri[2].Normal, w0, w1, w2),
				Color:    color.Weighted(tri[0].Color, tri[1].Color, tri[2].Color, w0, w1, w2),
				TexCoord: math.Weighted2(tri[0].TexCoord, tri[1].TexCoord, tri[2].TexCoord, w0, w1, w2),
				Material: mat,
			})
			n++
		}
	}
	return n
}

// Degenerate reports whether tri has no area on screen and would emit no
// fragments.
func Degenerate(tri Triangle) bool {
	return !validArea(edge(screen(tri[0]), screen(tri[1]), screen(tri[2])))
}

// Fragments is Rasterize collecting the fragments into a slice.
func Fragments(tri Triangle, width, height int, mat model.Material) []Fragment {
	var out []Fragment
	Rasterize(tri, width, height, mat, func(f Fragment) {
		out = append(out, f)
	})
	return out
}

// Barycentric returns the weights of p with respect to the triangle (a, b, c).
// ok is false when the triangle is degenerate.
func Barycentric(a, b, c, p math.Vec2) (w0, w1, w2 float32, ok bool) {
	area := edge(a, b, c)
	if !validArea(area) {
		return 0, 0, 0, false
	}
	return edge(b, c, p) / area, edge(c, a, p) / area, edge(a, b, p) / area, true
}

// edge returns the doubled signed area of (a, b, p): positive when p lies to
// the left of a->b in a y-up frame.
func edge(a, b, p math.Vec2) float32 {
	return b.Sub(a).Cross(p.Sub(a))
}

// validArea rejects degenerate triangles as well as NaN or infinite areas
// left by vertices that were divided by a zero w.
func validArea(area float32) bool {
	a := gomath.Abs(float64(area))
	return a >= degenerateArea && !gomath.IsInf(a, 0)
}

func screen(v Vertex) math.Vec2 {
	return math.Vec2{X: v.Position[0], Y: v.Position[1]}
}

// span clips [lo, hi] to the pixel range [0, size) and reports whether any
// pixel remains.
func span(lo, hi float32, size int) (first, last int, ok bool) {
	flo := gomath.Max(0, gomath.Floor(float64(lo)))
	fhi := gomath.Min(float64(size-1), gomath.Ceil(float64(hi)))
	if flo > fhi {
		return 0, 0, false
	}
	return int(flo), int(fhi), true
}
