package model

import (
	gomath "math"

	"github.com/Faultbox/softrast/pkg/math"
)

// Sphere builds a unit UV sphere centered at the origin. rings is the number
// of latitude bands and segments the number of longitude slices.
func Sphere(rings, segments int) *Mesh {
	rings = max(rings, 2)
	segments = max(segments, 3)

	point := func(ring, seg int) Vertex {
		theta := gomath.Pi * float64(ring) / float64(rings)
		phi := 2 * gomath.Pi * float64(seg) / float64(segments)
		p := math.Vec3{
			X: float32(gomath.Sin(theta) * gomath.Cos(phi)),
			Y: float32(gomath.Cos(theta)),
			Z: float32(gomath.Sin(theta) * gomath.Sin(phi)),
		}
		return Vertex{
			Position: p,
			Normal:   p,
			TexCoord: math.Vec2{X: float32(seg) / float32(segments), Y: float32(ring) / float32(rings)},
		}
	}

	m := &Mesh{Name: "sphere"}
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			a := point(i, j)
			b := point(i+1, j)
			c := point(i+1, j+1)
			d := point(i, j+1)
			// The first and last bands touch a pole, where one of the two
			// quad triangles collapses.
			if i > 0 {
				m.Vertices = append(m.Vertices, a, c, d)
			}
			if i < rings-1 {
				m.Vertices = append(m.Vertices, a, b, c)
			}
		}
	}
	m.computeBounds()
	return m
}

// Ring builds a flat annulus in the XZ plane between the inner and outer
// radius, facing +Y.
func Ring(inner, outer float32, segments int) *Mesh {
	segments = max(segments, 3)
	up := math.Vec3{Y: 1}

	at := func(r float32, seg int, v float32) Vertex {
		phi := 2 * gomath.Pi * float64(seg) / float64(segments)
		return Vertex{
			Position: math.Vec3{
				X: r * float32(gomath.Cos(phi)),
				Z: r * float32(gomath.Sin(phi)),
			},
			Normal:   up,
			TexCoord: math.Vec2{X: float32(seg) / float32(segments), Y: v},
		}
	}

	m := &Mesh{Name: "ring"}
	for j := 0; j < segments; j++ {
		i0 := at(inner, j, 0)
		i1 := at(inner, j+1, 0)
		o0 := at(outer, j, 1)
		o1 := at(outer, j+1, 1)
		m.Vertices = append(m.Vertices, i0, o1, o0, i0, i1, o1)
	}
	m.computeBounds()
	return m
}

// Ship builds a small faceted arrowhead pointing along +X, used when no ship
// model file is configured.
func Ship() *Mesh {
	nose := math.Vec3{X: 2}
	top := math.Vec3{X: -1, Y: 0.5}
	bottom := math.Vec3{X: -1, Y: -0.3}
	left := math.Vec3{X: -1.2, Z: -1.2}
	right := math.Vec3{X: -1.2, Z: 1.2}
	tail := math.Vec3{X: -0.6}

	faces := [][3]math.Vec3{
		{nose, top, left},
		{nose, right, top},
		{nose, left, bottom},
		{nose, bottom, right},
		{tail, left, top},
		{tail, top, right},
		{tail, bottom, left},
		{tail, right, bottom},
	}

	m := &Mesh{Name: "ship"}
	for _, f := range faces {
		n := faceNormal(f[0], f[1], f[2])
		for _, p := range f {
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: n})
		}
	}
	m.computeBounds()
	return m
}
