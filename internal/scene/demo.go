package scene

import (
	gomath "math"

	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/internal/engine/model"
	"github.com/Faultbox/softrast/pkg/math"
)

// Meshes are the shared meshes of the demo scenes.
type Meshes struct {
	Sphere *model.Mesh
	Rings  *model.Mesh
	Ship   *model.Mesh
}

// DefaultMeshes builds the procedural meshes.
func DefaultMeshes() Meshes {
	return Meshes{
		Sphere: model.Sphere(24, 32),
		Rings:  model.Ring(2.4, 3.6, 64),
		Ship:   model.Ship(),
	}
}

// Sun light parameters of the solar scene.
var (
	SunColor     = color.RGB(255, 214, 150)
	SunRange     = float32(12)
	SunIntensity = float32(0.6)
)

type body struct {
	name        string
	translation math.Vec3
	rotation    math.Vec3
	scale       float32
	material    model.Material
	speed       float32
	rings       bool
}

const quarter = gomath.Pi / 4

var solarBodies = []body{
	{"sun", math.Vec3{}, math.Vec3{}, 3, model.MaterialSun, 0.00001, false},
	{"moon", math.Vec3{X: 3.5, Y: 2.5}, math.Vec3{Y: quarter}, 0.3, model.MaterialMoon, 0.00002, false},
	{"rocky", math.Vec3{X: 3, Y: 2}, math.Vec3{Y: quarter}, 1, model.MaterialRocky, 0.00002, false},
	{"ocean", math.Vec3{X: 3, Y: 1, Z: 2}, math.Vec3{Y: quarter}, 1, model.MaterialOcean, 0.00001, false},
	{"ice", math.Vec3{X: -3, Y: 2, Z: 0.3}, math.Vec3{Y: quarter}, 0.7, model.MaterialIce, 0.00002, false},
	{"gas", math.Vec3{X: -3, Z: -1.3}, math.Vec3{Y: quarter}, 0.7, model.MaterialGas, 0.00005, false},
	{"lava", math.Vec3{X: -1.3, Y: 3, Z: 5.3}, math.Vec3{Y: quarter}, 1.3, model.MaterialLava, 0.00001, false},
	{"giant", math.Vec3{X: 4.3, Y: 1, Z: -3.3}, math.Vec3{Y: quarter}, 1.7, model.MaterialGas, 0.00002, false},
	{"rings", math.Vec3{X: 4.3, Y: 1, Z: -3.3}, math.Vec3{X: 0.3, Y: quarter}, 0.8, model.MaterialRings, 0.00002, true},
}

// SolarSystem builds the demo scene: a ship at (5, 0, 0) followed by a sun,
// its planets and a ringed giant. Every body orbits the Y axis.
func SolarSystem(m Meshes) *Scene {
	s := New("solar")
	s.Add(&Object{
		Name:        "ship",
		Translation: math.Vec3{X: 5},
		Scale:       0.2,
		Vertices:    m.Ship.VertexArray(),
		Material:    model.MaterialHull,
	})
	for _, b := range solarBodies {
		mesh := m.Sphere
		if b.rings {
			mesh = m.Rings
		}
		s.Add(&Object{
			Name:        b.name,
			Translation: b.translation,
			Rotation:    b.rotation,
			Scale:       b.scale,
			Vertices:    mesh.VertexArray(),
			Material:    b.material,
			OrbitSpeed:  b.speed,
		})
	}
	s.EnableSunLight(s.Find("sun"), SunColor, SunRange, SunIntensity)
	return s
}

// Single builds a scene with one static mesh at the origin.
func Single(mesh *model.Mesh, mat model.Material) *Scene {
	s := New("single")
	s.Add(&Object{
		Name:     mesh.Name,
		Scale:    1,
		Vertices: mesh.VertexArray(),
		Material: mat,
	})
	return s
}
