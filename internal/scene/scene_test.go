package scene

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/softrast/internal/engine/model"
	"github.com/Faultbox/softrast/internal/engine/transform"
	"github.com/Faultbox/softrast/pkg/math"
)

const epsilon = 1e-4

func approxEqual(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < epsilon
}

func vecApproxEqual(a, b math.Vec3) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y) && approxEqual(a.Z, b.Z)
}

func TestObjectUpdate(t *testing.T) {
	o := &Object{Translation: math.Vec3{X: 3, Y: 2}, OrbitSpeed: gomath.Pi / 2}

	// The first step rotates by the initial zero angle.
	o.Update(1)
	if !vecApproxEqual(o.Translation, math.Vec3{X: 3, Y: 2}) {
		t.Errorf("first update: got %v, want unchanged", o.Translation)
	}
	if !approxEqual(o.Angle, gomath.Pi/2) {
		t.Errorf("angle: got %v, want π/2", o.Angle)
	}

	// A quarter turn about +Y sends +X to -Z.
	o.Update(1)
	if !vecApproxEqual(o.Translation, math.Vec3{Y: 2, Z: -3}) {
		t.Errorf("second update: got %v, want (0, 2, -3)", o.Translation)
	}
	if got := o.Translation.Length(); !approxEqual(got, float32(gomath.Sqrt(13))) {
		t.Errorf("orbit radius changed: %v", got)
	}
}

func TestObjectUpdateWrapsAngle(t *testing.T) {
	o := &Object{Translation: math.Vec3{X: 1}, OrbitSpeed: 4}
	for i := 0; i < 10; i++ {
		o.Update(1)
		if o.Angle < 0 || o.Angle >= 2*gomath.Pi {
			t.Fatalf("step %d: angle %v outside [0, 2π)", i, o.Angle)
		}
	}

	still := &Object{Translation: math.Vec3{X: 1}}
	still.Update(1)
	if still.Translation != (math.Vec3{X: 1}) || still.Angle != 0 {
		t.Errorf("static object moved: %+v", still)
	}
}

func TestObjectUpdateOrbitScale(t *testing.T) {
	o := &Object{Translation: math.Vec3{X: 1}, OrbitSpeed: 0.1}
	o.Update(0)
	if o.Angle != 0 {
		t.Errorf("zero orbit scale: angle %v, want 0", o.Angle)
	}
	o.Update(3)
	if !approxEqual(o.Angle, 0.3) {
		t.Errorf("orbit scale 3: angle %v, want 0.3", o.Angle)
	}
}

func TestModelMatrix(t *testing.T) {
	o := &Object{Translation: math.Vec3{X: 1, Y: 2, Z: 3}, Scale: 2}
	got := o.ModelMatrix().TransformPoint(math.Vec3{X: 1})
	if !vecApproxEqual(got, math.Vec3{X: 3, Y: 2, Z: 3}) {
		t.Errorf("model matrix: got %v, want (3, 2, 3)", got)
	}
}

func TestSolarSystem(t *testing.T) {
	m := Meshes{
		Sphere: model.Sphere(4, 6),
		Rings:  model.Ring(2, 3, 8),
		Ship:   model.Ship(),
	}
	s := SolarSystem(m)

	if len(s.Objects) != 10 {
		t.Fatalf("objects: got %d, want 10", len(s.Objects))
	}
	ship := s.Objects[0]
	if ship.Name != "ship" || ship.Translation != (math.Vec3{X: 5}) || ship.Scale != 0.2 {
		t.Errorf("ship: got %+v", ship)
	}
	if ship.OrbitSpeed != 0 {
		t.Errorf("ship should not orbit, speed %v", ship.OrbitSpeed)
	}

	sun := s.Find("sun")
	if sun == nil || sun.Material != model.MaterialSun || sun.Scale != 3 {
		t.Fatalf("sun: got %+v", sun)
	}
	rings := s.Find("rings")
	if rings == nil || rings.Material != model.MaterialRings {
		t.Fatalf("rings: got %+v", rings)
	}
	if len(rings.Vertices) != len(m.Rings.Vertices) {
		t.Errorf("rings use %d vertices, want the ring mesh", len(rings.Vertices))
	}
	giant := s.Find("giant")
	if giant.Translation != rings.Translation || giant.OrbitSpeed != rings.OrbitSpeed {
		t.Error("rings must orbit with their planet")
	}

	// Shared vertex slices.
	if &s.Find("moon").Vertices[0] != &s.Find("rocky").Vertices[0] {
		t.Error("spheres should share one vertex slice")
	}

	if s.Lights == nil || len(s.Lights.Lights) != 1 {
		t.Fatal("solar scene should carry the sun light")
	}
}

func TestSceneUpdateMovesSunLight(t *testing.T) {
	s := New("test")
	sun := s.Add(&Object{Name: "sun", Translation: math.Vec3{X: 2}, OrbitSpeed: gomath.Pi / 2})
	s.EnableSunLight(sun, SunColor, 10, 1)

	s.Update()
	s.Update()
	if got := s.Lights.Lights[0].Position; got != sun.Translation {
		t.Errorf("light position: got %v, want %v", got, sun.Translation)
	}
}

func TestDrawList(t *testing.T) {
	sphere := model.Sphere(3, 4)
	s := New("test")
	s.Add(&Object{Name: "a", Translation: math.Vec3{X: 1}, Vertices: sphere.Vertices, Material: model.MaterialMoon})
	s.Add(&Object{Name: "b", Vertices: sphere.Vertices, Material: model.MaterialIce})

	list := s.DrawList()
	if len(list) != 2 {
		t.Fatalf("draw list: got %d, want 2", len(list))
	}
	if list[0].Name != "a" || list[1].Name != "b" {
		t.Errorf("draw order: got %s, %s", list[0].Name, list[1].Name)
	}
	if list[0].Material != model.MaterialMoon || list[1].Material != model.MaterialIce {
		t.Error("materials not carried into draw calls")
	}
	// Add defaults the scale to 1.
	if p := list[0].Model.TransformPoint(math.Vec3{}); !vecApproxEqual(p, math.Vec3{X: 1}) {
		t.Errorf("model matrix origin: got %v", p)
	}
}

func TestSceneUniforms(t *testing.T) {
	s := Single(model.Sphere(3, 4), model.MaterialRocky)
	s.SetLight(90, 0)

	u := s.Uniforms(transform.Uniforms{})
	if !vecApproxEqual(u.Light, s.Light) {
		t.Errorf("light: got %v, want %v", u.Light, s.Light)
	}
	if u.Lights != nil {
		t.Error("single scene has no point lights")
	}
	if s.VertexCount() != len(s.Objects[0].Vertices) {
		t.Errorf("vertex count: got %d", s.VertexCount())
	}
}

func TestBounds(t *testing.T) {
	s := Single(model.Sphere(8, 8), model.MaterialRocky)
	s.Objects[0].Translation = math.Vec3{X: 10}
	s.Objects[0].Scale = 2

	b := s.Bounds()
	if !approxEqual(b.Min.X, 8) || !approxEqual(b.Max.X, 12) {
		t.Errorf("x range: got [%v, %v], want [8, 12]", b.Min.X, b.Max.X)
	}
	if !approxEqual(b.Min.Y, -2) || !approxEqual(b.Max.Y, 2) {
		t.Errorf("y range: got [%v, %v], want [-2, 2]", b.Min.Y, b.Max.Y)
	}
}
