// Package scene holds the placed objects of a frame and animates them.
package scene

import (
	gomath "math"

	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/internal/engine/lighting"
	"github.com/Faultbox/softrast/internal/engine/model"
	"github.com/Faultbox/softrast/internal/engine/pipeline"
	"github.com/Faultbox/softrast/internal/engine/shader"
	"github.com/Faultbox/softrast/internal/engine/transform"
	"github.com/Faultbox/softrast/pkg/math"
)

const twoPi = 2 * gomath.Pi

// Object is a mesh placed in the world. Vertices are shared between objects
// and never modified.
type Object struct {
	Name        string
	Translation math.Vec3
	Rotation    math.Vec3 // Euler angles in radians
	Scale       float32
	Vertices    []model.Vertex
	Material    model.Material
	// Shader replaces the material's shader when set.
	Shader shader.Shader

	// OrbitSpeed is added to Angle every update. Objects with a zero speed
	// stay in place.
	OrbitSpeed float32
	// Angle is the current orbit step in radians, kept in [0, 2π).
	Angle float32
}

// ModelMatrix returns the object's model matrix.
func (o *Object) ModelMatrix() math.Mat4 {
	return transform.Model(o.Translation, o.Scale, o.Rotation)
}

// Update moves the object one orbit step around the world Y axis.
//
// The translation is rotated by the accumulated angle, so the step grows each
// frame until the angle wraps.
func (o *Object) Update(orbitScale float32) {
	if o.OrbitSpeed == 0 {
		return
	}
	q := math.QuatFromAxisAngle(math.Vec3{Y: 1}, o.Angle)
	o.Translation = q.Rotate(o.Translation)
	o.Angle = float32(gomath.Mod(float64(o.Angle+o.OrbitSpeed*orbitScale), twoPi))
	if o.Angle < 0 {
		o.Angle += twoPi
	}
}

// Scene is an ordered list of objects with optional lights.
type Scene struct {
	Name    string
	Objects []*Object
	Lights  *lighting.LightSet

	// OrbitScale multiplies every object's orbit speed.
	OrbitScale float32
	// Light is the world direction towards the directional light.
	Light math.Vec3

	drawList []pipeline.Object
	sun      *Object
}

// New creates an empty scene lit from the default direction.
func New(name string) *Scene {
	return &Scene{
		Name:       name,
		OrbitScale: 1,
		Light:      transform.DefaultLight,
	}
}

// Add appends an object and returns it.
func (s *Scene) Add(o *Object) *Object {
	if o.Scale == 0 {
		o.Scale = 1
	}
	s.Objects = append(s.Objects, o)
	return o
}

// Find returns the first object with the given name, or nil.
func (s *Scene) Find(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// SetLight points the directional light using degrees of longitude and
// latitude.
func (s *Scene) SetLight(longitude, latitude float32) {
	s.Light = lighting.SunDirection(longitude, latitude)
}

// EnableSunLight adds a point light that follows obj.
func (s *Scene) EnableSunLight(obj *Object, c color.Color, rng, intensity float32) {
	if s.Lights == nil {
		s.Lights = lighting.NewLightSet()
	}
	s.sun = obj
	s.Lights.Clear()
	s.Lights.Add(lighting.PointLight{
		Position:  obj.Translation,
		Color:     c,
		Range:     rng,
		Intensity: intensity,
	})
}

// Update advances every object by one frame.
func (s *Scene) Update() {
	for _, o := range s.Objects {
		o.Update(s.OrbitScale)
	}
	if s.sun != nil && s.Lights != nil && len(s.Lights.Lights) > 0 {
		s.Lights.Lights[0].Position = s.sun.Translation
	}
}

// DrawList returns the objects as draw calls in scene order. The slice is
// reused by the next call.
func (s *Scene) DrawList() []pipeline.Object {
	s.drawList = s.drawList[:0]
	for _, o := range s.Objects {
		s.drawList = append(s.drawList, pipeline.Object{
			Name:     o.Name,
			Vertices: o.Vertices,
			Model:    o.ModelMatrix(),
			Material: o.Material,
			Shader:   o.Shader,
		})
	}
	return s.drawList
}

// Uniforms completes the per-frame uniforms with the scene lights.
func (s *Scene) Uniforms(u transform.Uniforms) transform.Uniforms {
	return u.WithLight(s.Light).WithLights(s.Lights)
}

// Bounds returns the world-space box around every object's vertices.
func (s *Scene) Bounds() model.Bounds {
	var b model.Bounds
	first := true
	for _, o := range s.Objects {
		m := o.ModelMatrix()
		for _, v := range o.Vertices {
			p := m.TransformPoint(v.Position)
			if first {
				b.Min, b.Max = p, p
				first = false
				continue
			}
			b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
			b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
		}
	}
	return b
}

// VertexCount returns the number of vertices drawn per frame.
func (s *Scene) VertexCount() int {
	n := 0
	for _, o := range s.Objects {
		n += len(o.Vertices)
	}
	return n
}
