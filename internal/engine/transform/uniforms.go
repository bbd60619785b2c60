package transform

import (
	"github.com/Faultbox/softrast/internal/engine/lighting"
	"github.com/Faultbox/softrast/pkg/math"
)

// Uniforms are the constant inputs of the vertex and fragment stages.
// View, Projection, Viewport, Time and Light are shared by a whole frame;
// Model changes per object.
type Uniforms struct {
	Model      math.Mat4
	View       math.Mat4
	Projection math.Mat4
	Viewport   math.Mat4

	// Time is the frame counter, incremented once per frame.
	Time uint32
	// Light is the unit direction towards the light, in world space.
	Light math.Vec3
	// Lights are optional point lights shared by the frame.
	Lights *lighting.LightSet
}

// Eye describes the camera placement used to build the view matrix.
type Eye struct {
	Position math.Vec3
	Center   math.Vec3
	Up       math.Vec3
}

// DefaultLight points from the scene towards the viewer and slightly up.
var DefaultLight = math.Vec3{X: 0, Y: 0.3, Z: 1}.Normalize()

// NewFrame computes the uniforms shared by every object of a frame.
// projW/projH give the window aspect, fbW/fbH the framebuffer size.
func NewFrame(eye Eye, projW, projH, fbW, fbH float32, time uint32) Uniforms {
	return Uniforms{
		Model:      math.Identity(),
		View:       View(eye.Position, eye.Center, eye.Up),
		Projection: Projection(projW, projH),
		Viewport:   Viewport(fbW, fbH),
		Time:       time,
		Light:      DefaultLight,
	}
}

// WithModel returns a copy of u for one object.
func (u Uniforms) WithModel(model math.Mat4) Uniforms {
	u.Model = model
	return u
}

// WithLights returns a copy of u lit by the given point lights.
func (u Uniforms) WithLights(s *lighting.LightSet) Uniforms {
	u.Lights = s
	return u
}

// WithLight returns a copy of u with a different light direction.
func (u Uniforms) WithLight(dir math.Vec3) Uniforms {
	u.Light = dir.Normalize()
	return u
}

// Transform returns Viewport·Projection·View·Model.
func (u Uniforms) Transform() math.Mat4 {
	return u.Viewport.Mul(u.Projection).Mul(u.View).Mul(u.Model)
}
