package lighting

import (
	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/pkg/math"
)

// MaxPointLights is the maximum number of point lights in a LightSet.
const MaxPointLights = 8

// PointLight is a light emitted from a world-space position with a linear
// falloff that reaches zero at Range.
type PointLight struct {
	Position  math.Vec3
	Color     color.Color
	Range     float32
	Intensity float32
}

// Attenuation returns the light strength reaching p, in [0, Intensity].
func (l PointLight) Attenuation(p math.Vec3) float32 {
	if l.Range <= 0 {
		return 0
	}
	d := l.Position.Distance(p)
	if d >= l.Range {
		return 0
	}
	return (1 - d/l.Range) * l.Intensity
}

// Illuminate returns the diffuse contribution of l at point p with unit
// normal n.
func (l PointLight) Illuminate(p, n math.Vec3) color.Color {
	a := l.Attenuation(p)
	if a == 0 {
		return color.Black
	}
	toLight := l.Position.Sub(p).Normalize()
	return l.Color.Scale(a * Lambert(n, toLight))
}

// LightSet holds the point lights of a frame.
type LightSet struct {
	Lights []PointLight
}

// NewLightSet creates an empty light set.
func NewLightSet() *LightSet {
	return &LightSet{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights.
func (s *LightSet) Clear() {
	s.Lights = s.Lights[:0]
}

// Add appends a light. Returns false if the set is full.
func (s *LightSet) Add(light PointLight) bool {
	if len(s.Lights) >= MaxPointLights {
		return false
	}
	if light.Range <= 0 {
		light.Range = 100
	}
	s.Lights = append(s.Lights, light)
	return true
}

// Illuminate sums the contribution of every light at p with unit normal n.
// A nil set contributes nothing.
func (s *LightSet) Illuminate(p, n math.Vec3) color.Color {
	var sum color.Color
	if s == nil {
		return sum
	}
	for _, l := range s.Lights {
		sum = sum.Add(l.Illuminate(p, n))
	}
	return sum
}
