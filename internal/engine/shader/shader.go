// Package shader turns rasterized fragments into colors.
//
// Each material maps to one Shader. The mapping is resolved once per object
// and every Shader is a pure function of the fragment and the uniforms.
package shader

import (
	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/internal/engine/model"
	"github.com/Faultbox/softrast/internal/engine/raster"
	"github.com/Faultbox/softrast/internal/engine/transform"
)

// Shader computes the color of one fragment.
type Shader interface {
	Shade(f raster.Fragment, u transform.Uniforms) color.Color
}

// Func adapts a plain function to Shader.
type Func func(f raster.Fragment, u transform.Uniforms) color.Color

// Shade calls fn.
func (fn Func) Shade(f raster.Fragment, u transform.Uniforms) color.Color {
	return fn(f, u)
}

var byMaterial = [model.MaterialCount]Shader{
	model.MaterialHull:  Func(hull),
	model.MaterialRocky: Func(rocky),
	model.MaterialMoon:  Func(moon),
	model.MaterialSun:   Func(sun),
	model.MaterialOcean: Func(ocean),
	model.MaterialGas:   Func(gas),
	model.MaterialIce:   Func(ice),
	model.MaterialLava:  Func(lava),
	model.MaterialRings: Func(rings),
}

// Default is used for materials without a dedicated shader: the vertex color
// lit by the frame lights.
var Default Shader = Func(plain)

// For returns the shader of a material, or Default for unknown materials.
func For(m model.Material) Shader {
	if m < model.MaterialCount && byMaterial[m] != nil {
		return byMaterial[m]
	}
	return Default
}

// Shade colors f with the shader of its material.
func Shade(f raster.Fragment, u transform.Uniforms) color.Color {
	return For(f.Material).Shade(f, u)
}
