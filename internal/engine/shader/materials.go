package shader

import (
	gomath "math"

	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/internal/engine/lighting"
	"github.com/Faultbox/softrast/internal/engine/raster"
	"github.com/Faultbox/softrast/internal/engine/transform"
)

// Ambient is the light level of surfaces facing away from every light.
const Ambient = 0.15

var (
	hullTint   = color.Color{R: 0.72, G: 0.74, B: 0.8}
	rockLight  = color.Color{R: 0.62, G: 0.47, B: 0.35}
	rockDark   = color.Color{R: 0.38, G: 0.27, B: 0.2}
	moonGrey   = color.Color{R: 0.6, G: 0.6, B: 0.6}
	moonCrater = color.Color{R: 0.42, G: 0.42, B: 0.44}
	sunCore    = color.Color{R: 1, G: 0.85, B: 0.35}
	sunFlare   = color.Color{R: 1, G: 0.55, B: 0.12}
	water      = color.Color{R: 0.1, G: 0.3, B: 0.78}
	land       = color.Color{R: 0.2, G: 0.55, B: 0.22}
	gasLight   = color.Color{R: 0.88, G: 0.74, B: 0.52}
	gasDark    = color.Color{R: 0.6, G: 0.4, B: 0.26}
	iceCap     = color.Color{R: 0.95, G: 0.97, B: 1}
	iceBody    = color.Color{R: 0.55, G: 0.78, B: 0.86}
	crust      = color.Color{R: 0.16, G: 0.1, B: 0.09}
	magma      = color.Color{R: 1, G: 0.42, B: 0.08}
	ringLight  = color.Color{R: 0.82, G: 0.75, B: 0.6}
	ringDark   = color.Color{R: 0.5, G: 0.44, B: 0.36}
)

// light returns the total light reaching the fragment: ambient, the frame's
// directional light and any point lights.
func light(f raster.Fragment, u transform.Uniforms) color.Color {
	n := f.Normal.Normalize()
	d := Ambient + (1-Ambient)*lighting.Lambert(n, u.Light)
	return color.Color{R: d, G: d, B: d}.Add(u.Lights.Illuminate(f.World, n))
}

func lit(base color.Color, f raster.Fragment, u transform.Uniforms) color.Color {
	return base.Mul(light(f, u))
}

func sin(x float32) float32 {
	return float32(gomath.Sin(float64(x)))
}

func abs(x float32) float32 {
	return float32(gomath.Abs(float64(x)))
}

func plain(f raster.Fragment, u transform.Uniforms) color.Color {
	return lit(f.Color, f, u)
}

func hull(f raster.Fragment, u transform.Uniforms) color.Color {
	return lit(f.Color.Mul(hullTint), f, u)
}

func rocky(f raster.Fragment, u transform.Uniforms) color.Color {
	t := 0.5 + 0.5*sin(f.TexCoord.X*40)*sin(f.TexCoord.Y*30)
	return lit(rockDark.Lerp(rockLight, t), f, u)
}

func moon(f raster.Fragment, u transform.Uniforms) color.Color {
	base := moonGrey
	if sin(f.TexCoord.X*50)*sin(f.TexCoord.Y*35) > 0.7 {
		base = moonCrater
	}
	return lit(base, f, u)
}

// sun is emissive and pulses slowly with the frame counter.
func sun(f raster.Fragment, u transform.Uniforms) color.Color {
	pulse := 0.9 + 0.1*sin(float32(u.Time%3600)*0.05)
	t := 0.5 + 0.5*sin(f.TexCoord.Y*18+sin(f.TexCoord.X*25))
	return sunFlare.Lerp(sunCore, t).Scale(pulse)
}

func ocean(f raster.Fragment, u transform.Uniforms) color.Color {
	base := water
	if sin(f.TexCoord.X*12+2*sin(f.TexCoord.Y*9)) > 0.6 {
		base = land
	}
	return lit(base, f, u)
}

func gas(f raster.Fragment, u transform.Uniforms) color.Color {
	t := 0.5 + 0.5*sin(f.TexCoord.Y*gomath.Pi*14)
	return lit(gasDark.BlendLab(gasLight, t), f, u)
}

func ice(f raster.Fragment, u transform.Uniforms) color.Color {
	base := iceBody
	if abs(f.TexCoord.Y-0.5) > 0.35 {
		base = iceCap
	}
	return lit(base, f, u)
}

// lava cracks glow regardless of lighting.
func lava(f raster.Fragment, u transform.Uniforms) color.Color {
	if abs(sin(f.TexCoord.X*25)*sin(f.TexCoord.Y*20)) < 0.1 {
		return magma
	}
	return lit(crust, f, u)
}

// rings are lit from both sides.
func rings(f raster.Fragment, u transform.Uniforms) color.Color {
	t := 0.5 + 0.5*sin(f.TexCoord.Y*40)
	base := ringDark.Lerp(ringLight, t)
	n := f.Normal.Normalize()
	if n.Dot(u.Light) < 0 {
		f.Normal = n.Neg()
	}
	return lit(base, f, u)
}
