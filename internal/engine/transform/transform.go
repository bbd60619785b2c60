// Package transform builds the model, view, projection and viewport matrices
// and bundles them into per-frame uniforms.
package transform

import (
	gomath "math"

	"github.com/Faultbox/softrast/pkg/math"
)

// Projection parameters.
const (
	FieldOfView = 45.0 * gomath.Pi / 180.0
	NearPlane   = 0.1
	FarPlane    = 1000.0
)

// Model returns T·S · Rz·Ry·Rx: the Euler rotation is applied first (X, then
// Y, then Z), followed by the uniform scale and the translation.
func Model(translation math.Vec3, scale float32, rotation math.Vec3) math.Mat4 {
	ts := math.FromRows(
		scale, 0, 0, translation.X,
		0, scale, 0, translation.Y,
		0, 0, scale, translation.Z,
		0, 0, 0, 1,
	)
	return ts.Mul(math.RotateEuler(rotation))
}

// View returns a look-at matrix from eye towards center.
func View(eye, center, up math.Vec3) math.Mat4 {
	return math.LookAt(eye, center, up)
}

// Projection returns the perspective projection for a window of the given
// size. Heights below 1 are treated as 1.
func Projection(width, height float32) math.Mat4 {
	if height < 1 {
		height = 1
	}
	return math.Perspective(FieldOfView, width/height, NearPlane, FarPlane)
}

// Viewport maps normalized device coordinates to pixels of a width×height
// target with the Y axis pointing down.
func Viewport(width, height float32) math.Mat4 {
	return math.Viewport(width, height)
}
