// Package camera provides the look-at camera driven by the viewer controls.
package camera

import (
	gomath "math"

	"github.com/Faultbox/softrast/internal/engine/transform"
	"github.com/Faultbox/softrast/pkg/math"
)

// Camera looks from Eye towards Center and orbits around Center.
type Camera struct {
	Eye    math.Vec3
	Center math.Vec3
	Up     math.Vec3

	// Constraints
	MinDistance float32
	MaxPitch    float32 // absolute pitch limit, radians
}

// New creates a camera with default constraints.
func New(eye, center, up math.Vec3) *Camera {
	return &Camera{
		Eye:         eye,
		Center:      center,
		Up:          up,
		MinDistance: 0.5,
		MaxPitch:    gomath.Pi/2 - 0.1,
	}
}

// Default returns the demo camera: ten units in front of the origin.
func Default() *Camera {
	return New(math.Vec3{Z: 10}, math.Vec3{}, math.Vec3{Y: 1})
}

// Distance returns the distance from Eye to Center.
func (c *Camera) Distance() float32 {
	return c.Eye.Distance(c.Center)
}

// angles returns the yaw and pitch of Eye as seen from Center. Yaw is
// measured in the XZ plane from +X towards +Z; positive pitch is above the
// XZ plane.
func (c *Camera) angles() (yaw, pitch float64) {
	r := c.Eye.Sub(c.Center)
	yaw = gomath.Atan2(float64(r.Z), float64(r.X))
	pitch = gomath.Atan2(float64(r.Y), gomath.Hypot(float64(r.X), float64(r.Z)))
	return yaw, pitch
}

// Orbit rotates Eye around Center by deltaYaw and deltaPitch radians,
// keeping the distance. Pitch is clamped to ±MaxPitch.
func (c *Camera) Orbit(deltaYaw, deltaPitch float32) {
	radius := float64(c.Distance())
	if radius == 0 {
		return
	}
	yaw, pitch := c.angles()

	yaw = gomath.Mod(yaw+float64(deltaYaw), 2*gomath.Pi)
	limit := float64(c.MaxPitch)
	pitch = gomath.Max(-limit, gomath.Min(limit, pitch+float64(deltaPitch)))

	c.Eye = c.Center.Add(math.Vec3{
		X: float32(radius * gomath.Cos(yaw) * gomath.Cos(pitch)),
		Y: float32(radius * gomath.Sin(pitch)),
		Z: float32(radius * gomath.Sin(yaw) * gomath.Cos(pitch)),
	})
}

// Zoom moves Eye towards Center by delta units, or away for negative delta.
// Eye never gets closer than MinDistance.
func (c *Camera) Zoom(delta float32) {
	d := c.Distance()
	if d == 0 {
		return
	}
	target := max(d-delta, c.MinDistance)
	dir := c.Eye.Sub(c.Center).Scale(1 / d)
	c.Eye = c.Center.Add(dir.Scale(target))
}

// MoveCenter pans the look-at point. delta.X moves along the camera's right
// axis, delta.Y along its up axis and delta.Z towards the view direction.
func (c *Camera) MoveCenter(delta math.Vec3) {
	forward := c.Center.Sub(c.Eye).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)

	move := right.Scale(delta.X).Add(up.Scale(delta.Y)).Add(forward.Scale(delta.Z))
	c.Center = c.Center.Add(move)
}

// Transform returns the eye placement for the transform package.
func (c *Camera) Transform() transform.Eye {
	return transform.Eye{Position: c.Eye, Center: c.Center, Up: c.Up}
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	return transform.View(c.Eye, c.Center, c.Up)
}

// FitToBounds centers the camera on a bounding box and backs off far enough
// to see all of it with the default field of view.
func (c *Camera) FitToBounds(minB, maxB math.Vec3) {
	center := minB.Add(maxB).Scale(0.5)
	radius := maxB.Sub(minB).Length() / 2
	if radius == 0 {
		radius = 1
	}
	dist := radius / float32(gomath.Tan(transform.FieldOfView/2))

	dir := c.Eye.Sub(c.Center).Normalize()
	if dir == (math.Vec3{}) {
		dir = math.Vec3{Z: 1}
	}
	c.Center = center
	c.Eye = center.Add(dir.Scale(dist * 1.2))
}
