// Package lighting provides the light sources used by the fragment shaders.
package lighting

import (
	"math"

	smath "github.com/Faultbox/softrast/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a unit vector
// pointing towards the light. Longitude rotates around the Y axis starting at
// +Z, latitude is the elevation above the XZ plane.
func SunDirection(longitude, latitude float32) smath.Vec3 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return smath.Vec3{X: x, Y: y, Z: z}
}

// Lambert returns the diffuse factor max(0, n·l) for unit vectors.
func Lambert(normal, toLight smath.Vec3) float32 {
	return max(0, normal.Dot(toLight))
}
