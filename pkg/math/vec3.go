// Package math provides the small fixed-size vector and matrix types used by
// the renderer.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Vec4 extends v with the given w component.
func (v Vec3) Vec4(w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Weighted returns a*wa + b*wb + c*wc.
func Weighted(a, b, c Vec3, wa, wb, wc float32) Vec3 {
	return Vec3{
		a.X*wa + b.X*wb + c.X*wc,
		a.Y*wa + b.Y*wb + c.Y*wc,
		a.Z*wa + b.Z*wb + c.Z*wc,
	}
}

// Vec4 is a 4-component vector.
type Vec4 [4]float32

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// W returns the w component.
func (v Vec4) W() float32 {
	return v[3]
}

// PerspectiveDivide divides x, y and z by w. A zero w leaves them unchanged.
func (v Vec4) PerspectiveDivide() Vec4 {
	w := v[3]
	if w == 0 {
		return v
	}
	return Vec4{v[0] / w, v[1] / w, v[2] / w, w}
}
