package math3d

import "math"

// RotateX rotates v by angle t (radians) in the YZ plane.
func RotateX(v Vec3, t float64) Vec3 {
	s, c := math.Sincos(t)
	return Vec3{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}

// RotateY rotates v by angle t (radians) in the XZ plane.
//
// The sign convention matches RotateX and RotateZ applied to the (x, z)
// pair: positive t carries +X toward +Z.
func RotateY(v Vec3, t float64) Vec3 {
	s, c := math.Sincos(t)
	return Vec3{
		X: v.X*c - v.Z*s,
		Y: v.Y,
		Z: v.X*s + v.Z*c,
	}
}

// RotateZ rotates v by angle t (radians) in the XY plane.
func RotateZ(v Vec3, t float64) Vec3 {
	s, c := math.Sincos(t)
	return Vec3{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
		Z: v.Z,
	}
}

// RotateEuler applies the Euler angles in ang (radians) to v in the fixed
// order Y, then X, then Z.
func RotateEuler(v, ang Vec3) Vec3 {
	v = RotateY(v, ang.Y)
	v = RotateX(v, ang.X)
	return RotateZ(v, ang.Z)
}

// RotateEulerInverse applies the negated Euler angles in ang to v, in the
// same Y, X, Z order as RotateEuler. This is how camera orientation is
// removed from a camera-relative point.
//
// Note this is not the exact inverse of RotateEuler unless at most one
// angle is non-zero; the order is kept as-is to match the reference output.
func RotateEulerInverse(v, ang Vec3) Vec3 {
	v = RotateY(v, -ang.Y)
	v = RotateX(v, -ang.X)
	return RotateZ(v, -ang.Z)
}
