package common

import "math"

// Vec3 is a world-space vector. Y is up; the ground plane is XZ.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Mag() float64 {
	return math.Sqrt(v.MagSq())
}

// Normalized returns the unit vector, or the zero vector unchanged.
func (v Vec3) Normalized() Vec3 {
	mag := v.Mag()
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}

// Flat drops the vertical component.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

func (v Vec3) FlatMagSq() float64 {
	return v.X*v.X + v.Z*v.Z
}

func (v Vec3) FlatMag() float64 {
	return math.Sqrt(v.FlatMagSq())
}

func Lerp3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// Damp3 is Damp applied per component, so a position chases a target with
// the same no-overshoot guarantee.
func Damp3(current, target Vec3, rate, dt float64) Vec3 {
	if rate <= 0 {
		return target
	}
	gain := 1 - math.Exp(-rate*dt)
	return current.Add(target.Sub(current).Scale(gain))
}

// DirectionFromYawPitch converts heading angles in degrees to a unit vector.
// Yaw 0 faces +Z and grows toward +X; positive pitch looks up.
func DirectionFromYawPitch(yawDeg, pitchDeg float64) Vec3 {
	yaw := yawDeg * Deg2Rad
	pitch := pitchDeg * Deg2Rad
	cp := math.Cos(pitch)
	return Vec3{
		X: math.Sin(yaw) * cp,
		Y: math.Sin(pitch),
		Z: math.Cos(yaw) * cp,
	}
}

// YawDirection is DirectionFromYawPitch with zero pitch.
func YawDirection(yawDeg float64) Vec3 {
	yaw := yawDeg * Deg2Rad
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// YawRight returns the rightward basis vector for a heading.
func YawRight(yawDeg float64) Vec3 {
	yaw := yawDeg * Deg2Rad
	return Vec3{X: math.Cos(yaw), Z: -math.Sin(yaw)}
}

// YawFromDirection recovers the heading in degrees from a direction. The
// vertical component is ignored.
func YawFromDirection(d Vec3) float64 {
	if d.X == 0 && d.Z == 0 {
		return 0
	}
	return math.Atan2(d.X, d.Z) * Rad2Deg
}
