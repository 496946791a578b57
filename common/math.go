package common

import "math"

const (
	Deg2Rad = math.Pi / 180.0
	Rad2Deg = 180.0 / math.Pi
)

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Damp moves current toward target with a single-pole exponential step.
// The gain is 1-exp(-rate*dt), so the result never overshoots for any dt.
// A rate <= 0 snaps straight to the target.
func Damp(current, target, rate, dt float64) float64 {
	if rate <= 0 {
		return target
	}
	return current + (target-current)*(1-math.Exp(-rate*dt))
}

func MoveToward(current, target, maxDelta float64) float64 {
	d := target - current
	if math.Abs(d) <= maxDelta {
		return target
	}
	if d < 0 {
		return current - maxDelta
	}
	return current + maxDelta
}

// NormalizeAngle wraps degrees into (-180, 180].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}

// AngleDelta returns the shortest signed arc from one heading to another,
// in degrees.
func AngleDelta(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// DampAngle is Damp over the shortest arc between two headings.
func DampAngle(current, target, rate, dt float64) float64 {
	if rate <= 0 {
		return NormalizeAngle(target)
	}
	d := AngleDelta(current, target)
	return NormalizeAngle(current + d*(1-math.Exp(-rate*dt)))
}

// FoldAngle folds a [0, 360) angle into a signed (-180, 180] one. Values up
// to and including 180 pass through untouched.
func FoldAngle(a float64) float64 {
	if a > 180 {
		return a - 360
	}
	return a
}
