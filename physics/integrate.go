package physics

import "github.com/go-gl/mathgl/mgl32"

// Advance moves x by v·dt, then v by a·dt, in that order
// Used for both linear (position, velocity, acceleration) and angular parts
func Advance(x, v, a mgl32.Vec3, dt float32) (mgl32.Vec3, mgl32.Vec3) {
	x = x.Add(v.Mul(dt))
	v = v.Add(a.Mul(dt))
	return x, v
}

// Acceleration returns force / mass, zero for non-positive mass
func Acceleration(force mgl32.Vec3, mass float32) mgl32.Vec3 {
	if mass <= 0 {
		return mgl32.Vec3{}
	}
	return force.Mul(1 / mass)
}

// SanitizeNaN replaces NaN components with zero
func SanitizeNaN(v mgl32.Vec3) mgl32.Vec3 {
	for i := range v {
		if v[i] != v[i] {
			v[i] = 0
		}
	}
	return v
}
