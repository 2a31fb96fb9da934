package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GravityForce returns the Newtonian attraction on body i toward body j
// Magnitude is G * massI * massJ / r², the counterpart on j is the negation
// Returns false for coincident bodies, which have no defined direction
func GravityForce(posI, posJ mgl32.Vec3, massI, massJ, g float32) (mgl32.Vec3, bool) {
	delta := posJ.Sub(posI)
	distSq := delta.Dot(delta)
	if distSq == 0 {
		return mgl32.Vec3{}, false
	}

	dist := float32(math.Sqrt(float64(distSq)))
	magnitude := g * massI * massJ / distSq

	// Unit direction scaled in one step
	return delta.Mul(magnitude / dist), true
}
