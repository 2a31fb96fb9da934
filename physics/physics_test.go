package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-5

// vecNear compares per element with an absolute tolerance
func vecNear(a, b mgl32.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > epsilon {
			return false
		}
	}
	return true
}

func matNear(a, b mgl32.Mat4) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > epsilon {
			return false
		}
	}
	return true
}

func TestGravityForceMagnitude(t *testing.T) {
	const g = float32(6.7e-11)
	posI := mgl32.Vec3{0, 0, 0}
	posJ := mgl32.Vec3{3, 4, 0}
	massI, massJ := float32(1e6), float32(2e6)

	f, ok := GravityForce(posI, posJ, massI, massJ, g)
	if !ok {
		t.Fatal("Expected defined force")
	}

	want := float64(g) * 1e6 * 2e6 / 25
	if got := float64(f.Len()); math.Abs(got-want)/want > 1e-4 {
		t.Errorf("Expected magnitude %g, got %g", want, got)
	}

	back, _ := GravityForce(posJ, posI, massJ, massI, g)
	if !vecNear(f.Add(back), mgl32.Vec3{}) {
		t.Errorf("Expected opposite forces, got %v and %v", f, back)
	}

	// Points from i toward j
	if f.Dot(posJ.Sub(posI)) <= 0 {
		t.Errorf("Expected force toward j, got %v", f)
	}
}

func TestGravityForceCoincident(t *testing.T) {
	p := mgl32.Vec3{1, 1, 1}
	if _, ok := GravityForce(p, p, 1, 1, 1); ok {
		t.Error("Expected no force for coincident bodies")
	}
}

func TestAdvanceOrdering(t *testing.T) {
	x, v := Advance(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 0}, 1)
	if !vecNear(x, mgl32.Vec3{1, 0, 0}) || !vecNear(v, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Expected x=(1,0,0) v=(1,0,0), got x=%v v=%v", x, v)
	}

	// Position uses the old velocity
	x, v = Advance(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{2, 0, 0}, 0.5)
	if !vecNear(x, mgl32.Vec3{0.5, 0, 0}) || !vecNear(v, mgl32.Vec3{2, 0, 0}) {
		t.Errorf("Expected x=(0.5,0,0) v=(2,0,0), got x=%v v=%v", x, v)
	}
}

func TestAcceleration(t *testing.T) {
	if a := Acceleration(mgl32.Vec3{4, 0, 0}, 2); !vecNear(a, mgl32.Vec3{2, 0, 0}) {
		t.Errorf("Expected (2,0,0), got %v", a)
	}
	if a := Acceleration(mgl32.Vec3{4, 0, 0}, 0); a != (mgl32.Vec3{}) {
		t.Errorf("Expected zero for massless body, got %v", a)
	}
}

func TestSanitizeNaN(t *testing.T) {
	nan := float32(math.NaN())
	got := SanitizeNaN(mgl32.Vec3{nan, 2, nan})
	if got != (mgl32.Vec3{0, 2, 0}) {
		t.Errorf("Expected (0,2,0), got %v", got)
	}
}

func TestFold(t *testing.T) {
	stack := []Pose{
		{Position: mgl32.Vec3{1, 0, 0}, Rotation: mgl32.Vec3{0.1, 0, 0}, Scale: mgl32.Vec3{2, 1, 1}},
		{Position: mgl32.Vec3{0, 1, 0}, Rotation: mgl32.Vec3{0.2, 0, 0}, Scale: mgl32.Vec3{3, 1, 1}},
		{Position: mgl32.Vec3{0, 0, 1}, Scale: mgl32.Vec3{1, 1, 0.5}},
	}
	got := Fold(stack)

	if !vecNear(got.Position, mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Expected position (1,1,1), got %v", got.Position)
	}
	if !vecNear(got.Rotation, mgl32.Vec3{0.3, 0, 0}) {
		t.Errorf("Expected rotation (0.3,0,0), got %v", got.Rotation)
	}
	if !vecNear(got.Scale, mgl32.Vec3{6, 1, 0.5}) {
		t.Errorf("Expected scale (6,1,0.5), got %v", got.Scale)
	}

	if id := Fold(nil); id != IdentityPose() {
		t.Errorf("Expected identity for empty stack, got %v", id)
	}
}

func TestPoseMatrix(t *testing.T) {
	p := IdentityPose()
	p.Position = mgl32.Vec3{1, 2, 3}
	p.Scale = mgl32.Vec3{2, 2, 2}

	m := p.Matrix()
	origin := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !vecNear(origin.Vec3(), mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Expected translated origin (1,2,3), got %v", origin.Vec3())
	}
	unit := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !vecNear(unit.Vec3(), mgl32.Vec3{3, 2, 3}) {
		t.Errorf("Expected scaled unit x (3,2,3), got %v", unit.Vec3())
	}

	// A full turn wraps to identity rotation
	turned := IdentityPose()
	turned.Rotation = mgl32.Vec3{0, 0, 2 * math.Pi}
	if !matNear(turned.Matrix(), mgl32.Ident4()) {
		t.Errorf("Expected identity matrix after full turn, got %v", turned.Matrix())
	}
}
