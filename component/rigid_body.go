package component

import (
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/kristall/physics"
)

// RigidBody carries mass, motion state and the named-force table
// Position lives in the sibling Transform; LastAbsolutePosition is the world position
// as of the latest translate tick
type RigidBody struct {
	Mass    float32
	Movable bool

	LastAbsolutePosition mgl32.Vec3

	Velocity     mgl32.Vec3
	Acceleration mgl32.Vec3

	AngularVelocity     mgl32.Vec3
	AngularAcceleration mgl32.Vec3

	forces map[string]mgl32.Vec3
}

// NewRigidBody returns a movable body of the given mass
func NewRigidBody(mass float32) RigidBody {
	return RigidBody{
		Mass:    mass,
		Movable: true,
		forces:  make(map[string]mgl32.Vec3),
	}
}

// NewStaticBody returns a body that takes part in gravity but is never integrated
func NewStaticBody(mass float32) RigidBody {
	rb := NewRigidBody(mass)
	rb.Movable = false
	return rb
}

// CommitForce stores force under source, replacing any previous entry
// NaN components are stored as zero
func (r *RigidBody) CommitForce(source string, force mgl32.Vec3) {
	if r.forces == nil {
		r.forces = make(map[string]mgl32.Vec3)
	}
	r.forces[source] = physics.SanitizeNaN(force)
}

// ClearForce drops the entry for source
func (r *RigidBody) ClearForce(source string) {
	delete(r.forces, source)
}

// Force returns the current entry for source
func (r *RigidBody) Force(source string) (mgl32.Vec3, bool) {
	f, ok := r.forces[source]
	return f, ok
}

// ForceSources lists the sources with a current entry, sorted
func (r *RigidBody) ForceSources() []string {
	return slices.Sorted(maps.Keys(r.forces))
}

// NetForce sums every current entry
// Summation runs in source order so the result is stable across calls
func (r *RigidBody) NetForce() mgl32.Vec3 {
	var net mgl32.Vec3
	for _, src := range r.ForceSources() {
		net = net.Add(r.forces[src])
	}
	return net
}

// Clone returns a deep copy safe to use after the lock is released
func (r *RigidBody) Clone() RigidBody {
	c := *r
	c.forces = maps.Clone(r.forces)
	return c
}
