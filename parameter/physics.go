package parameter

// Named force sources committed into a RigidBody force table
const (
	ForceGravity = "gravity"
	ForceInput   = "input"
)

// GravitationalConstant scales pairwise attraction, tuned for scene units rather than SI
const GravitationalConstant float32 = 0.000000000067

// Transform defaults
const (
	// DefaultAngularAcceleration is the idle spin given to spinning cube bodies on every axis
	DefaultAngularAcceleration float32 = 0.1
)
