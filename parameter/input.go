package parameter

import "time"

// Entity controller defaults
const (
	// ControllerForce is the WASD force magnitude for force driven controllers
	ControllerForce float32 = 10

	// ControllerVelocity is the WASD speed for velocity driven controllers
	ControllerVelocity float32 = 4

	// KeyHoldTimeout releases a key not repeated within this window
	// Terminals report presses only, the latch synthesizes the release
	KeyHoldTimeout = 150 * time.Millisecond
)
