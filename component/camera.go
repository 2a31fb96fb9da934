package component

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/input"
	"github.com/lixenwraith/kristall/parameter"
)

// Perspective selects how the camera eye is derived from its target
type Perspective uint8

const (
	// ThirdPerson orbits the target at Distance
	ThirdPerson Perspective = iota
	// FirstPerson places the eye on the target looking along the camera angles
	FirstPerson
)

// CameraController adjusts camera angles and distance from buffered input
type CameraController interface {
	UpdatePerspective(c *Camera, dt time.Duration)
	HandleEvent(ev input.Event) bool
}

// Camera views the scene relative to a target Transform
// Target is a lookup handle; the camera does not own the target entity
type Camera struct {
	Perspective Perspective
	Target      engine.Handle[Transform]

	Distance   float32
	AngleHoriz float32 // around the y axis, radians
	AngleVert  float32 // elevation, radians

	Up          mgl32.Vec3
	Aspect      float32
	FovyDegrees float32
	ZNear       float32
	ZFar        float32

	Controller CameraController
}

// NewThirdPersonCamera orbits target with default projection settings
func NewThirdPersonCamera(target engine.Handle[Transform], ctrl CameraController) Camera {
	return Camera{
		Perspective: ThirdPerson,
		Target:      target,
		Distance:    parameter.CameraDistance,
		Up:          mgl32.Vec3{0, 1, 0},
		Aspect:      1,
		FovyDegrees: parameter.CameraFovyDegrees,
		ZNear:       parameter.CameraZNear,
		ZFar:        parameter.CameraZFar,
		Controller:  ctrl,
	}
}

// direction is the unit vector from eye toward target
func (c *Camera) direction() mgl32.Vec3 {
	h := float64(c.AngleHoriz)
	v := float64(c.AngleVert)
	return mgl32.Vec3{
		float32(math.Cos(h) * math.Cos(v)),
		float32(math.Sin(v)),
		float32(math.Sin(h) * math.Cos(v)),
	}
}

// up flips when the camera passes over the pole so the view never inverts
func (c *Camera) up() mgl32.Vec3 {
	if math.Cos(float64(c.AngleVert)) > 0 {
		return c.Up
	}
	return c.Up.Mul(-1)
}

// View returns the view matrix for a target at targetPos
func (c *Camera) View(targetPos mgl32.Vec3) mgl32.Mat4 {
	dir := c.direction()
	switch c.Perspective {
	case FirstPerson:
		return mgl32.LookAtV(targetPos, targetPos.Add(dir), c.up())
	default:
		eye := targetPos.Sub(dir.Mul(c.Distance))
		return mgl32.LookAtV(eye, targetPos, c.up())
	}
}

// Projection returns the perspective projection matrix
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovyDegrees), c.Aspect, c.ZNear, c.ZFar)
}

// ViewProjection reads the target position and returns projection * view
// Takes a shared lock on the target Transform
func (c *Camera) ViewProjection() (mgl32.Mat4, error) {
	if !c.Target.Valid() {
		return mgl32.Mat4{}, fmt.Errorf("camera target: %w", engine.ErrMissingComponent)
	}
	target, err := c.Target.Snapshot()
	if err != nil {
		return mgl32.Mat4{}, fmt.Errorf("camera target: %w", err)
	}
	return c.Projection().Mul4(c.View(target.Position)), nil
}

// Update applies the controller for one tick
func (c *Camera) Update(dt time.Duration) {
	if c.Controller != nil {
		c.Controller.UpdatePerspective(c, dt)
	}
	c.Distance = max(c.Distance, parameter.CameraClosestZoom)
}

// HandleEvent tracks the viewport aspect and forwards to the controller
// Resize is observed but never consumed so every camera sees it
func (c *Camera) HandleEvent(ev input.Event) bool {
	if ev.Kind == input.Resize && ev.Width > 0 && ev.Height > 0 {
		c.Aspect = float32(ev.Width) / float32(ev.Height)
	}
	return c.Controller != nil && c.Controller.HandleEvent(ev)
}
