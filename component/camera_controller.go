package component

import (
	"math"
	"time"

	"github.com/lixenwraith/kristall/input"
	"github.com/lixenwraith/kristall/parameter"
)

// KeyArrowCameraController orbits with arrow keys and zooms with Space/LShift
type KeyArrowCameraController struct {
	Speed float32 // radians or distance units per millisecond

	left, right     bool
	up, down        bool
	zoomIn, zoomOut bool
}

func NewKeyArrowCameraController() *KeyArrowCameraController {
	return &KeyArrowCameraController{Speed: parameter.CameraKeySpeed}
}

func (k *KeyArrowCameraController) UpdatePerspective(c *Camera, dt time.Duration) {
	step := k.Speed * float32(dt.Milliseconds())

	if k.left {
		c.AngleHoriz -= step
	} else if k.right {
		c.AngleHoriz += step
	}

	if k.up {
		c.AngleVert -= step
	} else if k.down {
		c.AngleVert += step
	}

	if k.zoomIn {
		c.Distance -= step
	} else if k.zoomOut {
		c.Distance += step
	}
}

func (k *KeyArrowCameraController) HandleEvent(ev input.Event) bool {
	if !ev.IsKey() {
		return false
	}
	pressed := ev.Kind == input.KeyPress

	switch ev.Key {
	case input.KeyLeft:
		k.left = pressed
	case input.KeyRight:
		k.right = pressed
	case input.KeyUp:
		k.up = pressed
	case input.KeyDown:
		k.down = pressed
	case input.KeySpace:
		k.zoomIn = pressed
	case input.KeyLShift:
		k.zoomOut = pressed
	default:
		return false
	}
	return true
}

// MouseCameraController orbits with mouse motion and zooms with a decaying scroll velocity
type MouseCameraController struct {
	MouseSensitivity  float64
	ScrollSensitivity float64
	FastScroll        bool

	moveX, moveY float64
	scrollVel    float64
}

func NewMouseCameraController(sensitivity float64, fastScroll bool) *MouseCameraController {
	return &MouseCameraController{
		MouseSensitivity:  sensitivity,
		ScrollSensitivity: parameter.CameraScrollSens,
		FastScroll:        fastScroll,
	}
}

// scrollEpsilon stops the zoom once the decayed velocity is negligible
const scrollEpsilon = 1e-3

func (m *MouseCameraController) UpdatePerspective(c *Camera, dt time.Duration) {
	ms := float64(dt.Milliseconds())

	c.AngleHoriz += float32(m.moveX * m.MouseSensitivity * ms)
	c.AngleVert -= float32(m.moveY * m.MouseSensitivity * ms)
	m.moveX, m.moveY = 0, 0

	if math.Abs(m.scrollVel) > scrollEpsilon {
		// Scrolling up zooms in
		c.Distance -= float32(m.scrollVel * m.ScrollSensitivity * ms)

		decay := parameter.CameraScrollDecay
		if m.FastScroll {
			decay = parameter.CameraFastScrollDecay
		}
		m.scrollVel -= m.scrollVel * min(decay*ms, 1)
	} else {
		m.scrollVel = 0
	}
}

func (m *MouseCameraController) HandleEvent(ev input.Event) bool {
	switch ev.Kind {
	case input.MouseMotion:
		m.moveX += ev.DX
		m.moveY += ev.DY
		return true
	case input.MouseScroll:
		m.scrollVel += ev.Scroll
		return true
	case input.Focus:
		if !ev.Focused {
			m.moveX, m.moveY, m.scrollVel = 0, 0, 0
		}
	}
	return false
}
