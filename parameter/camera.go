package parameter

// Third person camera defaults
const (
	CameraDistance        float32 = 25
	CameraFovyDegrees     float32 = 45
	CameraZNear           float32 = 0.1
	CameraZFar            float32 = 100
	CameraClosestZoom     float32 = 5
	CameraKeySpeed        float32 = 0.001 // radians per millisecond
	CameraMouseSens       float64 = 0.0005
	CameraScrollSens      float64 = 0.05
	CameraScrollDecay     float64 = 0.05
	CameraFastScrollDecay float64 = 0.01
)
