package game

// Window defaults, used when the config leaves a field at zero.
const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Fire Station"
)

// Camera.
const (
	DefaultFOV      = 75.0 // degrees
	NearPlane       = 0.1
	FarPlane        = 2000.0
	CameraDollyRate = 15.0 // world units per second
	CameraOrbitRate = 1.2  // rad/s
)

// Loop.
const (
	MaxFrameDelta   = 0.1 // seconds; clamps long stalls
	MaxTicksPerLoop = 8
)

var clearColor = [3]float32{0.55, 0.75, 0.95}
