package sim

// Heliport placement (world units). The building is drawn with its
// centre module under this point.
const (
	HeliportX      = -15.0
	HeliportZ      = -15.0
	HeliportRadius = 2.0
	BuildingSink   = -0.8 // building origin sits slightly below ground
)

// Building defaults.
const (
	FloorHeight         = 1.5
	BuildingDepth       = 4.0
	PadClearance        = 0.76 // pad surface above the central roof
	CruiseAboveHeliport = 7.0
)

// Lake.
const (
	LakeX      = -5.0
	LakeZ      = -5.0
	LakeRadius = 4.0
)

// Heli flight tuning. Per-tick values are applied once per update
// regardless of elapsed time.
const (
	ClimbPerTick        = 0.5
	HeliportDescentTick = 0.4
	LakeDescentTick     = 0.3
	LakeClimbTick       = 0.3
	LakeAltitude        = 4.3
	CruiseClimbRate     = 1.5   // units/s, time-scaled
	HorizontalScale     = 0.001 // ms -> s

	ApproachSpeedFloor = 0.5
	ApproachDecay      = 0.9
	ApproachStep       = 0.3
	ApproachArrive     = 0.5

	LakePickupSpeedTol = 0.05
	ParkedSpeedTol     = 0.01

	RotorRateFlying = 0.1  // rad/ms
	RotorRateIdle   = 0.02 // rad/ms
)

// Maneuver timing (ms).
const (
	SignalDuration = 3000.0
	DropDuration   = 2000.0
	DropletCadence = 50.0
	DropletBurst   = 3
	MaxDroplets    = 30
	FireHitRadius  = 1.5
)

// Heli body dimensions used to place the bucket and droplets.
const (
	BodyLength    = 4.0
	BodyRadius    = 0.7
	TailLength    = 3.0
	TailRadius    = 0.2
	MainRotorLen  = 3.5
	TailRotorLen  = 1.0
	BucketRadius  = 0.5
	BucketHeight  = 1.0
	BucketRopeLen = 3.0
)

// Pilot input deltas per sampled tick.
const (
	InputAccel = 0.01
	InputTurn  = 0.07
	InputPitch = 0.1
)

// Speed factor bounds (GUI slider range).
const (
	MinSpeedFactor = 0.1
	MaxSpeedFactor = 3.0
)

// Default update period of the simulation tick (ms).
const DefaultUpdatePeriod = 50.0
