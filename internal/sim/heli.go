package sim

import (
	"math"
)

// HeliConfig fixes the places and altitudes a vehicle flies between.
type HeliConfig struct {
	HeliportX, HeliportZ float64
	PlatformAltitude     float64
	CruiseAltitude       float64
	Lake                 Lake
	MaxDroplets          int
	Seed                 uint64
}

// DefaultHeliConfig derives the altitudes from the building it parks on.
func DefaultHeliConfig(b *Building) HeliConfig {
	platform := b.HeliportAltitude()
	return HeliConfig{
		HeliportX:        HeliportX,
		HeliportZ:        HeliportZ,
		PlatformAltitude: platform,
		CruiseAltitude:   platform + CruiseAboveHeliport,
		Lake:             DefaultLake(),
		MaxDroplets:      MaxDroplets,
		Seed:             1,
	}
}

// Heli is the firefighting helicopter and its maneuver state machine.
type Heli struct {
	cfg HeliConfig

	Pos      Vec3
	Yaw      float64
	Pitch    float64
	Speed    float64
	Velocity Vec3

	MainRotor float64
	TailRotor float64

	Phase          Phase
	GearDeployed   bool
	BucketDeployed bool
	BucketFull     bool

	// SpeedFactor scales pilot turn/accelerate input.
	SpeedFactor float64

	beacon     beacon
	dropTimer  float64
	dropletAcc float64
	Droplets   *DropletPool
	clock      float64

	sink  MoveSignalSink
	fires *FireField
	bus   *EventBus
}

// NewHeli creates a vehicle parked on the heliport. sink, fires and bus
// may be nil.
func NewHeli(cfg HeliConfig, sink MoveSignalSink, fires *FireField, bus *EventBus) *Heli {
	if cfg.MaxDroplets <= 0 {
		cfg.MaxDroplets = MaxDroplets
	}
	h := &Heli{
		cfg:         cfg,
		SpeedFactor: 1,
		Droplets:    NewDropletPool(cfg.MaxDroplets, cfg.Seed),
		sink:        sink,
		fires:       fires,
		bus:         bus,
	}
	h.Reset()
	return h
}

func (h *Heli) Config() HeliConfig { return h.cfg }

// Signal returns the maneuver signal currently broadcast.
func (h *Heli) Signal() Signal { return h.beacon.signal }

// DropProgress is 0..1 through an active water drop, 0 otherwise.
func (h *Heli) DropProgress() float64 {
	if h.Phase != PhaseDroppingWater {
		return 0
	}
	return clampF(h.dropTimer/DropDuration, 0, 1)
}

func (h *Heli) Flying() bool { return h.Phase.Airborne() }

func (h *Heli) OverHeliport() bool {
	return h.Pos.HorizDist(h.cfg.HeliportX, h.cfg.HeliportZ) <= HeliportRadius
}

func (h *Heli) OverLake() bool {
	return h.cfg.Lake.Contains(h.Pos.X, h.Pos.Z)
}

// BucketBottom is where droplets leave the bucket.
func (h *Heli) BucketBottom() Vec3 {
	return Vec3{
		X: h.Pos.X,
		Y: h.Pos.Y - BodyRadius - BucketRopeLen - BucketHeight,
		Z: h.Pos.Z,
	}
}

// Reset parks the vehicle on the heliport and clears every maneuver.
// A vehicle already at rest on the pad is left alone and nothing is
// emitted, so a held reset key does not repeat the event every tick.
func (h *Heli) Reset() {
	if h.atRest() {
		return
	}
	h.Pos = Vec3{X: h.cfg.HeliportX, Y: h.cfg.PlatformAltitude, Z: h.cfg.HeliportZ}
	h.Yaw = 0
	h.Pitch = 0
	h.Speed = 0
	h.Velocity = Vec3{}
	h.Phase = PhaseParked
	h.GearDeployed = true
	h.BucketDeployed = false
	h.BucketFull = false
	h.dropTimer = 0
	h.dropletAcc = 0
	h.Droplets.Clear()
	h.beacon.clear()
	h.notify(SignalNormal)
	h.emit(EventReset, 0)
}

// atRest reports whether the vehicle is already in the state Reset produces.
func (h *Heli) atRest() bool {
	home := Vec3{X: h.cfg.HeliportX, Y: h.cfg.PlatformAltitude, Z: h.cfg.HeliportZ}
	return h.Phase == PhaseParked && h.Pos == home &&
		h.Yaw == 0 && h.Pitch == 0 && h.Speed == 0 && h.Velocity == Vec3{} &&
		h.GearDeployed && !h.BucketDeployed && !h.BucketFull &&
		h.beacon.signal == SignalNormal && h.Droplets.Len() == 0
}

// controllable reports whether pilot input is accepted.
func (h *Heli) controllable() bool {
	if h.Phase.Autopilot() || h.Phase == PhaseOnLake {
		return false
	}
	if h.Phase == PhaseParked && h.OverHeliport() && math.Abs(h.Speed) < ParkedSpeedTol {
		return false
	}
	return true
}

func (h *Heli) Turn(v float64) bool {
	if !h.controllable() {
		return false
	}
	h.Yaw += v * h.SpeedFactor
	h.updateVelocityDirection()
	return true
}

func (h *Heli) Accelerate(v float64) bool {
	if !h.controllable() {
		return false
	}
	h.Speed += v * h.SpeedFactor
	h.updateVelocityDirection()
	return true
}

// Tilt sets the cosmetic nose pitch.
func (h *Heli) Tilt(p float64) bool {
	if !h.controllable() {
		return false
	}
	h.Pitch = p
	return true
}

func (h *Heli) updateVelocityDirection() {
	fwd := h.Yaw + math.Pi/2
	h.Velocity = Vec3{X: math.Sin(fwd), Z: math.Cos(fwd)}
}

// TakeOff leaves the heliport or lifts off the lake. No-op otherwise.
func (h *Heli) TakeOff() bool {
	switch h.Phase {
	case PhaseParked:
		if h.OverHeliport() {
			h.startSignal(SignalTakeoff)
		}
		h.GearDeployed = false
		h.setPhase(PhaseClimbingFromHeliport)
		return true
	case PhaseOnLake:
		if !h.BucketFull {
			h.fillBucket()
		}
		h.GearDeployed = false
		h.setPhase(PhaseTakingOffFromLake)
		return true
	}
	return false
}

// Land starts water pickup over the lake, or the autopilot back to the
// heliport elsewhere. Only valid while cruising.
func (h *Heli) Land() bool {
	if h.Phase != PhaseCruising {
		return false
	}
	if h.OverLake() && !h.BucketFull && math.Abs(h.Speed) < LakePickupSpeedTol {
		h.GearDeployed = true
		h.BucketDeployed = true
		h.setPhase(PhasePickingUpWater)
		return true
	}
	if !h.OverLake() && !h.BucketFull {
		h.setPhase(PhaseApproachingHeliport)
		return true
	}
	return false
}

// DropWater opens a full, deployed bucket. Hits are resolved when the
// drop finishes.
func (h *Heli) DropWater() bool {
	if h.Phase != PhaseCruising || !h.BucketDeployed || !h.BucketFull {
		return false
	}
	h.dropTimer = 0
	h.dropletAcc = 0
	h.setPhase(PhaseDroppingWater)
	h.emit(EventDropStarted, 0)
	return true
}

// Update advances the vehicle by dt milliseconds.
func (h *Heli) Update(dt float64) {
	h.clock += dt
	h.spinRotors(dt)

	if h.beacon.advance(dt, SignalDuration) {
		h.notify(SignalNormal)
		h.emit(EventSignalChanged, 0)
	}

	switch h.Phase {
	case PhaseClimbingFromHeliport:
		h.Pos.Y = approach(h.Pos.Y, h.cfg.CruiseAltitude, ClimbPerTick)
		if h.Pos.Y >= h.cfg.CruiseAltitude {
			h.Pos.Y = h.cfg.CruiseAltitude
			h.BucketDeployed = true
			h.Speed = 0
			h.Velocity = Vec3{}
			h.setPhase(PhaseCruising)
		}
	case PhaseCruising:
		h.cruise(dt)
	case PhaseApproachingHeliport:
		h.approachHeliport()
	case PhaseDescendingToHeliport:
		h.Pos.Y = approach(h.Pos.Y, h.cfg.PlatformAltitude, HeliportDescentTick)
		if h.Pos.Y <= h.cfg.PlatformAltitude {
			h.Reset()
		}
	case PhasePickingUpWater:
		h.Pos.Y = approach(h.Pos.Y, LakeAltitude, LakeDescentTick)
		if h.Pos.Y <= LakeAltitude {
			h.fillBucket()
			h.setPhase(PhaseOnLake)
		}
	case PhaseTakingOffFromLake:
		h.Pos.Y = approach(h.Pos.Y, h.cfg.CruiseAltitude, LakeClimbTick)
		if h.Pos.Y >= h.cfg.CruiseAltitude {
			h.setPhase(PhaseCruising)
		}
	case PhaseDroppingWater:
		h.dropping(dt)
	}

	h.Droplets.Update(dt)
}

func (h *Heli) spinRotors(dt float64) {
	rate := RotorRateIdle
	if h.Flying() {
		rate = RotorRateFlying
	}
	h.MainRotor = wrapAngle(h.MainRotor + rate*dt)
	h.TailRotor = wrapAngle(h.TailRotor + rate*2*dt)
}

func (h *Heli) cruise(dt float64) {
	step := h.Speed * dt * HorizontalScale
	h.Pos.X += h.Velocity.X * step
	h.Pos.Z += h.Velocity.Z * step

	if h.Pos.Y < h.cfg.CruiseAltitude {
		h.Pos.Y += CruiseClimbRate * dt * HorizontalScale
	}
	if h.Pos.Y >= h.cfg.CruiseAltitude {
		h.Pos.Y = h.cfg.CruiseAltitude
		h.BucketDeployed = true
	}
}

func (h *Heli) approachHeliport() {
	if math.Abs(h.Speed) > ApproachSpeedFloor {
		h.Speed *= ApproachDecay
		return
	}
	h.Speed = 0
	h.Velocity = Vec3{}

	dx := h.cfg.HeliportX - h.Pos.X
	dz := h.cfg.HeliportZ - h.Pos.Z
	dist := math.Hypot(dx, dz)
	if dist > ApproachArrive {
		step := math.Min(ApproachStep, dist)
		h.Pos.X += dx / dist * step
		h.Pos.Z += dz / dist * step
		return
	}

	h.startSignal(SignalLanding)
	h.BucketDeployed = false
	h.setPhase(PhaseDescendingToHeliport)
}

func (h *Heli) dropping(dt float64) {
	h.dropTimer += dt
	h.dropletAcc += dt
	if h.dropletAcc >= DropletCadence {
		h.dropletAcc = math.Mod(h.dropletAcc, DropletCadence)
		h.Droplets.SpawnBurst(h.BucketBottom(), DropletBurst)
	}
	if h.dropTimer < DropDuration {
		return
	}

	h.dropTimer = 0
	h.dropletAcc = 0
	h.BucketFull = false
	hits := h.fires.ExtinguishWithin(h.Pos.X, h.Pos.Z, FireHitRadius)
	for _, i := range hits {
		h.emit(EventFireExtinguished, i)
	}
	h.emit(EventDropFinished, len(hits))
	h.setPhase(PhaseCruising)
}

func (h *Heli) fillBucket() {
	h.BucketFull = true
	h.emit(EventBucketFilled, 0)
}

func (h *Heli) setPhase(p Phase) {
	if h.Phase == p {
		return
	}
	h.Phase = p
	h.emit(EventPhaseChanged, 0)
}

func (h *Heli) startSignal(s Signal) {
	h.beacon.start(s)
	h.notify(s)
	h.emit(EventSignalChanged, 0)
}

func (h *Heli) notify(s Signal) {
	if h.sink != nil {
		h.sink.SetManeuverState(s)
	}
}

func (h *Heli) emit(t EventType, data int) {
	h.bus.Emit(Event{
		Type:   t,
		At:     h.clock,
		Pos:    h.Pos,
		Phase:  h.Phase,
		Signal: h.beacon.signal,
		Data:   data,
	})
}
