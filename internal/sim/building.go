package sim

import "github.com/rs/zerolog"

// Bounds is an axis-aligned box in building-local coordinates.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
	HeliportY  float64
}

// Building is the fire station: three modules with the heliport on top of
// the taller central one. It mirrors the maneuver signal of the vehicle
// onto the pad and the corner lights.
type Building struct {
	TotalWidth      float64
	Floors          int
	WindowsPerFloor int
	Color           [3]float32
	Origin          Vec3

	FloorHeight     float64
	Depth           float64
	CentralFloors   int
	ModuleWidth     float64
	SideModuleWidth float64
	SideModuleDepth float64

	state  Signal
	Pad    HeliportPad
	Lights [4]CornerLight

	log zerolog.Logger
}

func NewBuilding(totalWidth float64, floors, windowsPerFloor int, color [3]float32, log zerolog.Logger) *Building {
	b := &Building{
		TotalWidth:      totalWidth,
		Floors:          floors,
		WindowsPerFloor: windowsPerFloor,
		Color:           color,
		Origin:          Vec3{X: HeliportX, Y: BuildingSink, Z: HeliportZ},
		FloorHeight:     FloorHeight,
		Depth:           BuildingDepth,
		CentralFloors:   floors + 1,
		ModuleWidth:     totalWidth / 3,
		log:             log.With().Str("component", "building").Logger(),
	}
	b.SideModuleWidth = b.ModuleWidth * 0.75
	b.SideModuleDepth = b.Depth * 0.75
	return b
}

// CentralHeight is the roof height of the central module.
func (b *Building) CentralHeight() float64 {
	return float64(b.CentralFloors) * b.FloorHeight
}

// HeliportAltitude is where a parked vehicle rests.
func (b *Building) HeliportAltitude() float64 {
	return b.CentralHeight() + PadClearance
}

func (b *Building) ManeuverState() Signal { return b.state }

// SetManeuverState is idempotent; only a change is logged and propagated.
func (b *Building) SetManeuverState(s Signal) {
	if b.state == s {
		return
	}
	b.log.Info().Str("state", s.String()).Msg("Heliport state changed")
	b.state = s
	b.Pad.SetManeuverState(s)
	for i := range b.Lights {
		b.Lights[i].SetManeuverState(s)
	}
}

func (b *Building) Bounds() Bounds {
	h := b.CentralHeight()
	return Bounds{
		MinX: -b.TotalWidth / 2, MaxX: b.TotalWidth / 2,
		MinY: 0, MaxY: h,
		MinZ: -b.Depth / 2, MaxZ: b.Depth / 2,
		HeliportY: h,
	}
}

// ContainsPoint tests a building-local point against Bounds.
func (b *Building) ContainsPoint(x, y, z float64) bool {
	bb := b.Bounds()
	return x >= bb.MinX && x <= bb.MaxX &&
		y >= bb.MinY && y <= bb.MaxY &&
		z >= bb.MinZ && z <= bb.MaxZ
}

// Update advances the indicator clocks.
func (b *Building) Update(dt float64) {
	b.Pad.Update(dt)
	for i := range b.Lights {
		b.Lights[i].Update(dt)
	}
}
