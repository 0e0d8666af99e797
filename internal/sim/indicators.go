package sim

import "math"

const (
	blinkFrequency = 2.0 // Hz
	pulseFrequency = 2.0 // Hz
)

var (
	lightActiveColor   = [3]float32{1.0, 0.8, 0.2}
	lightInactiveColor = [3]float32{0.3, 0.3, 0.3}
)

// PadMarking is the symbol painted on the heliport surface.
type PadMarking int

const (
	MarkingH PadMarking = iota
	MarkingUp
	MarkingDown
)

// HeliportPad blinks between the "H" marking and a direction marking
// while a maneuver is signalled.
type HeliportPad struct {
	state Signal
	time  float64 // seconds
}

func (p *HeliportPad) SetManeuverState(s Signal) { p.state = s }
func (p *HeliportPad) State() Signal             { return p.state }
func (p *HeliportPad) Update(dt float64)         { p.time += dt * 0.001 }
func (p *HeliportPad) Time() float64             { return p.time }

// Blend is 0 while the plain marking shows and 1 while the direction
// marking shows.
func (p *HeliportPad) Blend() float64 {
	if p.state == SignalNormal {
		return 0
	}
	phase := math.Mod(p.time*blinkFrequency, 1)
	if phase < 0.5 {
		return 1
	}
	return 0
}

// Marking returns the symbol currently visible.
func (p *HeliportPad) Marking() PadMarking {
	if p.Blend() < 0.5 {
		return MarkingH
	}
	if p.state == SignalLanding {
		return MarkingDown
	}
	return MarkingUp
}

// CornerLight is one of the four amber lights around the pad.
type CornerLight struct {
	state Signal
	time  float64 // seconds
}

func (l *CornerLight) SetManeuverState(s Signal) { l.state = s }
func (l *CornerLight) State() Signal             { return l.state }
func (l *CornerLight) Update(dt float64)         { l.time += dt * 0.001 }

// Intensity in [0,1]. Takeoff pulses smoothly, landing double-flashes.
func (l *CornerLight) Intensity() float64 {
	switch l.state {
	case SignalTakeoff:
		return 0.5 + 0.5*math.Sin(2*math.Pi*pulseFrequency*l.time)
	case SignalLanding:
		phase := math.Mod(l.time*pulseFrequency, 1)
		if phase < 0.15 || (phase >= 0.3 && phase < 0.45) {
			return 1
		}
		return 0
	}
	return 0
}

func (l *CornerLight) Color() [3]float32 {
	t := float32(l.Intensity())
	var c [3]float32
	for i := range c {
		c[i] = lightInactiveColor[i] + (lightActiveColor[i]-lightInactiveColor[i])*t
	}
	return c
}
