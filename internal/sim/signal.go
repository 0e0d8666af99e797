package sim

// Signal is the tri-valued maneuver state broadcast from the vehicle to
// the heliport visuals.
type Signal int

const (
	SignalNormal Signal = iota
	SignalTakeoff
	SignalLanding
)

func (s Signal) String() string {
	switch s {
	case SignalTakeoff:
		return "takeoff"
	case SignalLanding:
		return "landing"
	}
	return "normal"
}

// MoveSignalSink receives maneuver state pushes from a vehicle.
type MoveSignalSink interface {
	SetManeuverState(s Signal)
}

// beacon is the cosmetic takeoff/landing signal carried by the vehicle.
// It reverts itself to normal after SignalDuration of ticked time.
type beacon struct {
	signal  Signal
	elapsed float64
}

func (b *beacon) start(s Signal) {
	b.signal = s
	b.elapsed = 0
}

// advance returns true when the signal expired during this step.
func (b *beacon) advance(dt, duration float64) bool {
	if b.signal == SignalNormal {
		return false
	}
	b.elapsed += dt
	if b.elapsed >= duration {
		b.signal = SignalNormal
		b.elapsed = 0
		return true
	}
	return false
}

func (b *beacon) clear() {
	b.signal = SignalNormal
	b.elapsed = 0
}
