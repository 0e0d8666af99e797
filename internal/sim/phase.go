package sim

// Phase is the vehicle's maneuver state. Exactly one is active at a time.
type Phase int

const (
	PhaseParked               Phase = iota
	PhaseClimbingFromHeliport       // autopilot climb to cruise altitude
	PhaseCruising                   // piloted flight
	PhaseApproachingHeliport        // autopilot: bleed speed, fly to pad
	PhaseDescendingToHeliport       // autopilot: drop onto the pad
	PhasePickingUpWater             // autopilot: descend over the lake
	PhaseOnLake                     // hovering at lake altitude, bucket in water
	PhaseTakingOffFromLake          // autopilot climb from the lake
	PhaseDroppingWater              // timed water release
)

func (p Phase) String() string {
	switch p {
	case PhaseParked:
		return "parked"
	case PhaseClimbingFromHeliport:
		return "climbing_from_heliport"
	case PhaseCruising:
		return "cruising"
	case PhaseApproachingHeliport:
		return "approaching_heliport"
	case PhaseDescendingToHeliport:
		return "descending_to_heliport"
	case PhasePickingUpWater:
		return "picking_up_water"
	case PhaseOnLake:
		return "on_lake"
	case PhaseTakingOffFromLake:
		return "taking_off_from_lake"
	case PhaseDroppingWater:
		return "dropping_water"
	}
	return "unknown"
}

// Autopilot reports whether piloted turn/accelerate input is suspended.
func (p Phase) Autopilot() bool {
	switch p {
	case PhaseClimbingFromHeliport, PhaseApproachingHeliport, PhaseDescendingToHeliport,
		PhasePickingUpWater, PhaseTakingOffFromLake, PhaseDroppingWater:
		return true
	}
	return false
}

// Airborne reports whether the rotors run at flight speed.
func (p Phase) Airborne() bool {
	switch p {
	case PhaseParked, PhasePickingUpWater, PhaseOnLake:
		return false
	}
	return true
}
