package sim

import "math"

type Lake struct {
	X, Z   float64
	Radius float64
}

func DefaultLake() Lake {
	return Lake{X: LakeX, Z: LakeZ, Radius: LakeRadius}
}

// Contains reports whether (x, z) lies over the water surface.
func (l Lake) Contains(x, z float64) bool {
	return math.Hypot(x-l.X, z-l.Z) <= l.Radius
}
