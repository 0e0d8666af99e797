package sim

import "math"

// FlameCount is the number of flame tongues drawn per fire.
const FlameCount = 6

type Fire struct {
	X, Z   float64
	Scale  float64
	Active bool
}

func NewFire(x, z, scale float64) *Fire {
	return &Fire{X: x, Z: z, Scale: scale, Active: true}
}

// Extinguish deactivates the fire. There is no way back short of building
// a new scene.
func (f *Fire) Extinguish() {
	f.Active = false
}

// InRange is a flat horizontal test; altitude is ignored.
func (f *Fire) InRange(x, z, radius float64) bool {
	return math.Hypot(x-f.X, z-f.Z) <= radius
}

// FlameHeight returns the animated height of flame i at t seconds.
func FlameHeight(i int, t float64) float64 {
	return 2 + 0.5*math.Abs(math.Sin(float64(i)+t*2.0))
}

type FireSpec struct {
	X, Z, Scale float64
}

// DefaultFires is the starting fire list of the scene.
var DefaultFires = []FireSpec{
	{X: -25, Z: -5, Scale: 1.2},
	{X: -15, Z: 0, Scale: 0.2},
	{X: -20, Z: 2, Scale: 3},
}

// FireField is the live list of fire targets, shared by reference with
// the vehicle that fights them.
type FireField struct {
	Fires []*Fire
}

func NewFireField(specs []FireSpec) *FireField {
	ff := &FireField{Fires: make([]*Fire, 0, len(specs))}
	for _, s := range specs {
		ff.Fires = append(ff.Fires, NewFire(s.X, s.Z, s.Scale))
	}
	return ff
}

func (ff *FireField) ActiveCount() int {
	n := 0
	for _, f := range ff.Fires {
		if f.Active {
			n++
		}
	}
	return n
}

// ExtinguishWithin deactivates every active fire within radius of (x, z)
// and returns their indices.
func (ff *FireField) ExtinguishWithin(x, z, radius float64) []int {
	if ff == nil {
		return nil
	}
	var hit []int
	for i, f := range ff.Fires {
		if f.Active && f.InRange(x, z, radius) {
			f.Extinguish()
			hit = append(hit, i)
		}
	}
	return hit
}
