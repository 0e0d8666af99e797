package sim

import "math"

const (
	dropletMoveScale = 0.05
	dropletLifeDecay = 0.0005
	dropletGravity   = 0.0001
)

type Droplet struct {
	Pos     Vec3
	Vel     Vec3
	Life    float64 // 1 at spawn, removed at 0
	Scale   float64
	Gravity float64
}

// DropletPool holds the live water particles of one vehicle. Spawning is
// refused once Max is reached.
type DropletPool struct {
	Max int
	P   []Droplet
	rng *Rand
}

func NewDropletPool(max int, seed uint64) *DropletPool {
	if max <= 0 {
		max = MaxDroplets
	}
	return &DropletPool{
		Max: max,
		P:   make([]Droplet, 0, max),
		rng: NewRand(seed),
	}
}

func (dp *DropletPool) Clear() {
	dp.P = dp.P[:0]
}

func (dp *DropletPool) Len() int { return len(dp.P) }

// Add appends d unless the pool is full.
func (dp *DropletPool) Add(d Droplet) bool {
	if len(dp.P) >= dp.Max {
		return false
	}
	dp.P = append(dp.P, d)
	return true
}

// SpawnBurst releases up to n droplets in a small ring under origin.
// Returns how many were accepted.
func (dp *DropletPool) SpawnBurst(origin Vec3, n int) int {
	r := dp.rng
	added := 0
	for loopIdx := 0; loopIdx < n; loopIdx++ {
		ang := r.RangeF(0, math.Pi*2)
		dist := r.RangeF(0, 0.3)
		d := Droplet{
			Pos: Vec3{
				X: origin.X + math.Cos(ang)*dist,
				Y: origin.Y - 0.2,
				Z: origin.Z + math.Sin(ang)*dist,
			},
			Vel: Vec3{
				X: math.Cos(ang)*0.01 + r.RangeF(-0.0025, 0.0025),
				Y: -0.02 - r.RangeF(0, 0.01),
				Z: math.Sin(ang)*0.01 + r.RangeF(-0.0025, 0.0025),
			},
			Life:    1.0,
			Scale:   r.RangeF(0.5, 1.3),
			Gravity: dropletGravity,
		}
		if !dp.Add(d) {
			break
		}
		added++
	}
	return added
}

// Update moves and ages droplets, removing those that expire or reach the
// ground in the same pass.
func (dp *DropletPool) Update(dt float64) {
	if dt <= 0 {
		return
	}
	for i := 0; i < len(dp.P); {
		d := &dp.P[i]
		d.Pos = d.Pos.Add(d.Vel.Scale(dt * dropletMoveScale))
		d.Vel.Y -= d.Gravity * dt
		d.Life -= dt * dropletLifeDecay
		if d.Life <= 0 || d.Pos.Y <= 0 {
			dp.P[i] = dp.P[len(dp.P)-1]
			dp.P = dp.P[:len(dp.P)-1]
			continue
		}
		i++
	}
}
