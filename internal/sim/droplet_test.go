package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropletPool_RefusesWhenFull(t *testing.T) {
	dp := NewDropletPool(4, 7)

	assert.Equal(t, 3, dp.SpawnBurst(Vec3{Y: 10}, 3))
	assert.Equal(t, 1, dp.SpawnBurst(Vec3{Y: 10}, 3))
	assert.Equal(t, 0, dp.SpawnBurst(Vec3{Y: 10}, 3))
	assert.False(t, dp.Add(Droplet{Life: 1}))
	assert.Equal(t, 4, dp.Len())
}

func TestDropletPool_SpawnShape(t *testing.T) {
	dp := NewDropletPool(30, 3)
	origin := Vec3{X: 2, Y: 10, Z: -1}
	require.Equal(t, 30, dp.SpawnBurst(origin, 30))

	for _, d := range dp.P {
		assert.InDelta(t, 9.8, d.Pos.Y, 1e-9)
		assert.LessOrEqual(t, d.Pos.HorizDist(origin.X, origin.Z), 0.3+1e-9)
		assert.Less(t, d.Vel.Y, -0.02+1e-12)
		assert.GreaterOrEqual(t, d.Vel.Y, -0.03)
		assert.GreaterOrEqual(t, d.Scale, 0.5)
		assert.Less(t, d.Scale, 1.3)
		assert.Equal(t, 1.0, d.Life)
	}
}

func TestDropletPool_UpdateRemovesExpiredAndGrounded(t *testing.T) {
	dp := NewDropletPool(10, 1)
	dp.Add(Droplet{Pos: Vec3{Y: 100}, Life: 0.01})
	dp.Add(Droplet{Pos: Vec3{Y: 0.01}, Vel: Vec3{Y: -1}, Life: 1})
	dp.Add(Droplet{Pos: Vec3{Y: 100}, Life: 1})

	dp.Update(50)

	require.Equal(t, 1, dp.Len())
	assert.InDelta(t, 0.975, dp.P[0].Life, 1e-12)
}

func TestDropletPool_ZeroDtIsNoop(t *testing.T) {
	dp := NewDropletPool(10, 1)
	dp.Add(Droplet{Pos: Vec3{Y: 1}, Vel: Vec3{Y: -1}, Life: 1, Gravity: dropletGravity})
	dp.Update(0)
	assert.Equal(t, Vec3{Y: 1}, dp.P[0].Pos)
}

func TestDropletPool_Falls(t *testing.T) {
	dp := NewDropletPool(10, 1)
	dp.Add(Droplet{Pos: Vec3{Y: 5}, Vel: Vec3{Y: -0.02}, Life: 1, Gravity: dropletGravity})
	dp.Update(50)
	// pos moves by the old velocity, then gravity applies
	assert.InDelta(t, 5-0.02*50*dropletMoveScale, dp.P[0].Pos.Y, 1e-12)
	assert.InDelta(t, -0.02-dropletGravity*50, dp.P[0].Vel.Y, 1e-12)
}
