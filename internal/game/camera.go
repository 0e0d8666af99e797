package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera looks from Eye at Target. Dolly moves both along the view
// direction; Orbit swings the eye around the target.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	FOV    float64 // degrees
}

// NewCamera frames the heliport from the south-west.
func NewCamera(fov float64) Camera {
	if fov <= 0 {
		fov = DefaultFOV
	}
	return Camera{
		Eye:    mgl32.Vec3{-25, 10, -25},
		Target: mgl32.Vec3{-15, 6, -15},
		FOV:    fov,
	}
}

func (c *Camera) Dolly(d float64) {
	dir := c.Target.Sub(c.Eye)
	if dir.Len() == 0 {
		return
	}
	step := dir.Normalize().Mul(float32(d))
	c.Eye = c.Eye.Add(step)
	c.Target = c.Target.Add(step)
}

func (c *Camera) Orbit(angle float64) {
	off := c.Eye.Sub(c.Target)
	s, co := math.Sincos(angle)
	x := float64(off.X())*co - float64(off.Z())*s
	z := float64(off.X())*s + float64(off.Z())*co
	c.Eye = c.Target.Add(mgl32.Vec3{float32(x), off.Y(), float32(z)})
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, mgl32.Vec3{0, 1, 0})
}

func (c Camera) Projection(fbW, fbH int) mgl32.Mat4 {
	aspect := float32(1)
	if fbH > 0 {
		aspect = float32(fbW) / float32(fbH)
	}
	return mgl32.Perspective(mgl32.DegToRad(float32(c.FOV)), aspect, NearPlane, FarPlane)
}
