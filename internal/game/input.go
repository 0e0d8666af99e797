package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"firesim/internal/sim"
)

var simKeys = map[sim.Key]glfw.Key{
	sim.KeyW: glfw.KeyW,
	sim.KeyA: glfw.KeyA,
	sim.KeyS: glfw.KeyS,
	sim.KeyD: glfw.KeyD,
	sim.KeyP: glfw.KeyP,
	sim.KeyL: glfw.KeyL,
	sim.KeyR: glfw.KeyR,
	sim.KeyO: glfw.KeyO,
}

// Input polls the window keyboard. It satisfies sim.KeySource.
type Input struct {
	window   *glfw.Window
	prevKeys map[glfw.Key]bool
}

func NewInput(window *glfw.Window) *Input {
	return &Input{
		window:   window,
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) IsHeld(k sim.Key) bool {
	key, ok := simKeys[k]
	if !ok {
		return false
	}
	return in.window.GetKey(key) == glfw.Press
}

// JustPressed reports a press edge for keys the scene does not own
// (mute, speed factor).
func (in *Input) JustPressed(key glfw.Key) bool {
	down := in.window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// UpdateCamera handles C/Z dolly and arrow-key orbit.
func UpdateCamera(cam *Camera, in *Input, dt float64) {
	w := in.window
	if w.GetKey(glfw.KeyC) == glfw.Press {
		cam.Dolly(-CameraDollyRate * dt)
	}
	if w.GetKey(glfw.KeyZ) == glfw.Press {
		cam.Dolly(CameraDollyRate * dt)
	}
	if w.GetKey(glfw.KeyLeft) == glfw.Press {
		cam.Orbit(CameraOrbitRate * dt)
	}
	if w.GetKey(glfw.KeyRight) == glfw.Press {
		cam.Orbit(-CameraOrbitRate * dt)
	}
}
