package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type heldKeys map[Key]bool

func (k heldKeys) IsHeld(key Key) bool { return k[key] }

func newTestScene() *Scene {
	return NewScene(DefaultSceneConfig(), zerolog.Nop())
}

// flyScene takes off and ticks until cruising, returning the next tick time.
func flyScene(t *testing.T, s *Scene) float64 {
	t.Helper()
	now := 0.0
	s.Tick(now, heldKeys{KeyP: true})
	for s.Heli.Phase != PhaseCruising {
		now += tick
		s.Tick(now, nil)
		require.Less(t, now, 10000.0)
	}
	return now + tick
}

func TestScene_FirstTickSetsBaseline(t *testing.T) {
	s := newTestScene()
	s.Tick(123456, nil)
	assert.Zero(t, s.Elapsed())
	assert.Zero(t, s.Heli.MainRotor)

	s.Tick(123506, nil)
	assert.Equal(t, 50.0, s.Elapsed())
}

func TestScene_InputAppliesAfterUpdate(t *testing.T) {
	s := newTestScene()
	platform := s.Heli.Config().PlatformAltitude

	s.Tick(0, heldKeys{KeyP: true})
	assert.Equal(t, PhaseClimbingFromHeliport, s.Heli.Phase)
	assert.Equal(t, platform, s.Heli.Pos.Y, "no climb in the tick that took the input")

	s.Tick(50, nil)
	assert.InDelta(t, platform+ClimbPerTick, s.Heli.Pos.Y, 1e-9)
}

func TestScene_TakeOffLightsTheHeliport(t *testing.T) {
	s := newTestScene()
	s.Tick(0, heldKeys{KeyP: true})
	assert.Equal(t, SignalTakeoff, s.Building.ManeuverState())

	now := 0.0
	for loopIdx := 0; loopIdx < int(SignalDuration/tick); loopIdx++ {
		now += tick
		s.Tick(now, nil)
	}
	assert.Equal(t, SignalNormal, s.Building.ManeuverState())
}

func TestScene_PilotKeys(t *testing.T) {
	s := newTestScene()
	now := flyScene(t, s)
	h := s.Heli

	s.Tick(now, heldKeys{KeyW: true, KeyA: true})
	assert.InDelta(t, InputAccel, h.Speed, 1e-12)
	assert.InDelta(t, InputTurn, h.Yaw, 1e-12)
	assert.Equal(t, -InputPitch, h.Pitch)

	s.Tick(now+tick, heldKeys{KeyS: true, KeyD: true})
	assert.InDelta(t, 0, h.Speed, 1e-12)
	assert.InDelta(t, 0, h.Yaw, 1e-12)
	assert.Equal(t, InputPitch, h.Pitch)

	s.Tick(now+2*tick, nil)
	assert.Zero(t, h.Pitch)
}

func TestScene_ResetKey(t *testing.T) {
	s := newTestScene()
	now := flyScene(t, s)
	s.Tick(now, heldKeys{KeyR: true})
	assert.Equal(t, PhaseParked, s.Heli.Phase)
	assert.Equal(t, SignalNormal, s.Building.ManeuverState())
}

func TestScene_HeldResetKeyEmitsOnce(t *testing.T) {
	s := newTestScene()
	resets := 0
	s.Bus.Subscribe(EventReset, func(Event) { resets++ })

	now := 0.0
	for loopIdx := 0; loopIdx < 40; loopIdx++ {
		s.Tick(now, heldKeys{KeyR: true})
		now += tick
	}
	assert.Zero(t, resets, "already parked")

	s = newTestScene()
	s.Bus.Subscribe(EventReset, func(Event) { resets++ })
	now = flyScene(t, s)
	for loopIdx := 0; loopIdx < 40; loopIdx++ {
		s.Tick(now, heldKeys{KeyR: true})
		now += tick
	}
	assert.Equal(t, 1, resets)
	assert.Equal(t, PhaseParked, s.Heli.Phase)
}

func TestScene_DropKeyPutsOutFire(t *testing.T) {
	s := newTestScene()
	now := flyScene(t, s)
	target := s.Fires.Fires[1]
	s.Heli.Pos.X, s.Heli.Pos.Z = target.X, target.Z+0.5
	s.Heli.BucketFull = true

	s.Tick(now, heldKeys{KeyO: true})
	require.Equal(t, PhaseDroppingWater, s.Heli.Phase)
	for s.Heli.Phase == PhaseDroppingWater {
		now += tick
		s.Tick(now, nil)
	}
	assert.False(t, target.Active)
	assert.Equal(t, 2, s.Fires.ActiveCount())
}

func TestScene_SpeedFactorClamped(t *testing.T) {
	s := newTestScene()
	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{10, MaxSpeedFactor},
		{0.01, MinSpeedFactor},
		{2, 2},
	}
	for _, tt := range tests {
		s.SetSpeedFactor(tt.in)
		assert.Equal(t, tt.want, s.SpeedFactor())
		assert.Equal(t, tt.want, s.Heli.SpeedFactor)
	}
}

type fakeMesh struct {
	kind   string
	params [3]float64
}

type fakeFactory struct{}

func (fakeFactory) Cylinder(base, top, height float64, slices int) Mesh {
	return &fakeMesh{kind: "cylinder", params: [3]float64{base, top, height}}
}

func (fakeFactory) Sphere(radius float64, slices, stacks int, inverted bool) Mesh {
	return &fakeMesh{kind: "sphere", params: [3]float64{radius}}
}

func (fakeFactory) Pyramid(base, height float64, sides int) Mesh {
	return &fakeMesh{kind: "pyramid", params: [3]float64{base, height, float64(sides)}}
}

func (fakeFactory) Box() Mesh { return &fakeMesh{kind: "box"} }

type drawCall struct {
	mesh  Mesh
	model mgl32.Mat4
	mat   Material
}

type recordingRenderer struct {
	calls []drawCall
}

func (r *recordingRenderer) Draw(m Mesh, model mgl32.Mat4, mat Material) {
	r.calls = append(r.calls, drawCall{m, model, mat})
}

func (r *recordingRenderer) count(m Mesh) int {
	n := 0
	for _, c := range r.calls {
		if c.mesh == m {
			n++
		}
	}
	return n
}

func TestScene_DrawBeforeBuildIsNoop(t *testing.T) {
	s := newTestScene()
	r := &recordingRenderer{}
	s.Draw(r)
	assert.Empty(t, r.calls)
}

func TestScene_DrawOnlyActiveFires(t *testing.T) {
	s := newTestScene()
	s.BuildMeshes(fakeFactory{})

	r := &recordingRenderer{}
	s.Draw(r)
	assert.Equal(t, 3*FlameCount, r.count(s.meshes.flame))

	s.Fires.Fires[0].Extinguish()
	r = &recordingRenderer{}
	s.Draw(r)
	assert.Equal(t, 2*FlameCount, r.count(s.meshes.flame))
}

func TestScene_DrawHeliParts(t *testing.T) {
	s := newTestScene()
	s.BuildMeshes(fakeFactory{})

	r := &recordingRenderer{}
	s.Draw(r)
	assert.Equal(t, 4, r.count(s.meshes.blade))
	assert.Equal(t, 2, r.count(s.meshes.tailBlade))
	assert.Equal(t, 4, r.count(s.meshes.strut), "gear down when parked")
	assert.Zero(t, r.count(s.meshes.rope))
	assert.Equal(t, 4, r.count(s.meshes.light))
	assert.Equal(t, 1, r.count(s.meshes.lake))
	assert.Equal(t, len(s.Forest.Trees), r.count(s.meshes.trunk))

	now := flyScene(t, s)
	s.Heli.BucketFull = true
	s.Tick(now, heldKeys{KeyO: true})
	for loopIdx := 0; loopIdx < 5; loopIdx++ {
		now += tick
		s.Tick(now, nil)
	}

	r = &recordingRenderer{}
	s.Draw(r)
	assert.Zero(t, r.count(s.meshes.strut), "gear up in flight")
	assert.Equal(t, 1, r.count(s.meshes.rope))
	assert.Equal(t, 2, r.count(s.meshes.bucket), "bucket and its water")
	assert.Equal(t, s.Heli.Droplets.Len(), r.count(s.meshes.droplet))
	assert.Positive(t, s.Heli.Droplets.Len())
}

func TestScene_DrawPadEmissiveWhileSignalled(t *testing.T) {
	s := newTestScene()
	s.BuildMeshes(fakeFactory{})

	padCall := func(r *recordingRenderer) drawCall {
		for _, c := range r.calls {
			if c.mat.Color == matPad.Color {
				return c
			}
		}
		require.FailNow(t, "pad not drawn")
		return drawCall{}
	}

	r := &recordingRenderer{}
	s.Draw(r)
	assert.Equal(t, [3]float32{}, padCall(r).mat.Emissive)

	s.Tick(0, heldKeys{KeyP: true})
	r = &recordingRenderer{}
	s.Draw(r)
	assert.NotEqual(t, [3]float32{}, padCall(r).mat.Emissive)
}
