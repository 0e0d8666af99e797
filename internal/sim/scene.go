package sim

import "github.com/rs/zerolog"

type SceneConfig struct {
	Seed        uint64
	SpeedFactor float64
	ForestRows  int
	ForestCols  int
	Fires       []FireSpec
}

func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Seed:        1,
		SpeedFactor: 1,
		ForestRows:  5,
		ForestCols:  4,
		Fires:       DefaultFires,
	}
}

// Scene owns every simulated object and drives them from one tick.
type Scene struct {
	Building *Building
	Heli     *Heli
	Fires    *FireField
	Lake     Lake
	Forest   *Forest
	Bus      *EventBus

	speedFactor float64
	lastTick    float64
	started     bool
	elapsed     float64 // accumulated simulation time (ms)

	meshes *sceneMeshes
	log    zerolog.Logger
}

func NewScene(cfg SceneConfig, log zerolog.Logger) *Scene {
	if cfg.Fires == nil {
		cfg.Fires = DefaultFires
	}
	s := &Scene{
		Building: NewBuilding(12, 3, 3, [3]float32{0.137, 0.239, 0.196}, log),
		Fires:    NewFireField(cfg.Fires),
		Lake:     DefaultLake(),
		Forest:   NewForest(Vec3{X: -20, Y: -0.2, Z: 1}, cfg.ForestRows, cfg.ForestCols, 20, 20, cfg.Seed^0xF0E57),
		Bus:      NewEventBus(),
		log:      log.With().Str("component", "scene").Logger(),
	}
	hc := DefaultHeliConfig(s.Building)
	hc.Lake = s.Lake
	hc.Seed = cfg.Seed ^ 0xD40B
	s.Heli = NewHeli(hc, s.Building, s.Fires, s.Bus)
	s.SetSpeedFactor(cfg.SpeedFactor)

	s.Bus.Subscribe(EventPhaseChanged, func(e Event) {
		s.log.Debug().Str("phase", e.Phase.String()).Float64("alt", e.Pos.Y).Msg("Phase changed")
	})
	s.Bus.Subscribe(EventFireExtinguished, func(e Event) {
		s.log.Info().Int("fire", e.Data).Int("remaining", s.Fires.ActiveCount()).Msg("Fire extinguished")
	})
	return s
}

func (s *Scene) SpeedFactor() float64 { return s.speedFactor }

func (s *Scene) SetSpeedFactor(f float64) {
	if f == 0 {
		f = 1
	}
	s.speedFactor = clampF(f, MinSpeedFactor, MaxSpeedFactor)
	s.Heli.SpeedFactor = s.speedFactor
}

// Elapsed is the accumulated simulation time in ms.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// Tick advances the scene to time t (ms). The first call only sets the
// baseline. Input is sampled after the update so a new key press affects
// the next tick's integration.
func (s *Scene) Tick(t float64, keys KeySource) {
	if !s.started {
		s.started = true
		s.lastTick = t
	}
	dt := t - s.lastTick
	s.lastTick = t
	s.elapsed += dt

	s.Heli.Update(dt)
	s.Building.Update(dt)

	if keys != nil {
		s.checkKeys(keys)
	}
}

func (s *Scene) checkKeys(keys KeySource) {
	h := s.Heli
	if keys.IsHeld(KeyP) {
		h.TakeOff()
	}
	if keys.IsHeld(KeyL) {
		h.Land()
	}
	if keys.IsHeld(KeyR) {
		h.Reset()
	}
	if keys.IsHeld(KeyO) {
		h.DropWater()
	}

	switch {
	case keys.IsHeld(KeyW):
		h.Accelerate(InputAccel)
		h.Tilt(-InputPitch)
	case keys.IsHeld(KeyS):
		h.Accelerate(-InputAccel)
		h.Tilt(InputPitch)
	default:
		h.Tilt(0)
	}
	if keys.IsHeld(KeyA) {
		h.Turn(InputTurn)
	}
	if keys.IsHeld(KeyD) {
		h.Turn(-InputTurn)
	}
}
