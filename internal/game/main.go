package game

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"firesim/internal/config"
	"firesim/internal/logging"
	"firesim/internal/recorder"
	"firesim/internal/sim"
)

const titleRefreshMs = 250.0

// glfwClock reads the GLFW timer. It satisfies sim.Clock.
type glfwClock struct{}

func (glfwClock) Millis() float64 { return glfw.GetTime() * 1000 }

// Run opens the window and drives the scene until the window closes.
// The scene ticks at the configured fixed period; rendering runs at the
// display rate.
func Run(cfg config.Config, log zerolog.Logger) error {
	runtime.LockOSThread()

	width, height, title := cfg.Window.Width, cfg.Window.Height, cfg.Window.Title
	if width <= 0 || height <= 0 {
		width, height = WindowWidth, WindowHeight
	}
	if title == "" {
		title = WindowTitle
	}

	window, err := initWindow(width, height, title)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info().Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).Msg("OpenGL ready")

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	meshes := &MeshFactory{}
	defer meshes.Destroy()

	sc := sim.DefaultSceneConfig()
	sc.Seed = cfg.Scene.Seed
	sc.SpeedFactor = cfg.Scene.SpeedFactor
	scene := sim.NewScene(sc, log)
	scene.BuildMeshes(meshes)

	var audio *Audio
	if cfg.Audio.Enabled {
		audio, err = NewAudio(cfg.Audio.SFXVolume, log)
		if err != nil {
			log.Error().Err(err).Msg("Audio init failed, continuing without sound")
			audio = nil
		} else {
			AttachAudio(audio, scene.Bus)
			audio.StartRotor()
			defer audio.Close()
		}
	}

	var rec *recorder.Recorder
	if cfg.Recorder.Enabled {
		rec, err = recorder.Open(cfg.Recorder.Path, cfg.Recorder.SampleIntervalMs, cfg.Scene.Seed, log)
		if err != nil {
			log.Error().Err(err).Msg("Recorder disabled")
			rec = nil
		} else {
			rec.Attach(scene.Bus)
			defer func() {
				if sum, err := rec.Summary(); err == nil {
					log.Info().Uint("session", rec.SessionID()).Int64("maneuvers", sum.Maneuvers).Int64("fires", sum.Fires).
						Int64("samples", sum.Samples).Msg("Flight log written")
				}
				if err := rec.Close(); err != nil {
					log.Error().Err(err).Msg("Recorder close failed")
				}
			}()
		}
	}

	loop := newTickLoop(float64(cfg.UpdatePeriod())/float64(time.Millisecond), MaxTicksPerLoop)
	cam := NewCamera(cfg.Camera.FOV)
	input := NewInput(window)
	frameLog := logging.Sampled(log)
	var clock sim.Clock = glfwClock{}

	log.Info().
		Uint64("seed", cfg.Scene.Seed).
		Int("updatePeriodMs", cfg.Scene.UpdatePeriodMs).
		Float64("speedFactor", scene.SpeedFactor()).
		Msg("Scene started")

	last := clock.Millis()
	lastTitle := 0.0
	for !window.ShouldClose() {
		now := clock.Millis()
		frameDt := min((now-last)*0.001, MaxFrameDelta)
		last = now

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(glfw.KeyM) {
			muted := audio.ToggleMute()
			log.Info().Bool("muted", muted).Msg("Audio toggled")
		}
		if input.JustPressed(glfw.KeyEqual) {
			scene.SetSpeedFactor(scene.SpeedFactor() + 0.1)
		}
		if input.JustPressed(glfw.KeyMinus) {
			scene.SetSpeedFactor(scene.SpeedFactor() - 0.1)
		}

		ticks, dropped := loop.advance(now, func(t float64) {
			scene.Tick(t, input)
			rec.Sample(scene.Elapsed(), scene.Heli)
		})
		if dropped {
			frameLog.Warn().Int("ticks", ticks).Msg("Simulation behind, skipping backlog")
		}
		audio.SetRotorLevel(rotorLevel(scene.Heli))
		UpdateCamera(&cam, input, frameDt)

		if now-lastTitle >= titleRefreshMs {
			window.SetTitle(statusLine(title, scene))
			lastTitle = now
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		rend.BeginFrame(cam, fbW, fbH)
		scene.Draw(rend)
		window.SwapBuffers()
	}
	return nil
}

// tickLoop turns wall-clock time into fixed-period scene ticks.
type tickLoop struct {
	period   float64 // ms
	maxTicks int
	next     float64
	started  bool
}

func newTickLoop(periodMs float64, maxTicks int) *tickLoop {
	if periodMs <= 0 {
		periodMs = sim.DefaultUpdatePeriod
	}
	if maxTicks <= 0 {
		maxTicks = 1
	}
	return &tickLoop{period: periodMs, maxTicks: maxTicks}
}

// advance runs every tick due at now. When more than maxTicks are due the
// backlog is dropped; dropped reports that.
func (l *tickLoop) advance(now float64, tick func(t float64)) (ticks int, dropped bool) {
	if !l.started {
		l.started = true
		l.next = now
	}
	for now >= l.next && ticks < l.maxTicks {
		tick(l.next)
		l.next += l.period
		ticks++
	}
	if now >= l.next {
		l.next = now + l.period
		dropped = true
	}
	return ticks, dropped
}

func statusLine(title string, s *sim.Scene) string {
	h := s.Heli
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s | alt %.1f | speed %.2f", title, h.Phase, h.Pos.Y, h.Speed)
	switch {
	case h.BucketFull:
		b.WriteString(" | bucket full")
	case h.BucketDeployed:
		b.WriteString(" | bucket empty")
	}
	if sig := h.Signal(); sig != sim.SignalNormal {
		fmt.Fprintf(&b, " | %s", sig)
	}
	fmt.Fprintf(&b, " | fires %d/%d | x%.1f", s.Fires.ActiveCount(), len(s.Fires.Fires), s.SpeedFactor())
	return b.String()
}
