package game

import (
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"

	"firesim/internal/sim"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundSpoolUp SoundKind = iota
	SoundBeacon
	SoundSplash
	SoundHiss
	SoundFill
	SoundTouchdown
)

// Audio plays procedural effects and a continuous rotor loop.
type Audio struct {
	ctx   *oto.Context
	ready chan struct{}
	log   zerolog.Logger

	sfxVolume float64
	muted     atomic.Bool

	mu          sync.Mutex
	rotor       *rotorReader
	rotorPlayer oto.Player
	cache       map[SoundKind][]byte
}

func NewAudio(sfxVolume float64, log zerolog.Logger) (*Audio, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &Audio{
		ctx:       ctx,
		ready:     ready,
		log:       log.With().Str("component", "audio").Logger(),
		sfxVolume: clamp01(sfxVolume),
		cache:     make(map[SoundKind][]byte),
	}, nil
}

func (a *Audio) isReady() bool {
	if a == nil {
		return false
	}
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// ToggleMute flips the mute flag and returns the new state.
func (a *Audio) ToggleMute() bool {
	if a == nil {
		return true
	}
	m := !a.muted.Load()
	a.muted.Store(m)
	a.mu.Lock()
	if a.rotorPlayer != nil {
		a.rotorPlayer.SetVolume(a.rotorVolume())
	}
	a.mu.Unlock()
	return m
}

func (a *Audio) rotorVolume() float64 {
	if a.muted.Load() {
		return 0
	}
	return a.sfxVolume * 0.6
}

// Play plays one effect on its own player.
func (a *Audio) Play(kind SoundKind) {
	if !a.isReady() || a.muted.Load() {
		return
	}
	a.mu.Lock()
	samples, ok := a.cache[kind]
	if !ok {
		samples = generateSound(kind)
		a.cache[kind] = samples
	}
	a.mu.Unlock()
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := a.ctx.NewPlayer(reader)
		player.SetVolume(a.sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// StartRotor starts the streaming rotor loop. Level is driven by
// SetRotorLevel; 0 is silent.
func (a *Audio) StartRotor() {
	if !a.isReady() {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rotorPlayer != nil {
		return
	}
	a.rotor = &rotorReader{seed: uint64(time.Now().UnixNano())}
	p := a.ctx.NewPlayer(a.rotor)
	p.SetVolume(a.rotorVolume())
	p.Play()
	a.rotorPlayer = p
}

// SetRotorLevel sets the rotor loudness and pitch, 0..1.
func (a *Audio) SetRotorLevel(level float64) {
	if a == nil {
		return
	}
	a.mu.Lock()
	r := a.rotor
	a.mu.Unlock()
	if r != nil {
		r.level.Store(math.Float64bits(clamp01(level)))
	}
}

func (a *Audio) Close() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rotorPlayer != nil {
		a.rotorPlayer.Close()
		a.rotorPlayer = nil
	}
}

// AttachAudio maps scene events to effects.
func AttachAudio(a *Audio, bus *sim.EventBus) {
	bus.Subscribe(sim.EventSignalChanged, func(e sim.Event) {
		if e.Signal != sim.SignalNormal {
			a.Play(SoundBeacon)
		}
	})
	bus.Subscribe(sim.EventPhaseChanged, func(e sim.Event) {
		switch e.Phase {
		case sim.PhaseClimbingFromHeliport, sim.PhaseTakingOffFromLake:
			a.Play(SoundSpoolUp)
		}
	})
	bus.Subscribe(sim.EventReset, func(sim.Event) { a.Play(SoundTouchdown) })
	bus.Subscribe(sim.EventDropStarted, func(sim.Event) { a.Play(SoundSplash) })
	bus.Subscribe(sim.EventFireExtinguished, func(sim.Event) { a.Play(SoundHiss) })
	bus.Subscribe(sim.EventBucketFilled, func(sim.Event) { a.Play(SoundFill) })
}

// rotorLevel maps the vehicle phase to the rotor loop level.
func rotorLevel(h *sim.Heli) float64 {
	switch {
	case h.Phase.Airborne():
		return 1
	case h.Phase == sim.PhaseParked:
		return 0.25
	}
	return 0.6
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// rotorReader streams an endless rotor pulse whose rate follows level.
type rotorReader struct {
	level atomic.Uint64 // float64 bits
	cur   float64
	phase float64
	t     float64
	seed  uint64
	lp    float64
}

func (r *rotorReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	target := math.Float64frombits(r.level.Load())
	for i := 0; i < samples; i++ {
		// glide towards the target level over roughly a second
		r.cur += (target - r.cur) * (1.0 / SampleRate)
		rate := 6 + 12*r.cur
		r.phase = math.Mod(r.phase+rate/SampleRate, 1)
		r.t += 1.0 / SampleRate
		pulse := math.Exp(-r.phase*10) * 0.55
		turbine := fm(r.t, 220+120*r.cur, 1.5, 1.6) * 0.08
		r.lp = r.lp*0.8 + lcg(&r.seed)*0.2
		s := (pulse + turbine + r.lp*0.12) * r.cur
		putStereoF32(p, i, softSat(s))
	}
	return samples * 8, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation instead of hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

func clamp01(v float64) float64 { return max(0, min(1, v)) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundSpoolUp:
		return genSpoolUp()
	case SoundBeacon:
		return genBeacon()
	case SoundSplash:
		return genSplash()
	case SoundHiss:
		return genHiss()
	case SoundFill:
		return genFill()
	case SoundTouchdown:
		return genTouchdown()
	}
	return nil
}

// genSpoolUp: turbine whine rising under accelerating rotor pulses.
func genSpoolUp() []byte {
	n := int(1.2 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(55555)
	lp, phase := 0.0, 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		phase = math.Mod(phase+(4+14*p)/SampleRate, 1)
		rotor := math.Exp(-phase*10) * 0.5
		turbine := fm(t, 180+260*p, 1.5, 1.8) * 0.12
		lp = lp*0.78 + lcg(&seed)*0.22
		env := adsr(p, 0.1, 0.2, 0.8, 0.2)
		putStereoF32(buf, i, softSat((rotor+turbine+lp*0.12)*env))
	}
	return buf
}

// genBeacon: two-tone chime, one per signal start.
func genBeacon() []byte {
	n := int(0.5 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := 880.0
		if p >= 0.5 {
			freq = 660
		}
		local := math.Mod(p, 0.5) * 2
		env := adsr(local, 0.02, 0.4, 0.3, 0.3)
		s := fm(t, freq, 2.0, 1.2*env) * env * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genSplash: filtered noise burst with a low thump.
func genSplash() []byte {
	n := int(0.9 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(77777)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		lp = lp*0.55 + lcg(&seed)*0.45
		thump := math.Sin(2*math.Pi*(90-40*p)*t) * math.Exp(-t*9) * 0.5
		env := adsr(p, 0.03, 0.3, 0.5, 0.5)
		putStereoF32(buf, i, softSat((lp*0.45+thump)*env))
	}
	return buf
}

// genHiss: steam on embers; bright noise that thins out.
func genHiss() []byte {
	n := int(1.4 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(33333)
	prev := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		raw := lcg(&seed)
		hp := raw - prev
		prev = raw
		crackle := 0.0
		if lcg(&seed) > 0.995 {
			crackle = 0.6
		}
		env := (1 - p) * (1 - p) * 0.35
		putStereoF32(buf, i, softSat((hp*0.7+crackle)*env))
	}
	return buf
}

// genFill: gurgle; low bubbles rising in pitch.
func genFill() []byte {
	n := int(0.8 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		bubble := math.Mod(t*11, 1)
		freq := 200 + 300*bubble + 150*p
		env := math.Exp(-bubble*6) * adsr(p, 0.05, 0.2, 0.7, 0.3)
		putStereoF32(buf, i, softSat(math.Sin(2*math.Pi*freq*t)*env*0.3))
	}
	return buf
}

// genTouchdown: soft skid thud.
func genTouchdown() []byte {
	n := int(0.25 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		s := math.Sin(2*math.Pi*70*t) * math.Exp(-t*22) * 0.6
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
