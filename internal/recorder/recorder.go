// Package recorder stores a flight log of the scene in SQLite.
package recorder

import (
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"firesim/internal/sim"
)

// Recorder writes events synchronously from bus handlers. All methods
// are safe on a nil *Recorder so callers can disable recording by
// passing nil.
type Recorder struct {
	db       *gorm.DB
	log      zerolog.Logger
	session  Session
	interval float64 // ms between telemetry samples
	lastAt   float64
	sampled  bool

	mu     sync.Mutex
	closed bool
}

// Summary counts rows written during the session.
type Summary struct {
	Maneuvers int64
	Fires     int64
	Samples   int64
}

var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA synchronous = NORMAL;",
	"PRAGMA temp_store = MEMORY;",
}

// Open creates or opens the database at path. An empty path uses an
// in-memory database.
func Open(path string, sampleIntervalMs int, seed uint64, log zerolog.Logger) (*Recorder, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open recorder db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("recorder db handle: %w", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}
	if err := db.AutoMigrate(&Session{}, &ManeuverEvent{}, &FireEvent{}, &TelemetrySample{}); err != nil {
		return nil, fmt.Errorf("migrate recorder db: %w", err)
	}

	r := &Recorder{
		db:       db,
		log:      log.With().Str("component", "recorder").Logger(),
		session:  Session{StartedAt: time.Now().UTC(), Seed: seed},
		interval: float64(sampleIntervalMs),
	}
	if err := db.Create(&r.session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	r.log.Info().Uint("session", r.session.ID).Str("path", path).Msg("Recorder opened")
	return r, nil
}

func (r *Recorder) SessionID() uint {
	if r == nil {
		return 0
	}
	return r.session.ID
}

// Attach subscribes the recorder to the scene events it stores.
func (r *Recorder) Attach(bus *sim.EventBus) {
	if r == nil || bus == nil {
		return
	}
	maneuver := func(e sim.Event) {
		r.write(&ManeuverEvent{
			SessionID: r.session.ID,
			AtMs:      e.At,
			Kind:      e.Type.String(),
			Phase:     e.Phase.String(),
			Signal:    e.Signal.String(),
			X:         e.Pos.X, Y: e.Pos.Y, Z: e.Pos.Z,
		})
	}
	fire := func(e sim.Event) {
		fe := &FireEvent{
			SessionID: r.session.ID,
			AtMs:      e.At,
			Kind:      e.Type.String(),
			FireIndex: -1,
			X:         e.Pos.X, Z: e.Pos.Z,
		}
		switch e.Type {
		case sim.EventFireExtinguished:
			fe.FireIndex = e.Data
		case sim.EventDropFinished:
			fe.Hits = e.Data
		}
		r.write(fe)
	}
	bus.Subscribe(sim.EventPhaseChanged, maneuver)
	bus.Subscribe(sim.EventSignalChanged, maneuver)
	bus.Subscribe(sim.EventReset, maneuver)
	bus.Subscribe(sim.EventBucketFilled, maneuver)
	bus.Subscribe(sim.EventDropStarted, fire)
	bus.Subscribe(sim.EventDropFinished, fire)
	bus.Subscribe(sim.EventFireExtinguished, fire)
}

// Sample stores a telemetry row when at least the configured interval has
// passed since the previous one. Returns true when a row was written.
func (r *Recorder) Sample(atMs float64, h *sim.Heli) bool {
	if r == nil || h == nil {
		return false
	}
	if r.sampled && atMs-r.lastAt < r.interval {
		return false
	}
	r.sampled = true
	r.lastAt = atMs
	return r.write(&TelemetrySample{
		SessionID:      r.session.ID,
		AtMs:           atMs,
		Phase:          h.Phase.String(),
		X:              h.Pos.X,
		Y:              h.Pos.Y,
		Z:              h.Pos.Z,
		Yaw:            h.Yaw,
		Speed:          h.Speed,
		BucketDeployed: h.BucketDeployed,
		BucketFull:     h.BucketFull,
	})
}

func (r *Recorder) write(row any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	if err := r.db.Create(row).Error; err != nil {
		r.log.Error().Err(err).Msg("Recorder write failed")
		return false
	}
	return true
}

// Summary returns the row counts of the current session.
func (r *Recorder) Summary() (Summary, error) {
	var s Summary
	if r == nil {
		return s, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return s, fmt.Errorf("recorder closed")
	}
	id := r.session.ID
	if err := r.db.Model(&ManeuverEvent{}).Where("session_id = ?", id).Count(&s.Maneuvers).Error; err != nil {
		return s, fmt.Errorf("count maneuvers: %w", err)
	}
	if err := r.db.Model(&FireEvent{}).Where("session_id = ?", id).Count(&s.Fires).Error; err != nil {
		return s, fmt.Errorf("count fires: %w", err)
	}
	if err := r.db.Model(&TelemetrySample{}).Where("session_id = ?", id).Count(&s.Samples).Error; err != nil {
		return s, fmt.Errorf("count samples: %w", err)
	}
	return s, nil
}

// Close stamps the session end and closes the database.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	now := time.Now().UTC()
	if err := r.db.Model(&r.session).Update("ended_at", now).Error; err != nil {
		r.log.Warn().Err(err).Msg("Could not stamp session end")
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("recorder db handle: %w", err)
	}
	return sqlDB.Close()
}
