package recorder

import "time"

// Session is one run of the scene.
type Session struct {
	ID        uint `gorm:"primaryKey"`
	StartedAt time.Time
	EndedAt   *time.Time
	Seed      uint64
}

// ManeuverEvent logs a phase or signal change.
type ManeuverEvent struct {
	ID        uint    `gorm:"primaryKey"`
	SessionID uint    `gorm:"index"`
	AtMs      float64 `gorm:"column:at_ms"`
	Kind      string  `gorm:"size:32"`
	Phase     string  `gorm:"size:32"`
	Signal    string  `gorm:"size:16"`
	X, Y, Z   float64
}

// FireEvent logs a drop outcome or a single extinguished fire.
type FireEvent struct {
	ID        uint    `gorm:"primaryKey"`
	SessionID uint    `gorm:"index"`
	AtMs      float64 `gorm:"column:at_ms"`
	Kind      string  `gorm:"size:32"`
	FireIndex int
	Hits      int
	X, Z      float64
}

// TelemetrySample is a periodic snapshot of the vehicle.
type TelemetrySample struct {
	ID             uint    `gorm:"primaryKey"`
	SessionID      uint    `gorm:"index"`
	AtMs           float64 `gorm:"column:at_ms"`
	Phase          string  `gorm:"size:32"`
	X, Y, Z        float64
	Yaw            float64
	Speed          float64
	BucketDeployed bool
	BucketFull     bool
}
