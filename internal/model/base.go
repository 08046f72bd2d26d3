package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel carries the audit timestamps every table has.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// VersionedModel adds an optimistic-lock counter.
type VersionedModel struct {
	BaseModel
	Version int `gorm:"not null" json:"version"`
}

// newID fills an empty primary key. IDs are generated in Go so the same
// models work on PostgreSQL and SQLite.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// All lists every persisted model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Caregiver{},
		&CaregiverUser{},
		&Medication{},
		&MedicationSchedule{},
		&IntakeLog{},
		&Contact{},
		&Activity{},
		&Alert{},
		&AlertConfig{},
		&AlertConfigCaregiver{},
		&MoodLog{},
		&ChatMessage{},
		&Appointment{},
		&HealthReading{},
		&NotificationLog{},
	}
}
