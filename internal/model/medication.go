package model

import (
	"time"

	"gorm.io/gorm"
)

// Medication belongs to one user and has any number of schedules.
type Medication struct {
	MedicationID string `gorm:"type:varchar(36);primaryKey"  json:"medication_id"`
	UserID       string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"   json:"name"`
	Dosage       string `gorm:"type:varchar(50);not null"    json:"dosage"`
	Instructions string `gorm:"type:text;not null"           json:"instructions"`
	Icon         string `gorm:"type:varchar(20);not null"    json:"icon"`
	IsActive     bool   `gorm:"not null"                     json:"is_active"`
	VersionedModel

	Schedules []MedicationSchedule `gorm:"foreignKey:MedicationID;references:MedicationID" json:"schedules,omitempty"`
}

func (Medication) TableName() string { return "medications" }

func (m *Medication) BeforeCreate(*gorm.DB) error {
	newID(&m.MedicationID)
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}

// MedicationSchedule is one recurring dose: a time of day on a set of weekdays.
// Editing a medication retires schedules instead of deleting them, so the
// intake logs pointing at them stay valid.
type MedicationSchedule struct {
	ScheduleID   string     `gorm:"type:varchar(36);primaryKey"     json:"schedule_id"`
	MedicationID string     `gorm:"type:varchar(36);not null;index" json:"medication_id"`
	TimeOfDay    string     `gorm:"type:varchar(5);not null"        json:"time"`
	DaysOfWeek   Weekdays   `gorm:"type:varchar(7);not null"        json:"days_of_week"`
	RetiredAt    *time.Time `gorm:"index"                           json:"-"`
	BaseModel
}

func (MedicationSchedule) TableName() string { return "medication_schedules" }

func (s *MedicationSchedule) BeforeCreate(*gorm.DB) error {
	newID(&s.ScheduleID)
	return nil
}

// InForceAt reports whether the schedule had not been retired yet at t.
func (s *MedicationSchedule) InForceAt(t time.Time) bool {
	return s.RetiredAt == nil || t.Before(*s.RetiredAt)
}

// SameDose reports whether two schedules fire at the same time on the same days.
func (s *MedicationSchedule) SameDose(o *MedicationSchedule) bool {
	return s.TimeOfDay == o.TimeOfDay && s.DaysOfWeek == o.DaysOfWeek
}

// Intake statuses. Only pending -> taken is produced today; skipped and
// late are reserved. A taken log never changes status again.
const (
	IntakePending = "pending"
	IntakeTaken   = "taken"
	IntakeSkipped = "skipped"
	IntakeLate    = "late"
)

// IntakeLog records one dose occurrence. (medication_id, schedule_id,
// scheduled_at) is the natural key and is unique.
type IntakeLog struct {
	IntakeLogID  string     `gorm:"type:varchar(36);primaryKey"                                json:"intake_log_id"`
	MedicationID string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_intake_occurrence,priority:1" json:"medication_id"`
	ScheduleID   *string    `gorm:"type:varchar(36);uniqueIndex:idx_intake_occurrence,priority:2"          json:"schedule_id,omitempty"`
	ScheduledAt  time.Time  `gorm:"not null;uniqueIndex:idx_intake_occurrence,priority:3"                  json:"scheduled_at"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null"                                  json:"status"`
	Notes        string     `gorm:"type:text;not null"                                         json:"notes"`
	BaseModel
}

func (IntakeLog) TableName() string { return "intake_logs" }

func (l *IntakeLog) BeforeCreate(*gorm.DB) error {
	newID(&l.IntakeLogID)
	return nil
}
