package model

import "gorm.io/gorm"

// MoodLog is a self-reported mood check-in.
type MoodLog struct {
	MoodLogID   string `gorm:"type:varchar(36);primaryKey"     json:"mood_log_id"`
	UserID      string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Mood        string `gorm:"type:varchar(20);not null"       json:"mood"`
	EnergyLevel *int   `json:"energy_level,omitempty"` // 1-5
	Notes       string `gorm:"type:text;not null"              json:"notes"`
	BaseModel
}

func (MoodLog) TableName() string { return "mood_logs" }

func (m *MoodLog) BeforeCreate(*gorm.DB) error {
	newID(&m.MoodLogID)
	return nil
}
