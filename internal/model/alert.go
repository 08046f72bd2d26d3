package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	AlertEmergency        = "emergency"
	AlertMedicationMissed = "medication_missed"
	AlertHealth           = "health"

	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Alert is raised by or about a user and resolved by a caregiver.
type Alert struct {
	AlertID    string     `gorm:"type:varchar(36);primaryKey"     json:"alert_id"`
	UserID     string     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Type       string     `gorm:"type:varchar(30);not null"       json:"type"`
	Severity   string     `gorm:"type:varchar(20);not null"       json:"severity"`
	Message    string     `gorm:"type:text;not null"              json:"message"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy *string    `gorm:"type:varchar(36)"                json:"resolved_by,omitempty"`
	BaseModel
}

func (Alert) TableName() string { return "alerts" }

func (a *Alert) BeforeCreate(*gorm.DB) error {
	newID(&a.AlertID)
	return nil
}

// AlertConfig controls who is told about a user's events and how.
// A nil MedicationID is the user's global configuration.
type AlertConfig struct {
	AlertConfigID       string  `gorm:"type:varchar(36);primaryKey"     json:"alert_config_id"`
	UserID              string  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	MedicationID        *string `gorm:"type:varchar(36)"                json:"medication_id,omitempty"`
	FirstAlertDelayMin  int     `gorm:"not null"                        json:"first_alert_delay_min"`
	SecondAlertDelayMin int     `gorm:"not null"                        json:"second_alert_delay_min"`
	EscalationDelayMin  int     `gorm:"not null"                        json:"escalation_delay_min"`
	NotifyUser          bool    `gorm:"not null"                        json:"notify_user"`
	NotifyCaregivers    bool    `gorm:"not null"                        json:"notify_caregivers"`
	NotifyViaPush       bool    `gorm:"not null"                        json:"notify_via_push"`
	NotifyViaSMS        bool    `gorm:"not null"                        json:"notify_via_sms"`
	NotifyViaEmail      bool    `gorm:"not null"                        json:"notify_via_email"`
	IsActive            bool    `gorm:"not null"                        json:"is_active"`
	BaseModel

	Caregivers []AlertConfigCaregiver `gorm:"foreignKey:AlertConfigID;references:AlertConfigID" json:"caregivers,omitempty"`
}

func (AlertConfig) TableName() string { return "alert_configs" }

func (c *AlertConfig) BeforeCreate(*gorm.DB) error {
	newID(&c.AlertConfigID)
	return nil
}

// DefaultAlertConfig is used until the user saves their own.
func DefaultAlertConfig(userID string) *AlertConfig {
	return &AlertConfig{
		UserID:              userID,
		FirstAlertDelayMin:  15,
		SecondAlertDelayMin: 30,
		EscalationDelayMin:  60,
		NotifyUser:          true,
		NotifyCaregivers:    true,
		NotifyViaPush:       true,
		IsActive:            true,
	}
}

// AlertConfigCaregiver is one entry of the ordered caregiver list of a config.
type AlertConfigCaregiver struct {
	AlertConfigID string `gorm:"type:varchar(36);primaryKey" json:"alert_config_id"`
	CaregiverID   string `gorm:"type:varchar(36);primaryKey" json:"caregiver_id"`
	Position      int    `gorm:"not null"                    json:"position"`
}

func (AlertConfigCaregiver) TableName() string { return "alert_config_caregivers" }
