package model

import "gorm.io/gorm"

// Caregiver roles.
const (
	CaregiverFamily       = "family"
	CaregiverProfessional = "professional"
	CaregiverAdmin        = "admin"
)

// Caregiver is a family member or professional following one or more users.
type Caregiver struct {
	CaregiverID  string `gorm:"type:varchar(36);primaryKey"              json:"caregiver_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"   json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"               json:"-"`
	Name         string `gorm:"type:varchar(100);not null"               json:"name"`
	Phone        string `gorm:"type:varchar(20);not null"                json:"phone"`
	Role         string `gorm:"type:varchar(20);not null"                json:"role"`
	BaseModel
}

func (Caregiver) TableName() string { return "caregivers" }

func (c *Caregiver) BeforeCreate(*gorm.DB) error {
	newID(&c.CaregiverID)
	return nil
}

// CaregiverUser links a caregiver to a user they may observe.
type CaregiverUser struct {
	CaregiverUserID string `gorm:"type:varchar(36);primaryKey"                              json:"id"`
	CaregiverID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_caregiver_user" json:"caregiver_id"`
	UserID          string `gorm:"type:varchar(36);not null;uniqueIndex:idx_caregiver_user;index" json:"user_id"`
	Relationship    string `gorm:"type:varchar(50);not null"                                json:"relationship"`
	IsPrimary       bool   `gorm:"not null"                                                 json:"is_primary"`
	NotifyAlerts    bool   `gorm:"not null"                                                 json:"notify_alerts"`
	BaseModel

	// Loaded by the repository list queries. Not gorm associations, so
	// migrations add no constraints for them.
	Caregiver *Caregiver `gorm:"-" json:"caregiver,omitempty"`
	User      *User      `gorm:"-" json:"user,omitempty"`
}

func (CaregiverUser) TableName() string { return "caregiver_users" }

func (l *CaregiverUser) BeforeCreate(*gorm.DB) error {
	newID(&l.CaregiverUserID)
	return nil
}
