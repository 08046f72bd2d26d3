package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a senior using the app. Table users.
type User struct {
	UserID       string     `gorm:"type:varchar(36);primaryKey"       json:"user_id"`
	Name         string     `gorm:"type:varchar(100);not null"        json:"name"`
	Phone        string     `gorm:"type:varchar(20);not null;uniqueIndex" json:"phone"`
	PinHash      string     `gorm:"type:varchar(255);not null"        json:"-"`
	Language     string     `gorm:"type:varchar(10);not null"         json:"language"`
	WakeTime     string     `gorm:"type:varchar(5);not null"          json:"wake_time"`
	SleepTime    string     `gorm:"type:varchar(5);not null"          json:"sleep_time"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
	BaseModel
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	newID(&u.UserID)
	return nil
}
