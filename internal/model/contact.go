package model

import "gorm.io/gorm"

// Contact is a person the user can call from the app.
type Contact struct {
	ContactID    string `gorm:"type:varchar(36);primaryKey"     json:"contact_id"`
	UserID       string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"      json:"name"`
	Phone        string `gorm:"type:varchar(20);not null"       json:"phone"`
	Relationship string `gorm:"type:varchar(50);not null"       json:"relationship"`
	Avatar       string `gorm:"type:varchar(255);not null"      json:"avatar"`
	IsEmergency  bool   `gorm:"not null"                        json:"is_emergency"`
	Priority     int    `gorm:"not null"                        json:"priority"`
	BaseModel
}

func (Contact) TableName() string { return "contacts" }

func (c *Contact) BeforeCreate(*gorm.DB) error {
	newID(&c.ContactID)
	return nil
}
