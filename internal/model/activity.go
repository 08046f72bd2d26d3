package model

import "gorm.io/gorm"

// Activity is a recurring item of the user's daily routine.
type Activity struct {
	ActivityID  string   `gorm:"type:varchar(36);primaryKey"     json:"activity_id"`
	UserID      string   `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title       string   `gorm:"type:varchar(100);not null"      json:"title"`
	Description string   `gorm:"type:text;not null"              json:"description"`
	TimeOfDay   *string  `gorm:"type:varchar(5)"                 json:"time,omitempty"`
	Icon        string   `gorm:"type:varchar(20);not null"       json:"icon"`
	Category    string   `gorm:"type:varchar(50);not null"       json:"category"`
	DaysOfWeek  Weekdays `gorm:"type:varchar(7);not null"        json:"days_of_week"`
	BaseModel
}

func (Activity) TableName() string { return "activities" }

func (a *Activity) BeforeCreate(*gorm.DB) error {
	newID(&a.ActivityID)
	return nil
}
