package model

import "gorm.io/gorm"

const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a medical appointment. Date is "YYYY-MM-DD" and Time an
// optional "HH:MM", both kept as text so ordering works on every driver.
type Appointment struct {
	AppointmentID       string  `gorm:"type:varchar(36);primaryKey"     json:"appointment_id"`
	UserID              string  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title               string  `gorm:"type:varchar(200);not null"      json:"title"`
	DoctorName          string  `gorm:"type:varchar(100);not null"      json:"doctor_name"`
	Specialty           string  `gorm:"type:varchar(100);not null"      json:"specialty"`
	Location            string  `gorm:"type:varchar(255);not null"      json:"location"`
	Date                string  `gorm:"column:appt_date;type:varchar(10);not null;index" json:"date"`
	Time                *string `gorm:"column:appt_time;type:varchar(5)"  json:"time,omitempty"`
	Notes               string  `gorm:"type:text;not null"              json:"notes"`
	ReminderHoursBefore int     `gorm:"not null"                        json:"reminder_hours_before"`
	Status              string  `gorm:"type:varchar(20);not null"       json:"status"`
	BaseModel
}

func (Appointment) TableName() string { return "appointments" }

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	newID(&a.AppointmentID)
	return nil
}
