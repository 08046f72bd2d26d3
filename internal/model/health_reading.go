package model

import (
	"time"

	"gorm.io/gorm"
)

// Reading types.
const (
	ReadingBloodPressure = "blood_pressure"
	ReadingGlucose       = "glucose"
	ReadingWeight        = "weight"
	ReadingTemperature   = "temperature"
	ReadingHeartRate     = "heart_rate"
	ReadingOxygen        = "oxygen"
)

// HealthReading is one measurement. Blood pressure uses the secondary
// value for the diastolic figure.
type HealthReading struct {
	ReadingID      string    `gorm:"type:varchar(36);primaryKey"     json:"reading_id"`
	UserID         string    `gorm:"type:varchar(36);not null;index:idx_reading_user_type_time,priority:1" json:"user_id"`
	ReadingType    string    `gorm:"type:varchar(30);not null;index:idx_reading_user_type_time,priority:2" json:"reading_type"`
	ValuePrimary   float64   `gorm:"not null"                        json:"value_primary"`
	ValueSecondary *float64  `json:"value_secondary,omitempty"`
	Unit           string    `gorm:"type:varchar(20);not null"       json:"unit"`
	Notes          string    `gorm:"type:text;not null"              json:"notes"`
	MeasuredAt     time.Time `gorm:"not null;index:idx_reading_user_type_time,priority:3" json:"measured_at"`
	BaseModel
}

func (HealthReading) TableName() string { return "health_readings" }

func (r *HealthReading) BeforeCreate(*gorm.DB) error {
	newID(&r.ReadingID)
	return nil
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// ReadingType describes a supported measurement.
type ReadingType struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Icon           string `json:"icon"`
	Unit           string `json:"unit"`
	HasSecondary   bool   `json:"has_secondary"`
	PrimaryLabel   string `json:"primary_label"`
	SecondaryLabel string `json:"secondary_label,omitempty"`
	NormalPrimary  *Range `json:"normal_primary,omitempty"`
	NormalSecond   *Range `json:"normal_secondary,omitempty"`
}

// ReadingTypes is the fixed catalogue, in display order.
var ReadingTypes = []ReadingType{
	{ID: ReadingBloodPressure, Name: "Blood Pressure", Icon: "❤️", Unit: "mmHg", HasSecondary: true,
		PrimaryLabel: "Systolic", SecondaryLabel: "Diastolic",
		NormalPrimary: &Range{90, 120}, NormalSecond: &Range{60, 80}},
	{ID: ReadingGlucose, Name: "Blood Glucose", Icon: "🩸", Unit: "mg/dL",
		PrimaryLabel: "Value", NormalPrimary: &Range{70, 100}},
	{ID: ReadingWeight, Name: "Weight", Icon: "⚖️", Unit: "kg", PrimaryLabel: "Weight"},
	{ID: ReadingTemperature, Name: "Temperature", Icon: "🌡️", Unit: "°C",
		PrimaryLabel: "Temperature", NormalPrimary: &Range{36, 37.5}},
	{ID: ReadingHeartRate, Name: "Heart Rate", Icon: "💓", Unit: "bpm",
		PrimaryLabel: "Beats", NormalPrimary: &Range{60, 100}},
	{ID: ReadingOxygen, Name: "Oxygen Saturation", Icon: "💨", Unit: "%",
		PrimaryLabel: "SpO2", NormalPrimary: &Range{95, 100}},
}

// LookupReadingType returns the catalogue entry for id.
func LookupReadingType(id string) (ReadingType, bool) {
	for _, t := range ReadingTypes {
		if t.ID == id {
			return t, true
		}
	}
	return ReadingType{}, false
}
