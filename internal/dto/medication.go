package dto

// ── medications ──

// ScheduleInput is one recurring dose. DaysOfWeek is a digit string over
// 0..6 with 0 = Sunday; it must be present, "" means the schedule never fires.
type ScheduleInput struct {
	Time       string  `json:"time"         binding:"required,len=5"`
	DaysOfWeek *string `json:"days_of_week" binding:"required"`
}

type CreateMedicationRequest struct {
	Name         string          `json:"name"         binding:"required,min=1,max=100"`
	Dosage       string          `json:"dosage"       binding:"omitempty,max=50"`
	Instructions string          `json:"instructions"`
	Icon         string          `json:"icon"         binding:"omitempty,max=20"`
	Schedules    []ScheduleInput `json:"schedules"    binding:"dive"`
}

// UpdateMedicationRequest patches a medication. A non-nil Schedules
// replaces the whole schedule list. Version, when sent, must match the
// stored version.
type UpdateMedicationRequest struct {
	Name         *string          `json:"name"         binding:"omitempty,min=1,max=100"`
	Dosage       *string          `json:"dosage"       binding:"omitempty,max=50"`
	Instructions *string          `json:"instructions"`
	Icon         *string          `json:"icon"         binding:"omitempty,max=20"`
	IsActive     *bool            `json:"is_active"`
	Schedules    *[]ScheduleInput `json:"schedules"    binding:"omitempty,dive"`
	Version      *int             `json:"version"      binding:"omitempty,min=1"`
}

type ScheduleResponse struct {
	ID         string `json:"id"`
	Time       string `json:"time"`
	DaysOfWeek string `json:"days_of_week"`
}

type MedicationResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Dosage       string             `json:"dosage"`
	Instructions string             `json:"instructions"`
	Icon         string             `json:"icon"`
	IsActive     bool               `json:"is_active"`
	Version      int                `json:"version"`
	Schedules    []ScheduleResponse `json:"schedules"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

// ── adherence ──

// TodayRequest selects the day; an empty date means today.
type TodayRequest struct {
	Date string `form:"date" binding:"omitempty,len=10"`
}

// TakeMedicationRequest marks one occurrence taken. Without a schedule the
// occurrence is stamped at the current time. Date defaults to today.
type TakeMedicationRequest struct {
	ScheduleID *string `json:"schedule_id" binding:"omitempty,uuid"`
	Date       string  `json:"date"        binding:"omitempty,len=10"`
}

// OccurrenceStatus is one scheduled dose on one day.
type OccurrenceStatus struct {
	MedicationID string  `json:"medication_id"`
	ScheduleID   string  `json:"schedule_id"`
	Name         string  `json:"name"`
	Dosage       string  `json:"dosage"`
	Icon         string  `json:"icon"`
	Time         string  `json:"time"`
	ScheduledAt  string  `json:"scheduled_at"`
	Taken        bool    `json:"taken"`
	TakenAt      *string `json:"taken_at,omitempty"`
	Status       string  `json:"status"`
}

type IntakeLogResponse struct {
	ID           string  `json:"id"`
	MedicationID string  `json:"medication_id"`
	ScheduleID   *string `json:"schedule_id,omitempty"`
	ScheduledAt  string  `json:"scheduled_at"`
	TakenAt      *string `json:"taken_at,omitempty"`
	Status       string  `json:"status"`
}

// AdherenceExportRequest bounds the export; both dates are inclusive.
type AdherenceExportRequest struct {
	From string `form:"from" binding:"required,len=10"`
	To   string `form:"to"   binding:"required,len=10"`
}
