package dto

// ── appointments ──

// AppointmentListRequest filters by status; empty means scheduled and
// "all" disables the filter.
type AppointmentListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=all scheduled completed cancelled"`
}

type CreateAppointmentRequest struct {
	Title               string  `json:"title"                 binding:"required,min=1,max=200"`
	DoctorName          string  `json:"doctor_name"           binding:"omitempty,max=100"`
	Specialty           string  `json:"specialty"             binding:"omitempty,max=100"`
	Location            string  `json:"location"              binding:"omitempty,max=255"`
	Date                string  `json:"date"                  binding:"required,len=10"`
	Time                *string `json:"time"                  binding:"omitempty,len=5"`
	Notes               string  `json:"notes"`
	ReminderHoursBefore *int    `json:"reminder_hours_before" binding:"omitempty,min=0,max=168"`
}

type UpdateAppointmentRequest struct {
	Title               *string `json:"title"                 binding:"omitempty,min=1,max=200"`
	DoctorName          *string `json:"doctor_name"           binding:"omitempty,max=100"`
	Specialty           *string `json:"specialty"             binding:"omitempty,max=100"`
	Location            *string `json:"location"              binding:"omitempty,max=255"`
	Date                *string `json:"date"                  binding:"omitempty,len=10"`
	Time                *string `json:"time"                  binding:"omitempty,len=5"`
	Notes               *string `json:"notes"`
	ReminderHoursBefore *int    `json:"reminder_hours_before" binding:"omitempty,min=0,max=168"`
	Status              *string `json:"status"                binding:"omitempty,oneof=scheduled completed cancelled"`
}

type AppointmentResponse struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	DoctorName          string  `json:"doctor_name"`
	Specialty           string  `json:"specialty"`
	Location            string  `json:"location"`
	Date                string  `json:"date"`
	Time                *string `json:"time,omitempty"`
	Notes               string  `json:"notes"`
	ReminderHoursBefore int     `json:"reminder_hours_before"`
	Status              string  `json:"status"`
}
