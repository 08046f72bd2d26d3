package dto

// ── users & caregivers ──

// UserResponse is the public view of a user. The PIN hash never leaves
// the service layer.
type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Language     string  `json:"language"`
	WakeTime     string  `json:"wake_time"`
	SleepTime    string  `json:"sleep_time"`
	LastActiveAt *string `json:"last_active_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type CaregiverResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// LinkCaregiverRequest lets a user grant a caregiver access, by e-mail.
type LinkCaregiverRequest struct {
	Email        string `json:"email"        binding:"required,email"`
	Relationship string `json:"relationship" binding:"required,max=50"`
	IsPrimary    bool   `json:"is_primary"`
}

// CaregiverLinkResponse describes one caregiver-user link.
type CaregiverLinkResponse struct {
	Caregiver    *CaregiverResponse `json:"caregiver,omitempty"`
	User         *UserResponse      `json:"user,omitempty"`
	Relationship string             `json:"relationship"`
	IsPrimary    bool               `json:"is_primary"`
	NotifyAlerts bool               `json:"notify_alerts"`
}

// CaregiverSummaryResponse is the caregiver's daily view of one user.
type CaregiverSummaryResponse struct {
	User             UserResponse     `json:"user"`
	Date             string           `json:"date"`
	MedicationsToday MedicationCount  `json:"medications_today"`
	PendingAlerts    int64            `json:"pending_alerts"`
	LastMood         *MoodLogResponse `json:"last_mood,omitempty"`
}

type MedicationCount struct {
	Taken int `json:"taken"`
	Total int `json:"total"`
}
