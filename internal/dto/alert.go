package dto

// ── alerts ──

type EmergencyRequest struct {
	Message string `json:"message" binding:"omitempty,max=500"`
}

type AlertResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Type       string  `json:"type"`
	Severity   string  `json:"severity"`
	Message    string  `json:"message"`
	ResolvedAt *string `json:"resolved_at,omitempty"`
	ResolvedBy *string `json:"resolved_by,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// AlertConfigRequest replaces the global alert configuration. Caregivers
// are notified in the listed order and must be linked to the user.
type AlertConfigRequest struct {
	FirstAlertDelayMin  int      `json:"first_alert_delay_min"  binding:"min=0,max=1440"`
	SecondAlertDelayMin int      `json:"second_alert_delay_min" binding:"min=0,max=1440"`
	EscalationDelayMin  int      `json:"escalation_delay_min"   binding:"min=0,max=1440"`
	NotifyUser          bool     `json:"notify_user"`
	NotifyCaregivers    bool     `json:"notify_caregivers"`
	NotifyViaPush       bool     `json:"notify_via_push"`
	NotifyViaSMS        bool     `json:"notify_via_sms"`
	NotifyViaEmail      bool     `json:"notify_via_email"`
	IsActive            bool     `json:"is_active"`
	CaregiverIDs        []string `json:"caregiver_ids" binding:"omitempty,dive,uuid"`
}

type AlertConfigResponse struct {
	FirstAlertDelayMin  int      `json:"first_alert_delay_min"`
	SecondAlertDelayMin int      `json:"second_alert_delay_min"`
	EscalationDelayMin  int      `json:"escalation_delay_min"`
	NotifyUser          bool     `json:"notify_user"`
	NotifyCaregivers    bool     `json:"notify_caregivers"`
	NotifyViaPush       bool     `json:"notify_via_push"`
	NotifyViaSMS        bool     `json:"notify_via_sms"`
	NotifyViaEmail      bool     `json:"notify_via_email"`
	IsActive            bool     `json:"is_active"`
	CaregiverIDs        []string `json:"caregiver_ids"`
}

// ── notifications ──

type NotificationLogResponse struct {
	ID               string `json:"id"`
	NotificationType string `json:"notification_type"`
	ReferenceType    string `json:"reference_type"`
	ReferenceID      string `json:"reference_id"`
	Message          string `json:"message"`
	Channel          string `json:"channel"`
	SentTo           string `json:"sent_to"`
	Status           string `json:"status"`
	Error            string `json:"error,omitempty"`
	SentAt           string `json:"sent_at"`
}
