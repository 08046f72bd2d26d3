package dto

// ── contacts & activities ──

type CreateContactRequest struct {
	Name         string `json:"name"         binding:"required,min=1,max=100"`
	Phone        string `json:"phone"        binding:"required,max=20"`
	Relationship string `json:"relationship" binding:"omitempty,max=50"`
	Avatar       string `json:"avatar"       binding:"omitempty,max=255"`
	IsEmergency  bool   `json:"is_emergency"`
	Priority     int    `json:"priority"     binding:"min=0,max=100"`
}

type ContactResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	Avatar       string `json:"avatar"`
	IsEmergency  bool   `json:"is_emergency"`
	Priority     int    `json:"priority"`
}

// CreateActivityRequest requires days_of_week like medication schedules.
type CreateActivityRequest struct {
	Title       string  `json:"title"        binding:"required,min=1,max=100"`
	Description string  `json:"description"`
	Time        *string `json:"time"         binding:"omitempty,len=5"`
	Icon        string  `json:"icon"         binding:"omitempty,max=20"`
	Category    string  `json:"category"     binding:"omitempty,max=50"`
	DaysOfWeek  *string `json:"days_of_week" binding:"required"`
}

type ActivityResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Time        *string `json:"time,omitempty"`
	Icon        string  `json:"icon"`
	Category    string  `json:"category"`
	DaysOfWeek  string  `json:"days_of_week"`
}
