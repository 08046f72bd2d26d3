package dto

// ── mood & chat ──

type MoodRequest struct {
	Mood        string `json:"mood"         binding:"required,oneof=happy neutral sad anxious tired"`
	EnergyLevel *int   `json:"energy_level" binding:"omitempty,min=1,max=5"`
	Notes       string `json:"notes"        binding:"omitempty,max=1000"`
}

type MoodLogResponse struct {
	ID          string `json:"id"`
	Mood        string `json:"mood"`
	EnergyLevel *int   `json:"energy_level,omitempty"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required,min=1,max=2000"`
}

type ChatMessageResponse struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ChatReplyResponse returns both turns of the exchange.
type ChatReplyResponse struct {
	Message ChatMessageResponse `json:"message"`
	Reply   ChatMessageResponse `json:"reply"`
}
