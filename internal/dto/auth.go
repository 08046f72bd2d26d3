package dto

// ── auth ──

// RegisterRequest creates a user account. The PIN is 4 to 6 digits.
type RegisterRequest struct {
	Name      string `json:"name"       binding:"required,min=1,max=100"`
	Phone     string `json:"phone"      binding:"required,min=6,max=20"`
	PIN       string `json:"pin"        binding:"required,numeric,min=4,max=6"`
	Language  string `json:"language"   binding:"omitempty,max=10"`
	WakeTime  string `json:"wake_time"  binding:"omitempty,len=5"`
	SleepTime string `json:"sleep_time" binding:"omitempty,len=5"`
}

// LoginRequest identifies the user by phone or by id.
type LoginRequest struct {
	Phone  string `json:"phone"   binding:"required_without=UserID"`
	UserID string `json:"user_id" binding:"required_without=Phone"`
	PIN    string `json:"pin"     binding:"required"`
}

// CaregiverRegisterRequest creates a caregiver account.
type CaregiverRegisterRequest struct {
	Email    string `json:"email"    binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Phone    string `json:"phone"    binding:"omitempty,max=20"`
	Role     string `json:"role"     binding:"omitempty,oneof=family professional admin"`
}

type CaregiverLoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the access token and the authenticated subject.
type TokenResponse struct {
	AccessToken string             `json:"access_token"`
	ExpiresIn   int                `json:"expires_in"`
	User        *UserResponse      `json:"user,omitempty"`
	Caregiver   *CaregiverResponse `json:"caregiver,omitempty"`
}
