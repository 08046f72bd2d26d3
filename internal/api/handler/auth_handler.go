package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/service"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// AuthHandler serves registration and login for both account kinds.
type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register creates a senior user account with a PIN.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 11000, err)
		return
	}

	result, err := h.authSvc.RegisterUser(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, result)
}

// Login authenticates a user by phone or id plus PIN.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 11000, err)
		return
	}

	result, err := h.authSvc.LoginUser(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// RegisterCaregiver creates a caregiver account.
// POST /api/v1/caregiver/register
func (h *AuthHandler) RegisterCaregiver(c *gin.Context) {
	var req dto.CaregiverRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 11000, err)
		return
	}

	result, err := h.authSvc.RegisterCaregiver(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, result)
}

// LoginCaregiver authenticates a caregiver by e-mail and password.
// POST /api/v1/caregiver/login
func (h *AuthHandler) LoginCaregiver(c *gin.Context) {
	var req dto.CaregiverLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 11000, err)
		return
	}

	result, err := h.authSvc.LoginCaregiver(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout revokes the presented token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, "invalid credentials")
	case errors.Is(err, service.ErrPhoneTaken):
		response.Conflict(c, 11002, "phone already registered")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11003, "email already registered")
	default:
		response.FromError(c, err)
	}
}
