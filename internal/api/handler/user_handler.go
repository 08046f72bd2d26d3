package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/service"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// UserHandler serves the senior's own profile.
type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Profile returns the current user.
// GET /api/v1/user/profile
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// Heartbeat records that the app is in use.
// POST /api/v1/user/activity
func (h *UserHandler) Heartbeat(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Heartbeat(c.Request.Context(), userID); err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// LinkCaregiver links an existing caregiver account by e-mail.
// POST /api/v1/caregivers/link
func (h *UserHandler) LinkCaregiver(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.LinkCaregiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 12000, err)
		return
	}

	link, err := h.userSvc.LinkCaregiver(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.Created(c, link)
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	case errors.Is(err, service.ErrCaregiverNotFound):
		response.NotFound(c, 12002, "no caregiver with this email")
	case errors.Is(err, service.ErrAlreadyLinked):
		response.Conflict(c, 12003, "caregiver already linked")
	default:
		response.FromError(c, err)
	}
}
