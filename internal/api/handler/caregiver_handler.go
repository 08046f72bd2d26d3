package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/service"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// CaregiverHandler serves the caregiver dashboard.
type CaregiverHandler struct {
	caregiverSvc service.CaregiverService
}

func NewCaregiverHandler(caregiverSvc service.CaregiverService) *CaregiverHandler {
	return &CaregiverHandler{caregiverSvc: caregiverSvc}
}

// ListUsers returns the seniors linked to the caregiver.
// GET /api/v1/caregiver/users
func (h *CaregiverHandler) ListUsers(c *gin.Context) {
	caregiverID, ok := MustGetCaregiverID(c)
	if !ok {
		return
	}

	items, err := h.caregiverSvc.ListUsers(c.Request.Context(), caregiverID)
	if err != nil {
		h.handleCaregiverError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// Summary returns a linked user's day at a glance.
// GET /api/v1/caregiver/users/:id/summary
func (h *CaregiverHandler) Summary(c *gin.Context) {
	caregiverID, ok := MustGetCaregiverID(c)
	if !ok {
		return
	}

	summary, err := h.caregiverSvc.Summary(c.Request.Context(), caregiverID, c.Param("id"))
	if err != nil {
		h.handleCaregiverError(c, err)
		return
	}

	response.OK(c, summary)
}

// MedicationsToday returns a linked user's doses for today.
// GET /api/v1/caregiver/users/:id/medications/today
func (h *CaregiverHandler) MedicationsToday(c *gin.Context) {
	caregiverID, ok := MustGetCaregiverID(c)
	if !ok {
		return
	}

	items, err := h.caregiverSvc.MedicationsToday(c.Request.Context(), caregiverID, c.Param("id"))
	if err != nil {
		h.handleCaregiverError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// ResolveAlert closes an alert of a linked user.
// PUT /api/v1/caregiver/alerts/:id/resolve
func (h *CaregiverHandler) ResolveAlert(c *gin.Context) {
	caregiverID, ok := MustGetCaregiverID(c)
	if !ok {
		return
	}

	alert, err := h.caregiverSvc.ResolveAlert(c.Request.Context(), caregiverID, c.Param("id"))
	if err != nil {
		h.handleCaregiverError(c, err)
		return
	}

	response.OK(c, alert)
}

func (h *CaregiverHandler) handleCaregiverError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoAccess):
		response.Forbidden(c, 14101, "no access to this user")
	case errors.Is(err, service.ErrAlertNotFound):
		response.NotFound(c, 14102, "alert not found")
	case errors.Is(err, service.ErrAlertResolved):
		response.Conflict(c, 14103, "alert already resolved")
	default:
		response.FromError(c, err)
	}
}
