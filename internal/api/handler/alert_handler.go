package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/service"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// AlertHandler serves emergencies, alert history, alert settings and the
// notification log.
type AlertHandler struct {
	alertSvc        service.AlertService
	notificationSvc service.NotificationService
}

func NewAlertHandler(alertSvc service.AlertService, notificationSvc service.NotificationService) *AlertHandler {
	return &AlertHandler{alertSvc: alertSvc, notificationSvc: notificationSvc}
}

// Emergency raises a critical alert and notifies every linked caregiver.
// POST /api/v1/alerts/emergency
func (h *AlertHandler) Emergency(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.EmergencyRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, 14000, err)
			return
		}
	}

	alert, err := h.alertSvc.Emergency(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.Created(c, alert)
}

// List returns the user's alerts, newest first.
// GET /api/v1/alerts
func (h *AlertHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	items, err := h.alertSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// GetConfig returns the alert settings, creating the defaults on first use.
// GET /api/v1/alerts/config
func (h *AlertHandler) GetConfig(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cfg, err := h.alertSvc.GetConfig(c.Request.Context(), userID)
	if err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.OK(c, cfg)
}

// UpdateConfig replaces the alert settings.
// PUT /api/v1/alerts/config
func (h *AlertHandler) UpdateConfig(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AlertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 14000, err)
		return
	}

	cfg, err := h.alertSvc.UpdateConfig(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.OK(c, cfg)
}

type notificationLogQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// NotificationLog lists delivery attempts for the user's events.
// GET /api/v1/notifications/log
func (h *AlertHandler) NotificationLog(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q notificationLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, 14000, err)
		return
	}

	items, err := h.notificationSvc.ListLog(c.Request.Context(), userID, q.Limit)
	if err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

func (h *AlertHandler) handleAlertError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCaregiverNotLinked):
		response.BadRequest(c, 14001, "caregiver is not linked to this user")
	case errors.Is(err, pkgerrors.ErrValidation):
		response.BadRequest(c, 14000, err.Error())
	default:
		response.FromError(c, err)
	}
}
