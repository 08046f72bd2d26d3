package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/service"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// AppointmentHandler serves doctor appointments.
type AppointmentHandler struct {
	appointmentSvc service.AppointmentService
}

func NewAppointmentHandler(appointmentSvc service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentSvc: appointmentSvc}
}

// List GET /api/v1/appointments?status=
func (h *AppointmentHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AppointmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, 17000, err)
		return
	}

	items, err := h.appointmentSvc.List(c.Request.Context(), userID, req.Status)
	if err != nil {
		h.handleAppointmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// Upcoming GET /api/v1/appointments/upcoming
func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	items, err := h.appointmentSvc.Upcoming(c.Request.Context(), userID)
	if err != nil {
		h.handleAppointmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// Create POST /api/v1/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 17000, err)
		return
	}

	appt, err := h.appointmentSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAppointmentError(c, err)
		return
	}

	response.Created(c, appt)
}

// Update PUT /api/v1/appointments/:id
func (h *AppointmentHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 17000, err)
		return
	}

	appt, err := h.appointmentSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleAppointmentError(c, err)
		return
	}

	response.OK(c, appt)
}

// Delete DELETE /api/v1/appointments/:id
func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.appointmentSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleAppointmentError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AppointmentHandler) handleAppointmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAppointmentNotFound):
		response.NotFound(c, 17001, "appointment not found")
	case errors.Is(err, pkgerrors.ErrValidation):
		response.BadRequest(c, 17000, err.Error())
	default:
		response.FromError(c, err)
	}
}
