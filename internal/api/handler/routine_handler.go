package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/service"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// RoutineHandler serves contacts and the recurring daily activities.
type RoutineHandler struct {
	contactSvc  service.ContactService
	activitySvc service.ActivityService
}

func NewRoutineHandler(contactSvc service.ContactService, activitySvc service.ActivityService) *RoutineHandler {
	return &RoutineHandler{contactSvc: contactSvc, activitySvc: activitySvc}
}

// ── contacts ──

// ListContacts GET /api/v1/contacts
func (h *RoutineHandler) ListContacts(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	items, err := h.contactSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleRoutineError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// CreateContact POST /api/v1/contacts
func (h *RoutineHandler) CreateContact(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 15000, err)
		return
	}

	contact, err := h.contactSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleRoutineError(c, err)
		return
	}

	response.Created(c, contact)
}

// DeleteContact DELETE /api/v1/contacts/:id
func (h *RoutineHandler) DeleteContact(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.contactSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleRoutineError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── activities ──

// TodayActivities GET /api/v1/activities
func (h *RoutineHandler) TodayActivities(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	items, err := h.activitySvc.Today(c.Request.Context(), userID)
	if err != nil {
		h.handleRoutineError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// CreateActivity POST /api/v1/activities
func (h *RoutineHandler) CreateActivity(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 15000, err)
		return
	}

	activity, err := h.activitySvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleRoutineError(c, err)
		return
	}

	response.Created(c, activity)
}

// DeleteActivity DELETE /api/v1/activities/:id
func (h *RoutineHandler) DeleteActivity(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.activitySvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleRoutineError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *RoutineHandler) handleRoutineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrContactNotFound):
		response.NotFound(c, 15001, "contact not found")
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 15002, "activity not found")
	case errors.Is(err, pkgerrors.ErrValidation):
		response.BadRequest(c, 15000, err.Error())
	default:
		response.FromError(c, err)
	}
}
