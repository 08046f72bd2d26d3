package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/service"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// MedicationHandler serves medications and the daily adherence view.
type MedicationHandler struct {
	medicationSvc service.MedicationService
	adherenceSvc  service.AdherenceService
}

func NewMedicationHandler(medicationSvc service.MedicationService, adherenceSvc service.AdherenceService) *MedicationHandler {
	return &MedicationHandler{medicationSvc: medicationSvc, adherenceSvc: adherenceSvc}
}

// List returns the active medications.
// GET /api/v1/medications
func (h *MedicationHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	items, err := h.medicationSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleMedicationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// Create adds a medication with its schedules.
// POST /api/v1/medications
func (h *MedicationHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 13000, err)
		return
	}

	med, err := h.medicationSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleMedicationError(c, err)
		return
	}

	response.Created(c, med)
}

// Get returns one medication.
// GET /api/v1/medications/:id
func (h *MedicationHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	med, err := h.medicationSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleMedicationError(c, err)
		return
	}

	response.OK(c, med)
}

// Update patches a medication. A schedules array replaces all schedules.
// PUT /api/v1/medications/:id
func (h *MedicationHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 13000, err)
		return
	}

	med, err := h.medicationSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleMedicationError(c, err)
		return
	}

	response.OK(c, med)
}

// Delete removes a medication and its history.
// DELETE /api/v1/medications/:id
func (h *MedicationHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.medicationSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleMedicationError(c, err)
		return
	}

	response.OK(c, nil)
}

// Today lists the doses due on a day with their status.
// GET /api/v1/medications/today?date=YYYY-MM-DD
func (h *MedicationHandler) Today(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.TodayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, 13000, err)
		return
	}

	items, err := h.adherenceSvc.StatusOnDay(c.Request.Context(), userID, req.Date)
	if err != nil {
		h.handleMedicationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// Take marks one dose as taken.
// POST /api/v1/medications/:id/take
func (h *MedicationHandler) Take(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.TakeMedicationRequest
	// An empty body means "the unscheduled dose, now".
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, 13000, err)
			return
		}
	}

	entry, err := h.adherenceSvc.MarkTaken(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleMedicationError(c, err)
		return
	}

	response.OK(c, entry)
}

func (h *MedicationHandler) handleMedicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMedicationNotFound):
		response.NotFound(c, 13001, "medication not found")
	case errors.Is(err, service.ErrMedicationForbidden):
		response.Forbidden(c, 13002, "medication belongs to another user")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13003, "schedule not found for this medication")
	case errors.Is(err, service.ErrVersionMismatch):
		response.Conflict(c, 13004, "medication was modified, reload and retry")
	case errors.Is(err, service.ErrIntakeAlreadyTaken):
		response.Conflict(c, 13005, "dose already marked as taken")
	case errors.Is(err, pkgerrors.ErrValidation):
		response.BadRequest(c, 13000, err.Error())
	default:
		response.FromError(c, err)
	}
}
