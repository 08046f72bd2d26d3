package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/service"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// HealthHandler serves health readings and their summaries.
type HealthHandler struct {
	healthSvc service.HealthService
}

func NewHealthHandler(healthSvc service.HealthService) *HealthHandler {
	return &HealthHandler{healthSvc: healthSvc}
}

// Types lists the supported reading types and their normal ranges.
// GET /api/v1/health/types
func (h *HealthHandler) Types(c *gin.Context) {
	response.OK(c, gin.H{"list": h.healthSvc.Types()})
}

// List GET /api/v1/health/readings?type=&limit=
func (h *HealthHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReadingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, 18000, err)
		return
	}

	items, err := h.healthSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleHealthError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// Create POST /api/v1/health/readings
func (h *HealthHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 18000, err)
		return
	}

	reading, err := h.healthSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleHealthError(c, err)
		return
	}

	response.Created(c, reading)
}

// Delete DELETE /api/v1/health/readings/:id
func (h *HealthHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.healthSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleHealthError(c, err)
		return
	}

	response.OK(c, nil)
}

// Latest returns the newest reading of each type.
// GET /api/v1/health/readings/latest
func (h *HealthHandler) Latest(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	latest, err := h.healthSvc.Latest(c.Request.Context(), userID)
	if err != nil {
		h.handleHealthError(c, err)
		return
	}

	response.OK(c, latest)
}

// Summary aggregates one type, or every type when none is given. A type
// with no reading in the window yields null.
// GET /api/v1/health/readings/summary?days=&type=
func (h *HealthHandler) Summary(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, 18000, err)
		return
	}

	if req.Type != "" {
		summary, err := h.healthSvc.Summarize(c.Request.Context(), userID, req.Type, req.Days)
		if err != nil {
			h.handleHealthError(c, err)
			return
		}
		response.OK(c, summary)
		return
	}

	all, err := h.healthSvc.SummarizeAll(c.Request.Context(), userID, req.Days)
	if err != nil {
		h.handleHealthError(c, err)
		return
	}

	response.OK(c, all)
}

func (h *HealthHandler) handleHealthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReadingNotFound):
		response.NotFound(c, 18001, "health reading not found")
	case errors.Is(err, service.ErrUnknownReadingType):
		response.BadRequest(c, 18002, "unknown reading type")
	case errors.Is(err, service.ErrSecondaryRequired):
		response.BadRequest(c, 18003, "value_secondary is required for this reading type")
	case errors.Is(err, pkgerrors.ErrValidation):
		response.BadRequest(c, 18000, err.Error())
	default:
		response.FromError(c, err)
	}
}
