package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/service"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

const (
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	calendarContentType = "text/calendar; charset=utf-8"
)

// ExportHandler serves file downloads: the adherence workbook and the
// calendar feed.
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// Adherence downloads the dose history between two days.
// GET /api/v1/medications/adherence/export?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ExportHandler) Adherence(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AdherenceExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, 13100, err)
		return
	}

	buf, filename, err := h.exportSvc.AdherenceWorkbook(c.Request.Context(), userID, req.From, req.To)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Calendar serves appointments and medication times as iCalendar.
// GET /api/v1/calendar.ics
func (h *ExportHandler) Calendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	feed, err := h.calendarSvc.Feed(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=seniorcare.ics")
	c.Data(http.StatusOK, calendarContentType, []byte(feed))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportRange):
		response.BadRequest(c, 13101, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.FromError(c, err)
	}
}
