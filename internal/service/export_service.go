package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

// ── export errors ──

var (
	ErrExportRange        = fmt.Errorf("export range must be 1 to %d days with from <= to: %w", maxExportDays, pkgerrors.ErrValidation)
	ErrExportGenerateFail = errors.New("failed to generate the workbook")
)

const (
	maxExportDays    = 31
	adherenceSheet   = "Adherence"
	summarySheet     = "Summary"
	exportTimeLayout = "2006-01-02 15:04"
)

// ExportService renders adherence history as an Excel workbook. The buffer
// is returned so the handler can set the download headers.
type ExportService interface {
	// AdherenceWorkbook lists every due dose between from and to inclusive.
	AdherenceWorkbook(ctx context.Context, userID, from, to string) (*bytes.Buffer, string, error)
}

type exportService struct {
	adherence AdherenceService
	clock     clock.Clock
	logger    *zap.Logger
}

func NewExportService(adherence AdherenceService, clk clock.Clock, logger *zap.Logger) ExportService {
	return &exportService{adherence: adherence, clock: clk, logger: logger}
}

func (s *exportService) AdherenceWorkbook(ctx context.Context, userID, from, to string) (*bytes.Buffer, string, error) {
	loc := s.clock.Location()
	start, err := time.ParseInLocation(dto.DateLayout, from, loc)
	if err != nil {
		return nil, "", errBadDate
	}
	end, err := time.ParseInLocation(dto.DateLayout, to, loc)
	if err != nil {
		return nil, "", errBadDate
	}
	if end.Before(start) || end.After(start.AddDate(0, 0, maxExportDays-1)) {
		return nil, "", ErrExportRange
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(adherenceSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	widths := []float64{12, 8, 24, 14, 10, 18}
	for i, w := range widths {
		f.SetColWidth(adherenceSheet, colName(i), colName(i), w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Date", "Time", "Medication", "Dosage", "Status", "Taken At"}
	for i, h := range headers {
		f.SetCellValue(adherenceSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(adherenceSheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	counts := make(map[string]int)
	total := 0
	row := 2
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		entries, err := s.adherence.StatusOn(ctx, userID, day)
		if err != nil {
			return nil, "", err
		}
		for _, e := range entries {
			f.SetCellValue(adherenceSheet, cell("A", row), day.Format(dto.DateLayout))
			f.SetCellValue(adherenceSheet, cell("B", row), e.Time)
			f.SetCellValue(adherenceSheet, cell("C", row), e.Name)
			f.SetCellValue(adherenceSheet, cell("D", row), e.Dosage)
			f.SetCellValue(adherenceSheet, cell("E", row), e.Status)
			if e.TakenAt != nil {
				if t, err := time.Parse(time.RFC3339, *e.TakenAt); err == nil {
					f.SetCellValue(adherenceSheet, cell("F", row), t.In(loc).Format(exportTimeLayout))
				}
			}
			counts[e.Status]++
			total++
			row++
		}
	}

	// ── summary sheet ──
	f.NewSheet(summarySheet)
	f.SetColWidth(summarySheet, "A", "A", 16)
	f.SetColWidth(summarySheet, "B", "B", 12)
	f.SetCellValue(summarySheet, "A1", "From")
	f.SetCellValue(summarySheet, "B1", from)
	f.SetCellValue(summarySheet, "A2", "To")
	f.SetCellValue(summarySheet, "B2", to)
	f.SetCellValue(summarySheet, "A3", "Doses due")
	f.SetCellValue(summarySheet, "B3", total)
	summaryRow := 4
	for _, status := range []string{OccurrenceTaken, OccurrenceMissed, OccurrencePending, OccurrenceSkipped} {
		f.SetCellValue(summarySheet, cell("A", summaryRow), status)
		f.SetCellValue(summarySheet, cell("B", summaryRow), counts[status])
		summaryRow++
	}
	rate := 0.0
	if total > 0 {
		rate = float64(counts[OccurrenceTaken]) / float64(total)
	}
	f.SetCellValue(summarySheet, cell("A", summaryRow), "Adherence")
	f.SetCellValue(summarySheet, cell("B", summaryRow), rate)
	pct, _ := f.NewStyle(&excelize.Style{NumFmt: 10})
	f.SetCellStyle(summarySheet, cell("B", summaryRow), cell("B", summaryRow), pct)
	f.SetCellStyle(summarySheet, "A1", cell("A", summaryRow), headerStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.String("user_id", userID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("adherence_%s_%s.xlsx", from, to)
	return buf, filename, nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
