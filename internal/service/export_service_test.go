package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/config"
	"github.com/mpcbarbosa/SeniorCare/internal/dto"
)

func TestExportService_AdherenceWorkbook(t *testing.T) {
	f := setupTestAdherenceService(config.TakePolicyOverwrite)
	svc := NewExportService(f.svc, f.clock, zap.NewNop())
	ctx := context.Background()
	med := f.addMedication(t, "u1", "Aspirin", dto.ScheduleInput{Time: "08:00", DaysOfWeek: strPtr("135")})
	if _, err := f.svc.MarkTaken(ctx, "u1", med.ID, &dto.TakeMedicationRequest{ScheduleID: strPtr(med.Schedules[0].ID), Date: "2024-03-04"}); err != nil {
		t.Fatal(err)
	}

	buf, filename, err := svc.AdherenceWorkbook(ctx, "u1", "2024-03-04", "2024-03-08")
	if err != nil {
		t.Fatal(err)
	}
	if filename != "adherence_2024-03-04_2024-03-08.xlsx" {
		t.Errorf("unexpected filename %s", filename)
	}

	wb, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(adherenceSheet)
	if err != nil {
		t.Fatal(err)
	}
	// header + Monday, Wednesday, Friday
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d: %v", len(rows), rows)
	}
	if rows[1][0] != "2024-03-04" || rows[1][4] != OccurrenceTaken {
		t.Errorf("expected Monday taken, got %v", rows[1])
	}
	if rows[2][0] != "2024-03-06" || rows[2][4] != OccurrencePending {
		t.Errorf("expected Wednesday pending, got %v", rows[2])
	}

	total, _ := wb.GetCellValue(summarySheet, "B3")
	if total != "3" {
		t.Errorf("expected 3 doses due, got %s", total)
	}
}

func TestExportService_RangeValidation(t *testing.T) {
	f := setupTestAdherenceService(config.TakePolicyOverwrite)
	svc := NewExportService(f.svc, f.clock, zap.NewNop())

	tests := []struct {
		name, from, to string
		want           error
	}{
		{"reversed", "2024-03-10", "2024-03-01", ErrExportRange},
		{"too long", "2024-01-01", "2024-02-01", ErrExportRange},
		{"bad date", "2024-13-01", "2024-03-01", errBadDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.AdherenceWorkbook(context.Background(), "u1", tt.from, tt.to); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, _, err := svc.AdherenceWorkbook(context.Background(), "u1", "2024-01-01", "2024-01-31"); err != nil {
		t.Errorf("31 days must be accepted, got %v", err)
	}
}
