package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

func setupTestMedicationService() (MedicationService, *mockRepos) {
	repo, mocks := newMockRepository()
	return NewMedicationService(repo, wednesdayClock(), zap.NewNop()), mocks
}

func TestMedicationService_Create(t *testing.T) {
	svc, _ := setupTestMedicationService()

	med, err := svc.Create(context.Background(), "u1", &dto.CreateMedicationRequest{
		Name:      "  Aspirin ",
		Dosage:    "100mg",
		Schedules: []dto.ScheduleInput{{Time: "08:00", DaysOfWeek: strPtr("531")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if med.Name != "Aspirin" || med.Icon != "💊" || !med.IsActive || med.Version != 1 {
		t.Errorf("unexpected medication %+v", med)
	}
	if med.Schedules[0].DaysOfWeek != "135" {
		t.Errorf("expected normalized weekday set 135, got %s", med.Schedules[0].DaysOfWeek)
	}
}

func TestMedicationService_CreateValidation(t *testing.T) {
	svc, mocks := setupTestMedicationService()

	tests := []struct {
		name  string
		sched dto.ScheduleInput
	}{
		{"missing days", dto.ScheduleInput{Time: "08:00"}},
		{"bad weekday", dto.ScheduleInput{Time: "08:00", DaysOfWeek: strPtr("17")}},
		{"bad time", dto.ScheduleInput{Time: "25:00", DaysOfWeek: strPtr("1")}},
		{"unpadded time", dto.ScheduleInput{Time: "8:00", DaysOfWeek: strPtr("1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "u1", &dto.CreateMedicationRequest{
				Name: "Aspirin", Schedules: []dto.ScheduleInput{tt.sched},
			})
			if !errors.Is(err, pkgerrors.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
	if len(mocks.medication.meds) != 0 {
		t.Errorf("nothing should be stored, got %d", len(mocks.medication.meds))
	}
}

func TestMedicationService_EmptyWeekdaySetIsAllowed(t *testing.T) {
	svc, _ := setupTestMedicationService()

	med, err := svc.Create(context.Background(), "u1", &dto.CreateMedicationRequest{
		Name: "Paused", Schedules: []dto.ScheduleInput{{Time: "08:00", DaysOfWeek: strPtr("")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if med.Schedules[0].DaysOfWeek != "" {
		t.Errorf("expected empty set, got %q", med.Schedules[0].DaysOfWeek)
	}
}

func TestMedicationService_Update(t *testing.T) {
	svc, _ := setupTestMedicationService()
	ctx := context.Background()
	med, _ := svc.Create(ctx, "u1", &dto.CreateMedicationRequest{
		Name: "Aspirin", Schedules: []dto.ScheduleInput{{Time: "08:00", DaysOfWeek: strPtr("135")}},
	})

	newSchedules := []dto.ScheduleInput{
		{Time: "21:00", DaysOfWeek: strPtr("0123456")},
		{Time: "09:00", DaysOfWeek: strPtr("0123456")},
	}
	updated, err := svc.Update(ctx, "u1", med.ID, &dto.UpdateMedicationRequest{
		Dosage:    strPtr("200mg"),
		Schedules: &newSchedules,
		Version:   &med.Version,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Dosage != "200mg" || updated.Version != 2 {
		t.Errorf("unexpected update result %+v", updated)
	}
	if len(updated.Schedules) != 2 || updated.Schedules[0].Time != "09:00" {
		t.Errorf("expected schedules replaced and ordered by time, got %+v", updated.Schedules)
	}

	stale := 1
	if _, err := svc.Update(ctx, "u1", med.ID, &dto.UpdateMedicationRequest{Name: strPtr("X"), Version: &stale}); !errors.Is(err, ErrVersionMismatch) {
		t.Errorf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestMedicationService_ListHidesInactive(t *testing.T) {
	svc, _ := setupTestMedicationService()
	ctx := context.Background()
	a, _ := svc.Create(ctx, "u1", &dto.CreateMedicationRequest{Name: "A"})
	_, _ = svc.Create(ctx, "u1", &dto.CreateMedicationRequest{Name: "B"})
	_, _ = svc.Create(ctx, "u2", &dto.CreateMedicationRequest{Name: "C"})

	inactive := false
	if _, err := svc.Update(ctx, "u1", a.ID, &dto.UpdateMedicationRequest{IsActive: &inactive}); err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "B" {
		t.Errorf("expected only B, got %+v", list)
	}
}

func TestMedicationService_OwnershipChecks(t *testing.T) {
	svc, mocks := setupTestMedicationService()
	ctx := context.Background()
	med, _ := svc.Create(ctx, "u1", &dto.CreateMedicationRequest{Name: "Aspirin"})

	if _, err := svc.Get(ctx, "u2", med.ID); !errors.Is(err, ErrMedicationForbidden) {
		t.Errorf("Get: expected ErrMedicationForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, "u2", med.ID); !errors.Is(err, ErrMedicationForbidden) {
		t.Errorf("Delete: expected ErrMedicationForbidden, got %v", err)
	}
	if _, err := svc.Get(ctx, "u1", "missing"); !errors.Is(err, ErrMedicationNotFound) {
		t.Errorf("Get: expected ErrMedicationNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, "u1", med.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(mocks.medication.meds) != 0 {
		t.Error("expected the medication to be removed")
	}
}
