package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

// Wednesday 2024-03-06.
func wednesdayClock() *clock.Fixed {
	return &clock.Fixed{At: time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)}
}

// ── contacts ──

func TestContactService(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewContactService(repo, zap.NewNop())
	ctx := context.Background()

	low, _ := svc.Create(ctx, "u1", &dto.CreateContactRequest{Name: "Neighbour", Phone: "1", Priority: 1})
	_, _ = svc.Create(ctx, "u1", &dto.CreateContactRequest{Name: "Son", Phone: "2", Priority: 10, IsEmergency: true})

	list, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Name != "Son" || list[1].Avatar != "👤" {
		t.Errorf("expected priority order with default avatar, got %+v", list)
	}

	if err := svc.Delete(ctx, "u2", low.ID); !errors.Is(err, ErrContactNotFound) {
		t.Errorf("expected ErrContactNotFound for another user, got %v", err)
	}
	if err := svc.Delete(ctx, "u1", low.ID); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

// ── activities ──

func TestActivityService_Today(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewActivityService(repo, wednesdayClock(), zap.NewNop())
	ctx := context.Background()

	mustCreate := func(title string, at *string, days string) {
		if _, err := svc.Create(ctx, "u1", &dto.CreateActivityRequest{Title: title, Time: at, DaysOfWeek: strPtr(days)}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	mustCreate("Read", nil, "0123456")
	mustCreate("Walk", strPtr("17:00"), "135")
	mustCreate("Swim", strPtr("09:00"), "24")
	mustCreate("Breakfast", strPtr("08:00"), "3")

	today, err := svc.Today(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	var titles []string
	for _, a := range today {
		titles = append(titles, a.Title)
	}
	want := []string{"Breakfast", "Walk", "Read"}
	if len(titles) != len(want) {
		t.Fatalf("expected %v, got %v", want, titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("expected %v, got %v", want, titles)
			break
		}
	}
	if today[0].Icon != "📋" {
		t.Errorf("expected default icon, got %q", today[0].Icon)
	}
}

func TestActivityService_CreateValidation(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewActivityService(repo, wednesdayClock(), zap.NewNop())

	if _, err := svc.Create(context.Background(), "u1", &dto.CreateActivityRequest{Title: "Walk"}); !errors.Is(err, errMissingDays) {
		t.Errorf("expected errMissingDays, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", &dto.CreateActivityRequest{Title: "Walk", Time: strPtr("7pm"), DaysOfWeek: strPtr("1")}); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

// ── appointments ──

func TestAppointmentService(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewAppointmentService(repo, wednesdayClock(), zap.NewNop())
	ctx := context.Background()

	create := func(title, date string, at *string) *dto.AppointmentResponse {
		a, err := svc.Create(ctx, "u1", &dto.CreateAppointmentRequest{Title: title, Date: date, Time: at})
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		return a
	}
	past := create("Dentist", "2024-03-01", strPtr("10:00"))
	create("Cardiology", "2024-03-10", nil)
	create("Eyes", "2024-03-10", strPtr("09:30"))
	done := create("Bloods", "2024-03-07", strPtr("08:00"))

	if past.ReminderHoursBefore != 24 || past.Status != "scheduled" {
		t.Errorf("unexpected defaults %+v", past)
	}

	completed := "completed"
	if _, err := svc.Update(ctx, "u1", done.ID, &dto.UpdateAppointmentRequest{Status: &completed}); err != nil {
		t.Fatal(err)
	}

	upcoming, err := svc.Upcoming(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 2 || upcoming[0].Title != "Eyes" || upcoming[1].Title != "Cardiology" {
		t.Errorf("expected [Eyes Cardiology], got %+v", upcoming)
	}

	scheduled, _ := svc.List(ctx, "u1", "")
	all, _ := svc.List(ctx, "u1", "all")
	onlyDone, _ := svc.List(ctx, "u1", "completed")
	if len(scheduled) != 3 || len(all) != 4 || len(onlyDone) != 1 {
		t.Errorf("unexpected filter sizes scheduled=%d all=%d completed=%d", len(scheduled), len(all), len(onlyDone))
	}

	if _, err := svc.Update(ctx, "u2", done.ID, &dto.UpdateAppointmentRequest{Status: &completed}); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("expected ErrAppointmentNotFound for another user, got %v", err)
	}
	if err := svc.Delete(ctx, "u1", past.ID); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestAppointmentService_Validation(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewAppointmentService(repo, wednesdayClock(), zap.NewNop())

	if _, err := svc.Create(context.Background(), "u1", &dto.CreateAppointmentRequest{Title: "X", Date: "10/03/2024"}); !errors.Is(err, errBadDate) {
		t.Errorf("expected errBadDate, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", &dto.CreateAppointmentRequest{Title: "X", Date: "2024-03-10", Time: strPtr("24:30")}); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
