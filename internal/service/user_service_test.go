package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
)

func setupTestUserService() (UserService, *mockRepos, *clock.Fixed) {
	repo, mocks := newMockRepository()
	clk := &clock.Fixed{At: time.Date(2024, 3, 6, 9, 30, 0, 0, time.UTC)}
	return NewUserService(repo, clk, zap.NewNop()), mocks, clk
}

func TestUserService_Profile(t *testing.T) {
	svc, mocks, _ := setupTestUserService()
	ctx := context.Background()
	_ = mocks.user.Create(ctx, &model.User{UserID: "u1", Name: "Maria", Phone: "+1", Language: "pt"})

	resp, err := svc.Profile(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Name != "Maria" {
		t.Errorf("expected Maria, got %s", resp.Name)
	}

	if _, err := svc.Profile(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Heartbeat(t *testing.T) {
	svc, mocks, clk := setupTestUserService()
	ctx := context.Background()
	_ = mocks.user.Create(ctx, &model.User{UserID: "u1", Name: "Maria", Phone: "+1"})

	if err := svc.Heartbeat(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	u := mocks.user.users["u1"]
	if u.LastActiveAt == nil || !u.LastActiveAt.Equal(clk.At) {
		t.Errorf("expected last_active_at %s, got %v", clk.At, u.LastActiveAt)
	}

	if err := svc.Heartbeat(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_LinkCaregiver(t *testing.T) {
	svc, mocks, _ := setupTestUserService()
	ctx := context.Background()
	_ = mocks.user.Create(ctx, &model.User{UserID: "u1", Name: "Maria", Phone: "+1"})
	_ = mocks.caregiver.Create(ctx, &model.Caregiver{CaregiverID: "cg1", Email: "ana@example.com", Name: "Ana"})

	resp, err := svc.LinkCaregiver(ctx, "u1", &dto.LinkCaregiverRequest{Email: " ANA@example.com ", Relationship: "daughter"})
	if err != nil {
		t.Fatalf("LinkCaregiver: %v", err)
	}
	if resp.Caregiver == nil || resp.Caregiver.ID != "cg1" || !resp.NotifyAlerts {
		t.Errorf("unexpected link %+v", resp)
	}

	if _, err := svc.LinkCaregiver(ctx, "u1", &dto.LinkCaregiverRequest{Email: "ana@example.com"}); !errors.Is(err, ErrAlreadyLinked) {
		t.Errorf("expected ErrAlreadyLinked, got %v", err)
	}
	if _, err := svc.LinkCaregiver(ctx, "u1", &dto.LinkCaregiverRequest{Email: "nobody@example.com"}); !errors.Is(err, ErrCaregiverNotFound) {
		t.Errorf("expected ErrCaregiverNotFound, got %v", err)
	}
}
