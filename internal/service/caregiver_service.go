package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

var (
	ErrNoAccess      = fmt.Errorf("no access to this user: %w", pkgerrors.ErrForbidden)
	ErrAlertNotFound = fmt.Errorf("alert not found: %w", pkgerrors.ErrNotFound)
	ErrAlertResolved = fmt.Errorf("alert already resolved: %w", pkgerrors.ErrConflict)
)

// CaregiverService is the caregiver-side view of linked users.
type CaregiverService interface {
	ListUsers(ctx context.Context, caregiverID string) ([]dto.CaregiverLinkResponse, error)
	// Summary fails with ErrNoAccess unless the caregiver is linked to userID.
	Summary(ctx context.Context, caregiverID, userID string) (*dto.CaregiverSummaryResponse, error)
	MedicationsToday(ctx context.Context, caregiverID, userID string) ([]dto.OccurrenceStatus, error)
	ResolveAlert(ctx context.Context, caregiverID, alertID string) (*dto.AlertResponse, error)
}

type caregiverService struct {
	repo      *repository.Repository
	adherence AdherenceService
	clock     clock.Clock
	logger    *zap.Logger
}

func NewCaregiverService(repo *repository.Repository, adherence AdherenceService, clk clock.Clock, logger *zap.Logger) CaregiverService {
	return &caregiverService{repo: repo, adherence: adherence, clock: clk, logger: logger}
}

func (s *caregiverService) ListUsers(ctx context.Context, caregiverID string) ([]dto.CaregiverLinkResponse, error) {
	links, err := s.repo.Caregiver.ListLinksByCaregiver(ctx, caregiverID)
	if err != nil {
		s.logger.Error("list linked users failed", zap.String("caregiver_id", caregiverID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CaregiverLinkResponse, 0, len(links))
	for _, l := range links {
		item := dto.CaregiverLinkResponse{
			Relationship: l.Relationship,
			IsPrimary:    l.IsPrimary,
			NotifyAlerts: l.NotifyAlerts,
		}
		if l.User != nil {
			item.User = toUserResponse(l.User)
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *caregiverService) Summary(ctx context.Context, caregiverID, userID string) (*dto.CaregiverSummaryResponse, error) {
	if err := s.checkAccess(ctx, caregiverID, userID); err != nil {
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("get user failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	today := clock.Today(s.clock)
	doses, err := s.adherence.StatusOn(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	taken := 0
	for _, d := range doses {
		if d.Taken {
			taken++
		}
	}

	pending, err := s.repo.Alert.CountUnresolved(ctx, userID)
	if err != nil {
		s.logger.Error("count alerts failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	summary := &dto.CaregiverSummaryResponse{
		User:             *toUserResponse(user),
		Date:             today.Format(dto.DateLayout),
		MedicationsToday: dto.MedicationCount{Taken: taken, Total: len(doses)},
		PendingAlerts:    pending,
	}

	mood, err := s.repo.Mood.Latest(ctx, userID)
	switch {
	case err == nil:
		summary.LastMood = toMoodLogResponse(mood)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Error("get last mood failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return summary, nil
}

func (s *caregiverService) MedicationsToday(ctx context.Context, caregiverID, userID string) ([]dto.OccurrenceStatus, error) {
	if err := s.checkAccess(ctx, caregiverID, userID); err != nil {
		return nil, err
	}
	return s.adherence.Today(ctx, userID)
}

func (s *caregiverService) ResolveAlert(ctx context.Context, caregiverID, alertID string) (*dto.AlertResponse, error) {
	alert, err := s.repo.Alert.GetByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		s.logger.Error("get alert failed", zap.String("alert_id", alertID), zap.Error(err))
		return nil, err
	}
	if err := s.checkAccess(ctx, caregiverID, alert.UserID); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	ok, err := s.repo.Alert.Resolve(ctx, alertID, caregiverID, now)
	if err != nil {
		s.logger.Error("resolve alert failed", zap.String("alert_id", alertID), zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrAlertResolved
	}

	alert.ResolvedAt = &now
	alert.ResolvedBy = &caregiverID
	s.logger.Info("alert resolved", zap.String("alert_id", alertID), zap.String("caregiver_id", caregiverID))
	return toAlertResponse(alert), nil
}

func (s *caregiverService) checkAccess(ctx context.Context, caregiverID, userID string) error {
	_, err := s.repo.Caregiver.GetLink(ctx, caregiverID, userID)
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoAccess
	}
	s.logger.Error("check caregiver access failed", zap.Error(err))
	return err
}
