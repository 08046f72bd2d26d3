package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

// ── medication errors ──

var (
	ErrMedicationNotFound  = fmt.Errorf("medication not found: %w", pkgerrors.ErrNotFound)
	ErrMedicationForbidden = fmt.Errorf("medication belongs to another user: %w", pkgerrors.ErrForbidden)
	ErrScheduleNotFound    = fmt.Errorf("schedule not found for this medication: %w", pkgerrors.ErrNotFound)
	ErrVersionMismatch     = fmt.Errorf("medication version mismatch: %w", pkgerrors.ErrOptimisticLock)
)

// MedicationService manages a user's medications and their schedules.
type MedicationService interface {
	Create(ctx context.Context, userID string, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error)
	Get(ctx context.Context, userID, id string) (*dto.MedicationResponse, error)
	// List returns the active medications in insertion order.
	List(ctx context.Context, userID string) ([]dto.MedicationResponse, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateMedicationRequest) (*dto.MedicationResponse, error)
	// Delete removes the medication with its schedules and intake history.
	Delete(ctx context.Context, userID, id string) error
}

type medicationService struct {
	repo   *repository.Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewMedicationService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) MedicationService {
	return &medicationService{repo: repo, clock: clk, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *medicationService) Create(ctx context.Context, userID string, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error) {
	schedules, err := buildSchedules(req.Schedules)
	if err != nil {
		return nil, err
	}

	med := &model.Medication{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Dosage:       req.Dosage,
		Instructions: req.Instructions,
		Icon:         defaultString(req.Icon, "💊"),
		IsActive:     true,
		Schedules:    schedules,
	}
	if err := s.repo.Medication.Create(ctx, med); err != nil {
		s.logger.Error("create medication failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toMedicationResponse(med), nil
}

// ────────────────────── Get / List ──────────────────────

func (s *medicationService) Get(ctx context.Context, userID, id string) (*dto.MedicationResponse, error) {
	med, err := ownedMedication(ctx, s.repo, s.logger, userID, id)
	if err != nil {
		return nil, err
	}
	return toMedicationResponse(med), nil
}

func (s *medicationService) List(ctx context.Context, userID string) ([]dto.MedicationResponse, error) {
	meds, err := s.repo.Medication.ListByUser(ctx, userID, true)
	if err != nil {
		s.logger.Error("list medications failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MedicationResponse, 0, len(meds))
	for i := range meds {
		result = append(result, *toMedicationResponse(&meds[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *medicationService) Update(ctx context.Context, userID, id string, req *dto.UpdateMedicationRequest) (*dto.MedicationResponse, error) {
	var schedules []model.MedicationSchedule
	if req.Schedules != nil {
		var err error
		if schedules, err = buildSchedules(*req.Schedules); err != nil {
			return nil, err
		}
	}

	med, err := ownedMedication(ctx, s.repo, s.logger, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != med.Version {
		return nil, ErrVersionMismatch
	}

	if req.Name != nil {
		med.Name = strings.TrimSpace(*req.Name)
	}
	if req.Dosage != nil {
		med.Dosage = *req.Dosage
	}
	if req.Instructions != nil {
		med.Instructions = *req.Instructions
	}
	if req.Icon != nil {
		med.Icon = *req.Icon
	}
	if req.IsActive != nil {
		med.IsActive = *req.IsActive
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Medication.Update(ctx, med); err != nil {
			return err
		}
		if req.Schedules != nil {
			return txRepo.Medication.SyncSchedules(ctx, med.MedicationID, schedules, s.clock.Now())
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("update medication failed", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	updated, err := s.repo.Medication.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("reload medication failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toMedicationResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *medicationService) Delete(ctx context.Context, userID, id string) error {
	if _, err := ownedMedication(ctx, s.repo, s.logger, userID, id); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		return txRepo.Medication.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMedicationNotFound
		}
		s.logger.Error("delete medication failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("medication deleted", zap.String("user_id", userID), zap.String("id", id))
	return nil
}

// ── helpers ──

// ownedMedication loads a medication and checks it belongs to userID.
func ownedMedication(ctx context.Context, repo *repository.Repository, logger *zap.Logger, userID, id string) (*model.Medication, error) {
	med, err := repo.Medication.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMedicationNotFound
		}
		logger.Error("get medication failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if med.UserID != userID {
		return nil, ErrMedicationForbidden
	}
	return med, nil
}

func buildSchedules(in []dto.ScheduleInput) ([]model.MedicationSchedule, error) {
	out := make([]model.MedicationSchedule, 0, len(in))
	for _, si := range in {
		if _, _, err := model.ParseTimeOfDay(si.Time); err != nil {
			return nil, wrapValidation(err)
		}
		days, err := parseDays(si.DaysOfWeek)
		if err != nil {
			return nil, err
		}
		out = append(out, model.MedicationSchedule{TimeOfDay: si.Time, DaysOfWeek: days})
	}
	return out, nil
}

func toMedicationResponse(m *model.Medication) *dto.MedicationResponse {
	schedules := make([]dto.ScheduleResponse, 0, len(m.Schedules))
	for _, sc := range m.Schedules {
		schedules = append(schedules, dto.ScheduleResponse{
			ID:         sc.ScheduleID,
			Time:       sc.TimeOfDay,
			DaysOfWeek: sc.DaysOfWeek.String(),
		})
	}
	return &dto.MedicationResponse{
		ID:           m.MedicationID,
		Name:         m.Name,
		Dosage:       m.Dosage,
		Instructions: m.Instructions,
		Icon:         m.Icon,
		IsActive:     m.IsActive,
		Version:      m.Version,
		Schedules:    schedules,
		CreatedAt:    dto.FormatTime(m.CreatedAt),
		UpdatedAt:    dto.FormatTime(m.UpdatedAt),
	}
}
