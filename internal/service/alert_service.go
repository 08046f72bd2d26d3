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
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

// ErrCaregiverNotLinked rejects alert configs naming a caregiver the user
// has not linked.
var ErrCaregiverNotLinked = fmt.Errorf("caregiver is not linked to this user: %w", pkgerrors.ErrValidation)

const defaultEmergencyMessage = "Emergency help requested"

// AlertService raises alerts and manages the user's alert configuration.
type AlertService interface {
	Emergency(ctx context.Context, userID string, req *dto.EmergencyRequest) (*dto.AlertResponse, error)
	// Raise stores an alert and dispatches it to the caregivers.
	Raise(ctx context.Context, userID, alertType, severity, message string) (*dto.AlertResponse, error)
	List(ctx context.Context, userID string) ([]dto.AlertResponse, error)
	// GetConfig returns the global config, creating the default one first
	// when the user has none.
	GetConfig(ctx context.Context, userID string) (*dto.AlertConfigResponse, error)
	UpdateConfig(ctx context.Context, userID string, req *dto.AlertConfigRequest) (*dto.AlertConfigResponse, error)
}

type alertService struct {
	repo       *repository.Repository
	dispatcher Dispatcher
	logger     *zap.Logger
}

func NewAlertService(repo *repository.Repository, dispatcher Dispatcher, logger *zap.Logger) AlertService {
	return &alertService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// ────────────────────── Alerts ──────────────────────

func (s *alertService) Emergency(ctx context.Context, userID string, req *dto.EmergencyRequest) (*dto.AlertResponse, error) {
	message := defaultString(strings.TrimSpace(req.Message), defaultEmergencyMessage)
	return s.Raise(ctx, userID, model.AlertEmergency, model.SeverityCritical, message)
}

func (s *alertService) Raise(ctx context.Context, userID, alertType, severity, message string) (*dto.AlertResponse, error) {
	alert := &model.Alert{
		UserID:   userID,
		Type:     alertType,
		Severity: severity,
		Message:  message,
	}
	if err := s.repo.Alert.Create(ctx, alert); err != nil {
		s.logger.Error("create alert failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	subject := "SeniorCare alert"
	if user, err := s.repo.User.GetByID(ctx, userID); err == nil {
		subject = fmt.Sprintf("SeniorCare alert for %s", user.Name)
	}
	s.dispatcher.Dispatch(ctx, Event{
		Type:          alertType,
		Severity:      severity,
		UserID:        userID,
		ReferenceType: "alert",
		ReferenceID:   alert.AlertID,
		Subject:       subject,
		Body:          message,
	})

	s.logger.Info("alert raised",
		zap.String("user_id", userID),
		zap.String("type", alertType),
		zap.String("severity", severity))
	return toAlertResponse(alert), nil
}

func (s *alertService) List(ctx context.Context, userID string) ([]dto.AlertResponse, error) {
	alerts, err := s.repo.Alert.ListByUser(ctx, userID, 50)
	if err != nil {
		s.logger.Error("list alerts failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		result = append(result, *toAlertResponse(&alerts[i]))
	}
	return result, nil
}

// ────────────────────── Config ──────────────────────

func (s *alertService) GetConfig(ctx context.Context, userID string) (*dto.AlertConfigResponse, error) {
	cfg, err := s.repo.Alert.GetGlobalConfig(ctx, userID)
	if err == nil {
		return toAlertConfigResponse(cfg), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("get alert config failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	cfg = model.DefaultAlertConfig(userID)
	if err := s.repo.Alert.CreateConfig(ctx, cfg); err != nil {
		s.logger.Error("create default alert config failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toAlertConfigResponse(cfg), nil
}

func (s *alertService) UpdateConfig(ctx context.Context, userID string, req *dto.AlertConfigRequest) (*dto.AlertConfigResponse, error) {
	caregiverIDs, err := s.linkedCaregivers(ctx, userID, req.CaregiverIDs)
	if err != nil {
		return nil, err
	}

	var saved *model.AlertConfig
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		cfg, err := txRepo.Alert.GetGlobalConfig(ctx, userID)
		creating := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !creating {
			return err
		}
		if creating {
			cfg = &model.AlertConfig{UserID: userID}
		}

		cfg.FirstAlertDelayMin = req.FirstAlertDelayMin
		cfg.SecondAlertDelayMin = req.SecondAlertDelayMin
		cfg.EscalationDelayMin = req.EscalationDelayMin
		cfg.NotifyUser = req.NotifyUser
		cfg.NotifyCaregivers = req.NotifyCaregivers
		cfg.NotifyViaPush = req.NotifyViaPush
		cfg.NotifyViaSMS = req.NotifyViaSMS
		cfg.NotifyViaEmail = req.NotifyViaEmail
		cfg.IsActive = req.IsActive

		if creating {
			err = txRepo.Alert.CreateConfig(ctx, cfg)
		} else {
			err = txRepo.Alert.UpdateConfig(ctx, cfg)
		}
		if err != nil {
			return err
		}
		if err := txRepo.Alert.ReplaceConfigCaregivers(ctx, cfg.AlertConfigID, caregiverIDs); err != nil {
			return err
		}

		cfg.Caregivers = make([]model.AlertConfigCaregiver, len(caregiverIDs))
		for i, id := range caregiverIDs {
			cfg.Caregivers[i] = model.AlertConfigCaregiver{AlertConfigID: cfg.AlertConfigID, CaregiverID: id, Position: i}
		}
		saved = cfg
		return nil
	})
	if err != nil {
		s.logger.Error("save alert config failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toAlertConfigResponse(saved), nil
}

// linkedCaregivers drops duplicates and checks every id is linked to userID.
func (s *alertService) linkedCaregivers(ctx context.Context, userID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	links, err := s.repo.Caregiver.ListLinksByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list caregiver links failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	linked := make(map[string]bool, len(links))
	for _, l := range links {
		linked[l.CaregiverID] = true
	}

	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !linked[id] {
			return nil, fmt.Errorf("%s: %w", id, ErrCaregiverNotLinked)
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

// ── helpers ──

func toAlertResponse(a *model.Alert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:         a.AlertID,
		UserID:     a.UserID,
		Type:       a.Type,
		Severity:   a.Severity,
		Message:    a.Message,
		ResolvedAt: dto.FormatTimePtr(a.ResolvedAt),
		ResolvedBy: a.ResolvedBy,
		CreatedAt:  dto.FormatTime(a.CreatedAt),
	}
}

func toAlertConfigResponse(c *model.AlertConfig) *dto.AlertConfigResponse {
	ids := make([]string, 0, len(c.Caregivers))
	for _, cg := range c.Caregivers {
		ids = append(ids, cg.CaregiverID)
	}
	return &dto.AlertConfigResponse{
		FirstAlertDelayMin:  c.FirstAlertDelayMin,
		SecondAlertDelayMin: c.SecondAlertDelayMin,
		EscalationDelayMin:  c.EscalationDelayMin,
		NotifyUser:          c.NotifyUser,
		NotifyCaregivers:    c.NotifyCaregivers,
		NotifyViaPush:       c.NotifyViaPush,
		NotifyViaSMS:        c.NotifyViaSMS,
		NotifyViaEmail:      c.NotifyViaEmail,
		IsActive:            c.IsActive,
		CaregiverIDs:        ids,
	}
}
