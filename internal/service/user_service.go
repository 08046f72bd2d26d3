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

var (
	ErrUserNotFound      = fmt.Errorf("user not found: %w", pkgerrors.ErrNotFound)
	ErrCaregiverNotFound = fmt.Errorf("caregiver not found: %w", pkgerrors.ErrNotFound)
	ErrAlreadyLinked     = fmt.Errorf("caregiver already linked: %w", pkgerrors.ErrConflict)
)

// UserService covers the user's own profile and caregiver links.
type UserService interface {
	Profile(ctx context.Context, userID string) (*dto.UserResponse, error)
	// Heartbeat stamps last_active_at with the current time.
	Heartbeat(ctx context.Context, userID string) error
	LinkCaregiver(ctx context.Context, userID string, req *dto.LinkCaregiverRequest) (*dto.CaregiverLinkResponse, error)
}

type userService struct {
	repo   *repository.Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewUserService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) UserService {
	return &userService{repo: repo, clock: clk, logger: logger}
}

func (s *userService) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("get user failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) Heartbeat(ctx context.Context, userID string) error {
	if err := s.repo.User.TouchLastActive(ctx, userID, s.clock.Now().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("heartbeat failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) LinkCaregiver(ctx context.Context, userID string, req *dto.LinkCaregiverRequest) (*dto.CaregiverLinkResponse, error) {
	cg, err := s.repo.Caregiver.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaregiverNotFound
		}
		s.logger.Error("lookup caregiver failed", zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.Caregiver.GetLink(ctx, cg.CaregiverID, userID); err == nil {
		return nil, ErrAlreadyLinked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup caregiver link failed", zap.Error(err))
		return nil, err
	}

	link := &model.CaregiverUser{
		CaregiverID:  cg.CaregiverID,
		UserID:       userID,
		Relationship: req.Relationship,
		IsPrimary:    req.IsPrimary,
		NotifyAlerts: true,
	}
	if err := s.repo.Caregiver.CreateLink(ctx, link); err != nil {
		s.logger.Error("create caregiver link failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("caregiver linked",
		zap.String("user_id", userID),
		zap.String("caregiver_id", cg.CaregiverID))

	return &dto.CaregiverLinkResponse{
		Caregiver:    toCaregiverResponse(cg),
		Relationship: link.Relationship,
		IsPrimary:    link.IsPrimary,
		NotifyAlerts: link.NotifyAlerts,
	}, nil
}
