package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/config"
	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
	"github.com/mpcbarbosa/SeniorCare/pkg/jwt"
)

// ── auth errors ──

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", pkgerrors.ErrUnauthorized)
	ErrPhoneTaken         = fmt.Errorf("phone already registered: %w", pkgerrors.ErrConflict)
	ErrEmailTaken         = fmt.Errorf("email already registered: %w", pkgerrors.ErrConflict)
)

// TokenRevoker stores revoked token IDs. The Redis client satisfies it.
type TokenRevoker interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService registers and logs in users (PIN) and caregivers (password).
type AuthService interface {
	RegisterUser(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	LoginUser(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RegisterCaregiver(ctx context.Context, req *dto.CaregiverRegisterRequest) (*dto.TokenResponse, error)
	LoginCaregiver(ctx context.Context, req *dto.CaregiverLoginRequest) (*dto.TokenResponse, error)
	// Logout revokes the token until its expiry. Without a revoker it is a no-op.
	Logout(ctx context.Context, claims *jwt.Claims) error
}

type authService struct {
	cfg     *config.Config
	repo    *repository.Repository
	jwtMgr  *jwt.Manager
	revoker TokenRevoker
	logger  *zap.Logger
}

func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	revoker TokenRevoker,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:     cfg,
		repo:    repo,
		jwtMgr:  jwtMgr,
		revoker: revoker,
		logger:  logger,
	}
}

// ────────────────────── Users ──────────────────────

func (s *authService) RegisterUser(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	phone := strings.TrimSpace(req.Phone)
	if _, err := s.repo.User.GetByPhone(ctx, phone); err == nil {
		return nil, ErrPhoneTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup user by phone failed", zap.Error(err))
		return nil, err
	}

	wake, sleep := defaultString(req.WakeTime, "08:00"), defaultString(req.SleepTime, "22:00")
	for _, v := range []string{wake, sleep} {
		if _, _, err := model.ParseTimeOfDay(v); err != nil {
			return nil, wrapValidation(err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), s.cfg.Auth.BcryptCost)
	if err != nil {
		s.logger.Error("hash pin failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:      strings.TrimSpace(req.Name),
		Phone:     phone,
		PinHash:   string(hash),
		Language:  defaultString(req.Language, "pt"),
		WakeTime:  wake,
		SleepTime: sleep,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}

	return s.userToken(user)
}

func (s *authService) LoginUser(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	var (
		user *model.User
		err  error
	)
	if req.UserID != "" {
		user, err = s.repo.User.GetByID(ctx, req.UserID)
	} else {
		user, err = s.repo.User.GetByPhone(ctx, strings.TrimSpace(req.Phone))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("lookup user failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(req.PIN)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.userToken(user)
}

// ────────────────────── Caregivers ──────────────────────

func (s *authService) RegisterCaregiver(ctx context.Context, req *dto.CaregiverRegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.repo.Caregiver.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup caregiver by email failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.Auth.BcryptCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	cg := &model.Caregiver{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         defaultString(req.Role, model.CaregiverFamily),
	}
	if err := s.repo.Caregiver.Create(ctx, cg); err != nil {
		s.logger.Error("create caregiver failed", zap.Error(err))
		return nil, err
	}

	return s.caregiverToken(cg)
}

func (s *authService) LoginCaregiver(ctx context.Context, req *dto.CaregiverLoginRequest) (*dto.TokenResponse, error) {
	cg, err := s.repo.Caregiver.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("lookup caregiver failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cg.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.caregiverToken(cg)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.revoker == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("blacklist token failed", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *authService) userToken(user *model.User) (*dto.TokenResponse, error) {
	token, err := s.jwtMgr.GenerateAccessToken(user.UserID, string(model.SubjectUser))
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:        toUserResponse(user),
	}, nil
}

func (s *authService) caregiverToken(cg *model.Caregiver) (*dto.TokenResponse, error) {
	token, err := s.jwtMgr.GenerateAccessToken(cg.CaregiverID, string(model.SubjectCaregiver))
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Caregiver:   toCaregiverResponse(cg),
	}, nil
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           u.UserID,
		Name:         u.Name,
		Phone:        u.Phone,
		Language:     u.Language,
		WakeTime:     u.WakeTime,
		SleepTime:    u.SleepTime,
		LastActiveAt: dto.FormatTimePtr(u.LastActiveAt),
		CreatedAt:    dto.FormatTime(u.CreatedAt),
	}
}

func toCaregiverResponse(c *model.Caregiver) *dto.CaregiverResponse {
	return &dto.CaregiverResponse{
		ID:    c.CaregiverID,
		Email: c.Email,
		Name:  c.Name,
		Phone: c.Phone,
		Role:  c.Role,
	}
}
