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
	ErrContactNotFound  = fmt.Errorf("contact not found: %w", pkgerrors.ErrNotFound)
	ErrActivityNotFound = fmt.Errorf("activity not found: %w", pkgerrors.ErrNotFound)
)

// ── contacts ──

type ContactService interface {
	List(ctx context.Context, userID string) ([]dto.ContactResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateContactRequest) (*dto.ContactResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type contactService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewContactService(repo *repository.Repository, logger *zap.Logger) ContactService {
	return &contactService{repo: repo, logger: logger}
}

func (s *contactService) List(ctx context.Context, userID string) ([]dto.ContactResponse, error) {
	contacts, err := s.repo.Contact.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list contacts failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		result = append(result, *toContactResponse(&contacts[i]))
	}
	return result, nil
}

func (s *contactService) Create(ctx context.Context, userID string, req *dto.CreateContactRequest) (*dto.ContactResponse, error) {
	contact := &model.Contact{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Relationship: req.Relationship,
		Avatar:       defaultString(req.Avatar, "👤"),
		IsEmergency:  req.IsEmergency,
		Priority:     req.Priority,
	}
	if err := s.repo.Contact.Create(ctx, contact); err != nil {
		s.logger.Error("create contact failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toContactResponse(contact), nil
}

// Delete treats another user's contact as not found.
func (s *contactService) Delete(ctx context.Context, userID, id string) error {
	contact, err := s.repo.Contact.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		s.logger.Error("get contact failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if contact.UserID != userID {
		return ErrContactNotFound
	}
	if err := s.repo.Contact.Delete(ctx, id); err != nil {
		s.logger.Error("delete contact failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toContactResponse(c *model.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:           c.ContactID,
		Name:         c.Name,
		Phone:        c.Phone,
		Relationship: c.Relationship,
		Avatar:       c.Avatar,
		IsEmergency:  c.IsEmergency,
		Priority:     c.Priority,
	}
}

// ── activities ──

type ActivityService interface {
	// Today lists the activities whose weekday set contains today, ordered
	// by time with untimed activities last.
	Today(ctx context.Context, userID string) ([]dto.ActivityResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type activityService struct {
	repo   *repository.Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewActivityService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, clock: clk, logger: logger}
}

func (s *activityService) Today(ctx context.Context, userID string) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.Activity.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list activities failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	weekday := clock.Today(s.clock).Weekday()
	result := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		if activities[i].DaysOfWeek.Contains(weekday) {
			result = append(result, *toActivityResponse(&activities[i]))
		}
	}
	return result, nil
}

func (s *activityService) Create(ctx context.Context, userID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	days, err := parseDays(req.DaysOfWeek)
	if err != nil {
		return nil, err
	}
	if req.Time != nil {
		if _, _, err := model.ParseTimeOfDay(*req.Time); err != nil {
			return nil, wrapValidation(err)
		}
	}

	activity := &model.Activity{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		TimeOfDay:   req.Time,
		Icon:        defaultString(req.Icon, "📋"),
		Category:    req.Category,
		DaysOfWeek:  days,
	}
	if err := s.repo.Activity.Create(ctx, activity); err != nil {
		s.logger.Error("create activity failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toActivityResponse(activity), nil
}

func (s *activityService) Delete(ctx context.Context, userID, id string) error {
	activity, err := s.repo.Activity.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		s.logger.Error("get activity failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if activity.UserID != userID {
		return ErrActivityNotFound
	}
	if err := s.repo.Activity.Delete(ctx, id); err != nil {
		s.logger.Error("delete activity failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toActivityResponse(a *model.Activity) *dto.ActivityResponse {
	return &dto.ActivityResponse{
		ID:          a.ActivityID,
		Title:       a.Title,
		Description: a.Description,
		Time:        a.TimeOfDay,
		Icon:        a.Icon,
		Category:    a.Category,
		DaysOfWeek:  a.DaysOfWeek.String(),
	}
}
