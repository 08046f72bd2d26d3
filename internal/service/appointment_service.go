package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

var ErrAppointmentNotFound = fmt.Errorf("appointment not found: %w", pkgerrors.ErrNotFound)

const (
	statusFilterAll            = "all"
	defaultReminderHoursBefore = 24
	upcomingAppointmentsLimit  = 5
)

type AppointmentService interface {
	// List filters by status. An empty status lists scheduled appointments
	// and "all" disables the filter.
	List(ctx context.Context, userID, status string) ([]dto.AppointmentResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, userID, id string) error
	// Upcoming returns the next five scheduled appointments from today on.
	Upcoming(ctx context.Context, userID string) ([]dto.AppointmentResponse, error)
}

type appointmentService struct {
	repo   *repository.Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewAppointmentService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) AppointmentService {
	return &appointmentService{repo: repo, clock: clk, logger: logger}
}

func (s *appointmentService) List(ctx context.Context, userID, status string) ([]dto.AppointmentResponse, error) {
	switch status {
	case "":
		status = model.AppointmentScheduled
	case statusFilterAll:
		status = ""
	}
	appts, err := s.repo.Appointment.List(ctx, userID, status)
	if err != nil {
		s.logger.Error("list appointments failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toAppointmentResponses(appts), nil
}

func (s *appointmentService) Create(ctx context.Context, userID string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := validateAppointmentWhen(&req.Date, req.Time); err != nil {
		return nil, err
	}
	reminder := defaultReminderHoursBefore
	if req.ReminderHoursBefore != nil {
		reminder = *req.ReminderHoursBefore
	}

	appt := &model.Appointment{
		UserID:              userID,
		Title:               strings.TrimSpace(req.Title),
		DoctorName:          req.DoctorName,
		Specialty:           req.Specialty,
		Location:            req.Location,
		Date:                req.Date,
		Time:                req.Time,
		Notes:               req.Notes,
		ReminderHoursBefore: reminder,
		Status:              model.AppointmentScheduled,
	}
	if err := s.repo.Appointment.Create(ctx, appt); err != nil {
		s.logger.Error("create appointment failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toAppointmentResponse(appt), nil
}

func (s *appointmentService) Update(ctx context.Context, userID, id string, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := validateAppointmentWhen(req.Date, req.Time); err != nil {
		return nil, err
	}
	appt, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		appt.Title = strings.TrimSpace(*req.Title)
	}
	if req.DoctorName != nil {
		appt.DoctorName = *req.DoctorName
	}
	if req.Specialty != nil {
		appt.Specialty = *req.Specialty
	}
	if req.Location != nil {
		appt.Location = *req.Location
	}
	if req.Date != nil {
		appt.Date = *req.Date
	}
	if req.Time != nil {
		// An empty string clears the time.
		if *req.Time == "" {
			appt.Time = nil
		} else {
			appt.Time = req.Time
		}
	}
	if req.Notes != nil {
		appt.Notes = *req.Notes
	}
	if req.ReminderHoursBefore != nil {
		appt.ReminderHoursBefore = *req.ReminderHoursBefore
	}
	if req.Status != nil {
		appt.Status = *req.Status
	}

	if err := s.repo.Appointment.Update(ctx, appt); err != nil {
		s.logger.Error("update appointment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAppointmentResponse(appt), nil
}

func (s *appointmentService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Appointment.Delete(ctx, id); err != nil {
		s.logger.Error("delete appointment failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *appointmentService) Upcoming(ctx context.Context, userID string) ([]dto.AppointmentResponse, error) {
	today := clock.Today(s.clock).Format(dto.DateLayout)
	appts, err := s.repo.Appointment.ListUpcoming(ctx, userID, today, upcomingAppointmentsLimit)
	if err != nil {
		s.logger.Error("list upcoming appointments failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toAppointmentResponses(appts), nil
}

// owned loads an appointment, hiding other users' rows as not found.
func (s *appointmentService) owned(ctx context.Context, userID, id string) (*model.Appointment, error) {
	appt, err := s.repo.Appointment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("get appointment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if appt.UserID != userID {
		return nil, ErrAppointmentNotFound
	}
	return appt, nil
}

func validateAppointmentWhen(date, timeOfDay *string) error {
	if date != nil {
		if _, err := time.Parse(dto.DateLayout, *date); err != nil {
			return errBadDate
		}
	}
	if timeOfDay != nil && *timeOfDay != "" {
		if _, _, err := model.ParseTimeOfDay(*timeOfDay); err != nil {
			return wrapValidation(err)
		}
	}
	return nil
}

func toAppointmentResponses(appts []model.Appointment) []dto.AppointmentResponse {
	result := make([]dto.AppointmentResponse, 0, len(appts))
	for i := range appts {
		result = append(result, *toAppointmentResponse(&appts[i]))
	}
	return result
}

func toAppointmentResponse(a *model.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:                  a.AppointmentID,
		Title:               a.Title,
		DoctorName:          a.DoctorName,
		Specialty:           a.Specialty,
		Location:            a.Location,
		Date:                a.Date,
		Time:                a.Time,
		Notes:               a.Notes,
		ReminderHoursBefore: a.ReminderHoursBefore,
		Status:              a.Status,
	}
}
