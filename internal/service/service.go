package service

import (
	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/config"
	"github.com/mpcbarbosa/SeniorCare/internal/assistant"
	"github.com/mpcbarbosa/SeniorCare/internal/metrics"
	"github.com/mpcbarbosa/SeniorCare/internal/notify"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
	"github.com/mpcbarbosa/SeniorCare/pkg/jwt"
)

// Service is the aggregate entry point of every service.
type Service struct {
	Auth         AuthService
	User         UserService
	Medication   MedicationService
	Adherence    AdherenceService
	Export       ExportService
	Notification NotificationService
	Caregiver    CaregiverService
	Contact      ContactService
	Activity     ActivityService
	Alert        AlertService
	Mood         MoodService
	Chat         ChatService
	Appointment  AppointmentService
	Health       HealthService
	Calendar     CalendarService
}

// Deps carries what the services are built from. Revoker, Channels and
// Metrics are optional.
type Deps struct {
	Config    *config.Config
	Repo      *repository.Repository
	JWT       *jwt.Manager
	Revoker   TokenRevoker
	Clock     clock.Clock
	Channels  []notify.Channel
	Responder assistant.Responder
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// NewService wires the services. Shared dependencies are built once so
// every service signals through the same dispatcher.
func NewService(d Deps) *Service {
	notification := NewNotificationService(d.Repo, d.Channels, d.Clock, d.Metrics, d.Logger)
	adherence := NewAdherenceService(&d.Config.Adherence, d.Repo, d.Clock, notification, d.Metrics, d.Logger)
	alert := NewAlertService(d.Repo, notification, d.Logger)

	return &Service{
		Auth:         NewAuthService(d.Config, d.Repo, d.JWT, d.Revoker, d.Logger),
		User:         NewUserService(d.Repo, d.Clock, d.Logger),
		Medication:   NewMedicationService(d.Repo, d.Clock, d.Logger),
		Adherence:    adherence,
		Export:       NewExportService(adherence, d.Clock, d.Logger),
		Notification: notification,
		Caregiver:    NewCaregiverService(d.Repo, adherence, d.Clock, d.Logger),
		Contact:      NewContactService(d.Repo, d.Logger),
		Activity:     NewActivityService(d.Repo, d.Clock, d.Logger),
		Alert:        alert,
		Mood:         NewMoodService(d.Repo, d.Logger),
		Chat:         NewChatService(d.Repo, d.Responder, d.Config.Assistant.HistorySize, d.Metrics, d.Logger),
		Appointment:  NewAppointmentService(d.Repo, d.Clock, d.Logger),
		Health:       NewHealthService(d.Repo, alert, d.Clock, d.Config.Health.SummaryWindowDays, d.Logger),
		Calendar:     NewCalendarService(d.Repo, d.Clock, d.Logger),
	}
}
