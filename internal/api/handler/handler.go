package handler

import (
	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/internal/notify"
	"github.com/mpcbarbosa/SeniorCare/internal/service"
)

// Handler groups every HTTP handler.
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Medication  *MedicationHandler
	Export      *ExportHandler
	Alert       *AlertHandler
	Caregiver   *CaregiverHandler
	Routine     *RoutineHandler
	Companion   *CompanionHandler
	Appointment *AppointmentHandler
	Health      *HealthHandler
	Stream      *StreamHandler
}

// NewHandler builds the handlers over svc. hub may be nil when push is off;
// the stream endpoint then stays unregistered.
func NewHandler(svc *service.Service, hub *notify.Hub, allowOrigins []string, logger *zap.Logger) *Handler {
	h := &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		Medication:  NewMedicationHandler(svc.Medication, svc.Adherence),
		Export:      NewExportHandler(svc.Export, svc.Calendar),
		Alert:       NewAlertHandler(svc.Alert, svc.Notification),
		Caregiver:   NewCaregiverHandler(svc.Caregiver),
		Routine:     NewRoutineHandler(svc.Contact, svc.Activity),
		Companion:   NewCompanionHandler(svc.Mood, svc.Chat),
		Appointment: NewAppointmentHandler(svc.Appointment),
		Health:      NewHealthHandler(svc.Health),
	}
	if hub != nil {
		h.Stream = NewStreamHandler(hub, allowOrigins, logger)
	}
	return h
}
