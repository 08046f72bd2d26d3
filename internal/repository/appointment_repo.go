package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	// List orders by date and time ascending. An empty status lists all.
	List(ctx context.Context, userID, status string) ([]model.Appointment, error)
	// ListUpcoming returns scheduled appointments dated today or later.
	ListUpcoming(ctx context.Context, userID, today string, limit int) ([]model.Appointment, error)
	Update(ctx context.Context, appt *model.Appointment) error
	Delete(ctx context.Context, id string) error
}

type appointmentRepo struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func orderAppointments(db *gorm.DB) *gorm.DB {
	return db.Order("appt_date ASC").
		Order("CASE WHEN appt_time IS NULL THEN 1 ELSE 0 END, appt_time ASC").
		Order("created_at ASC")
}

func (r *appointmentRepo) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	var appt model.Appointment
	if err := r.db.WithContext(ctx).Where("appointment_id = ?", id).First(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepo) List(ctx context.Context, userID, status string) ([]model.Appointment, error) {
	var appts []model.Appointment
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := orderAppointments(db).Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) ListUpcoming(ctx context.Context, userID, today string, limit int) ([]model.Appointment, error) {
	var appts []model.Appointment
	db := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND appt_date >= ?", userID, model.AppointmentScheduled, today)
	err := orderAppointments(db).Limit(limit).Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) Update(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("appointment_id = ?", appt.AppointmentID).
		Updates(map[string]interface{}{
			"title":                 appt.Title,
			"doctor_name":           appt.DoctorName,
			"specialty":             appt.Specialty,
			"location":              appt.Location,
			"appt_date":             appt.Date,
			"appt_time":             appt.Time,
			"notes":                 appt.Notes,
			"reminder_hours_before": appt.ReminderHoursBefore,
			"status":                appt.Status,
		}).Error
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("appointment_id = ?", id).Delete(&model.Appointment{}).Error
}
