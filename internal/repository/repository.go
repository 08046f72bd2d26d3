package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every table's data access.
type Repository struct {
	db *gorm.DB

	User          UserRepository
	Caregiver     CaregiverRepository
	Medication    MedicationRepository
	IntakeLog     IntakeLogRepository
	Contact       ContactRepository
	Activity      ActivityRepository
	Alert         AlertRepository
	Mood          MoodLogRepository
	Chat          ChatMessageRepository
	Appointment   AppointmentRepository
	HealthReading HealthReadingRepository
	Notification  NotificationLogRepository
}

// NewRepository wires every repository onto db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		User:          NewUserRepo(db),
		Caregiver:     NewCaregiverRepo(db),
		Medication:    NewMedicationRepo(db),
		IntakeLog:     NewIntakeLogRepo(db),
		Contact:       NewContactRepo(db),
		Activity:      NewActivityRepo(db),
		Alert:         NewAlertRepo(db),
		Mood:          NewMoodLogRepo(db),
		Chat:          NewChatMessageRepo(db),
		Appointment:   NewAppointmentRepo(db),
		HealthReading: NewHealthReadingRepo(db),
		Notification:  NewNotificationLogRepo(db),
	}
}

// BeginTx starts a transaction. It returns a nil tx when the repository has
// no database behind it (mock repositories in tests).
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx returns a repository bound to tx. A nil tx returns r unchanged.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Transaction runs fn against a transactional repository, committing when
// fn returns nil and rolling back otherwise.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) (err error) {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	if tx == nil {
		return fn(r)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(r.WithTx(tx)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
