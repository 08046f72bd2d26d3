package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

// IntakeLogRepository stores dose occurrences.
type IntakeLogRepository interface {
	// MarkTaken inserts the occurrence as taken, or updates the existing row
	// with the same (medication_id, schedule_id, scheduled_at) in the same
	// statement. With overwrite=false an already-taken row is left untouched
	// and applied is false.
	MarkTaken(ctx context.Context, log *model.IntakeLog, overwrite bool) (applied bool, err error)
	GetByOccurrence(ctx context.Context, medicationID string, scheduleID *string, scheduledAt time.Time) (*model.IntakeLog, error)
	// ListForMedications returns logs with scheduled_at in [from, to).
	ListForMedications(ctx context.Context, medicationIDs []string, from, to time.Time) ([]model.IntakeLog, error)
}

type intakeLogRepo struct {
	db *gorm.DB
}

// NewIntakeLogRepo creates an IntakeLogRepository.
func NewIntakeLogRepo(db *gorm.DB) IntakeLogRepository {
	return &intakeLogRepo{db: db}
}

var occurrenceColumns = []clause.Column{
	{Name: "medication_id"},
	{Name: "schedule_id"},
	{Name: "scheduled_at"},
}

func (r *intakeLogRepo) MarkTaken(ctx context.Context, log *model.IntakeLog, overwrite bool) (bool, error) {
	log.ScheduledAt = log.ScheduledAt.UTC()
	log.Status = model.IntakeTaken

	onConflict := clause.OnConflict{
		Columns:   occurrenceColumns,
		DoUpdates: clause.AssignmentColumns([]string{"taken_at", "status", "updated_at"}),
	}
	if !overwrite {
		onConflict.Where = clause.Where{Exprs: []clause.Expression{
			clause.Neq{Column: clause.Column{Table: "intake_logs", Name: "status"}, Value: model.IntakeTaken},
		}}
	}

	result := r.db.WithContext(ctx).Clauses(onConflict).Create(log)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *intakeLogRepo) GetByOccurrence(ctx context.Context, medicationID string, scheduleID *string, scheduledAt time.Time) (*model.IntakeLog, error) {
	var log model.IntakeLog
	db := r.db.WithContext(ctx).Where("medication_id = ? AND scheduled_at = ?", medicationID, scheduledAt.UTC())
	if scheduleID != nil {
		db = db.Where("schedule_id = ?", *scheduleID)
	} else {
		db = db.Where("schedule_id IS NULL")
	}
	if err := db.First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *intakeLogRepo) ListForMedications(ctx context.Context, medicationIDs []string, from, to time.Time) ([]model.IntakeLog, error) {
	if len(medicationIDs) == 0 {
		return nil, nil
	}
	var logs []model.IntakeLog
	err := r.db.WithContext(ctx).
		Where("medication_id IN ?", medicationIDs).
		Where("scheduled_at >= ? AND scheduled_at < ?", from.UTC(), to.UTC()).
		Order("scheduled_at ASC").
		Find(&logs).Error
	return logs, err
}
