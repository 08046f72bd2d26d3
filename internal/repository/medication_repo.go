package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

// MedicationRepository covers medications and their schedules.
type MedicationRepository interface {
	// Create inserts the medication together with its Schedules.
	Create(ctx context.Context, med *model.Medication) error
	GetByID(ctx context.Context, id string) (*model.Medication, error)
	// ListByUser returns medications in insertion order with schedules
	// sorted by time of day.
	ListByUser(ctx context.Context, userID string, activeOnly bool) ([]model.Medication, error)
	// Update writes the scalar fields guarded by the version counter.
	Update(ctx context.Context, med *model.Medication) error
	// SyncSchedules makes schedules the current schedule set. Current rows
	// with the same time and weekdays are kept (their ids are copied into
	// schedules), the others are retired at retiredAt and new ones inserted.
	SyncSchedules(ctx context.Context, medicationID string, schedules []model.MedicationSchedule, retiredAt time.Time) error
	// ListRetiredSchedules returns schedules of the medications retired
	// after the given instant.
	ListRetiredSchedules(ctx context.Context, medicationIDs []string, after time.Time) ([]model.MedicationSchedule, error)
	// GetSchedule finds a schedule whether or not it is retired.
	GetSchedule(ctx context.Context, scheduleID string) (*model.MedicationSchedule, error)
	// Delete removes the medication with its schedules, intake logs and
	// per-medication alert configs. Run it inside a transaction.
	Delete(ctx context.Context, id string) error
}

type medicationRepo struct {
	db *gorm.DB
}

// NewMedicationRepo creates a MedicationRepository.
func NewMedicationRepo(db *gorm.DB) MedicationRepository {
	return &medicationRepo{db: db}
}

func orderSchedules(db *gorm.DB) *gorm.DB {
	return db.Where("retired_at IS NULL").Order("time_of_day ASC, created_at ASC")
}

func (r *medicationRepo) Create(ctx context.Context, med *model.Medication) error {
	return r.db.WithContext(ctx).Create(med).Error
}

func (r *medicationRepo) GetByID(ctx context.Context, id string) (*model.Medication, error) {
	var med model.Medication
	err := r.db.WithContext(ctx).
		Preload("Schedules", orderSchedules).
		Where("medication_id = ?", id).
		First(&med).Error
	if err != nil {
		return nil, err
	}
	return &med, nil
}

func (r *medicationRepo) ListByUser(ctx context.Context, userID string, activeOnly bool) ([]model.Medication, error) {
	var meds []model.Medication
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Preload("Schedules", orderSchedules).
		Order("created_at ASC, medication_id ASC").
		Find(&meds).Error
	return meds, err
}

func (r *medicationRepo) Update(ctx context.Context, med *model.Medication) error {
	oldVersion := med.Version
	result := r.db.WithContext(ctx).
		Model(&model.Medication{}).
		Where("medication_id = ? AND version = ?", med.MedicationID, oldVersion).
		Updates(map[string]interface{}{
			"name":         med.Name,
			"dosage":       med.Dosage,
			"instructions": med.Instructions,
			"icon":         med.Icon,
			"is_active":    med.IsActive,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	med.Version = oldVersion + 1
	return nil
}

func (r *medicationRepo) SyncSchedules(ctx context.Context, medicationID string, schedules []model.MedicationSchedule, retiredAt time.Time) error {
	db := r.db.WithContext(ctx)

	var current []model.MedicationSchedule
	if err := db.Where("medication_id = ? AND retired_at IS NULL", medicationID).
		Order("created_at ASC").
		Find(&current).Error; err != nil {
		return err
	}

	kept := make([]bool, len(current))
	var fresh []*model.MedicationSchedule
	for i := range schedules {
		schedules[i].MedicationID = medicationID
		matched := false
		for j := range current {
			if !kept[j] && current[j].SameDose(&schedules[i]) {
				kept[j] = true
				schedules[i] = current[j]
				matched = true
				break
			}
		}
		if !matched {
			fresh = append(fresh, &schedules[i])
		}
	}

	var retired []string
	for j := range current {
		if !kept[j] {
			retired = append(retired, current[j].ScheduleID)
		}
	}
	if len(retired) > 0 {
		err := db.Model(&model.MedicationSchedule{}).
			Where("schedule_id IN ?", retired).
			Update("retired_at", retiredAt.UTC()).Error
		if err != nil {
			return err
		}
	}

	for _, s := range fresh {
		if err := db.Create(s).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *medicationRepo) ListRetiredSchedules(ctx context.Context, medicationIDs []string, after time.Time) ([]model.MedicationSchedule, error) {
	var schedules []model.MedicationSchedule
	if len(medicationIDs) == 0 {
		return schedules, nil
	}
	err := r.db.WithContext(ctx).
		Where("medication_id IN ? AND retired_at > ?", medicationIDs, after.UTC()).
		Order("time_of_day ASC, created_at ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *medicationRepo) GetSchedule(ctx context.Context, scheduleID string) (*model.MedicationSchedule, error) {
	var s model.MedicationSchedule
	if err := r.db.WithContext(ctx).Where("schedule_id = ?", scheduleID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *medicationRepo) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("medication_id = ?", id).Delete(&model.IntakeLog{}).Error; err != nil {
		return err
	}
	if err := db.Where("medication_id = ?", id).Delete(&model.MedicationSchedule{}).Error; err != nil {
		return err
	}
	var configIDs []string
	if err := db.Model(&model.AlertConfig{}).Where("medication_id = ?", id).Pluck("alert_config_id", &configIDs).Error; err != nil {
		return err
	}
	if len(configIDs) > 0 {
		if err := db.Where("alert_config_id IN ?", configIDs).Delete(&model.AlertConfigCaregiver{}).Error; err != nil {
			return err
		}
		if err := db.Where("alert_config_id IN ?", configIDs).Delete(&model.AlertConfig{}).Error; err != nil {
			return err
		}
	}
	result := db.Where("medication_id = ?", id).Delete(&model.Medication{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
