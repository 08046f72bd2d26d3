package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	GetByID(ctx context.Context, id string) (*model.Activity, error)
	// ListByUser orders by time of day; activities without a time come last.
	ListByUser(ctx context.Context, userID string) ([]model.Activity, error)
	Delete(ctx context.Context, id string) error
}

type activityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepo) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	var activity model.Activity
	if err := r.db.WithContext(ctx).Where("activity_id = ?", id).First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepo) ListByUser(ctx context.Context, userID string) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("CASE WHEN time_of_day IS NULL THEN 1 ELSE 0 END, time_of_day ASC, created_at ASC").
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("activity_id = ?", id).Delete(&model.Activity{}).Error
}
