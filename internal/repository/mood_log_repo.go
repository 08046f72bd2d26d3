package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

type MoodLogRepository interface {
	Create(ctx context.Context, log *model.MoodLog) error
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, userID string, limit int) ([]model.MoodLog, error)
	Latest(ctx context.Context, userID string) (*model.MoodLog, error)
}

type moodLogRepo struct {
	db *gorm.DB
}

func NewMoodLogRepo(db *gorm.DB) MoodLogRepository {
	return &moodLogRepo{db: db}
}

func (r *moodLogRepo) Create(ctx context.Context, log *model.MoodLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *moodLogRepo) ListRecent(ctx context.Context, userID string, limit int) ([]model.MoodLog, error) {
	var logs []model.MoodLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *moodLogRepo) Latest(ctx context.Context, userID string) (*model.MoodLog, error) {
	var log model.MoodLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}
