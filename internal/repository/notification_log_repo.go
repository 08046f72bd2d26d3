package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

type NotificationLogRepository interface {
	Create(ctx context.Context, log *model.NotificationLog) error
	// ListByUser returns the newest attempts first.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.NotificationLog, error)
}

type notificationLogRepo struct {
	db *gorm.DB
}

func NewNotificationLogRepo(db *gorm.DB) NotificationLogRepository {
	return &notificationLogRepo{db: db}
}

func (r *notificationLogRepo) Create(ctx context.Context, log *model.NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *notificationLogRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.NotificationLog, error) {
	var logs []model.NotificationLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
