package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

// AlertRepository stores alerts and the per-user alert configuration.
type AlertRepository interface {
	Create(ctx context.Context, alert *model.Alert) error
	GetByID(ctx context.Context, id string) (*model.Alert, error)
	// ListByUser returns the newest alerts first. limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Alert, error)
	CountUnresolved(ctx context.Context, userID string) (int64, error)
	// Resolve stamps an unresolved alert. It reports false when the alert
	// was already resolved.
	Resolve(ctx context.Context, id, caregiverID string, at time.Time) (bool, error)

	// ── config ──

	// GetGlobalConfig returns the config with no medication, caregivers
	// ordered by position.
	GetGlobalConfig(ctx context.Context, userID string) (*model.AlertConfig, error)
	CreateConfig(ctx context.Context, cfg *model.AlertConfig) error
	UpdateConfig(ctx context.Context, cfg *model.AlertConfig) error
	ReplaceConfigCaregivers(ctx context.Context, configID string, caregiverIDs []string) error
}

type alertRepo struct {
	db *gorm.DB
}

func NewAlertRepo(db *gorm.DB) AlertRepository {
	return &alertRepo{db: db}
}

func (r *alertRepo) Create(ctx context.Context, alert *model.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepo) GetByID(ctx context.Context, id string) (*model.Alert, error) {
	var alert model.Alert
	if err := r.db.WithContext(ctx).Where("alert_id = ?", id).First(&alert).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.Alert, error) {
	var alerts []model.Alert
	db := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&alerts).Error
	return alerts, err
}

func (r *alertRepo) CountUnresolved(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Alert{}).
		Where("user_id = ? AND resolved_at IS NULL", userID).
		Count(&n).Error
	return n, err
}

func (r *alertRepo) Resolve(ctx context.Context, id, caregiverID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Alert{}).
		Where("alert_id = ? AND resolved_at IS NULL", id).
		Updates(map[string]interface{}{
			"resolved_at": at.UTC(),
			"resolved_by": caregiverID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ────────────────────── config ──────────────────────

func (r *alertRepo) GetGlobalConfig(ctx context.Context, userID string) (*model.AlertConfig, error) {
	var cfg model.AlertConfig
	err := r.db.WithContext(ctx).
		Preload("Caregivers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ? AND medication_id IS NULL", userID).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *alertRepo) CreateConfig(ctx context.Context, cfg *model.AlertConfig) error {
	return r.db.WithContext(ctx).Omit("Caregivers").Create(cfg).Error
}

func (r *alertRepo) UpdateConfig(ctx context.Context, cfg *model.AlertConfig) error {
	return r.db.WithContext(ctx).Model(&model.AlertConfig{}).
		Where("alert_config_id = ?", cfg.AlertConfigID).
		Updates(map[string]interface{}{
			"first_alert_delay_min":  cfg.FirstAlertDelayMin,
			"second_alert_delay_min": cfg.SecondAlertDelayMin,
			"escalation_delay_min":   cfg.EscalationDelayMin,
			"notify_user":            cfg.NotifyUser,
			"notify_caregivers":      cfg.NotifyCaregivers,
			"notify_via_push":        cfg.NotifyViaPush,
			"notify_via_sms":         cfg.NotifyViaSMS,
			"notify_via_email":       cfg.NotifyViaEmail,
			"is_active":              cfg.IsActive,
		}).Error
}

func (r *alertRepo) ReplaceConfigCaregivers(ctx context.Context, configID string, caregiverIDs []string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("alert_config_id = ?", configID).Delete(&model.AlertConfigCaregiver{}).Error; err != nil {
		return err
	}
	if len(caregiverIDs) == 0 {
		return nil
	}
	rows := make([]model.AlertConfigCaregiver, len(caregiverIDs))
	for i, id := range caregiverIDs {
		rows[i] = model.AlertConfigCaregiver{AlertConfigID: configID, CaregiverID: id, Position: i}
	}
	return db.Create(&rows).Error
}
