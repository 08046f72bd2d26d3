package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

type HealthReadingRepository interface {
	Create(ctx context.Context, reading *model.HealthReading) error
	GetByID(ctx context.Context, id string) (*model.HealthReading, error)
	// List returns the newest readings first. An empty readingType lists all.
	List(ctx context.Context, userID, readingType string, limit int) ([]model.HealthReading, error)
	// ListSince returns readings measured at or after since, oldest first.
	ListSince(ctx context.Context, userID, readingType string, since time.Time) ([]model.HealthReading, error)
	// LatestPerType returns the most recent reading of each type present.
	LatestPerType(ctx context.Context, userID string) ([]model.HealthReading, error)
	Delete(ctx context.Context, id string) error
}

type healthReadingRepo struct {
	db *gorm.DB
}

func NewHealthReadingRepo(db *gorm.DB) HealthReadingRepository {
	return &healthReadingRepo{db: db}
}

func (r *healthReadingRepo) Create(ctx context.Context, reading *model.HealthReading) error {
	return r.db.WithContext(ctx).Create(reading).Error
}

func (r *healthReadingRepo) GetByID(ctx context.Context, id string) (*model.HealthReading, error) {
	var reading model.HealthReading
	if err := r.db.WithContext(ctx).Where("reading_id = ?", id).First(&reading).Error; err != nil {
		return nil, err
	}
	return &reading, nil
}

func (r *healthReadingRepo) List(ctx context.Context, userID, readingType string, limit int) ([]model.HealthReading, error) {
	var readings []model.HealthReading
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if readingType != "" {
		db = db.Where("reading_type = ?", readingType)
	}
	err := db.Order("measured_at DESC").Limit(limit).Find(&readings).Error
	return readings, err
}

func (r *healthReadingRepo) ListSince(ctx context.Context, userID, readingType string, since time.Time) ([]model.HealthReading, error) {
	var readings []model.HealthReading
	db := r.db.WithContext(ctx).Where("user_id = ? AND measured_at >= ?", userID, since.UTC())
	if readingType != "" {
		db = db.Where("reading_type = ?", readingType)
	}
	err := db.Order("measured_at ASC").Find(&readings).Error
	return readings, err
}

func (r *healthReadingRepo) LatestPerType(ctx context.Context, userID string) ([]model.HealthReading, error) {
	var out []model.HealthReading
	for _, t := range model.ReadingTypes {
		var reading model.HealthReading
		err := r.db.WithContext(ctx).
			Where("user_id = ? AND reading_type = ?", userID, t.ID).
			Order("measured_at DESC").
			First(&reading).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, reading)
	}
	return out, nil
}

func (r *healthReadingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("reading_id = ?", id).Delete(&model.HealthReading{}).Error
}
