package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

var (
	ErrReadingNotFound    = fmt.Errorf("health reading not found: %w", pkgerrors.ErrNotFound)
	ErrUnknownReadingType = fmt.Errorf("unknown reading type: %w", pkgerrors.ErrValidation)
	ErrSecondaryRequired  = fmt.Errorf("value_secondary is required for this reading type: %w", pkgerrors.ErrValidation)
	errBadMeasuredAt      = fmt.Errorf("measured_at must be RFC 3339: %w", pkgerrors.ErrValidation)
)

const (
	defaultReadingLimit = 50
	localMinuteLayout   = "2006-01-02T15:04"
)

type HealthService interface {
	Types() []model.ReadingType
	List(ctx context.Context, userID string, req *dto.ReadingListRequest) ([]dto.ReadingResponse, error)
	// Create stores a reading and raises a warning alert when a value lies
	// outside the type's normal range.
	Create(ctx context.Context, userID string, req *dto.CreateReadingRequest) (*dto.ReadingResponse, error)
	Delete(ctx context.Context, userID, id string) error
	Latest(ctx context.Context, userID string) (map[string]dto.ReadingResponse, error)
	// Summarize aggregates the primary value over the last days. It returns
	// nil when the window holds no reading.
	Summarize(ctx context.Context, userID, readingType string, days int) (*dto.MetricSummary, error)
	// SummarizeAll summarizes every type, omitting types without readings.
	SummarizeAll(ctx context.Context, userID string, days int) (map[string]dto.MetricSummary, error)
}

type healthService struct {
	repo       *repository.Repository
	alerts     AlertService
	clock      clock.Clock
	windowDays int
	logger     *zap.Logger
}

func NewHealthService(
	repo *repository.Repository,
	alerts AlertService,
	clk clock.Clock,
	windowDays int,
	logger *zap.Logger,
) HealthService {
	return &healthService{
		repo:       repo,
		alerts:     alerts,
		clock:      clk,
		windowDays: windowDays,
		logger:     logger,
	}
}

func (s *healthService) Types() []model.ReadingType {
	return model.ReadingTypes
}

func (s *healthService) List(ctx context.Context, userID string, req *dto.ReadingListRequest) ([]dto.ReadingResponse, error) {
	if req.Type != "" {
		if _, ok := model.LookupReadingType(req.Type); !ok {
			return nil, ErrUnknownReadingType
		}
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultReadingLimit
	}
	readings, err := s.repo.HealthReading.List(ctx, userID, req.Type, limit)
	if err != nil {
		s.logger.Error("list health readings failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.ReadingResponse, 0, len(readings))
	for i := range readings {
		result = append(result, toReadingResponse(&readings[i]))
	}
	return result, nil
}

func (s *healthService) Create(ctx context.Context, userID string, req *dto.CreateReadingRequest) (*dto.ReadingResponse, error) {
	rt, ok := model.LookupReadingType(req.ReadingType)
	if !ok {
		return nil, ErrUnknownReadingType
	}
	if rt.HasSecondary && req.ValueSecondary == nil {
		return nil, ErrSecondaryRequired
	}
	measuredAt, err := s.parseMeasuredAt(req.MeasuredAt)
	if err != nil {
		return nil, err
	}

	reading := &model.HealthReading{
		UserID:         userID,
		ReadingType:    rt.ID,
		ValuePrimary:   *req.ValuePrimary,
		ValueSecondary: req.ValueSecondary,
		Unit:           defaultString(req.Unit, rt.Unit),
		Notes:          req.Notes,
		MeasuredAt:     measuredAt,
	}
	if err := s.repo.HealthReading.Create(ctx, reading); err != nil {
		s.logger.Error("create health reading failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toReadingResponse(reading)
	if resp.OutOfRange {
		msg := fmt.Sprintf("%s reading %s %s is outside the normal range", rt.Name, formatReadingValue(reading), reading.Unit)
		if _, err := s.alerts.Raise(ctx, userID, model.AlertHealth, model.SeverityWarning, msg); err != nil {
			s.logger.Warn("raise health alert failed", zap.String("reading_id", reading.ReadingID), zap.Error(err))
		}
	}
	return &resp, nil
}

func (s *healthService) Delete(ctx context.Context, userID, id string) error {
	reading, err := s.repo.HealthReading.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReadingNotFound
		}
		s.logger.Error("get health reading failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if reading.UserID != userID {
		return ErrReadingNotFound
	}
	if err := s.repo.HealthReading.Delete(ctx, id); err != nil {
		s.logger.Error("delete health reading failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *healthService) Latest(ctx context.Context, userID string) (map[string]dto.ReadingResponse, error) {
	readings, err := s.repo.HealthReading.LatestPerType(ctx, userID)
	if err != nil {
		s.logger.Error("latest health readings failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make(map[string]dto.ReadingResponse, len(readings))
	for i := range readings {
		result[readings[i].ReadingType] = toReadingResponse(&readings[i])
	}
	return result, nil
}

// ────────────────────── Aggregation ──────────────────────

func (s *healthService) Summarize(ctx context.Context, userID, readingType string, days int) (*dto.MetricSummary, error) {
	if _, ok := model.LookupReadingType(readingType); !ok {
		return nil, ErrUnknownReadingType
	}
	readings, err := s.repo.HealthReading.ListSince(ctx, userID, readingType, s.since(days))
	if err != nil {
		s.logger.Error("summarize health readings failed",
			zap.String("user_id", userID), zap.String("type", readingType), zap.Error(err))
		return nil, err
	}
	return summarize(readings), nil
}

func (s *healthService) SummarizeAll(ctx context.Context, userID string, days int) (map[string]dto.MetricSummary, error) {
	since := s.since(days)
	result := make(map[string]dto.MetricSummary)
	for _, rt := range model.ReadingTypes {
		readings, err := s.repo.HealthReading.ListSince(ctx, userID, rt.ID, since)
		if err != nil {
			s.logger.Error("summarize health readings failed",
				zap.String("user_id", userID), zap.String("type", rt.ID), zap.Error(err))
			return nil, err
		}
		if sum := summarize(readings); sum != nil {
			result[rt.ID] = *sum
		}
	}
	return result, nil
}

func (s *healthService) since(days int) time.Time {
	if days <= 0 {
		days = s.windowDays
	}
	return s.clock.Now().Add(-time.Duration(days) * 24 * time.Hour)
}

// summarize expects readings of one type. The average is rounded to one
// decimal and kept within [min, max].
func summarize(readings []model.HealthReading) *dto.MetricSummary {
	if len(readings) == 0 {
		return nil
	}
	latest := &readings[0]
	sum := 0.0
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range readings {
		v := readings[i].ValuePrimary
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		if readings[i].MeasuredAt.After(latest.MeasuredAt) {
			latest = &readings[i]
		}
	}
	avg := math.Round(sum/float64(len(readings))*10) / 10
	avg = math.Max(lo, math.Min(hi, avg))

	return &dto.MetricSummary{
		Count:   len(readings),
		Average: avg,
		Min:     lo,
		Max:     hi,
		Latest:  toReadingResponse(latest),
	}
}

func (s *healthService) parseMeasuredAt(raw string) (time.Time, error) {
	if raw == "" {
		return s.clock.Now().UTC().Truncate(time.Second), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Truncate(time.Second), nil
	}
	if t, err := time.ParseInLocation(localMinuteLayout, raw, s.clock.Location()); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errBadMeasuredAt
}

// outOfRange reports whether any value falls outside the type's normal range.
func outOfRange(r *model.HealthReading) bool {
	rt, ok := model.LookupReadingType(r.ReadingType)
	if !ok {
		return false
	}
	if rt.NormalPrimary != nil && !rt.NormalPrimary.Contains(r.ValuePrimary) {
		return true
	}
	if rt.NormalSecond != nil && r.ValueSecondary != nil && !rt.NormalSecond.Contains(*r.ValueSecondary) {
		return true
	}
	return false
}

func formatReadingValue(r *model.HealthReading) string {
	if r.ValueSecondary != nil {
		return fmt.Sprintf("%g/%g", r.ValuePrimary, *r.ValueSecondary)
	}
	return fmt.Sprintf("%g", r.ValuePrimary)
}

func toReadingResponse(r *model.HealthReading) dto.ReadingResponse {
	return dto.ReadingResponse{
		ID:             r.ReadingID,
		ReadingType:    r.ReadingType,
		ValuePrimary:   r.ValuePrimary,
		ValueSecondary: r.ValueSecondary,
		Unit:           r.Unit,
		Notes:          r.Notes,
		MeasuredAt:     dto.FormatTime(r.MeasuredAt),
		OutOfRange:     outOfRange(r),
	}
}
