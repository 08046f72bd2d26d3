package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/config"
	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/metrics"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

// ErrIntakeAlreadyTaken is returned under the first_wins policy.
var ErrIntakeAlreadyTaken = fmt.Errorf("dose already marked as taken: %w", pkgerrors.ErrConflict)

// Derived occurrence statuses. Missed is computed, never stored.
const (
	OccurrenceTaken   = model.IntakeTaken
	OccurrencePending = model.IntakePending
	OccurrenceSkipped = model.IntakeSkipped
	OccurrenceMissed  = "missed"
)

// EventMedicationTaken is dispatched after every successful MarkTaken.
const EventMedicationTaken = "medication_taken"

// AdherenceService answers "what was due on a day and was it taken" and
// records intakes.
type AdherenceService interface {
	// StatusOn lists every dose due on the calendar day of date, sorted by
	// time of day, ties kept in medication insertion order.
	StatusOn(ctx context.Context, userID string, date time.Time) ([]dto.OccurrenceStatus, error)
	Today(ctx context.Context, userID string) ([]dto.OccurrenceStatus, error)
	// StatusOnDay parses a YYYY-MM-DD day; an empty day means today.
	StatusOnDay(ctx context.Context, userID, day string) ([]dto.OccurrenceStatus, error)
	MarkTaken(ctx context.Context, userID, medicationID string, req *dto.TakeMedicationRequest) (*dto.IntakeLogResponse, error)
}

type adherenceService struct {
	cfg        *config.AdherenceConfig
	repo       *repository.Repository
	clock      clock.Clock
	dispatcher Dispatcher
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewAdherenceService(
	cfg *config.AdherenceConfig,
	repo *repository.Repository,
	clk clock.Clock,
	dispatcher Dispatcher,
	m *metrics.Metrics,
	logger *zap.Logger,
) AdherenceService {
	return &adherenceService{
		cfg:        cfg,
		repo:       repo,
		clock:      clk,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     logger,
	}
}

// ────────────────────── StatusOn ──────────────────────

type occurrenceKey struct {
	medicationID string
	scheduleID   string
	scheduledAt  int64
}

func (s *adherenceService) StatusOn(ctx context.Context, userID string, date time.Time) ([]dto.OccurrenceStatus, error) {
	day := clock.StartOfDay(date.In(s.clock.Location()))

	meds, err := s.repo.Medication.ListByUser(ctx, userID, true)
	if err != nil {
		s.logger.Error("list medications failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(meds))
	for _, m := range meds {
		ids = append(ids, m.MedicationID)
	}
	logs, err := s.repo.IntakeLog.ListForMedications(ctx, ids, day, day.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("list intake logs failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	retired, err := s.repo.Medication.ListRetiredSchedules(ctx, ids, day)
	if err != nil {
		s.logger.Error("list retired schedules failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	retiredByMed := make(map[string][]model.MedicationSchedule)
	for _, sched := range retired {
		retiredByMed[sched.MedicationID] = append(retiredByMed[sched.MedicationID], sched)
	}

	byKey := make(map[occurrenceKey]*model.IntakeLog, len(logs))
	for i := range logs {
		if logs[i].ScheduleID == nil {
			continue
		}
		byKey[occurrenceKey{logs[i].MedicationID, *logs[i].ScheduleID, logs[i].ScheduledAt.Unix()}] = &logs[i]
	}

	now := s.clock.Now()
	result := make([]dto.OccurrenceStatus, 0)
	for _, med := range meds {
		schedules := append(med.Schedules[:len(med.Schedules):len(med.Schedules)], retiredByMed[med.MedicationID]...)
		for _, sched := range schedules {
			if !OccursOn(sched, day) {
				continue
			}
			at, err := model.At(day, sched.TimeOfDay)
			if err != nil {
				s.logger.Warn("skipping schedule with bad time",
					zap.String("schedule_id", sched.ScheduleID), zap.Error(err))
				continue
			}
			if !sched.InForceAt(at) {
				continue
			}

			entry := dto.OccurrenceStatus{
				MedicationID: med.MedicationID,
				ScheduleID:   sched.ScheduleID,
				Name:         med.Name,
				Dosage:       med.Dosage,
				Icon:         med.Icon,
				Time:         sched.TimeOfDay,
				ScheduledAt:  dto.FormatTime(at),
				Status:       OccurrencePending,
			}
			if log, ok := byKey[occurrenceKey{med.MedicationID, sched.ScheduleID, at.Unix()}]; ok {
				switch log.Status {
				case model.IntakeTaken:
					entry.Taken = true
					entry.TakenAt = dto.FormatTimePtr(log.TakenAt)
					entry.Status = OccurrenceTaken
				case model.IntakeSkipped:
					entry.Status = OccurrenceSkipped
				}
			}
			if entry.Status == OccurrencePending && now.After(at.Add(s.cfg.MissedAfter)) {
				entry.Status = OccurrenceMissed
			}
			result = append(result, entry)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Time < result[j].Time
	})
	return result, nil
}

func (s *adherenceService) Today(ctx context.Context, userID string) ([]dto.OccurrenceStatus, error) {
	return s.StatusOn(ctx, userID, clock.Today(s.clock))
}

func (s *adherenceService) StatusOnDay(ctx context.Context, userID, day string) ([]dto.OccurrenceStatus, error) {
	date, err := s.parseDay(day)
	if err != nil {
		return nil, err
	}
	return s.StatusOn(ctx, userID, date)
}

// ────────────────────── MarkTaken ──────────────────────

func (s *adherenceService) MarkTaken(ctx context.Context, userID, medicationID string, req *dto.TakeMedicationRequest) (*dto.IntakeLogResponse, error) {
	med, err := ownedMedication(ctx, s.repo, s.logger, userID, medicationID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().Truncate(time.Second)
	log := &model.IntakeLog{MedicationID: med.MedicationID, ScheduledAt: now}

	if req.ScheduleID != nil {
		sched, err := s.repo.Medication.GetSchedule(ctx, *req.ScheduleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrScheduleNotFound
			}
			s.logger.Error("get schedule failed", zap.String("schedule_id", *req.ScheduleID), zap.Error(err))
			return nil, err
		}
		if sched.MedicationID != med.MedicationID {
			return nil, ErrScheduleNotFound
		}
		day, err := s.parseDay(req.Date)
		if err != nil {
			return nil, err
		}
		at, err := model.At(day, sched.TimeOfDay)
		if err != nil {
			return nil, wrapValidation(err)
		}
		log.ScheduleID = &sched.ScheduleID
		log.ScheduledAt = at
	}

	takenAt := now.UTC()
	log.TakenAt = &takenAt

	applied, err := s.repo.IntakeLog.MarkTaken(ctx, log, s.cfg.TakePolicy != config.TakePolicyFirstWins)
	if err != nil {
		s.logger.Error("mark taken failed", zap.String("medication_id", medicationID), zap.Error(err))
		return nil, err
	}
	if !applied {
		s.metrics.IncIntake("rejected")
		return nil, ErrIntakeAlreadyTaken
	}
	s.metrics.IncIntake("taken")

	stored := log
	if log.ScheduleID != nil {
		if stored, err = s.repo.IntakeLog.GetByOccurrence(ctx, log.MedicationID, log.ScheduleID, log.ScheduledAt); err != nil {
			s.logger.Error("reload intake log failed", zap.String("medication_id", medicationID), zap.Error(err))
			return nil, err
		}
	}

	s.dispatcher.Dispatch(ctx, Event{
		Type:          EventMedicationTaken,
		Severity:      model.SeverityInfo,
		UserID:        userID,
		ReferenceType: "intake_log",
		ReferenceID:   stored.IntakeLogID,
		Subject:       "Medication taken",
		Body:          fmt.Sprintf("%s (%s) was taken at %s.", med.Name, med.Dosage, takenAt.In(s.clock.Location()).Format("15:04")),
	})

	return toIntakeLogResponse(stored), nil
}

// ── helpers ──

func (s *adherenceService) parseDay(day string) (time.Time, error) {
	if day == "" {
		return clock.Today(s.clock), nil
	}
	t, err := time.ParseInLocation(dto.DateLayout, day, s.clock.Location())
	if err != nil {
		return time.Time{}, errBadDate
	}
	return t, nil
}

func toIntakeLogResponse(l *model.IntakeLog) *dto.IntakeLogResponse {
	return &dto.IntakeLogResponse{
		ID:           l.IntakeLogID,
		MedicationID: l.MedicationID,
		ScheduleID:   l.ScheduleID,
		ScheduledAt:  dto.FormatTime(l.ScheduledAt),
		TakenAt:      dto.FormatTimePtr(l.TakenAt),
		Status:       l.Status,
	}
}
