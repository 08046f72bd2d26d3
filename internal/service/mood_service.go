package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
)

const recentMoodLimit = 30

type MoodService interface {
	Log(ctx context.Context, userID string, req *dto.MoodRequest) (*dto.MoodLogResponse, error)
	// Recent returns the last 30 check-ins, newest first.
	Recent(ctx context.Context, userID string) ([]dto.MoodLogResponse, error)
}

type moodService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewMoodService(repo *repository.Repository, logger *zap.Logger) MoodService {
	return &moodService{repo: repo, logger: logger}
}

func (s *moodService) Log(ctx context.Context, userID string, req *dto.MoodRequest) (*dto.MoodLogResponse, error) {
	entry := &model.MoodLog{
		UserID:      userID,
		Mood:        req.Mood,
		EnergyLevel: req.EnergyLevel,
		Notes:       req.Notes,
	}
	if err := s.repo.Mood.Create(ctx, entry); err != nil {
		s.logger.Error("create mood log failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toMoodLogResponse(entry), nil
}

func (s *moodService) Recent(ctx context.Context, userID string) ([]dto.MoodLogResponse, error) {
	logs, err := s.repo.Mood.ListRecent(ctx, userID, recentMoodLimit)
	if err != nil {
		s.logger.Error("list mood logs failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.MoodLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, *toMoodLogResponse(&logs[i]))
	}
	return result, nil
}

func toMoodLogResponse(m *model.MoodLog) *dto.MoodLogResponse {
	return &dto.MoodLogResponse{
		ID:          m.MoodLogID,
		Mood:        m.Mood,
		EnergyLevel: m.EnergyLevel,
		Notes:       m.Notes,
		CreatedAt:   dto.FormatTime(m.CreatedAt),
	}
}
