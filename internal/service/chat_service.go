package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/internal/assistant"
	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/metrics"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
)

const chatHistoryLimit = 50

// fallbackReply is stored when the configured assistant cannot answer.
const fallbackReply = "I'm here with you. Could you tell me that again in a moment?"

type ChatService interface {
	// History returns the last 50 messages in chronological order.
	History(ctx context.Context, userID string) ([]dto.ChatMessageResponse, error)
	// Send stores the user's message and the assistant's reply.
	Send(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatReplyResponse, error)
}

type chatService struct {
	repo        *repository.Repository
	responder   assistant.Responder
	historySize int
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewChatService(
	repo *repository.Repository,
	responder assistant.Responder,
	historySize int,
	m *metrics.Metrics,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		repo:        repo,
		responder:   responder,
		historySize: historySize,
		metrics:     m,
		logger:      logger,
	}
}

func (s *chatService) History(ctx context.Context, userID string) ([]dto.ChatMessageResponse, error) {
	msgs, err := s.repo.Chat.ListRecent(ctx, userID, chatHistoryLimit)
	if err != nil {
		s.logger.Error("list chat messages failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.ChatMessageResponse, 0, len(msgs))
	for i := range msgs {
		result = append(result, toChatMessageResponse(&msgs[i]))
	}
	return result, nil
}

func (s *chatService) Send(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatReplyResponse, error) {
	text := strings.TrimSpace(req.Message)

	history, err := s.repo.Chat.ListRecent(ctx, userID, s.historySize)
	if err != nil {
		s.logger.Error("load chat history failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	areq := assistant.Request{Message: text}
	if user, err := s.repo.User.GetByID(ctx, userID); err == nil {
		areq.UserName = user.Name
		areq.Language = user.Language
	}
	for _, m := range history {
		areq.History = append(areq.History, assistant.Turn{Role: m.Role, Content: m.Content})
	}

	replyText, err := s.responder.Reply(ctx, areq)
	switch {
	case err == nil:
		s.metrics.IncAssistant(s.responder.Name(), "ok")
	case errors.Is(err, assistant.ErrUnavailable):
		s.metrics.IncAssistant(s.responder.Name(), "unavailable")
		replyText = fallbackReply
	default:
		s.metrics.IncAssistant(s.responder.Name(), "error")
		s.logger.Warn("assistant reply failed", zap.String("user_id", userID), zap.Error(err))
		replyText = fallbackReply
	}

	userMsg := &model.ChatMessage{UserID: userID, Role: model.ChatRoleUser, Content: text}
	reply := &model.ChatMessage{UserID: userID, Role: model.ChatRoleAssistant, Content: replyText}
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Chat.Create(ctx, userMsg); err != nil {
			return err
		}
		return txRepo.Chat.Create(ctx, reply)
	})
	if err != nil {
		s.logger.Error("save chat exchange failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.ChatReplyResponse{
		Message: toChatMessageResponse(userMsg),
		Reply:   toChatMessageResponse(reply),
	}, nil
}

func toChatMessageResponse(m *model.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:        m.MessageID,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: dto.FormatTime(m.CreatedAt),
	}
}
