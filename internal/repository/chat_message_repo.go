package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, msg *model.ChatMessage) error
	// ListRecent returns the last limit messages in chronological order.
	ListRecent(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error)
}

type chatMessageRepo struct {
	db *gorm.DB
}

func NewChatMessageRepo(db *gorm.DB) ChatMessageRepository {
	return &chatMessageRepo{db: db}
}

func (r *chatMessageRepo) Create(ctx context.Context, msg *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatMessageRepo) ListRecent(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, message_id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
