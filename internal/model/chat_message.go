package model

import "gorm.io/gorm"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of the companion conversation.
type ChatMessage struct {
	MessageID string `gorm:"type:varchar(36);primaryKey"     json:"message_id"`
	UserID    string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Role      string `gorm:"type:varchar(20);not null"       json:"role"`
	Content   string `gorm:"type:text;not null"              json:"content"`
	BaseModel
}

func (ChatMessage) TableName() string { return "chat_messages" }

func (m *ChatMessage) BeforeCreate(*gorm.DB) error {
	newID(&m.MessageID)
	return nil
}
