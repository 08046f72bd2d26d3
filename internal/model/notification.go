package model

import (
	"time"

	"gorm.io/gorm"
)

// Delivery channels.
const (
	ChannelPush  = "push"
	ChannelSMS   = "sms"
	ChannelEmail = "email"

	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

// NotificationLog records one delivery attempt to one recipient.
type NotificationLog struct {
	NotificationID   string    `gorm:"type:varchar(36);primaryKey"     json:"notification_id"`
	UserID           string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	NotificationType string    `gorm:"type:varchar(30);not null"       json:"notification_type"`
	ReferenceType    string    `gorm:"type:varchar(30);not null"       json:"reference_type"`
	ReferenceID      string    `gorm:"type:varchar(36);not null"       json:"reference_id"`
	Message          string    `gorm:"type:text;not null"              json:"message"`
	Channel          string    `gorm:"type:varchar(20);not null"       json:"channel"`
	SentTo           string    `gorm:"type:varchar(255);not null"      json:"sent_to"`
	Status           string    `gorm:"type:varchar(20);not null"       json:"status"`
	Error            string    `gorm:"type:text;not null"              json:"error,omitempty"`
	SentAt           time.Time `gorm:"not null"                        json:"sent_at"`
}

func (NotificationLog) TableName() string { return "notification_logs" }

func (n *NotificationLog) BeforeCreate(*gorm.DB) error {
	newID(&n.NotificationID)
	return nil
}
