// Package notify delivers caregiver notifications over push (websocket),
// SMS and e-mail.
package notify

import (
	"context"
	"errors"
)

// ErrNoAddress means the recipient has nothing to deliver to on a channel.
var ErrNoAddress = errors.New("recipient has no address for this channel")

// Recipient is one caregiver to notify.
type Recipient struct {
	CaregiverID string
	Name        string
	Phone       string
	Email       string
}

// Message is the channel-independent notification.
type Message struct {
	Event       string         `json:"event"`
	UserID      string         `json:"user_id"`
	ReferenceID string         `json:"reference_id"`
	Subject     string         `json:"subject"`
	Body        string         `json:"body"`
	Data        map[string]any `json:"data,omitempty"`
}

// Channel is one delivery route.
type Channel interface {
	Name() string
	// Address returns where r is reached on this channel, or "".
	Address(r Recipient) string
	Send(ctx context.Context, r Recipient, msg Message) error
}
