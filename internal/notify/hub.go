package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

// ErrNotConnected is returned when a caregiver has no open stream.
var ErrNotConnected = errors.New("caregiver has no open connection")

// DefaultWriteWait bounds a single write to a caregiver stream.
const DefaultWriteWait = 5 * time.Second

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one open caregiver stream.
type Client struct {
	CaregiverID string
	Conn        Conn
	// WriteWait overrides DefaultWriteWait when positive.
	WriteWait time.Duration

	mu sync.Mutex
}

func (c *Client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	wait := c.WriteWait
	if wait <= 0 {
		wait = DefaultWriteWait
	}
	if err := c.Conn.SetWriteDeadline(time.Now().Add(wait)); err != nil {
		return err
	}
	return c.Conn.WriteMessage(messageType, data)
}

// Ping writes a websocket ping, serialised with other writes.
func (c *Client) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

// Hub fans push notifications out to every open stream of a caregiver.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.CaregiverID] == nil {
		h.clients[c.CaregiverID] = make(map[*Client]struct{})
	}
	h.clients[c.CaregiverID][c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("ws client registered", zap.String("caregiver_id", c.CaregiverID))
}

// Unregister removes c and closes its connection. Calling it twice is safe.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	set := h.clients[c.CaregiverID]
	_, present := set[c]
	if present {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.CaregiverID)
		}
	}
	h.mu.Unlock()
	if present {
		_ = c.Conn.Close()
	}
}

// Connected reports the number of open streams of a caregiver.
func (h *Hub) Connected(caregiverID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[caregiverID])
}

func (h *Hub) Name() string { return model.ChannelPush }

func (h *Hub) Address(r Recipient) string { return r.CaregiverID }

// Send writes msg to every stream of the recipient. It fails only when no
// stream accepted the message.
func (h *Hub) Send(_ context.Context, r Recipient, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[r.CaregiverID]))
	for c := range h.clients[r.CaregiverID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return ErrNotConnected
	}

	delivered := 0
	for _, c := range targets {
		if err := c.write(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("ws write failed", zap.String("caregiver_id", r.CaregiverID), zap.Error(err))
			h.Unregister(c)
			continue
		}
		delivered++
	}
	if delivered == 0 {
		return ErrNotConnected
	}
	return nil
}
