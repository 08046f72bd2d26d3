package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/internal/notify"
)

const streamPingInterval = 25 * time.Second

// StreamHandler upgrades caregiver connections to the push alert stream.
type StreamHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewStreamHandler accepts origins from allowOrigins. An empty list accepts
// any origin, which only suits local development.
func NewStreamHandler(hub *notify.Hub, allowOrigins []string, logger *zap.Logger) *StreamHandler {
	allowed := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed[origin]
			},
		},
		logger: logger,
	}
}

// Alerts streams notifications to the caregiver until the socket closes.
// GET /api/v1/caregiver/ws
func (h *StreamHandler) Alerts(c *gin.Context) {
	caregiverID, ok := MustGetCaregiverID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already answered the client.
		h.logger.Warn("websocket upgrade failed", zap.String("caregiver_id", caregiverID), zap.Error(err))
		return
	}

	client := &notify.Client{CaregiverID: caregiverID, Conn: conn}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	done := make(chan struct{})
	defer close(done)

	go func() {
		t := time.NewTicker(streamPingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := client.Ping(); err != nil {
					h.hub.Unregister(client)
					return
				}
			}
		}
	}()

	// Clients never send anything meaningful; reading only detects close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
