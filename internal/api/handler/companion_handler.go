package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/service"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// CompanionHandler serves mood check-ins and the companion chat.
type CompanionHandler struct {
	moodSvc service.MoodService
	chatSvc service.ChatService
}

func NewCompanionHandler(moodSvc service.MoodService, chatSvc service.ChatService) *CompanionHandler {
	return &CompanionHandler{moodSvc: moodSvc, chatSvc: chatSvc}
}

// LogMood POST /api/v1/mood
func (h *CompanionHandler) LogMood(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 16000, err)
		return
	}

	entry, err := h.moodSvc.Log(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, entry)
}

// RecentMood GET /api/v1/mood/recent
func (h *CompanionHandler) RecentMood(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	items, err := h.moodSvc.Recent(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// ChatHistory GET /api/v1/chat/messages
func (h *CompanionHandler) ChatHistory(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	items, err := h.chatSvc.History(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// SendChat stores a message and returns the companion's reply.
// POST /api/v1/chat/send
func (h *CompanionHandler) SendChat(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, 16000, err)
		return
	}

	reply, err := h.chatSvc.Send(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, reply)
}
