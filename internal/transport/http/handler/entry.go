package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"echome-server/internal/app"
	"echome-server/internal/model"
	"echome-server/internal/transport/http/response"
)

type EntryHandler struct {
	entryService *app.EntryService
}

func NewEntryHandler(entryService *app.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

type SubmitMessageRequest struct {
	UserID    string  `json:"userId"`
	Message   string  `json:"message"`
	Kind      string  `json:"kind"`
	SessionID *string `json:"sessionId"`
}

// SubmitMessage handles POST /api/message.
func (h *EntryHandler) SubmitMessage(c *gin.Context) {
	var req SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgMissingFields)
		return
	}

	result, err := h.entryService.SubmitMessage(c.Request.Context(), app.SubmitMessageInput{
		UserID:    req.UserID,
		Message:   req.Message,
		Kind:      model.Kind(req.Kind),
		SessionID: req.SessionID,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.MsgMissingFields)
			return
		}
		// Provider and store failures alike collapse to one generic
		// message; detail stays server-side.
		log.Printf("submit message failed: %v", err)
		response.Error(c, http.StatusInternalServerError, response.MsgAIError)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMemories handles GET /api/memories/:userId.
func (h *EntryHandler) ListMemories(c *gin.Context) {
	entries, err := h.entryService.ListMemories(c.Param("userId"))
	if err != nil {
		log.Printf("list memories failed: %v", err)
		response.Error(c, http.StatusInternalServerError, response.MsgFetchMemories)
		return
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

// ListSessions handles GET /api/sessions/:userId.
func (h *EntryHandler) ListSessions(c *gin.Context) {
	sessions, err := h.entryService.ListSessions(c.Param("userId"))
	if err != nil {
		log.Printf("list sessions failed: %v", err)
		response.Error(c, http.StatusInternalServerError, response.MsgFetchSessions)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// SessionChat handles GET /api/chats/:userId/:sessionId.
func (h *EntryHandler) SessionChat(c *gin.Context) {
	entries, err := h.entryService.SessionChat(c.Request.Context(), c.Param("userId"), c.Param("sessionId"))
	if err != nil {
		log.Printf("list session chat failed: %v", err)
		response.Error(c, http.StatusInternalServerError, response.MsgFetchChats)
		return
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}
