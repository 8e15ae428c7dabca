package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"echome-server/internal/app"
	"echome-server/internal/model"
	"echome-server/internal/transport/http/middleware"
	"echome-server/internal/transport/http/response"
)

// MemoryHandler serves the authenticated /memories routes, which
// attribute entries to the verified caller instead of trusting a userId
// in the body.
type MemoryHandler struct {
	entryService *app.EntryService
}

func NewMemoryHandler(entryService *app.EntryService) *MemoryHandler {
	return &MemoryHandler{entryService: entryService}
}

type CreateMemoryRequest struct {
	Message string `json:"message"`
	// Text is a legacy alias for Message kept for older clients; Message
	// wins when both are set.
	Text       string `json:"text"`
	AIResponse string `json:"aiResponse"`
}

// Create handles POST /memories.
func (h *MemoryHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.MsgInvalidToken)
		return
	}

	var req CreateMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgMissingFields)
		return
	}

	message := req.Message
	if message == "" {
		message = req.Text
	}

	entry, err := h.entryService.CreateMemory(c.Request.Context(), identity, app.CreateMemoryInput{
		Message:    message,
		AIResponse: req.AIResponse,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.MsgMissingFields)
			return
		}
		log.Printf("save memory failed: %v", err)
		response.Error(c, http.StatusInternalServerError, response.MsgSaveMemory)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// List handles GET /memories.
func (h *MemoryHandler) List(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.MsgInvalidToken)
		return
	}

	entries, err := h.entryService.ListCallerEntries(identity)
	if err != nil {
		log.Printf("list caller memories failed: %v", err)
		response.Error(c, http.StatusInternalServerError, response.MsgFetchMemories)
		return
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}
