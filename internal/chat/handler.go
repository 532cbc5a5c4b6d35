package chat

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gdscwm/gemini-ai-study-planner/pkg/logging"
)

const maxMessageRunes = 10000

// ChatHandler exposes the composer over HTTP.
type ChatHandler struct {
	Sessions *SessionStore
	Composer *Composer
	Logger   logging.Logger
}

func NewChatHandler(sessions *SessionStore, composer *Composer, logger logging.Logger) *ChatHandler {
	return &ChatHandler{
		Sessions: sessions,
		Composer: composer,
		Logger:   logger,
	}
}

// RegisterRoutes mounts the chat API on a router group.
func RegisterRoutes(router gin.IRoutes, handler *ChatHandler) {
	router.POST("/chat", handler.HandleChat)
}

type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	if h == nil || h.Composer == nil || h.Sessions == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "handler unavailable"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if len([]rune(req.Message)) > maxMessageRunes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message too long"})
		return
	}

	// Unknown or absent session ids get a fresh session rather than an
	// error; conversations are ephemeral and a restart drops them all.
	session, ok := h.Sessions.Get(strings.TrimSpace(req.SessionID))
	if !ok {
		session = h.Sessions.Create()
	}

	reply, err := h.Composer.Respond(c.Request.Context(), session, req.Message)
	if err != nil {
		chatRequestsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		c.JSON(statusForError(err), gin.H{"error": FallbackMessage(err)})
		return
	}

	chatRequestsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, ChatResponse{
		SessionID: session.ID,
		Response:  reply,
	})
}

func statusForError(err error) int {
	var composeErr *Error
	if errors.As(err, &composeErr) {
		switch composeErr.Kind {
		case KindNotConfigured:
			return http.StatusServiceUnavailable
		case KindSearchUnavailable, KindModelCall:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

func outcomeLabel(err error) string {
	var composeErr *Error
	if errors.As(err, &composeErr) {
		switch composeErr.Kind {
		case KindNotConfigured:
			return "not_configured"
		case KindSearchUnavailable:
			return "search_unavailable"
		case KindModelCall:
			return "model_failure"
		}
	}
	return "model_failure"
}
