package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ekaraca/vspecs/internal/apperror"
)

// CoachClient is what the chat handler needs from the coach integration.
// Declared here (consumer side) so tests can swap in a stub.
type CoachClient interface {
	Chat(ctx context.Context, message string) (string, error)
}

// ChatHandler proxies "ask the coach" messages to the LLM upstream.
type ChatHandler struct {
	coach  CoachClient
	logger *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(coach CoachClient, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{coach: coach, logger: logger}
}

type chatRequest struct {
	Message string `json:"message"`
}

// HandleChat forwards one message and returns the reply text.
//
// HTTP: POST /api/chat
// Body: {"message": "..."} → {"reply": "..."}
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if req.Message == "" {
		writeError(w, apperror.ValidationFailed("message", "message is required"))
		return
	}

	reply, err := h.coach.Chat(r.Context(), req.Message)
	if err != nil {
		h.logger.Error("coach request failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
