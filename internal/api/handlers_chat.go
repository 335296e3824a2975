package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"movierec/internal/chat"
	"movierec/internal/metrics"
)

const maxChatBody = 64 << 10

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"omitempty,oneof=auto greeting recommend search"`
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, ErrCodeValidation, "request body too large", nil)
			return
		}
		h.respondEngineError(w, "chat", fieldError("body", "json", "request body must be a JSON object"))
		return
	}
	if err := validateStruct(&req); err != nil {
		h.respondEngineError(w, "chat", err)
		return
	}
	intent, _ := chat.ParseIntent(req.Type)

	reply, err := h.chat.Reply(chat.Message{Text: req.Message, Intent: intent})
	if err != nil {
		h.respondEngineError(w, "chat", err)
		return
	}
	metrics.RecordQuery("chat", "ok")
	metrics.ChatIntents.WithLabelValues(reply.Type).Inc()
	respondJSON(w, http.StatusOK, reply)
}
