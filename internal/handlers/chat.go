package handlers

import (
	"context"
	"errors"
	"net/http"

	"wellness-backend/internal/models"
	"wellness-backend/internal/services"
)

type chatRelay interface {
	Relay(ctx context.Context, message string) (models.ChatReply, error)
}

type ChatHandler struct {
	relay chatRelay
}

func NewChatHandler(relay chatRelay) *ChatHandler {
	return &ChatHandler{relay: relay}
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	reply, err := h.relay.Relay(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, services.ErrNoMessage) {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", services.ErrNoMessage.Error(), r))
			return
		}
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}
