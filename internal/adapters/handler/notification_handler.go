package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notifications ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notifications}
}

type PushRequest struct {
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	TargetType string            `json:"target_type"`
	TargetData map[string]string `json:"target_data,omitempty"`
}

// SendPush lets admins broadcast a notification to an audience.
func (h *NotificationHandler) SendPush(w http.ResponseWriter, r *http.Request) {
	var req PushRequest
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" {
		http.Error(w, "title and message are required", http.StatusBadRequest)
		return
	}

	err := h.notificationService.SendPush(r.Context(), req.Title, req.Message, domain.TargetType(req.TargetType), req.TargetData)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTargetType) {
			http.Error(w, "unknown target type", http.StatusBadRequest)
			return
		}
		log.Printf("notification handler: dispatch failed: %v", err)
		http.Error(w, "failed to send notification", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, MessageResponse{Message: "Notification queued"})
}
