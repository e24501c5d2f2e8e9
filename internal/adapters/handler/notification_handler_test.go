package handler_test

import (
	"net/http"
	"testing"

	"github.com/lifelink/bloodlink/donor-community-service/internal/adapters/handler"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/services"
	"github.com/lifelink/bloodlink/donor-community-service/test/mocks"
)

func TestNotificationHandler_SendPush(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantQueued int
	}{
		{
			name:       "broadcast to everyone",
			body:       `{"title":"Blood Drive","message":"This Saturday at City Hall","target_type":"all"}`,
			wantStatus: http.StatusAccepted,
			wantQueued: 1,
		},
		{
			name:       "targeted to specific users",
			body:       `{"title":"Thank you","message":"Your donation helped","target_type":"specific_users","target_data":{"user_id":"user-1"}}`,
			wantStatus: http.StatusAccepted,
			wantQueued: 1,
		},
		{
			name:       "unknown target type",
			body:       `{"title":"Blood Drive","message":"This Saturday","target_type":"everyone-ever"}`,
			wantStatus: http.StatusBadRequest,
			wantQueued: 0,
		},
		{
			name:       "missing title",
			body:       `{"title":" ","message":"This Saturday","target_type":"all"}`,
			wantStatus: http.StatusBadRequest,
			wantQueued: 0,
		},
		{
			name:       "malformed body",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
			wantQueued: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outbox := mocks.NewMockOutboxRepository()
			h := handler.NewNotificationHandler(services.NewPushNotificationService(outbox))

			rec := postJSON(t, h.SendPush, tt.body)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if outbox.InsertCount() != tt.wantQueued {
				t.Errorf("queued events = %d, want %d", outbox.InsertCount(), tt.wantQueued)
			}
		})
	}
}
