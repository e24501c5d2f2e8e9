package ports

import (
	"context"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
)

// PushNotificationEventType marks outbox rows the relay forwards to the
// notifications queue.
const PushNotificationEventType = "push_notification"

// PushNotificationEvent is the outbox payload relayed to the
// notifications queue.
type PushNotificationEvent struct {
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	TargetType domain.TargetType `json:"target_type"`
	TargetData map[string]string `json:"target_data,omitempty"`
}

type NotificationPublisher interface {
	PublishPushNotification(ctx context.Context, evt PushNotificationEvent) error
}
