package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

// PushNotificationService formats and enqueues push notifications.
// Stateless between calls: every notification is one outbox row, picked
// up and delivered by the relay.
type PushNotificationService struct {
	outbox ports.OutboxRepository
}

var _ ports.NotificationService = (*PushNotificationService)(nil)

func NewPushNotificationService(outbox ports.OutboxRepository) *PushNotificationService {
	return &PushNotificationService{outbox: outbox}
}

// SendPush is the low-level dispatch every convenience wrapper delegates
// to. It fails only on an unknown target type or a storage error.
func (s *PushNotificationService) SendPush(ctx context.Context, title, message string, target domain.TargetType, targetData map[string]string) error {
	if !domain.ValidTargetType(target) {
		return domain.ErrInvalidTargetType
	}

	payload, err := json.Marshal(ports.PushNotificationEvent{
		Title:      title,
		Message:    message,
		TargetType: target,
		TargetData: targetData,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}

	if err := s.outbox.Insert(ctx, ports.PushNotificationEventType, payload); err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	return nil
}

// NotifyDonationResponse tells a requester that a donor answered.
func (s *PushNotificationService) NotifyDonationResponse(ctx context.Context, donorName, patientName string) error {
	return s.SendPush(ctx,
		"Donation response",
		fmt.Sprintf("%s has responded to the blood request for %s.", donorName, patientName),
		domain.TargetSpecificUsers,
		map[string]string{"patient_name": patientName},
	)
}

// NotifyNewRequest announces a blood request; urgent ones target donors.
func (s *PushNotificationService) NotifyNewRequest(ctx context.Context, req domain.BloodRequest) error {
	evt := newRequestEvent(req)
	return s.SendPush(ctx, evt.Title, evt.Message, evt.TargetType, evt.TargetData)
}

// NotifyEventAnnouncement announces a community event to everyone.
func (s *PushNotificationService) NotifyEventAnnouncement(ctx context.Context, eventName, date, location string) error {
	return s.SendPush(ctx,
		"Upcoming event",
		fmt.Sprintf("%s on %s at %s. Join us!", eventName, date, location),
		domain.TargetAll,
		nil,
	)
}

// NotifyAchievement congratulates a user on an unlocked achievement.
func (s *PushNotificationService) NotifyAchievement(ctx context.Context, userName, achievement string) error {
	return s.SendPush(ctx,
		"Achievement unlocked",
		fmt.Sprintf("Congratulations %s, you unlocked: %s!", userName, achievement),
		domain.TargetSpecificUsers,
		map[string]string{"user_name": userName},
	)
}
