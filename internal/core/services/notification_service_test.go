package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/services"
	"github.com/lifelink/bloodlink/donor-community-service/test/mocks"
)

func decodeEvent(t *testing.T, payload []byte) ports.PushNotificationEvent {
	t.Helper()
	var evt ports.PushNotificationEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		t.Fatalf("outbox payload is not a valid event: %v", err)
	}
	return evt
}

func TestSendPush(t *testing.T) {
	outbox := mocks.NewMockOutboxRepository()
	service := services.NewPushNotificationService(outbox)

	err := service.SendPush(context.Background(), "Hello", "World", domain.TargetAll, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outbox.InsertCount() != 1 {
		t.Fatalf("expected exactly 1 outbox write, got %d", outbox.InsertCount())
	}
	if outbox.Inserts[0].EventType != ports.PushNotificationEventType {
		t.Errorf("unexpected event type %q", outbox.Inserts[0].EventType)
	}

	// Unknown target type never reaches the store.
	err = service.SendPush(context.Background(), "Hello", "World", "everyone", nil)
	if !errors.Is(err, domain.ErrInvalidTargetType) {
		t.Fatalf("expected ErrInvalidTargetType, got %v", err)
	}
	if outbox.InsertCount() != 1 {
		t.Errorf("invalid target must not write to the outbox")
	}
}

func TestSendPush_StoreFailureSurfaces(t *testing.T) {
	outbox := mocks.NewMockOutboxRepository()
	outbox.InsertError = context.DeadlineExceeded
	service := services.NewPushNotificationService(outbox)

	err := service.SendPush(context.Background(), "Hello", "World", domain.TargetAll, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected the store error to surface, got %v", err)
	}
}

func TestConvenienceWrappers(t *testing.T) {
	outbox := mocks.NewMockOutboxRepository()
	service := services.NewPushNotificationService(outbox)
	ctx := context.Background()

	if err := service.NotifyDonationResponse(ctx, "Jane", "John"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.NotifyEventAnnouncement(ctx, "Donor Day", "2026-10-01", "Amsterdam"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.NotifyAchievement(ctx, "Jane", "10 donations"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outbox.InsertCount() != 3 {
		t.Fatalf("expected 3 outbox writes, got %d", outbox.InsertCount())
	}

	response := decodeEvent(t, outbox.Inserts[0].Payload)
	if response.TargetType != domain.TargetSpecificUsers {
		t.Errorf("donation responses target specific users, got %q", response.TargetType)
	}
	if !strings.Contains(response.Message, "Jane") || !strings.Contains(response.Message, "John") {
		t.Errorf("donation response message is missing names: %q", response.Message)
	}

	announcement := decodeEvent(t, outbox.Inserts[1].Payload)
	if announcement.TargetType != domain.TargetAll {
		t.Errorf("event announcements target everyone, got %q", announcement.TargetType)
	}

	achievement := decodeEvent(t, outbox.Inserts[2].Payload)
	if !strings.Contains(achievement.Message, "10 donations") {
		t.Errorf("achievement message is missing the achievement: %q", achievement.Message)
	}
}

func TestNotifyNewRequest_UrgencyTargeting(t *testing.T) {
	outbox := mocks.NewMockOutboxRepository()
	service := services.NewPushNotificationService(outbox)

	base := domain.BloodRequest{
		ID:          "req-1",
		PatientName: "John Smith",
		BloodType:   domain.BloodONeg,
		Hospital:    "Erasmus MC",
		Location:    "Rotterdam",
	}

	standard := base
	standard.Urgency = domain.UrgencyStandard
	if err := service.NotifyNewRequest(context.Background(), standard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	urgent := base
	urgent.Urgency = domain.UrgencyUrgent
	if err := service.NotifyNewRequest(context.Background(), urgent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	standardEvt := decodeEvent(t, outbox.Inserts[0].Payload)
	if standardEvt.TargetType != domain.TargetAll {
		t.Errorf("standard requests go to everyone, got %q", standardEvt.TargetType)
	}

	urgentEvt := decodeEvent(t, outbox.Inserts[1].Payload)
	if urgentEvt.TargetType != domain.TargetDonors {
		t.Errorf("urgent requests go to donors, got %q", urgentEvt.TargetType)
	}
	if !strings.Contains(urgentEvt.Message, "URGENT") {
		t.Errorf("urgent message is missing the urgency marker: %q", urgentEvt.Message)
	}
}
