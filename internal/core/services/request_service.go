package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

// RequestService is the blood-request workflow. A stored request always
// carries its announcement event in the same transaction, so a request
// can never exist without the donor community hearing about it.
type RequestService struct {
	requestRepo ports.RequestRepository
}

var _ ports.RequestService = (*RequestService)(nil)

func NewRequestService(requestRepo ports.RequestRepository) *RequestService {
	return &RequestService{requestRepo: requestRepo}
}

// CreateRequest validates and stores a blood request. Urgent requests
// are announced to donors; the rest go to everyone.
func (s *RequestService) CreateRequest(ctx context.Context, req domain.BloodRequest) (*domain.BloodRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	req.ID = uuid.NewString()
	req.CreatedAt = time.Now()

	outboxPayload, err := json.Marshal(newRequestEvent(req))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	created, err := s.requestRepo.Create(ctx, req, outboxPayload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return created, nil
}

func (s *RequestService) ListRequests(ctx context.Context) ([]domain.BloodRequest, error) {
	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

func newRequestEvent(req domain.BloodRequest) ports.PushNotificationEvent {
	evt := ports.PushNotificationEvent{
		Title:      "New blood request",
		Message:    fmt.Sprintf("%s blood needed for %s at %s, %s.", req.BloodType, req.PatientName, req.Hospital, req.Location),
		TargetType: domain.TargetAll,
		TargetData: map[string]string{"request_id": req.ID, "blood_type": string(req.BloodType)},
	}
	if req.Urgency == domain.UrgencyUrgent {
		evt.Title = "URGENT blood request"
		evt.Message = fmt.Sprintf("URGENT: %s blood needed for %s at %s, %s. Please respond if you can donate.",
			req.BloodType, req.PatientName, req.Hospital, req.Location)
		evt.TargetType = domain.TargetDonors
	}
	return evt
}
