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

// DonorService is the donor-registration workflow: validate the draft,
// then write the donor row and its announcement event in one transaction.
type DonorService struct {
	donorRepo ports.DonorRepository
}

var _ ports.DonorService = (*DonorService)(nil)

func NewDonorService(donorRepo ports.DonorRepository) *DonorService {
	return &DonorService{donorRepo: donorRepo}
}

// RegisterDonor validates and stores a donor. Validation failures abort
// before any repository call.
func (s *DonorService) RegisterDonor(ctx context.Context, donor domain.Donor) (*domain.Donor, error) {
	if err := donor.Validate(); err != nil {
		return nil, err
	}

	donor.ID = uuid.NewString()
	donor.CreatedAt = time.Now()

	outboxPayload, err := json.Marshal(ports.PushNotificationEvent{
		Title:      "New donor registered",
		Message:    fmt.Sprintf("%s (%s) joined the donor community in %s.", donor.Name, donor.BloodType, donor.Location),
		TargetType: domain.TargetAll,
	})
	if err != nil {
		return nil, fmt.Errorf("register donor: %w", err)
	}

	created, err := s.donorRepo.Create(ctx, donor, outboxPayload)
	if err != nil {
		return nil, fmt.Errorf("register donor: %w", err)
	}
	return created, nil
}

func (s *DonorService) ListDonors(ctx context.Context) ([]domain.Donor, error) {
	donors, err := s.donorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	return donors, nil
}
