package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/services"
	"github.com/lifelink/bloodlink/donor-community-service/test/mocks"
)

func TestDonorService_RegisterDonor(t *testing.T) {
	valid := domain.Donor{
		Name:                  "Jane Doe",
		BloodType:             domain.BloodONeg,
		Location:              "Utrecht",
		ContactNumber:         "+31 6 1111 2222",
		AvailableForEmergency: true,
	}

	tests := []struct {
		name      string
		donor     func() domain.Donor
		setupMock func(*mocks.MockDonorRepository)
		wantErr   error
		wantCalls int
	}{
		{
			name:      "successful_registration",
			donor:     func() domain.Donor { return valid },
			setupMock: func(m *mocks.MockDonorRepository) {},
			wantCalls: 1,
		},
		{
			name: "missing_blood_type_blocks_before_store",
			donor: func() domain.Donor {
				d := valid
				d.BloodType = ""
				return d
			},
			setupMock: func(m *mocks.MockDonorRepository) {},
			wantErr:   domain.ErrMissingBloodType,
			wantCalls: 0,
		},
		{
			name: "unknown_blood_type_blocks_before_store",
			donor: func() domain.Donor {
				d := valid
				d.BloodType = "Q+"
				return d
			},
			setupMock: func(m *mocks.MockDonorRepository) {},
			wantErr:   domain.ErrInvalidBloodType,
			wantCalls: 0,
		},
		{
			name:  "store_failure_surfaces",
			donor: func() domain.Donor { return valid },
			setupMock: func(m *mocks.MockDonorRepository) {
				m.CreateError = context.DeadlineExceeded
			},
			wantErr:   context.DeadlineExceeded,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockDonorRepository()
			tt.setupMock(mockRepo)

			service := services.NewDonorService(mockRepo)
			created, err := service.RegisterDonor(context.Background(), tt.donor())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if created.ID == "" || created.CreatedAt.IsZero() {
					t.Error("expected a store-assigned ID and timestamp")
				}
			}

			if len(mockRepo.CreateCalls) != tt.wantCalls {
				t.Errorf("expected %d Create calls, got %d", tt.wantCalls, len(mockRepo.CreateCalls))
			}
		})
	}
}

func TestDonorService_ListDonors(t *testing.T) {
	mockRepo := mocks.NewMockDonorRepository()
	service := services.NewDonorService(mockRepo)

	if _, err := service.RegisterDonor(context.Background(), domain.Donor{
		Name:          "Jane Doe",
		BloodType:     domain.BloodAPos,
		Location:      "Utrecht",
		ContactNumber: "+31 6 1111 2222",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	donors, err := service.ListDonors(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(donors) != 1 {
		t.Fatalf("expected 1 donor, got %d", len(donors))
	}

	mockRepo.ListError = context.DeadlineExceeded
	if _, err := service.ListDonors(context.Background()); err == nil {
		t.Error("expected a list failure to surface")
	}
}
