package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/services"
	"github.com/lifelink/bloodlink/donor-community-service/test/mocks"
)

func TestRequestService_CreateRequest(t *testing.T) {
	valid := domain.BloodRequest{
		PatientName:   "John Smith",
		BloodType:     domain.BloodBNeg,
		Hospital:      "Erasmus MC",
		Location:      "Rotterdam",
		ContactNumber: "+31 6 3333 4444",
		Urgency:       domain.UrgencyStandard,
	}

	tests := []struct {
		name      string
		request   func() domain.BloodRequest
		wantErr   error
		wantCalls int
	}{
		{
			name:      "successful_creation",
			request:   func() domain.BloodRequest { return valid },
			wantCalls: 1,
		},
		{
			name: "missing_blood_type_blocks_before_store",
			request: func() domain.BloodRequest {
				r := valid
				r.BloodType = ""
				return r
			},
			wantErr:   domain.ErrMissingBloodType,
			wantCalls: 0,
		},
		{
			name: "unknown_urgency_blocks_before_store",
			request: func() domain.BloodRequest {
				r := valid
				r.Urgency = "asap"
				return r
			},
			wantErr:   domain.ErrInvalidUrgency,
			wantCalls: 0,
		},
		{
			name: "missing_hospital_blocks_before_store",
			request: func() domain.BloodRequest {
				r := valid
				r.Hospital = ""
				return r
			},
			wantErr:   domain.ErrMissingField,
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockRequestRepository()
			service := services.NewRequestService(mockRepo)

			created, err := service.CreateRequest(context.Background(), tt.request())

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

func TestRequestService_StoreFailureSurfaces(t *testing.T) {
	mockRepo := mocks.NewMockRequestRepository()
	mockRepo.CreateError = context.DeadlineExceeded
	service := services.NewRequestService(mockRepo)

	_, err := service.CreateRequest(context.Background(), domain.BloodRequest{
		PatientName:   "John Smith",
		BloodType:     domain.BloodOPos,
		Hospital:      "Erasmus MC",
		Location:      "Rotterdam",
		ContactNumber: "+31 6 3333 4444",
		Urgency:       domain.UrgencyUrgent,
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected the store error to surface, got %v", err)
	}
}
