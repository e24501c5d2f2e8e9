package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
)

func TestDonorValidate(t *testing.T) {
	valid := domain.Donor{
		Name:          "Jane Doe",
		BloodType:     domain.BloodOPos,
		Location:      "Rotterdam",
		ContactNumber: "+31 6 1234 5678",
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Donor)
		wantErr error
	}{
		{
			name:    "valid_donor",
			mutate:  func(d *domain.Donor) {},
			wantErr: nil,
		},
		{
			name:    "missing_blood_type",
			mutate:  func(d *domain.Donor) { d.BloodType = "" },
			wantErr: domain.ErrMissingBloodType,
		},
		{
			name:    "unknown_blood_type",
			mutate:  func(d *domain.Donor) { d.BloodType = "Z+" },
			wantErr: domain.ErrInvalidBloodType,
		},
		{
			name:    "missing_name",
			mutate:  func(d *domain.Donor) { d.Name = "  " },
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "missing_contact",
			mutate:  func(d *domain.Donor) { d.ContactNumber = "" },
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "negative_donation_count",
			mutate:  func(d *domain.Donor) { d.TotalDonations = -1 },
			wantErr: domain.ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			donor := valid
			tt.mutate(&donor)

			err := donor.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDonorValidate_NamesFirstMissingField(t *testing.T) {
	donor := domain.Donor{BloodType: domain.BloodOPos}

	for i := 0; i < 20; i++ {
		err := donor.Validate()
		if err == nil || !strings.HasSuffix(err.Error(), ": name") {
			t.Fatalf("expected the name field to be reported first, got %v", err)
		}
	}
}

func TestBloodRequestValidate(t *testing.T) {
	valid := domain.BloodRequest{
		PatientName:   "John Smith",
		BloodType:     domain.BloodABNeg,
		Hospital:      "Erasmus MC",
		Location:      "Rotterdam",
		ContactNumber: "+31 6 8765 4321",
		Urgency:       domain.UrgencyHigh,
	}

	tests := []struct {
		name    string
		mutate  func(*domain.BloodRequest)
		wantErr error
	}{
		{
			name:    "valid_request",
			mutate:  func(r *domain.BloodRequest) {},
			wantErr: nil,
		},
		{
			name:    "missing_blood_type",
			mutate:  func(r *domain.BloodRequest) { r.BloodType = "" },
			wantErr: domain.ErrMissingBloodType,
		},
		{
			name:    "unknown_urgency",
			mutate:  func(r *domain.BloodRequest) { r.Urgency = "critical" },
			wantErr: domain.ErrInvalidUrgency,
		},
		{
			name:    "missing_hospital",
			mutate:  func(r *domain.BloodRequest) { r.Hospital = "" },
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "missing_patient_name",
			mutate:  func(r *domain.BloodRequest) { r.PatientName = " " },
			wantErr: domain.ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBloodRequestValidate_NamesFirstMissingField(t *testing.T) {
	req := domain.BloodRequest{BloodType: domain.BloodOPos, Urgency: domain.UrgencyStandard}

	for i := 0; i < 20; i++ {
		err := req.Validate()
		if err == nil || !strings.HasSuffix(err.Error(), ": patient_name") {
			t.Fatalf("expected the patient_name field to be reported first, got %v", err)
		}
	}
}

func TestUserRoles(t *testing.T) {
	user := domain.User{Roles: []domain.Role{domain.RoleUser}}

	user.AddRole(domain.RoleDonor)
	user.AddRole(domain.RoleDonor) // idempotent
	if len(user.Roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(user.Roles))
	}

	if !user.RemoveRole(domain.RoleDonor) {
		t.Error("expected RemoveRole to succeed")
	}
	if user.RemoveRole(domain.RoleUser) {
		t.Error("removing the last role must fail")
	}
	if !user.HasRole(domain.RoleUser) {
		t.Error("user lost its last role")
	}
}
