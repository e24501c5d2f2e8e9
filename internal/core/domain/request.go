package domain

import (
	"fmt"
	"strings"
	"time"
)

type BloodRequest struct {
	ID            string    `json:"id"`
	PatientName   string    `json:"patient_name"`
	BloodType     BloodType `json:"blood_type"`
	Hospital      string    `json:"hospital"`
	Location      string    `json:"location"`
	ContactNumber string    `json:"contact_number"`
	Urgency       Urgency   `json:"urgency"`
	Notes         string    `json:"notes,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Validate checks the request draft before it is written.
func (r *BloodRequest) Validate() error {
	if strings.TrimSpace(string(r.BloodType)) == "" {
		return ErrMissingBloodType
	}
	if !ValidBloodType(r.BloodType) {
		return ErrInvalidBloodType
	}
	if !ValidUrgency(r.Urgency) {
		return ErrInvalidUrgency
	}
	for _, f := range []struct{ name, value string }{
		{"patient_name", r.PatientName},
		{"hospital", r.Hospital},
		{"location", r.Location},
		{"contact_number", r.ContactNumber},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}
